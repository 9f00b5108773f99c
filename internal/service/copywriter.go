package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/repository"
	"github.com/weibaohui/landingkit/internal/utils"
	"k8s.io/klog/v2"
)

var (
	ErrCopyUnavailable    = errors.New("ai copy service not configured")
	ErrInvalidCopyRequest = errors.New("invalid copy request")
	ErrCopyParse          = errors.New("failed to parse ai-generated content")
)

const (
	CopyActionFull    = "full"
	CopyActionSection = "section"
	CopyActionImprove = "improve"

	defaultBrandName = "Brand"
)

// Completer 单轮对话补全
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CopyRequest AI 文案请求
type CopyRequest struct {
	Action    string `json:"action"`
	ClientID  string `json:"client_id"`
	ProjectID string `json:"project_id"`

	TemplateType       string   `json:"template_type"`
	TrafficSource      string   `json:"traffic_source"`
	ProductName        string   `json:"product_name"`
	ProductDescription string   `json:"product_description"`
	ProductPrice       string   `json:"product_price"`
	TargetAudience     string   `json:"target_audience"`
	KeyBenefits        []string `json:"key_benefits"`
	Competitors        []string `json:"competitors"`

	SectionType     string         `json:"section_type"`
	ExistingContent map[string]any `json:"existing_content"`

	Text  string `json:"text"`
	Style string `json:"style"`
}

// GeneratedSection 生成的区块内容
type GeneratedSection struct {
	SectionID string         `json:"sectionId"`
	Content   map[string]any `json:"content"`
}

// CopyResult 按 action 填充对应字段
type CopyResult struct {
	Sections    []GeneratedSection `json:"sections,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
	Content     map[string]any     `json:"content,omitempty"`
	Improved    string             `json:"improved,omitempty"`
}

// CopywriterService AI 文案生成
type CopywriterService interface {
	Generate(ctx context.Context, req CopyRequest) (*CopyResult, error)
}

type copywriterService struct {
	completer   Completer
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
}

// NewCopywriterService completer 为 nil 时所有请求返回 ErrCopyUnavailable
func NewCopywriterService(completer Completer, clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository) CopywriterService {
	return &copywriterService{
		completer:   completer,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
	}
}

type brandInfo struct {
	Name  string
	Voice string
}

func (s *copywriterService) Generate(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	action := req.Action
	if action == "" {
		action = CopyActionFull
	}

	switch action {
	case CopyActionFull:
		if req.ProductName == "" || req.ProductDescription == "" {
			return nil, fmt.Errorf("%w: product name and description are required", ErrInvalidCopyRequest)
		}
	case CopyActionSection:
		if req.SectionType == "" || req.ProductName == "" {
			return nil, fmt.Errorf("%w: section type and product name are required", ErrInvalidCopyRequest)
		}
	case CopyActionImprove:
		if req.Text == "" || req.Style == "" {
			return nil, fmt.Errorf("%w: text and style are required for improvement", ErrInvalidCopyRequest)
		}
		if _, ok := styleGuides[req.Style]; !ok {
			return nil, fmt.Errorf("%w: unknown style %q", ErrInvalidCopyRequest, req.Style)
		}
	default:
		return nil, fmt.Errorf("%w: invalid action, use \"full\", \"section\", or \"improve\"", ErrInvalidCopyRequest)
	}

	if s.completer == nil {
		return nil, ErrCopyUnavailable
	}

	brand := s.brand(ctx, req.ClientID, req.ProjectID)
	switch action {
	case CopyActionSection:
		return s.generateSection(ctx, req, brand)
	case CopyActionImprove:
		return s.improve(ctx, req)
	default:
		return s.generateFull(ctx, req, brand)
	}
}

// brand 优先按 clientId 取品牌信息，其次按 projectId；都取不到时使用默认品牌名
func (s *copywriterService) brand(ctx context.Context, clientID, projectID string) brandInfo {
	info := brandInfo{Name: defaultBrandName}
	var client *model.Client
	switch {
	case clientID != "":
		c, err := s.clientRepo.Get(ctx, clientID)
		if err == nil {
			client = c
		} else if !errors.Is(err, repository.ErrNotFound) {
			klog.Warningf("[Copywriter] 查询客户失败: clientID=%s, error=%v", clientID, err)
		}
	case projectID != "":
		p, err := s.projectRepo.Get(ctx, projectID)
		if err == nil {
			client = p.Client
		} else if !errors.Is(err, repository.ErrNotFound) {
			klog.Warningf("[Copywriter] 查询项目失败: projectID=%s, error=%v", projectID, err)
		}
	}
	if client != nil {
		info.Name = client.Name
		if client.BrandVoice != nil {
			info.Voice = *client.BrandVoice
		}
	}
	return info
}

func (s *copywriterService) generateFull(ctx context.Context, req CopyRequest, brand brandInfo) (*CopyResult, error) {
	templateType := req.TemplateType
	if templateType == "" {
		templateType = model.TemplateTypeLandingPage
	}
	requirements, ok := templatePrompts[templateType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown template type %q", ErrInvalidCopyRequest, templateType)
	}
	guideline, ok := trafficSourceGuidelines[req.TrafficSource]
	if !ok {
		guideline = trafficSourceGuidelines[model.TrafficSourceDefault]
	}

	prompt := buildFullPrompt(req, brand, guideline, requirements)
	klog.V(6).Infof("[Copywriter] 生成整页文案: brand=%s, template=%s, source=%s", brand.Name, templateType, req.TrafficSource)

	content, err := s.completer.Complete(ctx, copywriterSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	var result struct {
		Sections    []GeneratedSection `json:"sections"`
		Suggestions []string           `json:"suggestions"`
	}
	if err := utils.ParseModelJSON(content, &result); err != nil {
		klog.Errorf("[Copywriter] 解析整页文案失败: %v, content=%s", err, content)
		return nil, fmt.Errorf("%w: %v", ErrCopyParse, err)
	}
	if result.Sections == nil {
		result.Sections = []GeneratedSection{}
	}
	return &CopyResult{Sections: result.Sections, Suggestions: result.Suggestions}, nil
}

func (s *copywriterService) generateSection(ctx context.Context, req CopyRequest, brand brandInfo) (*CopyResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate content for a %q section.\n\n", req.SectionType)
	fmt.Fprintf(&b, "## PRODUCT\n- Name: %s\n- Description: %s\n\n", req.ProductName, req.ProductDescription)
	fmt.Fprintf(&b, "## BRAND VOICE\n%s\n\n", orDefault(brand.Voice, "Professional and friendly"))
	if len(req.ExistingContent) > 0 {
		existing, err := json.MarshalIndent(req.ExistingContent, "", "  ")
		if err == nil {
			fmt.Fprintf(&b, "## EXISTING CONTENT TO IMPROVE\n%s\n\n", existing)
		}
	}
	fmt.Fprintf(&b, "Generate compelling content for this section type. Return ONLY a valid JSON object with the appropriate fields for a %s section.", req.SectionType)

	content, err := s.completer.Complete(ctx, copywriterSystemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate section content: %w", err)
	}

	var section map[string]any
	if err := utils.ParseModelJSON(content, &section); err != nil {
		klog.Errorf("[Copywriter] 解析区块文案失败: %v, content=%s", err, content)
		return nil, fmt.Errorf("%w: %v", ErrCopyParse, err)
	}
	if section == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrCopyParse)
	}
	klog.V(8).Infof("[Copywriter] 区块文案: section=%s, content=%s", req.SectionType, utils.ToJSON(section))
	return &CopyResult{Content: section}, nil
}

func (s *copywriterService) improve(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	prompt := fmt.Sprintf("Improve this copy: %q\n\nStyle: %s\n\nReturn ONLY the improved text, nothing else.", req.Text, styleGuides[req.Style])
	improved, err := s.completer.Complete(ctx, copywriterSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to improve copy: %w", err)
	}
	return &CopyResult{Improved: strings.TrimSpace(improved)}, nil
}

func buildFullPrompt(req CopyRequest, brand brandInfo, guideline, requirements string) string {
	var b strings.Builder
	b.WriteString("Generate compelling copy for the following product.\n\n")

	b.WriteString("## PRODUCT INFORMATION\n")
	fmt.Fprintf(&b, "- **Product Name:** %s\n", req.ProductName)
	fmt.Fprintf(&b, "- **Description:** %s\n", req.ProductDescription)
	if req.ProductPrice != "" {
		fmt.Fprintf(&b, "- **Price:** %s\n", req.ProductPrice)
	}
	fmt.Fprintf(&b, "- **Brand:** %s\n\n", brand.Name)

	fmt.Fprintf(&b, "## BRAND VOICE\n%s\n\n", orDefault(brand.Voice, defaultBrandVoice))
	fmt.Fprintf(&b, "## TARGET AUDIENCE\n%s\n\n", orDefault(req.TargetAudience, defaultTargetAudience))

	if len(req.KeyBenefits) > 0 {
		b.WriteString("## KEY BENEFITS TO HIGHLIGHT\n")
		for _, benefit := range req.KeyBenefits {
			fmt.Fprintf(&b, "- %s\n", benefit)
		}
		b.WriteString("\n")
	}
	if len(req.Competitors) > 0 {
		fmt.Fprintf(&b, "## COMPETITIVE POSITIONING\nPosition against: %s\n\n", strings.Join(req.Competitors, ", "))
	}

	fmt.Fprintf(&b, "## TRAFFIC SOURCE OPTIMIZATION\n%s\n\n", guideline)
	fmt.Fprintf(&b, "## TEMPLATE REQUIREMENTS\n%s\n\n", requirements)
	b.WriteString(fullOutputFormat)
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
