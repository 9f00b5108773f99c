package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/render"
	"github.com/weibaohui/landingkit/internal/repository"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"
)

var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrInvalidTemplateData = errors.New("invalid template data")
)

const timeLayout = time.RFC3339

// TemplateDTO 模板数据传输对象
type TemplateDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Category     *string         `json:"category"`
	Description  *string         `json:"description"`
	Thumbnail    *string         `json:"thumbnail"`
	IsPublic     bool            `json:"is_public"`
	Sections     []model.Section `json:"sections"`
	ProjectCount int64           `json:"project_count"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Thumbnail   *string         `json:"thumbnail"`
	Sections    []model.Section `json:"sections"`
	IsPublic    *bool           `json:"is_public"`
}

// UpdateTemplateRequest 更新模板请求，nil 字段保持不变；sections 整体替换
type UpdateTemplateRequest struct {
	Name        *string         `json:"name"`
	Type        *string         `json:"type"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Thumbnail   *string         `json:"thumbnail"`
	Sections    []model.Section `json:"sections"`
	IsPublic    *bool           `json:"is_public"`
}

// SeedResult 种子数据导入结果
type SeedResult struct {
	Count     int            `json:"count"`
	Templates []*TemplateDTO `json:"templates"`
}

// TemplateService 模板服务接口
type TemplateService interface {
	List(ctx context.Context) ([]*TemplateDTO, error)
	Get(ctx context.Context, id string) (*TemplateDTO, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDTO, error)
	Update(ctx context.Context, id string, req UpdateTemplateRequest) (*TemplateDTO, error)
	Delete(ctx context.Context, id string) error
	// Seed 清空模板并导入内置的入门模板
	Seed(ctx context.Context) (*SeedResult, error)
}

// templateService 实现
type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService 创建服务实例
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// List 获取公开模板列表
func (s *templateService) List(ctx context.Context) ([]*TemplateDTO, error) {
	templates, err := s.templateRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]*TemplateDTO, len(templates))
	for i := range templates {
		result[i] = toTemplateDTO(&templates[i])
	}
	return result, nil
}

// Get 获取模板详情
func (s *templateService) Get(ctx context.Context, id string) (*TemplateDTO, error) {
	template, err := s.getTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTemplateDTO(template), nil
}

// Create 创建模板
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTemplateData)
	}
	templateType := req.Type
	if templateType == "" {
		templateType = model.TemplateTypeLandingPage
	}
	if !validTemplateType(templateType) {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidTemplateData, templateType)
	}
	sections := req.Sections
	if sections == nil {
		sections = []model.Section{}
	}
	if err := validateSections(sections); err != nil {
		return nil, err
	}

	template := &model.Template{
		Name:        name,
		Type:        templateType,
		Category:    req.Category,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Sections:    datatypes.NewJSONType(render.WithFieldSchema(sections)),
		IsPublic:    true,
	}
	if req.IsPublic != nil {
		template.IsPublic = *req.IsPublic
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return toTemplateDTO(template), nil
}

// Update 更新模板，已有项目的内容快照不受影响
func (s *templateService) Update(ctx context.Context, id string, req UpdateTemplateRequest) (*TemplateDTO, error) {
	template, err := s.getTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidTemplateData)
		}
		template.Name = name
	}
	if req.Type != nil {
		if !validTemplateType(*req.Type) {
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidTemplateData, *req.Type)
		}
		template.Type = *req.Type
	}
	if req.Category != nil {
		template.Category = req.Category
	}
	if req.Description != nil {
		template.Description = req.Description
	}
	if req.Thumbnail != nil {
		template.Thumbnail = req.Thumbnail
	}
	if req.Sections != nil {
		if err := validateSections(req.Sections); err != nil {
			return nil, err
		}
		template.Sections = datatypes.NewJSONType(render.WithFieldSchema(req.Sections))
	}
	if req.IsPublic != nil {
		template.IsPublic = *req.IsPublic
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return toTemplateDTO(template), nil
}

// Delete 删除模板
func (s *templateService) Delete(ctx context.Context, id string) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// Seed 导入入门模板
func (s *templateService) Seed(ctx context.Context) (*SeedResult, error) {
	templates, err := StarterTemplates()
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.ReplaceAll(ctx, templates); err != nil {
		return nil, fmt.Errorf("failed to seed templates: %w", err)
	}
	klog.V(6).Infof("[TemplateService] 入门模板导入完成: count=%d", len(templates))

	result := &SeedResult{Count: len(templates), Templates: make([]*TemplateDTO, len(templates))}
	for i := range templates {
		result.Templates[i] = toTemplateDTO(&templates[i])
	}
	return result, nil
}

func (s *templateService) getTemplate(ctx context.Context, id string) (*model.Template, error) {
	template, err := s.templateRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

func validTemplateType(t string) bool {
	switch t {
	case model.TemplateTypeLandingPage, model.TemplateTypeListicle, model.TemplateTypePDP:
		return true
	}
	return false
}

// validateSections 区块 id 与组件名必填，id 在模板内唯一
func validateSections(sections []model.Section) error {
	seen := make(map[string]struct{}, len(sections))
	for i, section := range sections {
		if section.ID == "" || section.Component == "" {
			return fmt.Errorf("%w: section %d requires id and component", ErrInvalidTemplateData, i)
		}
		if _, ok := seen[section.ID]; ok {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalidTemplateData, section.ID)
		}
		seen[section.ID] = struct{}{}
	}
	return nil
}

func toTemplateDTO(t *model.Template) *TemplateDTO {
	sections := render.SortSections(t.SectionList())
	return &TemplateDTO{
		ID:           t.ID,
		Name:         t.Name,
		Type:         t.Type,
		Category:     t.Category,
		Description:  t.Description,
		Thumbnail:    t.Thumbnail,
		IsPublic:     t.IsPublic,
		Sections:     sections,
		ProjectCount: t.ProjectCount,
		CreatedAt:    t.CreatedAt.Format(timeLayout),
		UpdatedAt:    t.UpdatedAt.Format(timeLayout),
	}
}
