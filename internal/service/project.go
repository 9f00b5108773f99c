package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/weibaohui/landingkit/internal/eventbus"
	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/render"
	"github.com/weibaohui/landingkit/internal/repository"
	"github.com/weibaohui/landingkit/internal/service/statemachine"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectData = errors.New("invalid project data")
	ErrInvalidStatus      = errors.New("invalid project status")
)

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// ProjectDTO 项目数据传输对象
type ProjectDTO struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	ClientID     string               `json:"client_id"`
	ClientName   string               `json:"client_name,omitempty"`
	TemplateID   *string              `json:"template_id"`
	TemplateName string               `json:"template_name,omitempty"`
	TemplateType string               `json:"template_type,omitempty"`
	Content      model.ProjectContent `json:"content"`
	Status       string               `json:"status"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name       string               `json:"name"`
	ClientID   string               `json:"client_id"`
	TemplateID *string              `json:"template_id"`
	Content    model.ProjectContent `json:"content"`
}

// UpdateProjectRequest 更新项目请求；content 非 nil 时整体覆盖
type UpdateProjectRequest struct {
	Name    *string              `json:"name"`
	Status  *string              `json:"status"`
	Content model.ProjectContent `json:"content"`
}

// EditorDTO 编辑器所需数据
type EditorDTO struct {
	Project  *ProjectDTO          `json:"project"`
	Sections []model.Section      `json:"sections"`
	Content  model.ProjectContent `json:"content"`
}

// ProjectService 项目服务接口
type ProjectService interface {
	Create(ctx context.Context, req CreateProjectRequest) (*ProjectDTO, error)
	List(ctx context.Context, clientID string) ([]*ProjectDTO, error)
	Get(ctx context.Context, id string) (*ProjectDTO, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectDTO, error)
	Delete(ctx context.Context, id string) error
	Editor(ctx context.Context, id string) (*EditorDTO, error)
	// Preview 渲染项目，不检查发布状态
	Preview(ctx context.Context, id string) (*PageDTO, error)
	Variants(ctx context.Context, id string) ([]model.Variant, error)
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	clientRepo   repository.ClientRepository
	templateRepo repository.TemplateRepository
	variantRepo  repository.VariantRepository
	pages        PageService
	eventBus     *eventbus.ProjectEventBus
	stateMachine *statemachine.ProjectStateMachine
	now          func() time.Time
}

// NewProjectService 创建项目服务
func NewProjectService(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	templateRepo repository.TemplateRepository,
	variantRepo repository.VariantRepository,
	pages PageService,
	eventBus *eventbus.ProjectEventBus,
) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		templateRepo: templateRepo,
		variantRepo:  variantRepo,
		pages:        pages,
		eventBus:     eventBus,
		stateMachine: statemachine.NewProjectStateMachine(),
		now:          time.Now,
	}
}

func (s *projectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidProjectData)
	}
	if req.ClientID == "" {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidProjectData)
	}

	client, err := s.clientRepo.Get(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	content := req.Content
	if content == nil {
		content = model.ProjectContent{}
	}
	var template *model.Template
	templateID := emptyToNil(req.TemplateID)
	if templateID != nil {
		template, err = s.templateRepo.Get(ctx, *templateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		content = render.BuildInitialContent(template.SectionList(), req.Content)
	}

	project := &model.Project{
		Name:       name,
		Slug:       s.generateSlug(name),
		ClientID:   client.ID,
		TemplateID: templateID,
		Content:    datatypes.NewJSONType(content),
		Status:     model.ProjectStatusDraft,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project.Client = client
	project.Template = template

	s.publish(ctx, eventbus.ProjectEventCreated, project)
	return toProjectDTO(project), nil
}

func (s *projectService) List(ctx context.Context, clientID string) ([]*ProjectDTO, error) {
	projects, err := s.projectRepo.List(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	result := make([]*ProjectDTO, len(projects))
	for i := range projects {
		result[i] = toProjectDTO(&projects[i])
	}
	return result, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*ProjectDTO, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProjectDTO(project), nil
}

// Update 内容整体覆盖（后写者胜），状态变化跨越 PUBLISHED 时发布事件
func (s *projectService) Update(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectDTO, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: project name is required", ErrInvalidProjectData)
		}
		project.Name = name
	}
	if req.Content != nil {
		project.Content = datatypes.NewJSONType(req.Content)
	}

	change := statemachine.PublishUnchanged
	if req.Status != nil {
		to := statemachine.ProjectStatus(*req.Status)
		if !validProjectStatus(to) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		change, err = s.stateMachine.Transition(statemachine.ProjectStatus(project.Status), to, project.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		project.Status = string(to)
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	switch change {
	case statemachine.PublishOn:
		s.publish(ctx, eventbus.ProjectEventPublished, project)
	case statemachine.PublishOff:
		s.publish(ctx, eventbus.ProjectEventUnpublished, project)
	}
	return toProjectDTO(project), nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *projectService) Editor(ctx context.Context, id string) (*EditorDTO, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	// 旧数据可能缺少字段声明，这里统一重新推导
	sections := render.WithFieldSchema(render.SortSections(project.Template.SectionList()))
	content := project.Content.Data()
	if content == nil {
		content = model.ProjectContent{}
	}
	return &EditorDTO{
		Project:  toProjectDTO(project),
		Sections: sections,
		Content:  content,
	}, nil
}

func (s *projectService) Preview(ctx context.Context, id string) (*PageDTO, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.pages.Build(ctx, project)
}

func (s *projectService) Variants(ctx context.Context, id string) ([]model.Variant, error) {
	if _, err := s.getProject(ctx, id); err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	if variants == nil {
		variants = []model.Variant{}
	}
	return variants, nil
}

func (s *projectService) getProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// publish 事件处理失败只记录日志，不影响主流程
func (s *projectService) publish(ctx context.Context, eventType eventbus.ProjectEventType, project *model.Project) {
	if s.eventBus == nil {
		return
	}
	event := eventbus.ProjectEvent{
		Type:      eventType,
		ProjectID: project.ID,
		ClientID:  project.ClientID,
		Slug:      project.Slug,
		Status:    project.Status,
	}
	if err := s.eventBus.Publish(ctx, eventType, event); err != nil {
		klog.Errorf("[ProjectService] 事件处理失败: type=%s, projectID=%s, error=%v", eventType, project.ID, err)
	}
}

// generateSlug 名称转小写，非字母数字替换为 -，再拼接 36 进制毫秒时间戳
func (s *projectService) generateSlug(name string) string {
	base := strings.Trim(slugSeparator.ReplaceAllString(strings.ToLower(name), "-"), "-")
	suffix := strconv.FormatInt(s.now().UnixMilli(), 36)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func validProjectStatus(status statemachine.ProjectStatus) bool {
	switch status {
	case statemachine.ProjectStatusDraft, statemachine.ProjectStatusPublished, statemachine.ProjectStatusArchived:
		return true
	}
	return false
}

func toProjectDTO(p *model.Project) *ProjectDTO {
	content := p.Content.Data()
	if content == nil {
		content = model.ProjectContent{}
	}
	dto := &ProjectDTO{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		ClientID:   p.ClientID,
		TemplateID: p.TemplateID,
		Content:    content,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt.Format(timeLayout),
		UpdatedAt:  p.UpdatedAt.Format(timeLayout),
	}
	if p.Client != nil {
		dto.ClientName = p.Client.Name
	}
	if p.Template != nil {
		dto.TemplateName = p.Template.Name
		dto.TemplateType = p.Template.Type
	}
	return dto
}
