package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/render"
	"github.com/weibaohui/landingkit/internal/pkg/shopify"
	"github.com/weibaohui/landingkit/internal/repository"
	"k8s.io/klog/v2"
)

var ErrPageNotFound = errors.New("page not found")

// PageDTO 公开落地页
type PageDTO struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Sections    []render.Entry `json:"sections"`
}

// PageService 落地页渲染服务
type PageService interface {
	// Page 按 slug 渲染已发布的页面
	Page(ctx context.Context, slug string) (*PageDTO, error)
	// Draft 按 slug 渲染页面，不检查发布状态
	Draft(ctx context.Context, slug string) (*PageDTO, error)
	// Build 渲染已加载（含客户与模板）的项目
	Build(ctx context.Context, project *model.Project) (*PageDTO, error)
}

type pageService struct {
	projectRepo repository.ProjectRepository
	productRepo repository.ProductRepository
	renderer    *render.Renderer
}

// NewPageService 创建页面服务，renderer 为 nil 时使用默认组件注册表
func NewPageService(projectRepo repository.ProjectRepository, productRepo repository.ProductRepository, renderer *render.Renderer) PageService {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &pageService{
		projectRepo: projectRepo,
		productRepo: productRepo,
		renderer:    renderer,
	}
}

func (s *pageService) Page(ctx context.Context, slug string) (*PageDTO, error) {
	project, err := s.projectRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get project by slug: %w", err)
	}
	if !project.IsPublished() {
		klog.V(6).Infof("[PageService] 页面未发布: slug=%s, status=%s", slug, project.Status)
		return nil, ErrPageNotFound
	}
	return s.Build(ctx, project)
}

func (s *pageService) Draft(ctx context.Context, slug string) (*PageDTO, error) {
	project, err := s.projectRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get project by slug: %w", err)
	}
	return s.Build(ctx, project)
}

func (s *pageService) Build(ctx context.Context, project *model.Project) (*PageDTO, error) {
	product, err := s.productContext(ctx, project.Client)
	if err != nil {
		return nil, err
	}

	page := &PageDTO{
		Slug:     project.Slug,
		Title:    project.Name,
		Status:   project.Status,
		Sections: s.renderer.RenderProject(project, product),
	}
	if project.Client != nil {
		page.Description = "Landing page for " + project.Client.Name
	}
	return page, nil
}

// productContext 取客户最近同步的商品；未连接店铺或无商品时返回 nil
func (s *pageService) productContext(ctx context.Context, client *model.Client) (*render.ProductContext, error) {
	if client == nil || client.Domain() == "" {
		return nil, nil
	}
	product, err := s.productRepo.LatestByClient(ctx, client.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest product: %w", err)
	}

	checkoutURL := ""
	if variantID := product.FirstVariantID(); variantID != "" {
		checkoutURL = shopify.CheckoutURL(client.Domain(), variantID, 1)
	}
	return render.NewProductContext(product, checkoutURL), nil
}
