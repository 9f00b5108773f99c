package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/repository"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidClientData = errors.New("client name is required")
)

const defaultPrimaryColor = "#000000"

// ClientDTO 客户列表项
type ClientDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShopifyDomain    *string `json:"shopify_domain"`
	ShopifyConnected bool    `json:"shopify_connected"`
	BrandVoice       *string `json:"brand_voice"`
	LogoURL          *string `json:"logo_url"`
	PrimaryColor     string  `json:"primary_color"`
	ProjectCount     int64   `json:"project_count"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// ClientDetailDTO 客户详情（含项目和商品）
type ClientDetailDTO struct {
	ClientDTO
	Projects []model.Project `json:"projects"`
	Products []model.Product `json:"products"`
}

// CreateClientRequest 创建客户请求
type CreateClientRequest struct {
	Name          string  `json:"name"`
	ShopifyDomain *string `json:"shopify_domain"`
	BrandVoice    *string `json:"brand_voice"`
	LogoURL       *string `json:"logo_url"`
	PrimaryColor  string  `json:"primary_color"`
}

// UpdateClientRequest 更新客户请求，nil 字段保持不变
type UpdateClientRequest struct {
	Name          *string `json:"name"`
	ShopifyDomain *string `json:"shopify_domain"`
	BrandVoice    *string `json:"brand_voice"`
	LogoURL       *string `json:"logo_url"`
	PrimaryColor  *string `json:"primary_color"`
}

// ClientService 客户服务接口
type ClientService interface {
	List(ctx context.Context) ([]*ClientDTO, error)
	Get(ctx context.Context, id string) (*ClientDetailDTO, error)
	Create(ctx context.Context, req CreateClientRequest) (*ClientDTO, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (*ClientDTO, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	productRepo repository.ProductRepository
}

// NewClientService 创建客户服务
func NewClientService(clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository, productRepo repository.ProductRepository) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		productRepo: productRepo,
	}
}

func (s *clientService) List(ctx context.Context) ([]*ClientDTO, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	result := make([]*ClientDTO, len(clients))
	for i := range clients {
		result[i] = toClientDTO(&clients[i])
	}
	return result, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*ClientDetailDTO, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list client projects: %w", err)
	}
	products, err := s.productRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list client products: %w", err)
	}

	dto := &ClientDetailDTO{
		ClientDTO: *toClientDTO(client),
		Projects:  projects,
		Products:  products,
	}
	dto.ProjectCount = int64(len(projects))
	if dto.Projects == nil {
		dto.Projects = []model.Project{}
	}
	if dto.Products == nil {
		dto.Products = []model.Product{}
	}
	return dto, nil
}

func (s *clientService) Create(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidClientData
	}
	client := &model.Client{
		Name:          name,
		ShopifyDomain: emptyToNil(req.ShopifyDomain),
		BrandVoice:    emptyToNil(req.BrandVoice),
		LogoURL:       emptyToNil(req.LogoURL),
		PrimaryColor:  req.PrimaryColor,
	}
	if client.PrimaryColor == "" {
		client.PrimaryColor = defaultPrimaryColor
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return toClientDTO(client), nil
}

func (s *clientService) Update(ctx context.Context, id string, req UpdateClientRequest) (*ClientDTO, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidClientData
		}
		client.Name = name
	}
	if req.ShopifyDomain != nil {
		client.ShopifyDomain = emptyToNil(req.ShopifyDomain)
	}
	if req.BrandVoice != nil {
		client.BrandVoice = emptyToNil(req.BrandVoice)
	}
	if req.LogoURL != nil {
		client.LogoURL = emptyToNil(req.LogoURL)
	}
	if req.PrimaryColor != nil && *req.PrimaryColor != "" {
		client.PrimaryColor = *req.PrimaryColor
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return toClientDTO(client), nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *clientService) getClient(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func toClientDTO(c *model.Client) *ClientDTO {
	return &ClientDTO{
		ID:               c.ID,
		Name:             c.Name,
		ShopifyDomain:    c.ShopifyDomain,
		ShopifyConnected: c.ShopifyConnected(),
		BrandVoice:       c.BrandVoice,
		LogoURL:          c.LogoURL,
		PrimaryColor:     c.PrimaryColor,
		ProjectCount:     c.ProjectCount,
		CreatedAt:        c.CreatedAt.Format(timeLayout),
		UpdatedAt:        c.UpdatedAt.Format(timeLayout),
	}
}

// emptyToNil 空字符串视为未设置
func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
