package handler

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/service"
)

type mockClientService struct {
	ListFunc   func() ([]*service.ClientDTO, error)
	GetFunc    func(id string) (*service.ClientDetailDTO, error)
	CreateFunc func(req service.CreateClientRequest) (*service.ClientDTO, error)
	UpdateFunc func(id string, req service.UpdateClientRequest) (*service.ClientDTO, error)
	DeleteFunc func(id string) error
}

func (m *mockClientService) List(ctx context.Context) ([]*service.ClientDTO, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []*service.ClientDTO{}, nil
}

func (m *mockClientService) Get(ctx context.Context, id string) (*service.ClientDetailDTO, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, service.ErrClientNotFound
}

func (m *mockClientService) Create(ctx context.Context, req service.CreateClientRequest) (*service.ClientDTO, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(req)
	}
	return &service.ClientDTO{ID: "c1", Name: req.Name}, nil
}

func (m *mockClientService) Update(ctx context.Context, id string, req service.UpdateClientRequest) (*service.ClientDTO, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, req)
	}
	return &service.ClientDTO{ID: id}, nil
}

func (m *mockClientService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type mockTemplateService struct {
	SeedFunc func() (*service.SeedResult, error)
}

func (m *mockTemplateService) List(ctx context.Context) ([]*service.TemplateDTO, error) {
	return []*service.TemplateDTO{}, nil
}

func (m *mockTemplateService) Get(ctx context.Context, id string) (*service.TemplateDTO, error) {
	return nil, service.ErrTemplateNotFound
}

func (m *mockTemplateService) Create(ctx context.Context, req service.CreateTemplateRequest) (*service.TemplateDTO, error) {
	return &service.TemplateDTO{ID: "t1", Name: req.Name, Sections: req.Sections}, nil
}

func (m *mockTemplateService) Update(ctx context.Context, id string, req service.UpdateTemplateRequest) (*service.TemplateDTO, error) {
	return &service.TemplateDTO{ID: id}, nil
}

func (m *mockTemplateService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockTemplateService) Seed(ctx context.Context) (*service.SeedResult, error) {
	if m.SeedFunc != nil {
		return m.SeedFunc()
	}
	return &service.SeedResult{}, nil
}

type mockProjectService struct {
	ListFunc     func(clientID string) ([]*service.ProjectDTO, error)
	UpdateFunc   func(id string, req service.UpdateProjectRequest) (*service.ProjectDTO, error)
	PreviewFunc  func(id string) (*service.PageDTO, error)
	VariantsFunc func(id string) ([]model.Variant, error)
}

func (m *mockProjectService) Create(ctx context.Context, req service.CreateProjectRequest) (*service.ProjectDTO, error) {
	return &service.ProjectDTO{ID: "p1", Name: req.Name, ClientID: req.ClientID}, nil
}

func (m *mockProjectService) List(ctx context.Context, clientID string) ([]*service.ProjectDTO, error) {
	if m.ListFunc != nil {
		return m.ListFunc(clientID)
	}
	return []*service.ProjectDTO{}, nil
}

func (m *mockProjectService) Get(ctx context.Context, id string) (*service.ProjectDTO, error) {
	return nil, service.ErrProjectNotFound
}

func (m *mockProjectService) Update(ctx context.Context, id string, req service.UpdateProjectRequest) (*service.ProjectDTO, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, req)
	}
	return &service.ProjectDTO{ID: id}, nil
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockProjectService) Editor(ctx context.Context, id string) (*service.EditorDTO, error) {
	return &service.EditorDTO{Sections: []model.Section{}, Content: model.ProjectContent{}}, nil
}

func (m *mockProjectService) Preview(ctx context.Context, id string) (*service.PageDTO, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(id)
	}
	return &service.PageDTO{}, nil
}

func (m *mockProjectService) Variants(ctx context.Context, id string) ([]model.Variant, error) {
	if m.VariantsFunc != nil {
		return m.VariantsFunc(id)
	}
	return []model.Variant{}, nil
}

type mockShopifyService struct {
	ConnectFunc  func(clientID, shop string) (string, error)
	CallbackFunc func(code, state, shop string) string
	SyncFunc     func(clientID string) (*service.SyncResult, error)
	CheckoutFunc func(req service.CheckoutRequest) (string, error)
}

func (m *mockShopifyService) Connect(ctx context.Context, clientID, shop string) (string, error) {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(clientID, shop)
	}
	return "", nil
}

func (m *mockShopifyService) Callback(ctx context.Context, code, state, shop string) string {
	if m.CallbackFunc != nil {
		return m.CallbackFunc(code, state, shop)
	}
	return ""
}

func (m *mockShopifyService) Sync(ctx context.Context, clientID string) (*service.SyncResult, error) {
	if m.SyncFunc != nil {
		return m.SyncFunc(clientID)
	}
	return &service.SyncResult{}, nil
}

func (m *mockShopifyService) Products(ctx context.Context, clientID string) (*service.ProductsResult, error) {
	return &service.ProductsResult{}, nil
}

func (m *mockShopifyService) Checkout(ctx context.Context, req service.CheckoutRequest) (string, error) {
	if m.CheckoutFunc != nil {
		return m.CheckoutFunc(req)
	}
	return "", nil
}

type mockCopywriterService struct {
	GenerateFunc func(req service.CopyRequest) (*service.CopyResult, error)
}

func (m *mockCopywriterService) Generate(ctx context.Context, req service.CopyRequest) (*service.CopyResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(req)
	}
	return &service.CopyResult{}, nil
}

type mockPageService struct {
	PageFunc func(slug string) (*service.PageDTO, error)
}

func (m *mockPageService) Page(ctx context.Context, slug string) (*service.PageDTO, error) {
	if m.PageFunc != nil {
		return m.PageFunc(slug)
	}
	return nil, service.ErrPageNotFound
}

func (m *mockPageService) Draft(ctx context.Context, slug string) (*service.PageDTO, error) {
	return m.Page(ctx, slug)
}

func (m *mockPageService) Build(ctx context.Context, project *model.Project) (*service.PageDTO, error) {
	return &service.PageDTO{Slug: project.Slug}, nil
}
