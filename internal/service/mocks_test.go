package service

import (
	"context"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/shopify"
	"github.com/weibaohui/landingkit/internal/repository"
)

type mockClientRepo struct {
	CreateFunc func(client *model.Client) error
	ListFunc   func() ([]model.Client, error)
	GetFunc    func(id string) (*model.Client, error)
	SaveFunc   func(client *model.Client) error
	DeleteFunc func(id string) error
	SaveCalled int
}

func (m *mockClientRepo) Create(ctx context.Context, client *model.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(client)
	}
	client.ID = "client-1"
	return nil
}

func (m *mockClientRepo) List(ctx context.Context) ([]model.Client, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *mockClientRepo) Get(ctx context.Context, id string) (*model.Client, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockClientRepo) Save(ctx context.Context, client *model.Client) error {
	m.SaveCalled++
	if m.SaveFunc != nil {
		return m.SaveFunc(client)
	}
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type mockTemplateRepo struct {
	ListFunc       func(publicOnly bool) ([]model.Template, error)
	GetFunc        func(id string) (*model.Template, error)
	CreateFunc     func(template *model.Template) error
	SaveFunc       func(template *model.Template) error
	DeleteFunc     func(id string) error
	ReplaceAllFunc func(templates []model.Template) error
}

func (m *mockTemplateRepo) List(ctx context.Context, publicOnly bool) ([]model.Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc(publicOnly)
	}
	return nil, nil
}

func (m *mockTemplateRepo) Get(ctx context.Context, id string) (*model.Template, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTemplateRepo) Create(ctx context.Context, template *model.Template) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(template)
	}
	template.ID = "template-1"
	return nil
}

func (m *mockTemplateRepo) Save(ctx context.Context, template *model.Template) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(template)
	}
	return nil
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockTemplateRepo) ReplaceAll(ctx context.Context, templates []model.Template) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(templates)
	}
	return nil
}

type mockProjectRepo struct {
	CreateFunc    func(project *model.Project) error
	ListFunc      func(clientID string) ([]model.Project, error)
	GetFunc       func(id string) (*model.Project, error)
	GetBySlugFunc func(slug string) (*model.Project, error)
	SaveFunc      func(project *model.Project) error
	DeleteFunc    func(id string) error
	SaveCalled    int
}

func (m *mockProjectRepo) Create(ctx context.Context, project *model.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(project)
	}
	project.ID = "project-1"
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context, clientID string) ([]model.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(clientID)
	}
	return nil, nil
}

func (m *mockProjectRepo) Get(ctx context.Context, id string) (*model.Project, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(slug)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepo) Save(ctx context.Context, project *model.Project) error {
	m.SaveCalled++
	if m.SaveFunc != nil {
		return m.SaveFunc(project)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type mockVariantRepo struct {
	CreateFunc        func(variant *model.Variant) error
	ListByProjectFunc func(projectID string) ([]model.Variant, error)
}

func (m *mockVariantRepo) Create(ctx context.Context, variant *model.Variant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(variant)
	}
	return nil
}

func (m *mockVariantRepo) ListByProject(ctx context.Context, projectID string) ([]model.Variant, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(projectID)
	}
	return nil, nil
}

type mockProductRepo struct {
	UpsertFunc         func(product *model.Product) error
	ListByClientFunc   func(clientID string) ([]model.Product, error)
	GetFunc            func(id string) (*model.Product, error)
	LatestByClientFunc func(clientID string) (*model.Product, error)
	Upserted           []model.Product
}

func (m *mockProductRepo) Upsert(ctx context.Context, product *model.Product) error {
	m.Upserted = append(m.Upserted, *product)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(product)
	}
	return nil
}

func (m *mockProductRepo) ListByClient(ctx context.Context, clientID string) ([]model.Product, error) {
	if m.ListByClientFunc != nil {
		return m.ListByClientFunc(clientID)
	}
	return nil, nil
}

func (m *mockProductRepo) Get(ctx context.Context, id string) (*model.Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) LatestByClient(ctx context.Context, clientID string) (*model.Product, error) {
	if m.LatestByClientFunc != nil {
		return m.LatestByClientFunc(clientID)
	}
	return nil, repository.ErrNotFound
}

type mockShopifyAPI struct {
	NotConfigured     bool
	ExchangeFunc      func(shop, code string) (string, error)
	FetchProductsFunc func(shop, accessToken string, limit int) ([]shopify.Product, error)
	FetchProductFunc  func(shop, accessToken, productID string) (*shopify.Product, error)
	FetchShopFunc     func(shop, accessToken string) (*shopify.Shop, error)
}

func (m *mockShopifyAPI) Configured() bool {
	return !m.NotConfigured
}

func (m *mockShopifyAPI) AuthURL(shop, state string) string {
	return "https://" + shop + "/admin/oauth/authorize?state=" + state
}

func (m *mockShopifyAPI) Exchange(ctx context.Context, shop, code string) (string, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(shop, code)
	}
	return "shpat_token", nil
}

func (m *mockShopifyAPI) FetchProducts(ctx context.Context, shop, accessToken string, limit int) ([]shopify.Product, error) {
	if m.FetchProductsFunc != nil {
		return m.FetchProductsFunc(shop, accessToken, limit)
	}
	return nil, nil
}

func (m *mockShopifyAPI) FetchProduct(ctx context.Context, shop, accessToken, productID string) (*shopify.Product, error) {
	if m.FetchProductFunc != nil {
		return m.FetchProductFunc(shop, accessToken, productID)
	}
	return &shopify.Product{}, nil
}

func (m *mockShopifyAPI) FetchShop(ctx context.Context, shop, accessToken string) (*shopify.Shop, error) {
	if m.FetchShopFunc != nil {
		return m.FetchShopFunc(shop, accessToken)
	}
	return &shopify.Shop{Name: "Test Shop", MyshopifyDomain: shop}, nil
}

type mockCompleter struct {
	CompleteFunc func(systemPrompt, userPrompt string) (string, error)
	LastPrompt   string
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.LastPrompt = userPrompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(systemPrompt, userPrompt)
	}
	return "", nil
}

func strPtr(s string) *string { return &s }
