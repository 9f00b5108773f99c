package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/secret"
	"github.com/weibaohui/landingkit/internal/pkg/shopify"
	"github.com/weibaohui/landingkit/internal/repository"
	"k8s.io/klog/v2"
)

var (
	ErrShopifyNotConfigured  = errors.New("shopify app not configured")
	ErrShopifyNotConnected   = errors.New("client is not connected to shopify")
	ErrInvalidShopifyRequest = errors.New("invalid shopify request")
	ErrProductNotFound       = errors.New("product not found")
	ErrVariantUnresolved     = errors.New("could not determine product variant")
)

// 回调失败时附加在 dashboard 地址上的 error 参数
const (
	CallbackMissingParams    = "missing_params"
	CallbackInvalidState     = "invalid_state"
	CallbackStateExpired     = "state_expired"
	CallbackClientNotFound   = "client_not_found"
	CallbackNotConfigured    = "shopify_not_configured"
	CallbackConnectionFailed = "shopify_connection_failed"
)

// ShopifyAPI Shopify 客户端能力
type ShopifyAPI interface {
	Configured() bool
	AuthURL(shop, state string) string
	Exchange(ctx context.Context, shop, code string) (string, error)
	FetchProducts(ctx context.Context, shop, accessToken string, limit int) ([]shopify.Product, error)
	FetchProduct(ctx context.Context, shop, accessToken, productID string) (*shopify.Product, error)
	FetchShop(ctx context.Context, shop, accessToken string) (*shopify.Shop, error)
}

// SyncResult 商品同步结果
type SyncResult struct {
	Synced   int             `json:"synced"`
	Products []model.Product `json:"products"`
}

// ClientSummary 商品列表附带的客户摘要
type ClientSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ShopifyDomain *string `json:"shopify_domain"`
}

// ProductsResult 客户已同步商品
type ProductsResult struct {
	Client   ClientSummary   `json:"client"`
	Products []model.Product `json:"products"`
}

// CheckoutRequest 结账链接请求
type CheckoutRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	// FetchMissing 本地没有规格信息时回源 Shopify 查询
	FetchMissing bool `json:"-"`
}

// ShopifyService 店铺连接、商品同步与结账
type ShopifyService interface {
	// Connect 返回 OAuth 授权地址
	Connect(ctx context.Context, clientID, shop string) (string, error)
	// Callback 完成授权并返回要重定向的 dashboard 地址
	Callback(ctx context.Context, code, state, shop string) string
	Sync(ctx context.Context, clientID string) (*SyncResult, error)
	Products(ctx context.Context, clientID string) (*ProductsResult, error)
	Checkout(ctx context.Context, req CheckoutRequest) (string, error)
}

type shopifyService struct {
	api          ShopifyAPI
	clientRepo   repository.ClientRepository
	productRepo  repository.ProductRepository
	states       *secret.StateSigner
	tokens       *secret.Box
	dashboardURL string
	now          func() time.Time
}

// NewShopifyService 创建 Shopify 服务
func NewShopifyService(
	api ShopifyAPI,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	states *secret.StateSigner,
	tokens *secret.Box,
	dashboardURL string,
) ShopifyService {
	return &shopifyService{
		api:          api,
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		states:       states,
		tokens:       tokens,
		dashboardURL: strings.TrimSuffix(dashboardURL, "/"),
		now:          time.Now,
	}
}

func (s *shopifyService) Connect(ctx context.Context, clientID, shop string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("%w: client id is required", ErrInvalidShopifyRequest)
	}
	domain := shopify.NormalizeShop(shop)
	if domain == "" {
		return "", fmt.Errorf("%w: invalid shop domain %q", ErrInvalidShopifyRequest, shop)
	}

	if _, err := s.getClient(ctx, clientID); err != nil {
		return "", err
	}
	if !s.api.Configured() {
		return "", ErrShopifyNotConfigured
	}

	state, err := s.states.Sign(clientID, domain)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	klog.V(6).Infof("[Shopify] 发起授权: clientID=%s, shop=%s", clientID, domain)
	return s.api.AuthURL(domain, state), nil
}

func (s *shopifyService) Callback(ctx context.Context, code, state, shop string) string {
	if code == "" || state == "" || shop == "" {
		return s.redirect("", url.Values{"error": {CallbackMissingParams}})
	}

	claims, err := s.states.Verify(state)
	if err != nil {
		reason := CallbackInvalidState
		if errors.Is(err, secret.ErrStateExpired) {
			reason = CallbackStateExpired
		}
		klog.Warningf("[Shopify] state 校验失败: shop=%s, error=%v", shop, err)
		return s.redirect("", url.Values{"error": {reason}})
	}
	// 回调里的 shop 必须与发起授权时签入 state 的店铺一致
	domain := shopify.NormalizeShop(shop)
	if domain == "" || domain != claims.Shop {
		klog.Warningf("[Shopify] 回调店铺与 state 不一致: shop=%q, expected=%s", shop, claims.Shop)
		return s.redirect("", url.Values{"error": {CallbackInvalidState}})
	}
	clientID := claims.ClientID

	client, err := s.clientRepo.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.redirect("", url.Values{"error": {CallbackClientNotFound}})
		}
		klog.Errorf("[Shopify] 查询客户失败: clientID=%s, error=%v", clientID, err)
		return s.redirect("", url.Values{"error": {CallbackConnectionFailed}})
	}
	if !s.api.Configured() {
		return s.redirect(client.ID, url.Values{"error": {CallbackNotConfigured}})
	}

	if err := s.connect(ctx, client, domain, code); err != nil {
		klog.Errorf("[Shopify] 授权回调失败: clientID=%s, shop=%s, error=%v", client.ID, domain, err)
		return s.redirect("", url.Values{"error": {CallbackConnectionFailed}})
	}
	return s.redirect(client.ID, url.Values{"shopify": {"connected"}})
}

// connect 换取 token、校验店铺并保存加密后的 token
func (s *shopifyService) connect(ctx context.Context, client *model.Client, domain, code string) error {
	accessToken, err := s.api.Exchange(ctx, domain, code)
	if err != nil {
		return err
	}
	shopInfo, err := s.api.FetchShop(ctx, domain, accessToken)
	if err != nil {
		return err
	}
	sealed, err := s.tokens.Seal(accessToken)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	client.ShopifyDomain = &domain
	client.ShopifyToken = sealed
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	klog.Infof("[Shopify] 店铺已连接: clientID=%s, shop=%s (%s)", client.ID, shopInfo.Name, domain)
	return nil
}

func (s *shopifyService) redirect(clientID string, query url.Values) string {
	path := s.dashboardURL + "/dashboard/clients"
	if clientID != "" {
		path += "/" + url.PathEscape(clientID)
	}
	return path + "?" + query.Encode()
}

func (s *shopifyService) Sync(ctx context.Context, clientID string) (*SyncResult, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidShopifyRequest)
	}
	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.accessToken(client)
	if err != nil {
		return nil, err
	}

	remote, err := s.api.FetchProducts(ctx, client.Domain(), accessToken, shopify.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	syncedAt := s.now()
	products := make([]model.Product, 0, len(remote))
	for _, p := range remote {
		product := shopify.TransformProduct(p)
		product.ClientID = client.ID
		product.SyncedAt = syncedAt
		if err := s.productRepo.Upsert(ctx, &product); err != nil {
			return nil, fmt.Errorf("failed to upsert product %s: %w", product.ShopifyID, err)
		}
		products = append(products, product)
	}

	klog.V(6).Infof("[Shopify] 商品同步完成: clientID=%s, synced=%d", client.ID, len(products))
	return &SyncResult{Synced: len(products), Products: products}, nil
}

func (s *shopifyService) Products(ctx context.Context, clientID string) (*ProductsResult, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidShopifyRequest)
	}
	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return &ProductsResult{
		Client: ClientSummary{
			ID:            client.ID,
			Name:          client.Name,
			ShopifyDomain: client.ShopifyDomain,
		},
		Products: products,
	}, nil
}

func (s *shopifyService) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	if req.ProductID == "" {
		return "", fmt.Errorf("%w: product id is required", ErrInvalidShopifyRequest)
	}
	// Shopify 规格 ID 为纯数字，会直接拼进购物车路径
	if req.VariantID != "" {
		if _, err := strconv.ParseUint(req.VariantID, 10, 64); err != nil {
			return "", fmt.Errorf("%w: invalid variant id %q", ErrInvalidShopifyRequest, req.VariantID)
		}
	}
	product, err := s.productRepo.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("failed to get product: %w", err)
	}
	client, err := s.getClient(ctx, product.ClientID)
	if err != nil {
		return "", err
	}
	if client.Domain() == "" {
		return "", ErrShopifyNotConnected
	}

	variantID := req.VariantID
	if variantID == "" {
		variantID = product.FirstVariantID()
	}
	if variantID == "" && req.FetchMissing && client.ShopifyToken != "" {
		variantID, err = s.fetchFirstVariant(ctx, client, product.ShopifyID)
		if err != nil {
			return "", err
		}
	}
	if variantID == "" {
		return "", ErrVariantUnresolved
	}
	return shopify.CheckoutURL(client.Domain(), variantID, req.Quantity), nil
}

func (s *shopifyService) fetchFirstVariant(ctx context.Context, client *model.Client, shopifyID string) (string, error) {
	accessToken, err := s.tokens.Open(client.ShopifyToken)
	if err != nil {
		return "", fmt.Errorf("failed to open access token: %w", err)
	}
	remote, err := s.api.FetchProduct(ctx, client.Domain(), accessToken, shopifyID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch product: %w", err)
	}
	if len(remote.Variants) == 0 {
		return "", nil
	}
	return strconv.FormatInt(remote.Variants[0].ID, 10), nil
}

func (s *shopifyService) accessToken(client *model.Client) (string, error) {
	if !client.ShopifyConnected() {
		return "", ErrShopifyNotConnected
	}
	accessToken, err := s.tokens.Open(client.ShopifyToken)
	if err != nil {
		return "", fmt.Errorf("failed to open access token: %w", err)
	}
	return accessToken, nil
}

func (s *shopifyService) getClient(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}
