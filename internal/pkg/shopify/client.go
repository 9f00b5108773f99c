package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"
	"k8s.io/klog/v2"
)

const (
	DefaultAPIVersion = "2024-01"
	DefaultScopes     = "read_products,read_content,read_themes"
	DefaultPageSize   = 50

	tokenHeader = "X-Shopify-Access-Token"
)

// Config Shopify 应用凭据
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	APIVersion   string
	Scopes       string // 逗号分隔
}

// Client Shopify OAuth 与 Admin REST API 客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
	shopURL    func(shop string) string
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient 替换底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithShopURL 自定义店铺根地址，测试时指向本地服务
func WithShopURL(fn func(shop string) string) Option {
	return func(c *Client) {
		c.shopURL = fn
	}
}

// NewClient 创建客户端
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Scopes == "" {
		cfg.Scopes = DefaultScopes
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = 30 * time.Second

	c := &Client{
		cfg:        cfg,
		httpClient: hc,
		shopURL: func(shop string) string {
			return "https://" + shop
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured 是否具备发起 OAuth 的凭据
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

func (c *Client) oauthConfig(shop string) *oauth2.Config {
	base := c.shopURL(shop)
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURI,
		// Shopify 要求逗号分隔的 scope，作为单个元素传入避免被空格拼接
		Scopes: []string{c.cfg.Scopes},
		Endpoint: oauth2.Endpoint{
			AuthURL:   base + "/admin/oauth/authorize",
			TokenURL:  base + "/admin/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthURL 生成授权跳转地址，shop 需已规范化
func (c *Client) AuthURL(shop, state string) string {
	return c.oauthConfig(shop).AuthCodeURL(state)
}

// Exchange 用授权码换取永久 access token
func (c *Client) Exchange(ctx context.Context, shop, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauthConfig(shop).Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code for token: %w", err)
	}
	return token.AccessToken, nil
}

// FetchProducts 拉取在售商品（单页）
func (c *Client) FetchProducts(ctx context.Context, shop, accessToken string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("status", "active")

	var resp productsResponse
	if err := c.get(ctx, shop, accessToken, "products.json?"+query.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	klog.V(6).Infof("[Shopify] 拉取商品完成: shop=%s, count=%d", shop, len(resp.Products))
	return resp.Products, nil
}

// FetchProduct 拉取单个商品
func (c *Client) FetchProduct(ctx context.Context, shop, accessToken, productID string) (*Product, error) {
	var resp productResponse
	if err := c.get(ctx, shop, accessToken, "products/"+url.PathEscape(productID)+".json", &resp); err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	return &resp.Product, nil
}

// FetchShop 拉取店铺信息，用于确认授权可用
func (c *Client) FetchShop(ctx context.Context, shop, accessToken string) (*Shop, error) {
	var resp shopResponse
	if err := c.get(ctx, shop, accessToken, "shop.json", &resp); err != nil {
		return nil, fmt.Errorf("fetch shop info: %w", err)
	}
	return &resp.Shop, nil
}

// APIError Admin API 非 2xx 响应
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify api status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) get(ctx context.Context, shop, accessToken, path string, out any) error {
	endpoint := fmt.Sprintf("%s/admin/api/%s/%s", c.shopURL(shop), c.cfg.APIVersion, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set(tokenHeader, accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
