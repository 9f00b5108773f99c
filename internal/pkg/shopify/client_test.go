package shopify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		RedirectURI:  "https://pages.example.com/api/shopify/callback",
	},
		WithShopURL(func(string) string { return server.URL }),
		WithHTTPClient(server.Client()),
	)
}

func TestAuthURL(t *testing.T) {
	c := NewClient(Config{ClientID: "app-id", ClientSecret: "s", RedirectURI: "https://pages.example.com/cb"})

	raw := c.AuthURL("demo.myshopify.com", "state-1")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "demo.myshopify.com", u.Host)
	assert.Equal(t, "/admin/oauth/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "app-id", q.Get("client_id"))
	assert.Equal(t, DefaultScopes, q.Get("scope"))
	assert.Equal(t, "https://pages.example.com/cb", q.Get("redirect_uri"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.True(t, c.Configured())
	assert.False(t, NewClient(Config{ClientID: "only-id"}).Configured())
}

func TestExchange(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/oauth/access_token" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "app-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"shpat_abc","scope":"read_products"}`))
	}))

	token, err := c.Exchange(context.Background(), "demo.myshopify.com", "the-code")
	require.NoError(t, err)
	assert.Equal(t, "shpat_abc", token)
}

func TestExchangeFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_request"}`))
	}))

	_, err := c.Exchange(context.Background(), "demo.myshopify.com", "bad")
	assert.Error(t, err)
}

func TestFetchProductsAndShop(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2024-01/products.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shpat_abc", r.Header.Get(tokenHeader))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		w.Write([]byte(`{"products":[{"id":1,"title":"Wallet","variants":[{"id":11,"price":"59.00"}],"images":[]}]}`))
	})
	mux.HandleFunc("/admin/api/2024-01/products/1.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"product":{"id":1,"title":"Wallet","variants":[{"id":11,"price":"59.00"}]}}`))
	})
	mux.HandleFunc("/admin/api/2024-01/shop.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"shop":{"id":9,"name":"Demo Store","myshopify_domain":"demo.myshopify.com"}}`))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	products, err := c.FetchProducts(ctx, "demo.myshopify.com", "shpat_abc", 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(11), products[0].Variants[0].ID)

	product, err := c.FetchProduct(ctx, "demo.myshopify.com", "shpat_abc", "1")
	require.NoError(t, err)
	assert.Equal(t, "Wallet", product.Title)

	shop, err := c.FetchShop(ctx, "demo.myshopify.com", "shpat_abc")
	require.NoError(t, err)
	assert.Equal(t, "Demo Store", shop.Name)
}

func TestFetchProductsAPIError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":"[API] Invalid API key or access token"}`))
	}))

	_, err := c.FetchProducts(context.Background(), "demo.myshopify.com", "bad", 10)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
