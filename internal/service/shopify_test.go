package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/secret"
	"github.com/weibaohui/landingkit/internal/pkg/shopify"
	"gorm.io/datatypes"
)

const testSecret = "test-secret"

type shopifyFixture struct {
	api         *mockShopifyAPI
	clientRepo  *mockClientRepo
	productRepo *mockProductRepo
	states      *secret.StateSigner
	tokens      *secret.Box
	svc         ShopifyService
}

func newShopifyFixture(t *testing.T) *shopifyFixture {
	t.Helper()
	f := &shopifyFixture{
		api: &mockShopifyAPI{},
		clientRepo: &mockClientRepo{
			GetFunc: func(id string) (*model.Client, error) {
				return &model.Client{ID: id, Name: "Acme"}, nil
			},
		},
		productRepo: &mockProductRepo{},
		states:      secret.NewStateSigner(testSecret, 0),
		tokens:      secret.NewBox(testSecret),
	}
	f.svc = NewShopifyService(f.api, f.clientRepo, f.productRepo, f.states, f.tokens, "https://dash.example.com/")
	return f
}

func (f *shopifyFixture) connectedClient(t *testing.T) *model.Client {
	t.Helper()
	sealed, err := f.tokens.Seal("shpat_live")
	require.NoError(t, err)
	return &model.Client{ID: "c1", Name: "Acme", ShopifyDomain: strPtr("acme.myshopify.com"), ShopifyToken: sealed}
}

func TestShopifyConnect(t *testing.T) {
	f := newShopifyFixture(t)

	authURL, err := f.svc.Connect(context.Background(), "c1", " Acme ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(authURL, "https://acme.myshopify.com/admin/oauth/authorize"))

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	claims, err := f.states.Verify(parsed.Query().Get("state"))
	require.NoError(t, err)
	assert.Equal(t, secret.State{ClientID: "c1", Shop: "acme.myshopify.com"}, claims)
}

func TestShopifyConnectErrors(t *testing.T) {
	f := newShopifyFixture(t)
	ctx := context.Background()

	_, err := f.svc.Connect(ctx, "", "acme")
	assert.ErrorIs(t, err, ErrInvalidShopifyRequest)
	_, err = f.svc.Connect(ctx, "c1", "  ")
	assert.ErrorIs(t, err, ErrInvalidShopifyRequest)
	for _, shop := range []string{"evil.example?.myshopify.com", "evil.example/x", "user@evil.example", "evil.example:8443"} {
		_, err = f.svc.Connect(ctx, "c1", shop)
		assert.ErrorIs(t, err, ErrInvalidShopifyRequest, "shop %q", shop)
	}

	f.api.NotConfigured = true
	_, err = f.svc.Connect(ctx, "c1", "acme")
	assert.ErrorIs(t, err, ErrShopifyNotConfigured)

	f.clientRepo.GetFunc = nil
	_, err = f.svc.Connect(ctx, "missing", "acme")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestShopifyCallbackConnects(t *testing.T) {
	f := newShopifyFixture(t)
	var saved *model.Client
	f.clientRepo.SaveFunc = func(client *model.Client) error {
		saved = client
		return nil
	}
	f.api.ExchangeFunc = func(shop, code string) (string, error) {
		assert.Equal(t, "acme.myshopify.com", shop)
		assert.Equal(t, "auth-code", code)
		return "shpat_new", nil
	}
	state, err := f.states.Sign("c1", "acme.myshopify.com")
	require.NoError(t, err)

	target := f.svc.Callback(context.Background(), "auth-code", state, "acme.myshopify.com")
	assert.Equal(t, "https://dash.example.com/dashboard/clients/c1?shopify=connected", target)

	require.NotNil(t, saved)
	assert.Equal(t, "acme.myshopify.com", saved.Domain())
	assert.NotEqual(t, "shpat_new", saved.ShopifyToken)
	plain, err := f.tokens.Open(saved.ShopifyToken)
	require.NoError(t, err)
	assert.Equal(t, "shpat_new", plain)
}

func TestShopifyCallbackFailures(t *testing.T) {
	ctx := context.Background()
	base := "https://dash.example.com/dashboard/clients"

	t.Run("missing params", func(t *testing.T) {
		f := newShopifyFixture(t)
		assert.Equal(t, base+"?error=missing_params", f.svc.Callback(ctx, "", "state", "acme"))
	})

	t.Run("forged state", func(t *testing.T) {
		f := newShopifyFixture(t)
		forged, err := secret.NewStateSigner("other", time.Minute).Sign("c1", "acme.myshopify.com")
		require.NoError(t, err)
		assert.Equal(t, base+"?error=invalid_state", f.svc.Callback(ctx, "code", forged, "acme"))
	})

	t.Run("client not found", func(t *testing.T) {
		f := newShopifyFixture(t)
		f.clientRepo.GetFunc = nil
		state, _ := f.states.Sign("gone", "acme.myshopify.com")
		assert.Equal(t, base+"?error=client_not_found", f.svc.Callback(ctx, "code", state, "acme"))
	})

	t.Run("not configured", func(t *testing.T) {
		f := newShopifyFixture(t)
		f.api.NotConfigured = true
		state, _ := f.states.Sign("c1", "acme.myshopify.com")
		assert.Equal(t, base+"/c1?error=shopify_not_configured", f.svc.Callback(ctx, "code", state, "acme"))
	})

	t.Run("shop differs from state", func(t *testing.T) {
		f := newShopifyFixture(t)
		f.api.ExchangeFunc = func(shop, code string) (string, error) {
			t.Fatalf("exchange must not run for shop %q", shop)
			return "", nil
		}
		state, _ := f.states.Sign("c1", "acme.myshopify.com")
		for _, shop := range []string{"other", "127.0.0.1:43653?.myshopify.com", "evil.example/.myshopify.com"} {
			assert.Equal(t, base+"?error=invalid_state", f.svc.Callback(ctx, "code", state, shop), "shop %q", shop)
		}
		assert.Equal(t, 0, f.clientRepo.SaveCalled)
	})

	t.Run("exchange failure", func(t *testing.T) {
		f := newShopifyFixture(t)
		f.api.ExchangeFunc = func(shop, code string) (string, error) {
			return "", errors.New("bad code")
		}
		state, _ := f.states.Sign("c1", "acme.myshopify.com")
		assert.Equal(t, base+"?error=shopify_connection_failed", f.svc.Callback(ctx, "code", state, "acme"))
		assert.Equal(t, 0, f.clientRepo.SaveCalled)
	})
}

func TestShopifySync(t *testing.T) {
	f := newShopifyFixture(t)
	client := f.connectedClient(t)
	f.clientRepo.GetFunc = func(id string) (*model.Client, error) { return client, nil }
	f.api.FetchProductsFunc = func(shop, accessToken string, limit int) ([]shopify.Product, error) {
		assert.Equal(t, "acme.myshopify.com", shop)
		assert.Equal(t, "shpat_live", accessToken)
		assert.Equal(t, shopify.DefaultPageSize, limit)
		return []shopify.Product{
			{ID: 1, Title: "Serum", Variants: []shopify.Variant{{ID: 11, Price: "29.00"}}},
			{ID: 2, Title: "Cream"},
		}, nil
	}

	result, err := f.svc.Sync(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	require.Len(t, f.productRepo.Upserted, 2)
	for _, p := range f.productRepo.Upserted {
		assert.Equal(t, "c1", p.ClientID)
		assert.False(t, p.SyncedAt.IsZero())
	}
	assert.Equal(t, "1", result.Products[0].ShopifyID)
	assert.Equal(t, 29.0, result.Products[0].Price)
}

func TestShopifySyncRequiresConnection(t *testing.T) {
	f := newShopifyFixture(t)

	_, err := f.svc.Sync(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrShopifyNotConnected)

	_, err = f.svc.Sync(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidShopifyRequest)
}

func TestShopifyProducts(t *testing.T) {
	f := newShopifyFixture(t)
	f.productRepo.ListByClientFunc = func(clientID string) ([]model.Product, error) {
		return []model.Product{{ID: "prod-1", Title: "Serum"}}, nil
	}

	result, err := f.svc.Products(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", result.Client.Name)
	assert.Len(t, result.Products, 1)
}

func TestShopifyCheckout(t *testing.T) {
	f := newShopifyFixture(t)
	client := f.connectedClient(t)
	f.clientRepo.GetFunc = func(id string) (*model.Client, error) { return client, nil }
	variants := []model.ProductVariant{{ID: "111"}}
	f.productRepo.GetFunc = func(id string) (*model.Product, error) {
		return &model.Product{ID: id, ClientID: "c1", ShopifyID: "9", Variants: datatypes.NewJSONType(variants)}, nil
	}
	ctx := context.Background()

	checkoutURL, err := f.svc.Checkout(ctx, CheckoutRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.myshopify.com/cart/111:1", checkoutURL)

	checkoutURL, err = f.svc.Checkout(ctx, CheckoutRequest{ProductID: "prod-1", VariantID: "222", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.myshopify.com/cart/222:3", checkoutURL)

	variants = nil
	_, err = f.svc.Checkout(ctx, CheckoutRequest{ProductID: "prod-1"})
	assert.ErrorIs(t, err, ErrVariantUnresolved)

	f.api.FetchProductFunc = func(shop, accessToken, productID string) (*shopify.Product, error) {
		assert.Equal(t, "9", productID)
		assert.Equal(t, "shpat_live", accessToken)
		return &shopify.Product{Variants: []shopify.Variant{{ID: 333}}}, nil
	}
	checkoutURL, err = f.svc.Checkout(ctx, CheckoutRequest{ProductID: "prod-1", FetchMissing: true})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.myshopify.com/cart/333:1", checkoutURL)
}

func TestShopifyCheckoutErrors(t *testing.T) {
	f := newShopifyFixture(t)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, CheckoutRequest{})
	assert.ErrorIs(t, err, ErrInvalidShopifyRequest)

	_, err = f.svc.Checkout(ctx, CheckoutRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	f.productRepo.GetFunc = func(id string) (*model.Product, error) {
		return &model.Product{ID: id, ClientID: "c1"}, nil
	}
	_, err = f.svc.Checkout(ctx, CheckoutRequest{ProductID: "prod-1"})
	assert.ErrorIs(t, err, ErrShopifyNotConnected)

	for _, variant := range []string{"1/../../evil", "1?x=y", "1#frag", "-5", "abc"} {
		_, err = f.svc.Checkout(ctx, CheckoutRequest{ProductID: "prod-1", VariantID: variant})
		assert.ErrorIs(t, err, ErrInvalidShopifyRequest, "variant %q", variant)
	}
}
