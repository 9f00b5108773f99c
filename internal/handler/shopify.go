package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weibaohui/landingkit/internal/service"
)

// ShopifyHandler 店铺授权、商品同步与结账
type ShopifyHandler struct {
	service service.ShopifyService
}

func NewShopifyHandler(service service.ShopifyService) *ShopifyHandler {
	return &ShopifyHandler{service: service}
}

// Connect GET /shopify/connect?clientId=&shop= 跳转到 Shopify 授权页
func (h *ShopifyHandler) Connect(c *gin.Context) {
	authURL, err := h.service.Connect(c.Request.Context(), c.Query("clientId"), c.Query("shop"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// Callback 授权回调，结果通过重定向到 dashboard 体现
func (h *ShopifyHandler) Callback(c *gin.Context) {
	target := h.service.Callback(c.Request.Context(), c.Query("code"), c.Query("state"), c.Query("shop"))
	c.Redirect(http.StatusFound, target)
}

type syncRequest struct {
	ClientID string `json:"client_id"`
}

func (h *ShopifyHandler) Sync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Sync(c.Request.Context(), req.ClientID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *ShopifyHandler) Products(c *gin.Context) {
	result, err := h.service.Products(c.Request.Context(), c.Query("clientId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// CheckoutRedirect GET 形式直接跳转到购物车，缺少规格时回源 Shopify
func (h *ShopifyHandler) CheckoutRedirect(c *gin.Context) {
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return
	}

	checkoutURL, err := h.service.Checkout(c.Request.Context(), service.CheckoutRequest{
		ProductID:    c.Query("productId"),
		VariantID:    c.Query("variantId"),
		Quantity:     quantity,
		FetchMissing: true,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, checkoutURL)
}

// Checkout POST 形式返回链接
func (h *ShopifyHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.FetchMissing = false

	checkoutURL, err := h.service.Checkout(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"checkout_url": checkoutURL}})
}
