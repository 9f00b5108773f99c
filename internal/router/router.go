package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/weibaohui/landingkit/config"
	"github.com/weibaohui/landingkit/internal/handler"
)

// Handlers 路由依赖的全部 Handler
type Handlers struct {
	Client   *handler.ClientHandler
	Template *handler.TemplateHandler
	Project  *handler.ProjectHandler
	Shopify  *handler.ShopifyHandler
	Copy     *handler.CopyHandler
	Page     *handler.PageHandler
}

func Setup(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.DashboardURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		clients := api.Group("/clients")
		{
			clients.GET("", h.Client.List)
			clients.POST("", h.Client.Create)
			clients.GET("/:id", h.Client.Get)
			clients.PUT("/:id", h.Client.Update)
			clients.DELETE("/:id", h.Client.Delete)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", h.Template.List)
			templates.POST("", h.Template.Create)
			templates.POST("/seed", h.Template.Seed)
			templates.GET("/:id", h.Template.Get)
			templates.PUT("/:id", h.Template.Update)
			templates.DELETE("/:id", h.Template.Delete)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.POST("", h.Project.Create)
			projects.GET("/:id", h.Project.Get)
			projects.PUT("/:id", h.Project.Update)
			projects.DELETE("/:id", h.Project.Delete)
			projects.GET("/:id/editor", h.Project.Editor)
			projects.GET("/:id/preview", h.Project.Preview)
			projects.GET("/:id/variants", h.Project.Variants)
		}

		shopify := api.Group("/shopify")
		{
			shopify.GET("/connect", h.Shopify.Connect)
			shopify.GET("/callback", h.Shopify.Callback)
			shopify.POST("/sync", h.Shopify.Sync)
			shopify.GET("/products", h.Shopify.Products)
			shopify.GET("/checkout", h.Shopify.CheckoutRedirect)
			shopify.POST("/checkout", h.Shopify.Checkout)
		}

		api.POST("/ai/generate", h.Copy.Generate)
	}

	// 公开落地页
	pages := r.Group("/p")
	pages.Use(gzip.Gzip(gzip.DefaultCompression))
	pages.GET("/:slug", h.Page.Get)

	return r
}
