package main

import (
	"context"
	"flag"
	"log"

	"k8s.io/klog/v2"

	"github.com/weibaohui/landingkit/config"
	"github.com/weibaohui/landingkit/internal/eventbus"
	"github.com/weibaohui/landingkit/internal/handler"
	"github.com/weibaohui/landingkit/internal/pkg/database"
	"github.com/weibaohui/landingkit/internal/pkg/llm"
	"github.com/weibaohui/landingkit/internal/pkg/render"
	"github.com/weibaohui/landingkit/internal/pkg/secret"
	"github.com/weibaohui/landingkit/internal/pkg/shopify"
	"github.com/weibaohui/landingkit/internal/repository"
	"github.com/weibaohui/landingkit/internal/router"
	"github.com/weibaohui/landingkit/internal/service"
	"github.com/weibaohui/landingkit/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	clientRepo := repository.NewClientRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	productRepo := repository.NewProductRepository(db)

	// 项目事件
	projectBus := eventbus.NewProjectEventBus()
	subscriber.NewProjectEventSubscriber(variantRepo).Register(projectBus)

	appSecret := cfg.App.Secret
	if appSecret == "" {
		klog.Warningf("app.secret 未配置，使用 Shopify client secret 签名 state 与加密 token")
		appSecret = cfg.Shopify.ClientSecret
	}
	shopifyClient := shopify.NewClient(shopify.Config{
		ClientID:     cfg.Shopify.ClientID,
		ClientSecret: cfg.Shopify.ClientSecret,
		RedirectURI:  cfg.Shopify.RedirectURI,
		APIVersion:   cfg.Shopify.APIVersion,
		Scopes:       cfg.Shopify.Scopes,
	})

	// 未配置 LLM 时文案接口返回 503
	var completer service.Completer
	if cfg.LLMConfigured() {
		chatModel, err := llm.NewChatModel(context.Background(), cfg)
		if err != nil {
			klog.Errorf("初始化 LLM 失败，AI 文案不可用: %v", err)
		} else {
			completer = chatModel
		}
	}

	// 初始化 Service
	pageService := service.NewPageService(projectRepo, productRepo, render.NewRenderer(render.DefaultRegistry()))
	clientService := service.NewClientService(clientRepo, projectRepo, productRepo)
	templateService := service.NewTemplateService(templateRepo)
	projectService := service.NewProjectService(projectRepo, clientRepo, templateRepo, variantRepo, pageService, projectBus)
	shopifyService := service.NewShopifyService(
		shopifyClient,
		clientRepo,
		productRepo,
		secret.NewStateSigner(appSecret, secret.DefaultStateTTL),
		secret.NewBox(appSecret),
		cfg.App.DashboardURL,
	)
	copywriterService := service.NewCopywriterService(completer, clientRepo, projectRepo)

	// 设置路由
	r := router.Setup(cfg, router.Handlers{
		Client:   handler.NewClientHandler(clientService),
		Template: handler.NewTemplateHandler(templateService),
		Project:  handler.NewProjectHandler(projectService),
		Shopify:  handler.NewShopifyHandler(shopifyService),
		Copy:     handler.NewCopyHandler(copywriterService),
		Page:     handler.NewPageHandler(pageService),
	})

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
