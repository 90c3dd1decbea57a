package router

import (
	"time"

	"adgen-go/internal/config"
	"adgen-go/internal/handler"
	"adgen-go/internal/middleware"
	"adgen-go/internal/repository"
	"adgen-go/internal/service"
	"adgen-go/internal/utils"
	"adgen-go/pkg/imagegen"
	"adgen-go/pkg/llm"
	"adgen-go/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// registerValidators 注册自定义校验规则
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("aspect", func(fl validator.FieldLevel) bool {
			return imagegen.IsValidAspect(fl.Field().String())
		})
	}
}

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	tokenManager *utils.WorkspaceTokenManager,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	registerValidators()

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "广告创意生成系统 API",
			"version": "1.0.0",
		})
	})

	// 上传素材静态访问
	r.Static("/uploads", cfg.Upload.Dir)

	// 初始化Repository
	clientRepo := repository.NewClientRepository(db)
	brandKitRepo := repository.NewBrandKitRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	generationRepo := repository.NewGenerationRepository(db)
	batchRepo := repository.NewBatchRepository(db)

	// 初始化外部服务客户端
	imageClient := imagegen.NewClient(
		cfg.ImageAPI.APIBase,
		cfg.ImageAPI.APIKey,
		cfg.ImageAPI.Model,
		cfg.ImageAPI.GetTimeout(),
	)

	var llmClient llm.Client
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewOpenAIClient(cfg.LLM.APIBase, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			logger.WithError(err).Warn("策略模型客户端初始化失败,规划功能不可用")
		} else {
			llmClient = client
		}
	}

	llmLimiter := redis_limiter.NewRedisLimiter(redisClient, cfg.LLM.MaxConcurrent, "llm_concurrency", 5*time.Minute)

	// 初始化Service
	clientService := service.NewClientService(clientRepo)
	brandKitService := service.NewBrandKitService(brandKitRepo, generationRepo)
	templateService := service.NewTemplateService(templateRepo, generationRepo)
	assetService := service.NewAssetService(assetRepo, cfg)
	campaignService := service.NewCampaignService(generationRepo, batchRepo, imageClient, cfg.ImageAPI.DenoiseStrength, logger)
	generationService := service.NewGenerationService(generationRepo, campaignService, logger)
	strategyService := service.NewStrategyService(llmClient, brandKitRepo, llmLimiter, logger)

	// 初始化Handler
	clientHandler := handler.NewClientHandler(clientService, tokenManager, cfg)
	brandKitHandler := handler.NewBrandKitHandler(brandKitService)
	templateHandler := handler.NewTemplateHandler(templateService)
	assetHandler := handler.NewAssetHandler(assetService)
	campaignHandler := handler.NewCampaignHandler(campaignService, strategyService)
	generationHandler := handler.NewGenerationHandler(generationService)

	// API路由组
	api := r.Group("/api")
	{
		// 工作区管理(无需工作区上下文)
		api.POST("/clients", clientHandler.CreateClient)
		api.GET("/clients", clientHandler.ListClients)
		api.GET("/clients/:id", clientHandler.GetClient)
		api.PUT("/clients/:id", clientHandler.UpdateClient)
		api.POST("/clients/:id/switch", clientHandler.SwitchClient)

		// 工作区作用域路由
		scoped := api.Group("")
		scoped.Use(middleware.WorkspaceScope(cfg.Workspace.CookieName, tokenManager))
		{
			// 品牌资料
			scoped.POST("/brand_kits", brandKitHandler.CreateBrandKit)
			scoped.GET("/brand_kits", brandKitHandler.ListBrandKits)
			scoped.GET("/brand_kits/:id", brandKitHandler.GetBrandKit)
			scoped.PUT("/brand_kits/:id", brandKitHandler.UpdateBrandKit)
			scoped.DELETE("/brand_kits/:id", brandKitHandler.DeleteBrandKit)

			// 模板库
			scoped.POST("/templates", templateHandler.CreateTemplate)
			scoped.GET("/templates", templateHandler.ListTemplates)
			scoped.GET("/templates/:id", templateHandler.GetTemplate)
			scoped.PUT("/templates/:id", templateHandler.UpdateTemplate)
			scoped.DELETE("/templates/:id", templateHandler.DeleteTemplate)

			// 素材管理
			scoped.POST("/assets/upload", assetHandler.UploadAsset)
			scoped.GET("/assets", assetHandler.ListAssets)
			scoped.GET("/assets/:id", assetHandler.GetAsset)
			scoped.DELETE("/assets/:id", assetHandler.DeleteAsset)

			// 批次编排
			scoped.POST("/campaigns", campaignHandler.SubmitCampaign)
			scoped.GET("/campaigns", campaignHandler.ListBatches)
			scoped.GET("/campaigns/:id", campaignHandler.GetBatch)
			scoped.POST("/campaigns/plan", campaignHandler.PlanCampaign)

			// 生成记录
			scoped.POST("/generations", generationHandler.CreateGeneration)
			scoped.GET("/generations", generationHandler.ListGenerations)
			scoped.GET("/generations/:id", generationHandler.GetGeneration)
			scoped.PUT("/generations/:id", generationHandler.UpdateGeneration)
			scoped.POST("/generations/:id/select", generationHandler.SelectImage)
			scoped.DELETE("/generations/:id", generationHandler.DeleteGeneration)
		}
	}

	return r
}
