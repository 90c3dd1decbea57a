package main

import (
	"log"
	"os"

	"adgen-go/internal/config"
	"adgen-go/internal/models"
	"adgen-go/internal/router"
	"adgen-go/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载配置（从项目根目录读取）
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	// 初始化Redis（可选,未启用时并发限制退化为进程内限制）
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
	}

	// 初始化工作区令牌管理器
	tokenManager := utils.NewWorkspaceTokenManager(
		cfg.Workspace.SecretKey,
		cfg.Workspace.GetExpireDuration(),
	)

	// 设置路由
	r := router.SetupRouter(cfg, tokenManager, logger, db, redisClient)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if cfg.Server.ProductionMode {
		logger.Info("生产模式")
	} else {
		logger.Info("开发模式")
	}

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
