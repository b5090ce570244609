package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bloomlab/bloom-indicator-backend/api"
	"github.com/bloomlab/bloom-indicator-backend/internal/classifier"
	"github.com/bloomlab/bloom-indicator-backend/internal/consensus"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/config"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/health"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/shutdown"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/startup"
	"github.com/bloomlab/bloom-indicator-backend/pkg/lifecycle"
	"github.com/bloomlab/bloom-indicator-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	// 2. 生成本进程的HMAC密钥，初始化存储连接
	token.GenerateSecretKey()
	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 3. 阻塞式获取初始Redis Run ID
	health.InitializeRunID()

	// 4. 执行显式的迁移与预热流程，必须在引擎构造之前完成
	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 5. 加载离线训练的分类模型
	model, err := classifier.LoadModel(cfg.Resources.ClassifierModelPath)
	if err != nil {
		panic(fmt.Sprintf("无法加载分类模型: %v", err))
	}

	// 6. 构造共识引擎：显式注入数据库句柄和分类器
	engine := consensus.NewEngine(database.DB, model, cfg.Vote.ApprovalThreshold, true)
	handler := consensus.NewHandler(engine)

	// 7. 执行一次启动后健康检查，并异步启动持续的健康检查器
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	manager := lifecycle.NewManager()
	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	// 8. 创建Gin引擎并配置CORS
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, handler, cfg)

	// 9. 启动服务器并等待停机信号
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
