package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"solace-backend/internal/assessment"
	"solace-backend/internal/clients/elevenlabs"
	"solace-backend/internal/clients/groq"
	"solace-backend/internal/clients/hfinference"
	"solace-backend/internal/clients/imentiv"
	"solace-backend/internal/config"
	"solace-backend/internal/handler"
	"solace-backend/internal/service"
	"solace-backend/internal/storage"
	"solace-backend/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// .env 里的密钥先进环境，配置加载时回退读取
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 初始化存储
	var store storage.Storage
	if cfg.Storage.Type == "memory" {
		store = storage.NewMemoryStorage()
	} else {
		store = storage.NewDiskStorage(cfg.Storage.DataDir, cfg.Storage.CacheSize)
	}
	if err := store.Init(); err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer store.Close()

	// 外部依赖客户端
	groqClient := groq.New(cfg.Groq, cfg.Assessment)
	moodClient := imentiv.New(cfg.Imentiv)
	classifierClient := hfinference.New(cfg.Classifier)
	speechClient := elevenlabs.New(cfg.ElevenLabs)

	// 初始化服务
	chatService := service.NewChatService(
		store,
		groqClient,
		groqClient,
		moodClient,
		classifierClient,
		speechClient,
		cfg.Triage,
		cfg.Session,
	)
	chatService.StartCleanup()
	defer chatService.StopCleanup()

	assessmentService := service.NewAssessmentService(assessment.NewEngine(groqClient), store)

	// 初始化处理器
	chatHandler := handler.NewChatHandler(chatService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)

	// 创建路由
	router := setupRouter(cfg, chatHandler, assessmentHandler)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器
	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待信号优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	if err := server.Close(); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler, assessmentHandler *handler.AssessmentHandler) *gin.Engine {
	// 设置gin模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS配置
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// API路由
	api := router.Group("/api")
	{
		chat := api.Group("/chat")
		{
			chat.POST("", chatHandler.Chat)
			chat.POST("/session/list", chatHandler.GetSessionList)
			chat.GET("/session/del/:session_id", chatHandler.DeleteSession)
			chat.GET("/session/:session_id", chatHandler.GetSession)
			chat.GET("/session/:session_id/prompts", chatHandler.ExportPrompts)
		}

		api.POST("/analyze", assessmentHandler.Analyze)
		api.GET("/assessment-files", assessmentHandler.ListResults)
		api.GET("/assessment-data", assessmentHandler.GetResult)
		api.GET("/therapy-sessions", assessmentHandler.ListTranscripts)
		api.GET("/therapy-session", assessmentHandler.GetTranscript)
		api.POST("/run-assessment", assessmentHandler.RunLevel2)
	}

	return router
}
