package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bento-planner/internal/api/handlers/health"
	planHandler "bento-planner/internal/api/handlers/plan"
	"bento-planner/internal/api/middleware"
	"bento-planner/internal/core/ai/cache"
	"bento-planner/internal/core/ai/openrouter"
	"bento-planner/internal/core/ai/service"
	"bento-planner/internal/core/corpus"
	"bento-planner/internal/core/planner"
	"bento-planner/internal/infrastructure/config"
	"bento-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，獻立與買物請求都是小 JSON
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制與去重
	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))

	// 載入食譜語料庫（啟動時一次，之後只讀）
	recipeCorpus, err := corpus.Load(cfg.Planner.RecipesPath)
	if err != nil {
		common.LogError("Failed to load recipe corpus", zap.Error(err))
		return nil, fmt.Errorf("failed to load recipe corpus: %w", err)
	}

	// 初始化服務
	aiProvider := openrouter.NewClient(cfg)
	aiService := service.NewService(cfg, aiProvider, store)

	basicSelector := planner.NewBasicSelector(recipeCorpus)
	proPlanner := planner.NewProPlanner(aiService, recipeCorpus)

	common.LogInfo("Planner services initialized",
		zap.Int("corpus_size", recipeCorpus.Len()),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error":   common.ErrCodeGatewayTimeout,
				"message": "Request timeout",
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		h := planHandler.NewHandler(basicSelector, proPlanner, recipeCorpus)

		planGroup := api.Group("/plan")
		{
			// 本地隨機抽選
			planGroup.POST("/basic", h.HandleBasicPlan)

			// 外部模型生成，模型呼叫昂貴所以多掛一層限流
			pro := planGroup.Group("")
			if cfg.RateLimit.Enabled {
				pro.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
			}
			pro.POST("/pro", h.HandleProPlan)
		}

		// 買物清單統計
		api.POST("/shopping", h.HandleShopping)

		// 食譜詳情查找
		api.GET("/recipe", h.HandleRecipeLookup)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
