package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dishHandler "github.com/ItsYanz22/Smart-Food-Waste/internal/api/handlers/dish"
	groceryHandler "github.com/ItsYanz22/Smart-Food-Waste/internal/api/handlers/grocery"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/api/handlers/health"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/api/middleware"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/cache"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/nutrition"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/recipe"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/source"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

const (
	// 整條來源回退鏈最長 60 秒（各來源 timeout 總和再留餘裕）
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)，輸入只有菜名與人數
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 初始化管線組件
	converter := units.NewConverter(cfg.Units.DensityFile)
	estimator := nutrition.NewEstimator(cfg, cacheManager, converter)
	resolver := recipe.NewResolver(
		cfg,
		cacheManager,
		source.NewSpoonacularSource(cfg),
		source.NewDuckDuckGoSearch(cfg),
		source.NewHTTPFetcher(cfg),
		estimator,
	)

	common.LogInfo("Pipeline services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("spoonacular_configured", cfg.Sources.Spoonacular.APIKey != ""),
		zap.Bool("edamam_configured", cfg.Sources.Edamam.AppID != ""),
		zap.Duration("timeout", timeoutDuration),
	)

	// 全局中間件：請求超時與配置注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cacheManager))
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg))
	{
		dishGroup := api.Group("/dish")
		{
			// 菜名 → 結構化食譜
			dishGroup.POST("/search", dishHandler.NewHandler(resolver).HandleSearch)
		}

		groceryGroup := api.Group("/grocery")
		{
			// 菜名 + 家庭人數 → 購物清單
			groceryGroup.POST("/generate", groceryHandler.NewHandler(resolver).HandleGenerate)
		}
	}

	common.LogInfo("Router setup completed")
	return router, nil
}
