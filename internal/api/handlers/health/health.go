package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/cache"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(cacheManager *cache.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, exists := c.Get("config")
		if !exists {
			common.LogError("Configuration not found in context")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Configuration not found",
			})
			return
		}
		appConfig, ok := cfg.(*config.Config)
		if !ok {
			common.LogError("Invalid configuration type in context")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid configuration type",
			})
			return
		}

		// 獲取運行時信息
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   appConfig.App.Version,
			Runtime: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc":       m.Alloc,
					"total_alloc": m.TotalAlloc,
					"sys":         m.Sys,
					"num_gc":      m.NumGC,
				},
			},
			Cache: cacheManager.GetStats(),
		}

		common.LogInfo("Health check request",
			zap.String("client_ip", c.ClientIP()),
			zap.String("path", c.Request.URL.Path),
		)

		c.JSON(http.StatusOK, response)
	}
}

// ReadinessCheck 就緒檢查處理器
func ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
