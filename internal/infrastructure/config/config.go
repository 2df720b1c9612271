package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Units     UnitsConfig     `mapstructure:"units"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	DedupWindow  time.Duration `mapstructure:"dedup_window"`
}

// SourcesConfig 外部資料來源配置。
// 憑證缺失不是錯誤：該來源會被 fallback 鏈跳過。
type SourcesConfig struct {
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	Edamam      EdamamConfig      `mapstructure:"edamam"`
	Search      SearchConfig      `mapstructure:"search"`
	Fetcher     FetcherConfig     `mapstructure:"fetcher"`
}

// SpoonacularConfig 結構化食譜 API 配置
type SpoonacularConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EdamamConfig 營養分析 API 配置
type EdamamConfig struct {
	AppID   string        `mapstructure:"app_id"`
	AppKey  string        `mapstructure:"app_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig 網頁搜尋來源配置
type SearchConfig struct {
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// FetcherConfig 頁面抓取配置
type FetcherConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxSize      int           `mapstructure:"max_size"`
	RecipeTTL    time.Duration `mapstructure:"recipe_ttl"`
	NutritionTTL time.Duration `mapstructure:"nutrition_ttl"`
	RedisAddr    string        `mapstructure:"redis_addr"`
	RedisEnabled bool          `mapstructure:"redis_enabled"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// UnitsConfig 單位換算配置。密度表是啟發式參數，允許用 YAML 覆蓋。
type UnitsConfig struct {
	DensityFile string `mapstructure:"density_file"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在不視為錯誤）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("sources.spoonacular.api_key", "SPOONACULAR_API_KEY")
	viper.BindEnv("sources.edamam.app_id", "EDAMAM_APP_ID")
	viper.BindEnv("sources.edamam.app_key", "EDAMAM_APP_KEY")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("cache.redis_enabled", "REDIS_ENABLED")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("units.density_file", "DENSITY_FILE")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "smart-food-waste")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.dedup_window", "1s")

	// 來源設定：逾時短而固定，fallback 鏈本身就是重試策略
	viper.SetDefault("sources.spoonacular.timeout", "3s")
	viper.SetDefault("sources.edamam.timeout", "15s")
	viper.SetDefault("sources.search.max_results", 5)
	viper.SetDefault("sources.search.timeout", "6s")
	viper.SetDefault("sources.fetcher.timeout", "10s")
	viper.SetDefault("sources.fetcher.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.recipe_ttl", "24h")
	viper.SetDefault("cache.nutrition_ttl", "720h") // 30 天
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.redis_enabled", false)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.RecipeTTL <= 0 {
			return fmt.Errorf("invalid recipe cache ttl")
		}
		if config.Cache.NutritionTTL <= 0 {
			return fmt.Errorf("invalid nutrition cache ttl")
		}
	}

	// 驗證來源設定
	if config.Sources.Search.MaxResults <= 0 {
		return fmt.Errorf("invalid search max results")
	}

	return nil
}
