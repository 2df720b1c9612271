package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// Manager 緩存管理器。記憶體 map 為主存，Redis 為盡力而為的
// 寫透層：Redis 故障只記日誌，不影響讀寫結果。
// 過期條目僅在讀取時惰性淘汰，沒有背景清理協程。
type Manager struct {
	config *config.Config
	mu     sync.Mutex
	store  map[string]entry
	stats  stats
	rdb    *redis.Client
}

// entry 緩存條目
type entry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// stats 緩存統計
type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建新的緩存管理器
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]entry),
	}

	if cfg.Cache.RedisEnabled && cfg.Cache.RedisAddr != "" {
		m.rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.Cache.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("食譜存活時間", cfg.Cache.RecipeTTL),
		zap.Duration("營養存活時間", cfg.Cache.NutritionTTL),
		zap.Bool("redis", m.rdb != nil),
	)

	return m
}

// Key 生成帶命名空間的緩存鍵，名稱統一小寫去空白
func Key(namespace string, parts ...string) string {
	joined := strings.ToLower(strings.TrimSpace(strings.Join(parts, "|")))
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("%s:%s", namespace, hex.EncodeToString(hash[:16]))
}

// Get 獲取緩存值。過期條目在此處淘汰
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	if m == nil {
		return "", common.ErrCacheDisabled
	}

	m.mu.Lock()

	if e, exists := m.store[key]; exists {
		if time.Now().After(e.expiresAt) {
			delete(m.store, key)
			m.stats.evictions++
			m.mu.Unlock()
			common.LogCacheMiss("memory", key)
			return m.getRedis(ctx, key)
		}

		e.lastAccess = time.Now()
		e.accessCount++
		m.store[key] = e
		m.stats.hits++
		m.mu.Unlock()

		common.LogCacheHit("memory", key)
		return e.value, nil
	}

	m.stats.misses++
	m.mu.Unlock()
	common.LogCacheMiss("memory", key)

	return m.getRedis(ctx, key)
}

// Set 設置緩存值，ttl 由呼叫端依資料種類決定
func (m *Manager) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m == nil {
		return common.ErrCacheDisabled
	}

	m.mu.Lock()

	if len(m.store) >= m.config.Cache.MaxSize {
		m.evictExpired()
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRU()
		}
	}

	now := time.Now()
	m.store[key] = entry{
		value:      value,
		expiresAt:  now.Add(ttl),
		createdAt:  now,
		lastAccess: now,
	}
	m.mu.Unlock()

	m.setRedis(ctx, key, value, ttl)
	return nil
}

// getRedis 記憶體未命中時回源 Redis，失敗一律視同未命中
func (m *Manager) getRedis(ctx context.Context, key string) (string, error) {
	if m.rdb == nil {
		return "", common.ErrCacheMiss
	}

	value, err := m.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("Redis 讀取失敗", zap.String("鍵", key), zap.Error(err))
		}
		return "", common.ErrCacheMiss
	}

	common.LogCacheHit("redis", key)
	return value, nil
}

// setRedis 寫透 Redis，失敗只記日誌
func (m *Manager) setRedis(ctx context.Context, key, value string, ttl time.Duration) {
	if m.rdb == nil {
		return
	}
	if err := m.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		common.LogWarn("Redis 寫入失敗", zap.String("鍵", key), zap.Error(err))
	}
}

// evictExpired 淘汰已過期的條目，呼叫端須持鎖
func (m *Manager) evictExpired() {
	now := time.Now()
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
			m.stats.evictions++
		}
	}
}

// evictLRU 淘汰最少訪問的條目，呼叫端須持鎖
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, e := range m.store {
		if oldestKey == "" ||
			e.accessCount < lowestAccessCount ||
			(e.accessCount == lowestAccessCount && e.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = e.lastAccess
			lowestAccessCount = e.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogInfo("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"enabled":   true,
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉緩存管理器
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	hits, misses := m.stats.hits, m.stats.misses
	m.store = make(map[string]entry)
	m.mu.Unlock()

	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", hits),
		zap.Int64("未命中次數", misses),
	)

	if m.rdb != nil {
		return m.rdb.Close()
	}
	return nil
}
