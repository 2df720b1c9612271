package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

func newTestManager(t *testing.T, maxSize int) *Manager {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = maxSize

	m := NewManager(cfg)
	if m == nil {
		t.Fatal("manager should be enabled")
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManagerRoundtrip(t *testing.T) {
	m := newTestManager(t, 16)
	ctx := context.Background()

	if err := m.Set(ctx, "k1", "v1", time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := m.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v1" {
		t.Errorf("Get = %q, want %q", got, "v1")
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("missing key error = %v, want ErrCacheMiss", err)
	}
}

func TestManagerDisabled(t *testing.T) {
	cfg := &config.Config{}
	if m := NewManager(cfg); m != nil {
		t.Fatal("manager should be nil when disabled")
	}

	// nil 管理器可安全呼叫
	var m *Manager
	if _, err := m.Get(context.Background(), "k"); !errors.Is(err, common.ErrCacheDisabled) {
		t.Errorf("nil Get error = %v, want ErrCacheDisabled", err)
	}
	if err := m.Set(context.Background(), "k", "v", time.Hour); !errors.Is(err, common.ErrCacheDisabled) {
		t.Errorf("nil Set error = %v, want ErrCacheDisabled", err)
	}
	if stats := m.GetStats(); stats["enabled"] != false {
		t.Errorf("nil GetStats = %v", stats)
	}
}

func TestManagerExpiry(t *testing.T) {
	m := newTestManager(t, 16)
	ctx := context.Background()

	if err := m.Set(ctx, "short", "v", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	// 過期條目在讀取時惰性淘汰
	if _, err := m.Get(ctx, "short"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("expired key error = %v, want ErrCacheMiss", err)
	}

	stats := m.GetStats()
	if stats["evictions"].(int64) != 1 {
		t.Errorf("evictions = %v, want 1", stats["evictions"])
	}
	if stats["size"].(int) != 0 {
		t.Errorf("size = %v, want 0", stats["size"])
	}
}

func TestManagerLRUEviction(t *testing.T) {
	m := newTestManager(t, 2)
	ctx := context.Background()

	if err := m.Set(ctx, "a", "1", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(ctx, "b", "2", time.Hour); err != nil {
		t.Fatal(err)
	}

	// 訪問 a，讓 b 成為淘汰候選
	if _, err := m.Get(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	if err := m.Set(ctx, "c", "3", time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Get(ctx, "b"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("b should have been evicted, got err = %v", err)
	}
	if _, err := m.Get(ctx, "a"); err != nil {
		t.Errorf("a should survive eviction, got err = %v", err)
	}
	if _, err := m.Get(ctx, "c"); err != nil {
		t.Errorf("c should be present, got err = %v", err)
	}
}

func TestManagerRedisUnavailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 16
	cfg.Cache.RedisEnabled = true
	cfg.Cache.RedisAddr = "127.0.0.1:1" // 沒有服務在聽

	m := NewManager(cfg)
	if m == nil {
		t.Fatal("manager should be enabled")
	}
	defer m.Close()
	ctx := context.Background()

	// Redis 掛掉只記日誌，記憶體讀寫照常
	if err := m.Set(ctx, "k", "v", time.Hour); err != nil {
		t.Fatalf("Set should not fail when redis is down: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get should not fail when redis is down: %v", err)
	}
	if got != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	// 未命中也只是 cache miss，不是 redis 錯誤
	if _, err := m.Get(ctx, "absent"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("miss with redis down = %v, want ErrCacheMiss", err)
	}
}

func TestManagerStats(t *testing.T) {
	m := newTestManager(t, 16)
	ctx := context.Background()

	_ = m.Set(ctx, "k", "v", time.Hour)
	_, _ = m.Get(ctx, "k")      // hit
	_, _ = m.Get(ctx, "absent") // miss

	stats := m.GetStats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Errorf("stats = %v", stats)
	}
	if stats["hit_ratio"].(float64) != 0.5 {
		t.Errorf("hit_ratio = %v, want 0.5", stats["hit_ratio"])
	}
}

func TestKey(t *testing.T) {
	k1 := Key("recipe", "Biryani")
	k2 := Key("recipe", "  biryani ")
	k3 := Key("recipe", "pulao")
	k4 := Key("nutrition", "biryani")

	if !strings.HasPrefix(k1, "recipe:") {
		t.Errorf("key missing namespace prefix: %q", k1)
	}
	// 名稱統一小寫去空白後等價
	if k1 != k2 {
		t.Errorf("normalized keys differ: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("distinct names should yield distinct keys")
	}
	if k1 == k4 {
		t.Error("namespaces should partition the key space")
	}
}
