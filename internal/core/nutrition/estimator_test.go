package nutrition

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/cache"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// 緩存傳 nil：估算本身不依賴緩存可用
func newTestEstimator() *Estimator {
	return NewEstimator(&config.Config{}, nil, units.NewConverter(""))
}

func TestLookupDish(t *testing.T) {
	tests := []struct {
		dish         string
		wantCalories float64
		wantOK       bool
	}{
		{"biryani", 450, true},
		{"Biryani", 450, true},
		// 雙向子字串："chicken biryani" 命中 "biryani"
		{"chicken biryani", 450, true},
		{"butter chicken", 420, true},
		{"unknown fusion dish", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := lookupDish(tt.dish)
		if ok != tt.wantOK {
			t.Errorf("lookupDish(%q) ok = %v, want %v", tt.dish, ok, tt.wantOK)
			continue
		}
		if ok && got.Calories != tt.wantCalories {
			t.Errorf("lookupDish(%q).Calories = %v, want %v", tt.dish, got.Calories, tt.wantCalories)
		}
	}
}

func TestSumIngredients(t *testing.T) {
	e := newTestEstimator()

	// 200g 米 (130/100g) + 10g 酥油 (900/100g) = 260 + 90
	summary, ok := e.sumIngredients([]common.IngredientLine{
		{Name: "Basmati rice", Quantity: "200", Unit: "g"},
		{Name: "Ghee", Quantity: "10", Unit: "g"},
	})
	if !ok {
		t.Fatal("sumIngredients should succeed with known ingredients")
	}
	if math.Abs(summary.Calories-350) > 1e-6 {
		t.Errorf("Calories = %v, want 350", summary.Calories)
	}

	// 一個食材都查不到 → 此級失敗
	if _, ok := e.sumIngredients([]common.IngredientLine{
		{Name: "Unobtainium", Quantity: "1", Unit: "g"},
	}); ok {
		t.Error("sumIngredients should fail when nothing matches")
	}
}

func TestEstimateGrams(t *testing.T) {
	e := newTestEstimator()

	tests := []struct {
		ing  common.IngredientLine
		want float64
	}{
		{common.IngredientLine{Name: "Rice", Quantity: "200", Unit: "g"}, 200},
		{common.IngredientLine{Name: "Rice", Quantity: "1", Unit: "kg"}, 1000},
		{common.IngredientLine{Name: "Garlic", Quantity: "3", Unit: "clove"}, 9},
		{common.IngredientLine{Name: "Salt", Quantity: "1", Unit: "pinch"}, 0.3},
		{common.IngredientLine{Name: "Coriander", Quantity: "1", Unit: "handful"}, 30},
		// 計數型：已知單個重量
		{common.IngredientLine{Name: "Onion", Quantity: "2", Unit: ""}, 220},
		{common.IngredientLine{Name: "Egg", Quantity: "4", Unit: "piece"}, 200},
		// 計數型：未知食材用預設單重
		{common.IngredientLine{Name: "Dragonfruit", Quantity: "1", Unit: ""}, 100},
		// 體積走密度換算：1 cup 米 = 240ml * 0.85
		{common.IngredientLine{Name: "Rice", Quantity: "1", Unit: "cup"}, 204},
		// 英制重量歸一
		{common.IngredientLine{Name: "Chicken", Quantity: "1", Unit: "lb"}, 453.592},
	}

	for _, tt := range tests {
		got := e.estimateGrams(tt.ing)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("estimateGrams(%+v) = %v, want %v", tt.ing, got, tt.want)
		}
	}
}

func TestDefaultFor(t *testing.T) {
	tests := []struct {
		dish         string
		wantCalories float64
	}{
		{"mystery dessert", 280},
		{"garden salad bowl", 150},
		{"grilled pork chop", 320},
		{"hearty vegetable stew", 200},
		{"something unrecognizable", 250},
	}
	for _, tt := range tests {
		if got := defaultFor(tt.dish); got.Calories != tt.wantCalories {
			t.Errorf("defaultFor(%q).Calories = %v, want %v", tt.dish, got.Calories, tt.wantCalories)
		}
	}
}

func TestEstimatePerServing(t *testing.T) {
	e := newTestEstimator()

	// biryani 總量 450/15/18/55/1/2/780，除以 2 份
	got := e.Estimate(context.Background(), "biryani", nil, 2)
	want := common.NutritionSummary{Calories: 225, Protein: 7.5, Fat: 9, Carbs: 27.5, Fiber: 0.5, Sugar: 1, Sodium: 390}
	if got != want {
		t.Errorf("Estimate = %+v, want %+v", got, want)
	}
}

func TestEstimateServingsFloor(t *testing.T) {
	e := newTestEstimator()

	// 非正份數視為 1
	got := e.Estimate(context.Background(), "biryani", nil, 0)
	if got.Calories != 450 || got.Sodium != 780 {
		t.Errorf("Estimate with servings=0 = %+v, want full dish values", got)
	}
}

func TestEstimateCacheKeyedByServings(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 16
	cfg.Cache.NutritionTTL = time.Hour

	m := cache.NewManager(cfg)
	if m == nil {
		t.Fatal("cache manager should be enabled")
	}
	defer m.Close()

	e := NewEstimator(cfg, m, units.NewConverter(""))
	ctx := context.Background()

	// 同一道菜、不同份數：緩存不能把第一次的每份值端給第二次
	two := e.Estimate(ctx, "biryani", nil, 2)
	four := e.Estimate(ctx, "biryani", nil, 4)
	if two.Calories != 225 {
		t.Errorf("servings=2 calories = %v, want 225", two.Calories)
	}
	if four.Calories != 112.5 {
		t.Errorf("servings=4 calories = %v, want 112.5", four.Calories)
	}

	// 同份數重查回傳緩存值，內容不變
	again := e.Estimate(ctx, "biryani", nil, 2)
	if again != two {
		t.Errorf("cached estimate diverged: %+v vs %+v", again, two)
	}
}

func TestLookupIngredientDeterministic(t *testing.T) {
	// "salted butter" 同時命中 salt 與 butter，排序後 butter 先到
	first, ok := lookupIngredient("salted butter")
	if !ok {
		t.Fatal("salted butter should match the ingredient table")
	}
	if first.Calories != 717 {
		t.Fatalf("salted butter calories = %v, want butter's 717", first.Calories)
	}
	for i := 0; i < 200; i++ {
		got, _ := lookupIngredient("salted butter")
		if got != first {
			t.Fatalf("lookupIngredient unstable on iteration %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestEstimateNeverEmpty(t *testing.T) {
	e := newTestEstimator()

	// 完全未知的菜、沒有食材、供應商未設定 → 仍有完整保底值
	got := e.Estimate(context.Background(), "zorblax special", nil, 1)
	if got.Calories <= 0 || got.Protein <= 0 || got.Carbs <= 0 || got.Sodium <= 0 {
		t.Errorf("Estimate should always return a complete summary, got %+v", got)
	}
}
