package nutrition

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/cache"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// Estimator 營養估算器。逐級回退直到有值：
// 緩存 → 菜色表 → 食材加總 → 外部供應商 → 分類保底。
// 最後一級必定成功，所以 Estimate 永遠回傳完整的七個欄位。
type Estimator struct {
	config    *config.Config
	cache     *cache.Manager
	converter *units.Converter
	providers []Provider
}

// NewEstimator 創建營養估算器
func NewEstimator(cfg *config.Config, cacheMgr *cache.Manager, converter *units.Converter) *Estimator {
	return &Estimator{
		config:    cfg,
		cache:     cacheMgr,
		converter: converter,
		providers: []Provider{
			NewSpoonacularProvider(cfg),
			NewEdamamProvider(cfg),
		},
	}
}

// Estimate 估算一份的營養值，不會回傳空結果。
// 哪一級產出就除以 servings（非正值視為 1），四捨五入後寫回緩存。
// 緩存值已除過份數，鍵必須帶上份數，不同份數的查詢不能共用。
func (e *Estimator) Estimate(ctx context.Context, dishName string, ingredients []common.IngredientLine, servings int) common.NutritionSummary {
	if servings <= 0 {
		servings = 1
	}

	key := cache.Key("nutrition", dishName, strconv.Itoa(servings))
	if cached, err := e.cache.Get(ctx, key); err == nil {
		var summary common.NutritionSummary
		if err := common.ParseJSON(cached, &summary); err == nil {
			return summary
		}
	}

	summary, source := e.resolve(ctx, dishName, ingredients)
	summary = perServing(summary, servings)

	common.LogInfo("營養估算完成",
		zap.String("菜名", dishName),
		zap.String("來源", source),
		zap.Float64("熱量", summary.Calories),
	)

	if data, err := common.ToJSON(summary); err == nil {
		_ = e.cache.Set(ctx, key, data, e.config.Cache.NutritionTTL)
	}

	return summary
}

// resolve 依優先序嘗試各級，回傳總量與來源標記
func (e *Estimator) resolve(ctx context.Context, dishName string, ingredients []common.IngredientLine) (common.NutritionSummary, string) {
	if summary, ok := lookupDish(dishName); ok {
		return summary, "dish_table"
	}

	if len(ingredients) > 0 {
		if summary, ok := e.sumIngredients(ingredients); ok {
			return summary, "ingredient_estimate"
		}
	}

	for _, p := range e.providers {
		summary, err := p.Fetch(ctx, dishName, ingredients)
		if err != nil {
			if common.KindOf(err) != common.KindNotConfigured {
				common.LogWarn("營養供應商失敗",
					zap.String("供應商", p.Name()),
					zap.Error(err),
				)
			}
			continue
		}
		if summary != nil {
			return *summary, p.Name()
		}
	}

	return defaultFor(dishName), "default_estimate"
}

// lookupDish 菜色表查詢：精確比對優先，其次雙向子字串
func lookupDish(dishName string) (common.NutritionSummary, bool) {
	name := strings.ToLower(strings.TrimSpace(dishName))
	if name == "" {
		return common.NutritionSummary{}, false
	}

	if summary, ok := dishTable[name]; ok {
		return summary, true
	}
	for _, dish := range dishKeys {
		if strings.Contains(name, dish) || strings.Contains(dish, name) {
			return dishTable[dish], true
		}
	}
	return common.NutritionSummary{}, false
}

// sumIngredients 逐食材換算成公克後按每 100g 表加總。
// 一個食材都查不到視為此級失敗。
func (e *Estimator) sumIngredients(ingredients []common.IngredientLine) (common.NutritionSummary, bool) {
	var total common.NutritionSummary
	matched := 0

	for _, ing := range ingredients {
		per100, ok := lookupIngredient(ing.Name)
		if !ok {
			continue
		}
		grams := e.estimateGrams(ing)
		factor := grams / 100.0

		total.Calories += per100.Calories * factor
		total.Protein += per100.Protein * factor
		total.Fat += per100.Fat * factor
		total.Carbs += per100.Carbs * factor
		total.Fiber += per100.Fiber * factor
		total.Sugar += per100.Sugar * factor
		total.Sodium += int(float64(per100.Sodium)*factor + 0.5)
		matched++
	}

	if matched == 0 {
		return common.NutritionSummary{}, false
	}
	return total, true
}

// lookupIngredient 食材表用子字串比對，鍵依排序後的固定順序掃描
func lookupIngredient(name string) (common.NutritionSummary, bool) {
	lower := strings.ToLower(name)
	for _, key := range ingredientKeys {
		if strings.Contains(lower, key) {
			return ingredientTable[key], true
		}
	}
	return common.NutritionSummary{}, false
}

// estimateGrams 把一行食材換算成估計公克數
func (e *Estimator) estimateGrams(ing common.IngredientLine) float64 {
	quantity := units.ParseQuantity(ing.Quantity)
	canonical, _ := units.CanonicalUnit(ing.Unit)

	switch canonical {
	case units.UnitGram:
		return quantity
	case units.UnitKg:
		return quantity * 1000
	case units.UnitClove:
		return quantity * cloveGrams
	case units.UnitPinch:
		return quantity * pinchGrams
	case units.UnitHandful:
		return quantity * handfulGrams
	case units.UnitPiece, "":
		return quantity * pieceGrams(ing.Name)
	}

	if units.IsVolumeUnit(canonical) {
		if grams, err := e.converter.VolumeToMass(quantity, canonical, ing.Name); err == nil {
			return grams
		}
	}

	// oz/lb 走重量歸一
	if grams, unit := units.NormalizeWeight(quantity, canonical); unit == units.UnitGram {
		return grams
	} else if unit == units.UnitKg {
		return grams * 1000
	}

	return quantity * defaultPieceGrams
}

// pieceGrams 計數型食材的單個重量估計
func pieceGrams(name string) float64 {
	lower := strings.ToLower(name)
	for _, key := range pieceKeys {
		if strings.Contains(lower, key) {
			return pieceWeights[key]
		}
	}
	return defaultPieceGrams
}

// defaultFor 依菜名關鍵字給保底估計
func defaultFor(dishName string) common.NutritionSummary {
	lower := strings.ToLower(dishName)
	for _, cat := range categoryDefaults {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.summary
			}
		}
	}
	return genericDefault
}

// perServing 除以份數並四捨五入：鈉取整數，其餘一位小數
func perServing(summary common.NutritionSummary, servings int) common.NutritionSummary {
	div := float64(servings)
	return common.NutritionSummary{
		Calories: round1(summary.Calories / div),
		Protein:  round1(summary.Protein / div),
		Fat:      round1(summary.Fat / div),
		Carbs:    round1(summary.Carbs / div),
		Fiber:    round1(summary.Fiber / div),
		Sugar:    round1(summary.Sugar / div),
		Sodium:   int(math.Round(float64(summary.Sodium) / div)),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
