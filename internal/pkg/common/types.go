package common

import (
	"fmt"
	"strings"
	"time"
)

// Category 食材分類（封閉集合，避免自由字串造成拼寫錯誤）
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryDairy   Category = "dairy"
	CategoryMeat    Category = "meat"
	CategoryPoultry Category = "poultry"
	CategorySeafood Category = "seafood"
	CategoryGrains  Category = "grains"
	CategorySpices  Category = "spices"
	CategoryOther   Category = "other"
)

// CategoryOrder 購物清單顯示時的分類排序，未知分類排最後
var CategoryOrder = []Category{
	CategoryProduce, CategoryMeat, CategoryPoultry, CategorySeafood,
	CategoryDairy, CategoryGrains, CategorySpices, CategoryOther,
}

// IngredientLine 一行結構化食材
// quantity 保留文字形式（小數或分數），name 清洗後不為空，
// unit 為空或規範單位表成員。
type IngredientLine struct {
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
}

// NutritionSummary 營養摘要，七個欄位永遠齊全
type NutritionSummary struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   int     `json:"sodium"`
}

// 來源類型
const (
	SourceTypeCache      = "cache"
	SourceTypePrimaryAPI = "primary_api"
	SourceTypeWebScrape  = "web_scrape"
	SourceTypeFallback   = "fallback"
)

// RecipeSource 食譜來源標記
type RecipeSource struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Recipe 解析完成的食譜。離開 resolver 時 servings 必為正整數，
// ingredients 與 instructions 至少各一筆。
type Recipe struct {
	ID           string           `json:"id"`
	DishName     string           `json:"dish_name"`
	Title        string           `json:"title"`
	Servings     int              `json:"servings"`
	Ingredients  []IngredientLine `json:"ingredients"`
	Instructions []string         `json:"instructions"`
	Nutrition    NutritionSummary `json:"nutrition"`
	Source       RecipeSource     `json:"source"`
	ResolvedAt   time.Time        `json:"resolved_at"`
}

// TimelineEntry 步驟中明確提到的時間或溫度
type TimelineEntry struct {
	Duration string `json:"duration,omitempty"` // 例如 "20 minutes"
	OvenTemp string `json:"oven_temp,omitempty"`
	Context  string `json:"context"` // 步驟前 100 字
}

// ProcessedInstructions 指示處理結果
type ProcessedInstructions struct {
	Steps    []string        `json:"steps"`
	Tips     []string        `json:"tips"`
	Warnings []string        `json:"warnings"`
	Timeline []TimelineEntry `json:"timeline"`
}

// GroceryItem 購物清單項目
type GroceryItem struct {
	Name     string   `json:"ingredient_name"`
	Quantity string   `json:"quantity"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
}

// GroceryList 一份菜對應一個家庭人數的購物清單
type GroceryList struct {
	ID            string        `json:"id"`
	DishName      string        `json:"dish_name"`
	HouseholdSize int           `json:"household_size"`
	Items         []GroceryItem `json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
}

// FormatIngredients 格式化食材列表（log 與除錯用）
func FormatIngredients(ingredients []IngredientLine) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s: %s %s [%s]\n",
			ing.Name, ing.Quantity, ing.Unit, ing.Category))
	}
	return sb.String()
}
