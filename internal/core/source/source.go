package source

import "context"

// StructuredRecipe 結構化來源回傳的食譜資料，
// 欄位允許缺漏，由上層決定是否可用
type StructuredRecipe struct {
	Title        string
	Servings     int
	Ingredients  []StructuredIngredient
	Instructions []string
	SourceURL    string
}

// StructuredIngredient 結構化來源的食材行
type StructuredIngredient struct {
	Name   string
	Amount float64
	Unit   string
}

// StructuredSource 以菜名查詢結構化食譜的來源（例如食譜 API）
type StructuredSource interface {
	Name() string
	FetchRecipe(ctx context.Context, dishName string) (*StructuredRecipe, error)
}

// SearchSource 以查詢字串取得候選頁面 URL，依相關性排序
type SearchSource interface {
	Name() string
	Search(ctx context.Context, query string) ([]string, error)
}

// PageFetcher 抓取單一頁面的原始 HTML
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
