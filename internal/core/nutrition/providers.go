package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// Provider 外部營養資料供應商。
// 回傳 nil summary 或 error 都代表這一級失敗，呼叫端換下一級。
type Provider interface {
	Name() string
	Fetch(ctx context.Context, dishName string, ingredients []common.IngredientLine) (*common.NutritionSummary, error)
}

// SpoonacularProvider 先搜尋食譜 ID 再查營養資訊
type SpoonacularProvider struct {
	config *config.Config
	client *resty.Client
}

// NewSpoonacularProvider 創建 Spoonacular 供應商
func NewSpoonacularProvider(cfg *config.Config) *SpoonacularProvider {
	client := resty.New().
		SetBaseURL("https://api.spoonacular.com").
		SetTimeout(cfg.Sources.Spoonacular.Timeout)

	return &SpoonacularProvider{config: cfg, client: client}
}

func (p *SpoonacularProvider) Name() string { return "spoonacular" }

// Fetch 兩段式查詢：complexSearch 找 ID，再查 nutritionWidget
func (p *SpoonacularProvider) Fetch(ctx context.Context, dishName string, _ []common.IngredientLine) (*common.NutritionSummary, error) {
	apiKey := p.config.Sources.Spoonacular.APIKey
	if apiKey == "" {
		return nil, &common.SourceError{Kind: common.KindNotConfigured, Source: p.Name(), Err: fmt.Errorf("missing API key")}
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":  dishName,
			"number": "1",
			"apiKey": apiKey,
		}).
		Get("/recipes/complexSearch")
	if err != nil {
		return nil, &common.SourceError{Kind: common.KindSourceUnavailable, Source: p.Name(), Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &common.SourceError{Kind: common.KindSourceUnavailable, Source: p.Name(), Err: fmt.Errorf("search returned %d", resp.StatusCode())}
	}

	var search struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &search); err != nil || len(search.Results) == 0 {
		return nil, &common.SourceError{Kind: common.KindInsufficientData, Source: p.Name(), Err: fmt.Errorf("no recipe match for %q", dishName)}
	}

	resp, err = p.client.R().
		SetContext(ctx).
		SetQueryParam("apiKey", apiKey).
		Get(fmt.Sprintf("/recipes/%d/nutritionWidget.json", search.Results[0].ID))
	if err != nil {
		return nil, &common.SourceError{Kind: common.KindSourceUnavailable, Source: p.Name(), Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &common.SourceError{Kind: common.KindSourceUnavailable, Source: p.Name(), Err: fmt.Errorf("nutrition returned %d", resp.StatusCode())}
	}

	var widget struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	}
	if err := json.Unmarshal(resp.Body(), &widget); err != nil {
		return nil, &common.SourceError{Kind: common.KindInsufficientData, Source: p.Name(), Err: err}
	}

	summary := common.NutritionSummary{}
	for _, n := range widget.Nutrients {
		switch strings.ToLower(n.Name) {
		case "calories":
			summary.Calories = n.Amount
		case "protein":
			summary.Protein = n.Amount
		case "fat":
			summary.Fat = n.Amount
		case "carbohydrates", "carbs":
			summary.Carbs = n.Amount
		case "fiber":
			summary.Fiber = n.Amount
		case "sugar":
			summary.Sugar = n.Amount
		case "sodium":
			summary.Sodium = int(n.Amount + 0.5)
		}
	}

	if summary.Calories <= 0 {
		return nil, &common.SourceError{Kind: common.KindInsufficientData, Source: p.Name(), Err: fmt.Errorf("no calories in response")}
	}
	return &summary, nil
}

// EdamamProvider 用食材清單做營養分析
type EdamamProvider struct {
	config *config.Config
	client *resty.Client
}

// NewEdamamProvider 創建 Edamam 供應商
func NewEdamamProvider(cfg *config.Config) *EdamamProvider {
	client := resty.New().
		SetBaseURL("https://api.edamam.com").
		SetTimeout(cfg.Sources.Edamam.Timeout)

	return &EdamamProvider{config: cfg, client: client}
}

func (p *EdamamProvider) Name() string { return "edamam" }

// Fetch 把食材行組回 "qty unit name" 字串送營養分析 API
func (p *EdamamProvider) Fetch(ctx context.Context, _ string, ingredients []common.IngredientLine) (*common.NutritionSummary, error) {
	appID := p.config.Sources.Edamam.AppID
	appKey := p.config.Sources.Edamam.AppKey
	if appID == "" || appKey == "" {
		return nil, &common.SourceError{Kind: common.KindNotConfigured, Source: p.Name(), Err: fmt.Errorf("missing credentials")}
	}

	ingr := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Name == "" {
			continue
		}
		line := strings.TrimSpace(strings.Join([]string{ing.Quantity, ing.Unit, ing.Name}, " "))
		ingr = append(ingr, strings.Join(strings.Fields(line), " "))
	}
	if len(ingr) == 0 {
		return nil, &common.SourceError{Kind: common.KindInsufficientData, Source: p.Name(), Err: fmt.Errorf("no ingredients to analyze")}
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"app_id":  appID,
			"app_key": appKey,
		}).
		SetBody(map[string]interface{}{
			"title": "Recipe nutrition analysis",
			"ingr":  ingr,
		}).
		Post("/api/nutrition-details")
	if err != nil {
		return nil, &common.SourceError{Kind: common.KindSourceUnavailable, Source: p.Name(), Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &common.SourceError{Kind: common.KindSourceUnavailable, Source: p.Name(), Err: fmt.Errorf("analysis returned %d", resp.StatusCode())}
	}

	var result struct {
		Calories       float64 `json:"calories"`
		TotalNutrients map[string]struct {
			Quantity float64 `json:"quantity"`
		} `json:"totalNutrients"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &common.SourceError{Kind: common.KindInsufficientData, Source: p.Name(), Err: err}
	}

	grab := func(key string) float64 { return result.TotalNutrients[key].Quantity }

	summary := common.NutritionSummary{
		Calories: result.Calories,
		Protein:  grab("PROCNT"),
		Fat:      grab("FAT"),
		Carbs:    grab("CHOCDF"),
		Fiber:    grab("FIBTG"),
		Sugar:    grab("SUGAR"),
		Sodium:   int(grab("NA") + 0.5),
	}

	if summary.Calories <= 0 {
		return nil, &common.SourceError{Kind: common.KindInsufficientData, Source: p.Name(), Err: fmt.Errorf("no calories in response")}
	}
	return &summary, nil
}
