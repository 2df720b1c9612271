package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// SpoonacularSource 主要結構化食譜來源。
// 兩段式查詢：complexSearch 找 ID，/information 取完整食譜。
type SpoonacularSource struct {
	config *config.Config
	client *resty.Client
}

// NewSpoonacularSource 創建 Spoonacular 來源
func NewSpoonacularSource(cfg *config.Config) *SpoonacularSource {
	client := resty.New().
		SetBaseURL("https://api.spoonacular.com").
		SetTimeout(cfg.Sources.Spoonacular.Timeout)

	return &SpoonacularSource{config: cfg, client: client}
}

func (s *SpoonacularSource) Name() string { return "spoonacular" }

// FetchRecipe 以菜名查詢完整食譜
func (s *SpoonacularSource) FetchRecipe(ctx context.Context, dishName string) (*StructuredRecipe, error) {
	apiKey := s.config.Sources.Spoonacular.APIKey
	if apiKey == "" {
		return nil, common.NewSourceError(common.KindNotConfigured, s.Name(), fmt.Errorf("missing API key"))
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":  dishName,
			"number": "1",
			"apiKey": apiKey,
		}).
		Get("/recipes/complexSearch")
	if err != nil {
		return nil, common.NewSourceError(common.KindSourceUnavailable, s.Name(), err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, common.NewSourceError(common.KindSourceUnavailable, s.Name(), fmt.Errorf("search returned %d", resp.StatusCode()))
	}

	var search struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &search); err != nil {
		return nil, common.NewSourceError(common.KindInsufficientData, s.Name(), err)
	}
	if len(search.Results) == 0 {
		return nil, common.NewSourceError(common.KindInsufficientData, s.Name(), fmt.Errorf("no recipe match for %q", dishName))
	}

	resp, err = s.client.R().
		SetContext(ctx).
		SetQueryParam("apiKey", apiKey).
		Get(fmt.Sprintf("/recipes/%d/information", search.Results[0].ID))
	if err != nil {
		return nil, common.NewSourceError(common.KindSourceUnavailable, s.Name(), err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, common.NewSourceError(common.KindSourceUnavailable, s.Name(), fmt.Errorf("information returned %d", resp.StatusCode()))
	}

	var detail struct {
		Title               string `json:"title"`
		Servings            int    `json:"servings"`
		SourceURL           string `json:"sourceUrl"`
		ExtendedIngredients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"extendedIngredients"`
		AnalyzedInstructions []struct {
			Steps []struct {
				Step string `json:"step"`
			} `json:"steps"`
		} `json:"analyzedInstructions"`
	}
	if err := json.Unmarshal(resp.Body(), &detail); err != nil {
		return nil, common.NewSourceError(common.KindInsufficientData, s.Name(), err)
	}

	recipe := &StructuredRecipe{
		Title:     detail.Title,
		Servings:  detail.Servings,
		SourceURL: detail.SourceURL,
	}
	for _, ing := range detail.ExtendedIngredients {
		if ing.Name == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, StructuredIngredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	for _, instruction := range detail.AnalyzedInstructions {
		for _, step := range instruction.Steps {
			if step.Step != "" {
				recipe.Instructions = append(recipe.Instructions, step.Step)
			}
		}
	}

	if len(recipe.Ingredients) == 0 {
		return nil, common.NewSourceError(common.KindInsufficientData, s.Name(), fmt.Errorf("recipe has no ingredients"))
	}
	return recipe, nil
}
