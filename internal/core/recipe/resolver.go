package recipe

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/cache"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/extract"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/nutrition"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/source"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// State 解析狀態機的狀態
type State string

const (
	StateCheckCache         State = "CHECK_CACHE"
	StateTryPrimaryAPI      State = "TRY_PRIMARY_API"
	StateTrySearchAndScrape State = "TRY_SEARCH_AND_SCRAPE"
	StateFallbackMinimal    State = "FALLBACK_MINIMAL"
	StateDone               State = "DONE"
)

// minValidIngredients 有效性門檻：至少三個非雜訊食材
const minValidIngredients = 3

// defaultServings 來源沒回報份數時的預設值
const defaultServings = 4

// Result 一次解析的完整輸出
type Result struct {
	Recipe  common.Recipe               `json:"recipe"`
	Details common.ProcessedInstructions `json:"details"`
}

// Resolver 食譜解析器。逐狀態推進直到拿到有效食譜，
// 對呼叫者永不失敗：所有來源都掛掉時回傳合成的保底食譜。
type Resolver struct {
	config     *config.Config
	cache      *cache.Manager
	structured source.StructuredSource
	search     source.SearchSource
	fetcher    source.PageFetcher
	extractor  *extract.Extractor
	processor  *extract.InstructionProcessor
	estimator  *nutrition.Estimator
}

// NewResolver 創建食譜解析器
func NewResolver(
	cfg *config.Config,
	cacheMgr *cache.Manager,
	structured source.StructuredSource,
	search source.SearchSource,
	fetcher source.PageFetcher,
	estimator *nutrition.Estimator,
) *Resolver {
	return &Resolver{
		config:     cfg,
		cache:      cacheMgr,
		structured: structured,
		search:     search,
		fetcher:    fetcher,
		extractor:  extract.NewExtractor(),
		processor:  extract.NewInstructionProcessor(),
		estimator:  estimator,
	}
}

// Resolve 把自由輸入的菜名解析成結構化食譜。
// 先試拼字校正後的名字；校正路徑只拿到保底結果時，
// 用原始名字整個重跑一次。
func (r *Resolver) Resolve(ctx context.Context, rawName string) Result {
	name := common.NormalizeDishName(rawName)

	if corrected, changed := CorrectSpelling(name); changed {
		common.LogInfo("菜名拼字校正",
			zap.String("原始", name),
			zap.String("校正後", corrected),
		)
		result := r.run(ctx, common.NormalizeDishName(corrected))
		if result.Recipe.Source.Type != common.SourceTypeFallback {
			return result
		}
	}

	return r.run(ctx, name)
}

// run 執行一輪狀態機
func (r *Resolver) run(ctx context.Context, dishName string) Result {
	state := StateCheckCache
	var recipe *common.Recipe

	for state != StateDone {
		switch state {
		case StateCheckCache:
			recipe = r.checkCache(ctx, dishName)
			if recipe != nil {
				state = StateDone
			} else {
				state = StateTryPrimaryAPI
			}

		case StateTryPrimaryAPI:
			recipe = r.tryPrimaryAPI(ctx, dishName)
			if recipe != nil {
				state = StateDone
			} else {
				state = StateTrySearchAndScrape
			}

		case StateTrySearchAndScrape:
			recipe = r.trySearchAndScrape(ctx, dishName)
			if recipe != nil {
				state = StateDone
			} else {
				state = StateFallbackMinimal
			}

		case StateFallbackMinimal:
			recipe = r.fallbackMinimal(dishName)
			state = StateDone
		}
	}

	common.LogInfo("食譜解析完成",
		zap.String("菜名", dishName),
		zap.String("來源", recipe.Source.Type),
		zap.Int("食材數", len(recipe.Ingredients)),
	)

	return Result{
		Recipe:  *recipe,
		Details: r.processor.Process(recipe.Instructions),
	}
}

// checkCache 緩存查詢，命中時標記來源為 cache
func (r *Resolver) checkCache(ctx context.Context, dishName string) *common.Recipe {
	key := cache.Key("recipe", dishName)
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	var recipe common.Recipe
	if err := common.ParseJSON(cached, &recipe); err != nil {
		common.LogWarn("緩存食譜解析失敗", zap.String("菜名", dishName), zap.Error(err))
		return nil
	}
	recipe.Source.Type = common.SourceTypeCache
	return &recipe
}

// tryPrimaryAPI 主要結構化來源
func (r *Resolver) tryPrimaryAPI(ctx context.Context, dishName string) *common.Recipe {
	start := time.Now()
	structured, err := r.structured.FetchRecipe(ctx, dishName)
	common.LogSourceAttempt(r.structured.Name(), time.Since(start), err)
	if err != nil {
		return nil
	}

	ingredients := r.convertStructured(structured.Ingredients)
	if !valid(ingredients) {
		return nil
	}

	return r.finalize(ctx, dishName, common.Recipe{
		Title:        structured.Title,
		Servings:     structured.Servings,
		Ingredients:  ingredients,
		Instructions: structured.Instructions,
		Source: common.RecipeSource{
			Type: common.SourceTypePrimaryAPI,
			URL:  structured.SourceURL,
		},
	})
}

// trySearchAndScrape 搜尋候選頁面逐一爬取。
// 每個頁面內部也是回退鏈：JSON-LD → 站內結構 → 自由文字。
func (r *Resolver) trySearchAndScrape(ctx context.Context, dishName string) *common.Recipe {
	start := time.Now()
	urls, err := r.search.Search(ctx, dishName+" recipe")
	common.LogSourceAttempt(r.search.Name(), time.Since(start), err)
	if err != nil {
		return nil
	}

	for _, pageURL := range urls {
		recipe := r.scrapePage(ctx, pageURL, dishName)
		if recipe != nil {
			return recipe
		}
	}
	return nil
}

// scrapePage 爬取單一頁面，任何錯誤都只當作此頁無結果
func (r *Resolver) scrapePage(ctx context.Context, pageURL, dishName string) *common.Recipe {
	start := time.Now()
	html, err := r.fetcher.Fetch(ctx, pageURL)
	common.LogSourceAttempt("fetcher", time.Since(start), err)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		common.LogWarn("頁面解析失敗", zap.String("url", pageURL), zap.Error(err))
		return nil
	}

	// JSON-LD Recipe 節點優先
	if structured, ok := extract.FindJSONLDRecipe(doc); ok {
		ingredients := r.extractor.FromStructured(structured.Ingredients)
		if valid(ingredients) {
			recipe := common.Recipe{
				Title:        structured.Title,
				Servings:     structured.Servings,
				Ingredients:  ingredients,
				Instructions: structured.Instructions,
				Source:       common.RecipeSource{Type: common.SourceTypeWebScrape, URL: pageURL},
			}
			if structured.Nutrition != nil {
				recipe.Nutrition = *structured.Nutrition
			}
			return r.finalize(ctx, dishName, recipe)
		}
	}

	// 站內結構與自由文字啟發式
	ingredients := r.extractor.FromMarkup(doc)
	if !valid(ingredients) {
		return nil
	}

	return r.finalize(ctx, dishName, common.Recipe{
		Servings:     extract.ServingsFromMarkup(doc),
		Ingredients:  ingredients,
		Instructions: extract.InstructionsFromMarkup(doc),
		Source:       common.RecipeSource{Type: common.SourceTypeWebScrape, URL: pageURL},
	})
}

// fallbackMinimal 所有真實來源都失敗時的合成保底食譜
func (r *Resolver) fallbackMinimal(dishName string) *common.Recipe {
	recipe := &common.Recipe{
		ID:       common.GenerateUUID(),
		DishName: dishName,
		Title:    dishName,
		Servings: defaultServings,
		Ingredients: []common.IngredientLine{
			{
				Name:     fmt.Sprintf("Ingredients for %s (no source available, please add manually)", dishName),
				Quantity: "1",
				Unit:     "",
				Category: common.CategoryOther,
			},
		},
		Instructions: []string{
			fmt.Sprintf("No recipe source could be reached for %s.", dishName),
			"Add the ingredients you plan to use, then regenerate the grocery list.",
		},
		Nutrition:  r.estimator.Estimate(context.Background(), dishName, nil, defaultServings),
		Source:     common.RecipeSource{Type: common.SourceTypeFallback},
		ResolvedAt: time.Now(),
	}
	return recipe
}

// finalize 補齊不變量（份數正值、步驟正式化、營養估算）並寫回緩存
func (r *Resolver) finalize(ctx context.Context, dishName string, recipe common.Recipe) *common.Recipe {
	recipe.ID = common.GenerateUUID()
	recipe.DishName = dishName
	if recipe.Title == "" {
		recipe.Title = dishName
	}
	if recipe.Servings <= 0 {
		recipe.Servings = defaultServings
	}

	processed := r.processor.Process(recipe.Instructions)
	if len(processed.Steps) > 0 {
		recipe.Instructions = processed.Steps
	}

	if recipe.Nutrition.Calories <= 0 {
		recipe.Nutrition = r.estimator.Estimate(ctx, dishName, recipe.Ingredients, recipe.Servings)
	}
	recipe.ResolvedAt = time.Now()

	common.LogDebug("食譜已定稿",
		zap.String("菜名", dishName),
		zap.String("食材清單", common.FormatIngredients(recipe.Ingredients)),
	)

	if data, err := common.ToJSON(recipe); err == nil {
		_ = r.cache.Set(ctx, cache.Key("recipe", dishName), data, r.config.Cache.RecipeTTL)
	}
	return &recipe
}

// convertStructured 把結構化來源的食材行轉成標準食材行
func (r *Resolver) convertStructured(raw []source.StructuredIngredient) []common.IngredientLine {
	lines := make([]common.IngredientLine, 0, len(raw))
	for _, ing := range raw {
		name := strings.TrimSpace(ing.Name)
		if name == "" || extract.IsNoise(name) {
			continue
		}

		quantity := "1"
		if ing.Amount > 0 {
			quantity = strconv.FormatFloat(ing.Amount, 'f', -1, 64)
		}
		unit, _ := units.CanonicalUnit(ing.Unit)

		lines = append(lines, common.IngredientLine{
			Name:     name,
			Quantity: quantity,
			Unit:     unit,
			Category: extract.Categorize(name),
		})
	}
	return lines
}

// valid 有效性門檻：至少 minValidIngredients 個非雜訊食材
func valid(ingredients []common.IngredientLine) bool {
	count := 0
	for _, ing := range ingredients {
		if !extract.IsNoise(ing.Name) {
			count++
		}
	}
	return count >= minValidIngredients
}
