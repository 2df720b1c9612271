package recipe

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/cache"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/nutrition"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/source"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

type fakeStructured struct {
	recipe *source.StructuredRecipe
	err    error
	calls  int
}

func (f *fakeStructured) Name() string { return "fake_api" }

func (f *fakeStructured) FetchRecipe(_ context.Context, _ string) (*source.StructuredRecipe, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recipe, nil
}

type fakeSearch struct {
	urls []string
	err  error
}

func (f *fakeSearch) Name() string { return "fake_search" }

func (f *fakeSearch) Search(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.urls, nil
}

type fakePages struct {
	pages map[string][]byte
}

func (f *fakePages) Fetch(_ context.Context, url string) ([]byte, error) {
	page, ok := f.pages[url]
	if !ok {
		return nil, common.NewSourceError(common.KindSourceUnavailable, "fetcher", fmt.Errorf("no page for %s", url))
	}
	return page, nil
}

func sourceDown(name string) error {
	return common.NewSourceError(common.KindSourceUnavailable, name, errors.New("connection refused"))
}

func newTestResolver(cfg *config.Config, cacheMgr *cache.Manager, structured source.StructuredSource, search source.SearchSource, fetcher source.PageFetcher) *Resolver {
	estimator := nutrition.NewEstimator(cfg, nil, units.NewConverter(""))
	return NewResolver(cfg, cacheMgr, structured, search, fetcher, estimator)
}

func TestResolvePrimaryAPI(t *testing.T) {
	structured := &fakeStructured{recipe: &source.StructuredRecipe{
		Title:    "Chicken Biryani",
		Servings: 6,
		Ingredients: []source.StructuredIngredient{
			{Name: "Basmati rice", Amount: 2, Unit: "cups"},
			{Name: "Chicken", Amount: 500, Unit: "grams"},
			{Name: "Onion", Amount: 2, Unit: ""},
		},
		Instructions: []string{"Cook the rice", "Fry the onions"},
		SourceURL:    "https://api.example.com/recipes/42",
	}}

	r := newTestResolver(&config.Config{}, nil, structured, &fakeSearch{err: sourceDown("fake_search")}, &fakePages{})
	got := r.Resolve(context.Background(), "biryani")

	if got.Recipe.Source.Type != common.SourceTypePrimaryAPI {
		t.Fatalf("source type = %q, want %q", got.Recipe.Source.Type, common.SourceTypePrimaryAPI)
	}
	if got.Recipe.Title != "Chicken Biryani" || got.Recipe.Servings != 6 {
		t.Errorf("recipe metadata = %+v", got.Recipe)
	}
	if got.Recipe.ID == "" {
		t.Error("resolved recipe should have an ID")
	}
	if len(got.Recipe.Ingredients) != 3 {
		t.Fatalf("got %d ingredients, want 3", len(got.Recipe.Ingredients))
	}
	if got.Recipe.Ingredients[0].Unit != "cup" || got.Recipe.Ingredients[1].Unit != "g" {
		t.Errorf("units not canonicalized: %+v", got.Recipe.Ingredients)
	}
	// 步驟經正式化：首字大寫、句點結尾
	if got.Recipe.Instructions[0] != "Cook the rice." {
		t.Errorf("instruction[0] = %q", got.Recipe.Instructions[0])
	}
	// biryani 每份 450 / 6 人份
	if got.Recipe.Nutrition.Calories != 75 {
		t.Errorf("calories per serving = %v, want 75", got.Recipe.Nutrition.Calories)
	}
	if len(got.Details.Steps) != 2 {
		t.Errorf("details steps = %+v", got.Details.Steps)
	}
}

func TestResolveScrapeFallback(t *testing.T) {
	jsonLD := []byte(`<html><head><script type="application/ld+json">
	{"@context":"https://schema.org","@type":"Recipe","name":"Margherita Pizza",
	 "recipeYield":"2 servings",
	 "recipeIngredient":["2 cups flour","1 cup tomato sauce","200 grams mozzarella cheese"],
	 "recipeInstructions":[{"@type":"HowToStep","text":"Knead the dough"},{"@type":"HowToStep","text":"Bake for 12 minutes"}]}
	</script></head><body></body></html>`)

	search := &fakeSearch{urls: []string{
		"https://example.com/dead",
		"https://example.com/pizza",
	}}
	pages := &fakePages{pages: map[string][]byte{
		"https://example.com/pizza": jsonLD,
	}}

	r := newTestResolver(&config.Config{}, nil, &fakeStructured{err: sourceDown("fake_api")}, search, pages)
	got := r.Resolve(context.Background(), "pizza")

	if got.Recipe.Source.Type != common.SourceTypeWebScrape {
		t.Fatalf("source type = %q, want %q", got.Recipe.Source.Type, common.SourceTypeWebScrape)
	}
	if got.Recipe.Source.URL != "https://example.com/pizza" {
		t.Errorf("source URL = %q", got.Recipe.Source.URL)
	}
	if got.Recipe.Title != "Margherita Pizza" || got.Recipe.Servings != 2 {
		t.Errorf("recipe metadata = %+v", got.Recipe)
	}
	if len(got.Recipe.Ingredients) != 3 {
		t.Fatalf("got %d ingredients, want 3: %+v", len(got.Recipe.Ingredients), got.Recipe.Ingredients)
	}
	// pizza 每份 300 / 2 人份
	if got.Recipe.Nutrition.Calories != 150 {
		t.Errorf("calories per serving = %v, want 150", got.Recipe.Nutrition.Calories)
	}
	if len(got.Details.Timeline) != 1 {
		t.Errorf("timeline = %+v", got.Details.Timeline)
	}
}

func TestResolveFallbackMinimal(t *testing.T) {
	r := newTestResolver(&config.Config{}, nil,
		&fakeStructured{err: sourceDown("fake_api")},
		&fakeSearch{err: sourceDown("fake_search")},
		&fakePages{},
	)

	got := r.Resolve(context.Background(), "mystery casserole")

	if got.Recipe.Source.Type != common.SourceTypeFallback {
		t.Fatalf("source type = %q, want %q", got.Recipe.Source.Type, common.SourceTypeFallback)
	}
	if got.Recipe.DishName != "Mystery Casserole" || got.Recipe.Servings != 4 {
		t.Errorf("fallback recipe = %+v", got.Recipe)
	}
	if len(got.Recipe.Ingredients) != 1 || len(got.Recipe.Instructions) != 2 {
		t.Errorf("fallback payload = %+v", got.Recipe)
	}
	// 保底食譜仍附帶營養估計
	if got.Recipe.Nutrition.Calories <= 0 {
		t.Errorf("fallback nutrition = %+v", got.Recipe.Nutrition)
	}
}

func TestResolveValidityGate(t *testing.T) {
	// 食材不足三個：結構化來源的結果不採用
	structured := &fakeStructured{recipe: &source.StructuredRecipe{
		Title:    "Naan",
		Servings: 2,
		Ingredients: []source.StructuredIngredient{
			{Name: "Flour", Amount: 2, Unit: "cups"},
			{Name: "Yeast", Amount: 1, Unit: "tsp"},
		},
		Instructions: []string{"Bake it"},
	}}

	r := newTestResolver(&config.Config{}, nil, structured, &fakeSearch{err: sourceDown("fake_search")}, &fakePages{})
	got := r.Resolve(context.Background(), "naan bread")

	if got.Recipe.Source.Type != common.SourceTypeFallback {
		t.Errorf("source type = %q, want fallback past the validity gate", got.Recipe.Source.Type)
	}
	if structured.calls == 0 {
		t.Error("structured source should have been attempted")
	}
}

func TestResolveCacheHit(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 16
	cfg.Cache.RecipeTTL = time.Hour
	cfg.Cache.NutritionTTL = time.Hour

	cacheMgr := cache.NewManager(cfg)
	if cacheMgr == nil {
		t.Fatal("cache manager should be enabled")
	}
	defer cacheMgr.Close()

	structured := &fakeStructured{recipe: &source.StructuredRecipe{
		Title:    "Chicken Biryani",
		Servings: 4,
		Ingredients: []source.StructuredIngredient{
			{Name: "Basmati rice", Amount: 2, Unit: "cups"},
			{Name: "Chicken", Amount: 500, Unit: "grams"},
			{Name: "Onion", Amount: 2, Unit: ""},
		},
		Instructions: []string{"Cook the rice"},
	}}

	r := newTestResolver(cfg, cacheMgr, structured, &fakeSearch{err: sourceDown("fake_search")}, &fakePages{})

	first := r.Resolve(context.Background(), "biryani")
	if first.Recipe.Source.Type != common.SourceTypePrimaryAPI {
		t.Fatalf("first resolve source = %q", first.Recipe.Source.Type)
	}

	second := r.Resolve(context.Background(), "biryani")
	if second.Recipe.Source.Type != common.SourceTypeCache {
		t.Fatalf("second resolve source = %q, want %q", second.Recipe.Source.Type, common.SourceTypeCache)
	}
	if structured.calls != 1 {
		t.Errorf("structured source called %d times, want 1", structured.calls)
	}
	if second.Recipe.Title != first.Recipe.Title {
		t.Errorf("cached recipe diverged: %q vs %q", second.Recipe.Title, first.Recipe.Title)
	}
}
