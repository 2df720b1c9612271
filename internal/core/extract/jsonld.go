package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// StructuredRecipe schema.org Recipe 節點的展平結果
type StructuredRecipe struct {
	Title        string
	Servings     int
	Ingredients  []string
	Instructions []string
	Nutrition    *common.NutritionSummary
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// FindJSONLDRecipe 在文件的 application/ld+json 區塊中找第一個 Recipe 節點。
// 支援單一物件、陣列與 @graph 包裝；解析失敗的區塊直接跳過。
func FindJSONLDRecipe(doc *goquery.Document) (*StructuredRecipe, bool) {
	var result *StructuredRecipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		if node := findRecipeNode(data); node != nil {
			result = flattenRecipeNode(node)
			return false
		}
		return true
	})

	if result == nil || len(result.Ingredients) == 0 {
		return nil, false
	}
	return result, true
}

// findRecipeNode 遞迴尋找 @type 含 Recipe 的物件
func findRecipeNode(data interface{}) map[string]interface{} {
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	case map[string]interface{}:
		if hasType(v, "Recipe") {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	}
	return nil
}

// hasType @type 可能是字串或字串陣列
func hasType(node map[string]interface{}, want string) bool {
	switch t := node["@type"].(type) {
	case string:
		return strings.EqualFold(t, want)
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func flattenRecipeNode(node map[string]interface{}) *StructuredRecipe {
	r := &StructuredRecipe{}

	if name, ok := node["name"].(string); ok {
		r.Title = strings.TrimSpace(name)
	}
	r.Ingredients = stringList(node["recipeIngredient"])
	if len(r.Ingredients) == 0 {
		r.Ingredients = stringList(node["ingredients"])
	}
	r.Instructions = instructionList(node["recipeInstructions"])
	r.Servings = parseYield(node["recipeYield"])

	if nut, ok := node["nutrition"].(map[string]interface{}); ok {
		r.Nutrition = parseNutritionNode(nut)
	}

	return r
}

// stringList 字串或字串陣列統一成 []string
func stringList(v interface{}) []string {
	switch x := v.(type) {
	case string:
		if s := strings.TrimSpace(x); s != "" {
			return []string{s}
		}
	case []interface{}:
		var out []string
		for _, item := range x {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

// instructionList 指示可能是字串、字串陣列、HowToStep 陣列或 HowToSection
func instructionList(v interface{}) []string {
	switch x := v.(type) {
	case string:
		return []string{strings.TrimSpace(x)}
	case []interface{}:
		var out []string
		for _, item := range x {
			switch step := item.(type) {
			case string:
				if s := strings.TrimSpace(step); s != "" {
					out = append(out, s)
				}
			case map[string]interface{}:
				if text, ok := step["text"].(string); ok && strings.TrimSpace(text) != "" {
					out = append(out, strings.TrimSpace(text))
					continue
				}
				// HowToSection 內嵌 itemListElement
				out = append(out, instructionList(step["itemListElement"])...)
			}
		}
		return out
	}
	return nil
}

// parseYield recipeYield 可能是數字、"4 servings" 或陣列，取第一個數字
func parseYield(v interface{}) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		if m := numberPattern.FindString(x); m != "" {
			if n, err := strconv.Atoi(strings.SplitN(m, ".", 2)[0]); err == nil {
				return n
			}
		}
	case []interface{}:
		for _, item := range x {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

// parseNutritionNode JSON-LD NutritionInformation → 摘要。
// 屬性值常是 "240 calories" 這類帶單位字串，抽第一個數字。
func parseNutritionNode(nut map[string]interface{}) *common.NutritionSummary {
	grab := func(keys ...string) float64 {
		for _, k := range keys {
			v, ok := nut[k]
			if !ok {
				continue
			}
			switch x := v.(type) {
			case float64:
				return x
			case string:
				if m := numberPattern.FindString(x); m != "" {
					if f, err := strconv.ParseFloat(m, 64); err == nil {
						return f
					}
				}
			}
		}
		return 0
	}

	s := &common.NutritionSummary{
		Calories: grab("calories", "caloriesContent"),
		Protein:  grab("proteinContent", "protein"),
		Fat:      grab("fatContent", "fat"),
		Carbs:    grab("carbohydrateContent", "carbohydrates", "carbs"),
		Fiber:    grab("fiberContent", "dietaryFiber"),
		Sugar:    grab("sugarContent", "sugars"),
		Sodium:   int(grab("sodiumContent", "sodium")),
	}
	if s.Calories <= 0 {
		return nil
	}
	return s
}
