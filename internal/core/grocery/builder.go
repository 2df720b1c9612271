package grocery

import (
	"sort"
	"strings"
	"time"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// Aggregate 把縮放後的食材行合併成購物項目：
// 名稱不分大小寫歸組，單位取第一個非空的，數量保留第一筆
// （跨單位的真加總刻意不做），排序依固定分類優先序。
func Aggregate(ingredients []common.IngredientLine) []common.GroceryItem {
	type group struct {
		quantities []string
		unit       string
		category   common.Category
	}

	groups := map[string]*group{}
	var order []string

	for _, ing := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name == "" {
			continue
		}

		quantity := ing.Quantity
		if quantity == "" {
			quantity = "1"
		}

		g, exists := groups[name]
		if !exists {
			g = &group{category: ing.Category}
			if g.category == "" {
				g.category = common.CategoryOther
			}
			groups[name] = g
			order = append(order, name)
		}
		g.quantities = append(g.quantities, quantity)
		if g.unit == "" && ing.Unit != "" {
			g.unit = strings.ToLower(ing.Unit)
		}
	}

	items := make([]common.GroceryItem, 0, len(groups))
	for _, name := range order {
		g := groups[name]
		items = append(items, common.GroceryItem{
			Name:     titleCase(name),
			Quantity: g.quantities[0],
			Unit:     g.unit,
			Category: g.category,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return categoryIndex(items[i].Category) < categoryIndex(items[j].Category)
	})
	return items
}

// BuildList 組出一份完整的購物清單：先縮放再合併
func BuildList(dishName string, ingredients []common.IngredientLine, recipeServings, householdSize int) common.GroceryList {
	scaled := Scale(ingredients, recipeServings, householdSize)

	return common.GroceryList{
		ID:            common.GenerateUUID(),
		DishName:      dishName,
		HouseholdSize: householdSize,
		Items:         Aggregate(scaled),
		CreatedAt:     time.Now(),
	}
}

// categoryIndex 分類在顯示優先序中的位置，未知分類排最後
func categoryIndex(category common.Category) int {
	for i, c := range common.CategoryOrder {
		if c == category {
			return i
		}
	}
	return len(common.CategoryOrder)
}

// titleCase 每個詞首字大寫，購物清單顯示用
func titleCase(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
