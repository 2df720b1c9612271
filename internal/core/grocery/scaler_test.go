package grocery

import (
	"testing"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

func TestScale(t *testing.T) {
	ingredients := []common.IngredientLine{
		{Name: "Rice", Quantity: "2", Unit: "cup"},
		{Name: "Salt", Quantity: "1/2", Unit: "tsp"},
	}

	// 倍率 1：原樣回傳
	same := Scale(ingredients, 4, 4)
	if same[0].Quantity != "2" || same[1].Quantity != "1/2" {
		t.Errorf("identity scale altered quantities: %+v", same)
	}

	// 2 → 4 人份：加倍
	doubled := Scale(ingredients, 2, 4)
	if doubled[0].Quantity != "4" {
		t.Errorf("doubled rice = %q, want %q", doubled[0].Quantity, "4")
	}
	if doubled[1].Quantity != "1" {
		t.Errorf("doubled salt = %q, want %q", doubled[1].Quantity, "1")
	}

	// 4 → 2 人份：減半，1/2 tsp 變 1/4
	halved := Scale(ingredients, 4, 2)
	if halved[0].Quantity != "1" {
		t.Errorf("halved rice = %q, want %q", halved[0].Quantity, "1")
	}
	if halved[1].Quantity != "1/4" {
		t.Errorf("halved salt = %q, want %q", halved[1].Quantity, "1/4")
	}
}

func TestScaleServingDefaults(t *testing.T) {
	ingredients := []common.IngredientLine{{Name: "Rice", Quantity: "4", Unit: "cup"}}

	// 食譜份數非正值 → 4；目標非正值 → 1
	got := Scale(ingredients, 0, 0)
	if got[0].Quantity != "1" {
		t.Errorf("Scale with defaulted servings = %q, want %q", got[0].Quantity, "1")
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{-1, "0"},

		// ≥1：一位小數，整數值不帶小數點
		{1, "1"},
		{2.5, "2.5"},
		{3.04, "3"},
		{1.25, "1.3"},
		{10, "10"},

		// <1：吸附常用分數
		{0.5, "1/2"},
		{0.25, "1/4"},
		{0.125, "1/8"},
		{0.33, "1/3"},
		{0.66, "2/3"},
		{0.75, "3/4"},
		{0.72, "3/4"},

		// 吸附不到 → 修剪過的兩位小數
		{0.9, "0.9"},
		{0.05, "0.05"},
	}

	for _, tt := range tests {
		if got := FormatQuantity(tt.value); got != tt.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	ingredients := []common.IngredientLine{
		{Name: "onion", Quantity: "2", Unit: "", Category: common.CategoryProduce},
		{Name: "Onion", Quantity: "1", Unit: "piece", Category: common.CategoryProduce},
		{Name: "Salt", Quantity: "1", Unit: "tsp", Category: common.CategorySpices},
		{Name: "Rice", Quantity: "2", Unit: "cup", Category: common.CategoryGrains},
		{Name: "Chicken", Quantity: "500", Unit: "g", Category: common.CategoryPoultry},
		{Name: "", Quantity: "1", Unit: ""},
	}

	items := Aggregate(ingredients)
	if len(items) != 4 {
		t.Fatalf("Aggregate returned %d items, want 4: %+v", len(items), items)
	}

	// 分類優先序：produce → poultry → grains → spices
	wantOrder := []string{"Onion", "Chicken", "Rice", "Salt"}
	for i, want := range wantOrder {
		if items[i].Name != want {
			t.Errorf("item[%d].Name = %q, want %q", i, items[i].Name, want)
		}
	}

	// 同名合併：數量保留第一筆，單位取第一個非空的
	if items[0].Quantity != "2" {
		t.Errorf("merged onion quantity = %q, want %q", items[0].Quantity, "2")
	}
	if items[0].Unit != "piece" {
		t.Errorf("merged onion unit = %q, want %q", items[0].Unit, "piece")
	}
}

func TestBuildList(t *testing.T) {
	ingredients := []common.IngredientLine{
		{Name: "Rice", Quantity: "2", Unit: "cup", Category: common.CategoryGrains},
		{Name: "Onion", Quantity: "1", Unit: "", Category: common.CategoryProduce},
	}

	list := BuildList("fried rice", ingredients, 2, 4)
	if list.ID == "" {
		t.Error("BuildList should assign an ID")
	}
	if list.DishName != "fried rice" || list.HouseholdSize != 4 {
		t.Errorf("list metadata = %+v", list)
	}
	if len(list.Items) != 2 {
		t.Fatalf("list has %d items, want 2", len(list.Items))
	}
	// 2 → 4 人份加倍後的量
	if list.Items[1].Quantity != "4" {
		t.Errorf("scaled rice quantity = %q, want %q", list.Items[1].Quantity, "4")
	}
	if list.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}
