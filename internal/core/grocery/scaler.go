package grocery

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// snapTolerance 分數吸附容差
const snapTolerance = 0.05

// cookingFractions 常用烹飪分數，小於 1 的量優先吸附到這些值
var cookingFractions = []struct {
	value float64
	label string
}{
	{1.0 / 8.0, "1/8"},
	{1.0 / 4.0, "1/4"},
	{1.0 / 3.0, "1/3"},
	{1.0 / 2.0, "1/2"},
	{2.0 / 3.0, "2/3"},
	{3.0 / 4.0, "3/4"},
}

// Scale 依目標份數縮放食材量。
// 份數非正值先換成安全預設，倍率 1 時原樣回傳。
func Scale(ingredients []common.IngredientLine, originalServings, targetServings int) []common.IngredientLine {
	if originalServings <= 0 {
		originalServings = 4
	}
	if targetServings <= 0 {
		targetServings = 1
	}

	factor := float64(targetServings) / float64(originalServings)
	scaled := make([]common.IngredientLine, len(ingredients))

	for i, ing := range ingredients {
		scaled[i] = ing
		if factor == 1.0 {
			continue
		}
		quantity := units.ParseQuantity(ing.Quantity)
		scaled[i].Quantity = FormatQuantity(quantity * factor)
	}
	return scaled
}

// FormatQuantity 把縮放後的小數格式化成烹飪慣用寫法：
// ≥1 取一位小數（整數值不帶小數點），<1 吸附常用分數，
// 吸附不到退回兩位小數。
func FormatQuantity(value float64) string {
	if value <= 0 {
		return "0"
	}

	if value >= 1 {
		rounded := math.Round(value*10) / 10
		if rounded == math.Trunc(rounded) {
			return strconv.Itoa(int(rounded))
		}
		return strconv.FormatFloat(rounded, 'f', 1, 64)
	}

	for _, frac := range cookingFractions {
		if math.Abs(value-frac.value) <= snapTolerance {
			return frac.label
		}
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}
