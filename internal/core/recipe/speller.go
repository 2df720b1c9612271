package recipe

import "strings"

// maxEditDistance 可接受的最大編輯距離
const maxEditDistance = 2

// knownDishes 規範菜名字典，拼字校正的比對基準
var knownDishes = []string{
	"biryani", "butter chicken", "paneer tikka", "dal makhani", "tandoori chicken",
	"samosa", "naan", "roti", "dal", "chole bhature", "aloo gobi", "chana masala",
	"dal tadka", "pulao", "kheer", "gulab jamun", "jalebi", "halwa", "laddu",
	"pasta", "carbonara", "lasagna", "pizza", "risotto", "fried rice",
	"tomato soup", "chicken soup", "caesar salad", "greek salad",
	"sandwich", "burger", "omelet", "pancake", "steak", "salmon",
}

// knownMisspellings 常見錯拼 → 正確拼法，比編輯距離更快也更準
var knownMisspellings = map[string]string{
	"briyani":  "biryani",
	"biriyani": "biryani",
	"panner":   "paneer",
	"chiken":   "chicken",
	"omlette":  "omelet",
	"omelette": "omelet",
	"piza":     "pizza",
	"lasagne":  "lasagna",
	"spagetti": "spaghetti",
}

// CorrectSpelling 對菜名做有界編輯距離的拼字校正。
// 先查錯拼表，再逐詞對字典找編輯距離 ≤2 的最近詞；
// 校正不到時原樣回傳，ok 表示是否有更動。
func CorrectSpelling(dishName string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(dishName))
	if lower == "" {
		return dishName, false
	}

	// 整句在錯拼表
	if fixed, ok := knownMisspellings[lower]; ok {
		if fixed != lower {
			return fixed, true
		}
		return dishName, false
	}

	// 整句對字典
	if best, dist := closestDish(lower); dist > 0 && dist <= maxEditDistance {
		return best, true
	}

	// 逐詞校正（"chiken curry" → "chicken curry"）
	words := strings.Fields(lower)
	changed := false
	for i, w := range words {
		if fixed, ok := knownMisspellings[w]; ok && fixed != w {
			words[i] = fixed
			changed = true
			continue
		}
		if best, dist := closestWord(w); dist > 0 && dist <= maxEditDistance {
			words[i] = best
			changed = true
		}
	}
	if changed {
		return strings.Join(words, " "), true
	}
	return dishName, false
}

// closestDish 在字典中找編輯距離最小的菜名
func closestDish(name string) (string, int) {
	best := ""
	bestDist := -1
	for _, dish := range knownDishes {
		d := levenshtein(name, dish)
		if bestDist < 0 || d < bestDist {
			best, bestDist = dish, d
		}
	}
	return best, bestDist
}

// closestWord 對字典裡的單一詞彙比對，太短的詞不校正以免誤傷
func closestWord(word string) (string, int) {
	if len(word) < 4 {
		return word, 0
	}

	best := ""
	bestDist := -1
	for _, dish := range knownDishes {
		for _, dw := range strings.Fields(dish) {
			if len(dw) < 4 {
				continue
			}
			d := levenshtein(word, dw)
			if bestDist < 0 || d < bestDist {
				best, bestDist = dw, d
			}
		}
	}
	if best == "" {
		return word, 0
	}
	return best, bestDist
}

// levenshtein 標準動態規劃編輯距離，滾動單列
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		current := make([]int, len(rb)+1)
		current[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current[j] = min3(
				prev[j]+1,
				current[j-1]+1,
				prev[j-1]+cost,
			)
		}
		prev = current
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
