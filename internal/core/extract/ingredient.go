package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/units"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// 單頁最多取 50 筆食材、搜尋前 20 個段落，避免非食譜頁面灌水
const (
	maxIngredients    = 50
	maxParagraphScan  = 20
	minIngredientName = 2
)

// quantityPattern 數量-單位-名稱：帶分數、簡單分數或十進位開頭，
// 後接可選單位 token 與其餘名稱
var quantityPattern = regexp.MustCompile(
	`^((?:\d+\s+\d+\s*/\s*\d+)|(?:\d+\s*/\s*\d+)|(?:\d+(?:\.\d+)?))\s*([a-zA-Z]+)?\s+(.+)$`)

var (
	leadingMarker  = regexp.MustCompile(`^\s*(?:[-•*▢☐✓]|\d+[\.\)])\s*`)
	leadingArticle = regexp.MustCompile(`(?i)^(a|an|some|the)\s+`)
	trailingFiller = regexp.MustCompile(`(?i)\s+(to taste|as needed|optional)$`)
)

// hiddenChars 零寬與不換行字元，爬回來的頁面常夾帶
var hiddenChars = strings.NewReplacer(
	"​", "", "‌", "", "‍", "", "\uFEFF", "",
	" ", " ",
)

// noiseWords 導覽雜訊黑名單：非食譜頁面的選單、推薦區塊文字
var noiseWords = map[string]struct{}{
	"more": {}, "trending": {}, "menu": {}, "home": {}, "about": {},
	"contact": {}, "search": {}, "login": {}, "sign up": {}, "signup": {},
	"subscribe": {}, "follow": {}, "share": {}, "related": {},
	"comments": {}, "popular": {}, "latest": {}, "advertisement": {},
	"privacy policy": {}, "read more": {}, "recipes": {}, "videos": {},
}

// categoryKeywords 分類關鍵字表，含印地語音譯同義詞。
// 順序即比對優先序，第一個命中的分類勝出。
var categoryKeywords = []struct {
	category common.Category
	keywords []string
}{
	{common.CategoryProduce, []string{
		"tomato", "onion", "garlic", "potato", "carrot", "lettuce",
		"pepper", "cucumber", "spinach", "broccoli", "cauliflower",
		"aloo", "pyaaz", "tamatar", "palak", "bhindi", "gobhi", "adrak", "lehsun",
	}},
	{common.CategoryDairy, []string{
		"milk", "cheese", "butter", "cream", "yogurt", "sour cream",
		"paneer", "ghee", "dahi", "doodh", "malai",
	}},
	{common.CategoryMeat, []string{"beef", "pork", "lamb", "steak", "ground", "mutton", "gosht"}},
	{common.CategoryPoultry, []string{"chicken", "turkey", "duck", "murgh"}},
	{common.CategorySeafood, []string{"fish", "salmon", "shrimp", "crab", "lobster", "machhli", "jhinga"}},
	{common.CategoryGrains, []string{"rice", "pasta", "flour", "bread", "wheat", "chawal", "atta", "maida", "suji"}},
	{common.CategorySpices, []string{
		"salt", "cumin", "turmeric", "coriander", "spice", "masala",
		"haldi", "jeera", "dhania", "mirch", "hing", "methi", "namak",
	}},
}

// ingredientSelectors 已知的食材 microdata / class 標記，依序嘗試
var ingredientSelectors = []string{
	`[itemprop="recipeIngredient"]`,
	`[itemprop="ingredients"]`,
	".recipe-ingredient",
	".ingredients li",
	".ingredient",
	"#ingredients li",
	".ingredient-list li",
}

// Extractor 食材萃取器：結構化列表、HTML 標記與自由文字三種入口，
// 輸出一律是去重後的 IngredientLine。
type Extractor struct{}

// NewExtractor 創建食材萃取器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// FromStructured 處理已是逐行食材的結構化輸入（JSON-LD recipeIngredient 等）
func (e *Extractor) FromStructured(rawLines []string) []common.IngredientLine {
	return e.parseLines(rawLines)
}

// FromFreeText 處理自由文字行
func (e *Extractor) FromFreeText(lines []string) []common.IngredientLine {
	return e.parseLines(lines)
}

// FromMarkup 從 HTML 文件萃取食材。
// 依序嘗試：microdata 標記 → ul/ol 列表 → 提到 ingredient/recipe 的段落，
// 第一個有結果的策略勝出。
func (e *Extractor) FromMarkup(doc *goquery.Document) []common.IngredientLine {
	// 策略一：已知食材標記
	for _, selector := range ingredientSelectors {
		var lines []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			lines = append(lines, s.Text())
		})
		if out := e.parseLines(lines); len(out) > 0 {
			return out
		}
	}

	// 策略二：一般列表
	var found []common.IngredientLine
	doc.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		var lines []string
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			lines = append(lines, li.Text())
		})
		if out := e.parseLines(lines); len(out) > 0 {
			found = out
			return false
		}
		return true
	})
	if len(found) > 0 {
		return found
	}

	// 策略三：提到 ingredient / recipe 的段落（最後手段）
	var lines []string
	doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= maxParagraphScan {
			return false
		}
		text := p.Text()
		lower := strings.ToLower(text)
		if strings.Contains(lower, "ingredient") || strings.Contains(lower, "recipe") {
			lines = append(lines, text)
		}
		return true
	})
	return e.parseLines(lines)
}

// parseLines 逐行解析並以 (小寫名稱, 數量, 單位) 去重，保留首見順序
func (e *Extractor) parseLines(lines []string) []common.IngredientLine {
	var out []common.IngredientLine
	seen := map[string]struct{}{}

	for _, line := range lines {
		ing, ok := e.ParseLine(line)
		if !ok {
			continue
		}
		key := strings.ToLower(ing.Name) + "|" + ing.Quantity + "|" + ing.Unit
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ing)
		if len(out) >= maxIngredients {
			break
		}
	}
	return out
}

// ParseLine 解析一行食材文字。
// 數量缺失時整行視為名稱、數量補 "1"；
// 單位 token 不在詞彙表時併回食材名（規避誤判）。
func (e *Extractor) ParseLine(text string) (common.IngredientLine, bool) {
	cleaned := CleanLine(text)
	if len(cleaned) < 3 {
		return common.IngredientLine{}, false
	}

	var name, quantity, unit string
	if m := quantityPattern.FindStringSubmatch(cleaned); m != nil {
		quantity = strings.Join(strings.Fields(m[1]), " ")
		unit = strings.TrimSpace(m[2])
		name = strings.TrimSpace(m[3])

		if canonical, known := units.CanonicalUnit(unit); known {
			unit = canonical
		} else if unit != "" {
			// 被抓成單位的詞其實是名稱的一部分
			name = strings.TrimSpace(unit + " " + name)
			unit = ""
		}
	} else {
		name = cleaned
		quantity = "1"
	}

	name = cleanName(name)
	if len(name) < minIngredientName || IsNoise(name) {
		return common.IngredientLine{}, false
	}

	return common.IngredientLine{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		Category: Categorize(name),
	}, true
}

// CleanLine 去掉項目符號、序號與零寬字元，壓縮空白
func CleanLine(text string) string {
	s := hiddenChars.Replace(text)
	s = leadingMarker.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// cleanName 清洗食材名：去冠詞與 "to taste" 類尾註，首字大寫
func cleanName(name string) string {
	s := leadingArticle.ReplaceAllString(name, "")
	s = trailingFiller.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

// IsNoise 過濾導覽雜訊與幾乎沒有字母的字串，
// 防止非食譜頁面污染結果
func IsNoise(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if _, ok := noiseWords[lower]; ok {
		return true
	}

	var letters, total int
	for _, r := range lower {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return true
	}
	return letters*2 < total
}

// Categorize 以關鍵字歸類食材，第一個命中的分類勝出，預設 other
func Categorize(name string) common.Category {
	lower := strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return common.CategoryOther
}
