package units

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
	"go.uber.org/zap"
)

// 規範單位表：所有同義寫法最終歸一到這個詞彙表的成員
const (
	UnitCup     = "cup"
	UnitTbsp    = "tbsp"
	UnitTsp     = "tsp"
	UnitGram    = "g"
	UnitKg      = "kg"
	UnitMl      = "ml"
	UnitLiter   = "l"
	UnitPiece   = "piece"
	UnitClove   = "clove"
	UnitPinch   = "pinch"
	UnitHandful = "handful"
	UnitOz      = "oz"
	UnitLb      = "lb"
)

// unitAliases 表面寫法 → 規範單位。
// 包含英文全稱、複數、縮寫與印地語音譯（katori、chammach 等）。
var unitAliases = map[string]string{
	"cup": UnitCup, "cups": UnitCup, "katori": UnitCup, "bowl": UnitCup,
	"tbsp": UnitTbsp, "tablespoon": UnitTbsp, "tablespoons": UnitTbsp,
	"badi chammach": UnitTbsp, "bada chammach": UnitTbsp,
	"tsp": UnitTsp, "teaspoon": UnitTsp, "teaspoons": UnitTsp,
	"chammach": UnitTsp, "chamach": UnitTsp, "choti chammach": UnitTsp,
	"g": UnitGram, "gram": UnitGram, "grams": UnitGram, "gm": UnitGram, "gms": UnitGram,
	"kg": UnitKg, "kilogram": UnitKg, "kilograms": UnitKg, "kilo": UnitKg, "kilos": UnitKg,
	"ml": UnitMl, "milliliter": UnitMl, "milliliters": UnitMl, "millilitre": UnitMl, "millilitres": UnitMl,
	"l": UnitLiter, "liter": UnitLiter, "liters": UnitLiter, "litre": UnitLiter, "litres": UnitLiter,
	"piece": UnitPiece, "pieces": UnitPiece, "pc": UnitPiece, "pcs": UnitPiece, "tukda": UnitPiece,
	"clove": UnitClove, "cloves": UnitClove, "kali": UnitClove,
	"pinch": UnitPinch, "pinches": UnitPinch, "chutki": UnitPinch,
	"handful": UnitHandful, "handfuls": UnitHandful, "muthi": UnitHandful,
	"oz": UnitOz, "ounce": UnitOz, "ounces": UnitOz,
	"lb": UnitLb, "lbs": UnitLb, "pound": UnitLb, "pounds": UnitLb,
}

// volumeToMl 體積單位換算成毫升
var volumeToMl = map[string]float64{
	UnitCup:   240,
	UnitTbsp:  15,
	UnitTsp:   5,
	UnitMl:    1,
	UnitLiter: 1000,
}

// 英制重量換算係數
const (
	gramsPerOz = 28.3495
	gramsPerLb = 453.592
)

// Converter 單位與數量換算器。
// 密度換算是啟發式而非物理精確值：密度鍵用子字串比對食材名，
// 複合名稱（例如 "coconut oil"）可能比對到別的鍵，預設視為水。
type Converter struct {
	densities map[string]float64
	// 密度鍵排序後的掃描順序；同時命中多個鍵時結果才可重現
	order []string
}

// defaultDensities 密度表 (g/ml)，可由 YAML 覆蓋
func defaultDensities() map[string]float64 {
	return map[string]float64{
		"rice":   0.85,
		"flour":  0.53,
		"sugar":  0.85,
		"butter": 0.96,
		"milk":   1.03,
		"oil":    0.92,
		"water":  1.0,
	}
}

// NewConverter 創建換算器，可選擇從 YAML 檔覆蓋密度表；
// 檔案讀不到只記 log，不影響啟動。
func NewConverter(densityFile string) *Converter {
	c := &Converter{densities: defaultDensities()}
	applyDensityOverrides(c.densities, densityFile)

	c.order = make([]string, 0, len(c.densities))
	for k := range c.densities {
		c.order = append(c.order, k)
	}
	sort.Strings(c.order)
	return c
}

// applyDensityOverrides 只覆蓋檔案中出現的鍵
func applyDensityOverrides(densities map[string]float64, densityFile string) {
	if densityFile == "" {
		return
	}

	data, err := os.ReadFile(densityFile)
	if err != nil {
		common.LogWarn("密度表載入失敗，使用內建預設值",
			zap.String("path", densityFile),
			zap.Error(err),
		)
		return
	}

	overrides := map[string]float64{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		common.LogWarn("密度表解析失敗，使用內建預設值",
			zap.String("path", densityFile),
			zap.Error(err),
		)
		return
	}

	for k, v := range overrides {
		if v > 0 {
			densities[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	common.LogInfo("密度表已載入",
		zap.String("path", densityFile),
		zap.Int("覆蓋數量", len(overrides)),
	)
}

// ParseQuantity 把數量文字解析成小數。
// 支援整數、小數、分數 ("1/2") 與帶分數 ("1 1/2")；
// 無法解析一律回 1.0，不產生錯誤。
func ParseQuantity(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 1.0
	}

	// 帶分數："1 1/2"
	if strings.Contains(s, " ") && strings.Contains(s, "/") {
		parts := strings.Fields(s)
		if len(parts) >= 2 {
			whole, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				whole = 0
			}
			return whole + parseFraction(parts[1])
		}
	}

	// 簡單分數："1/2"
	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 1.0
	}
	return v
}

// parseFraction 解析 "a/b"，失敗回 1.0
func parseFraction(s string) float64 {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 1.0
	}
	num, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	den, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 1.0
	}
	v := num / den
	if v < 0 {
		return 1.0
	}
	return v
}

// CanonicalUnit 把表面單位寫法歸一成規範單位。
// 不認識的單位原樣放行，ok 為 false 讓呼叫者決定是否併回食材名。
func CanonicalUnit(raw string) (string, bool) {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return "", false
	}
	if canonical, ok := unitAliases[u]; ok {
		return canonical, true
	}
	return raw, false
}

// IsVolumeUnit 判斷是否為體積單位
func IsVolumeUnit(unit string) bool {
	_, ok := volumeToMl[unit]
	return ok
}

// VolumeToMass 體積→質量的密度換算，結果為公克。
// 食材密度用子字串比對密度表，比不到預設水密度 1.0 g/ml。
func (c *Converter) VolumeToMass(quantity float64, unit string, ingredientHint string) (float64, error) {
	canonical, _ := CanonicalUnit(unit)
	ml, ok := volumeToMl[canonical]
	if !ok {
		return 0, fmt.Errorf("not a volume unit: %s", unit)
	}
	return quantity * ml * c.densityFor(ingredientHint), nil
}

// densityFor 依食材名查密度，取排序後固定順序裡第一個命中的子字串
func (c *Converter) densityFor(name string) float64 {
	lower := strings.ToLower(name)
	for _, key := range c.order {
		if strings.Contains(lower, key) {
			return c.densities[key]
		}
	}
	return 1.0
}

// NormalizeWeight 英制重量換算成公制，並依量級重新分桶：
// 達到 1000 g 晉升為 kg。公制重量原樣通過（僅分桶）。
func NormalizeWeight(quantity float64, unit string) (float64, string) {
	canonical, _ := CanonicalUnit(unit)

	var grams float64
	switch canonical {
	case UnitOz:
		grams = quantity * gramsPerOz
	case UnitLb:
		grams = quantity * gramsPerLb
	case UnitGram:
		grams = quantity
	case UnitKg:
		grams = quantity * 1000
	default:
		return quantity, unit
	}

	if grams >= 1000 {
		return grams / 1000, UnitKg
	}
	return grams, UnitGram
}
