package nutrition

import (
	"sort"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// dishTable 常見菜色的每份營養值。
// 先精確比對，再做雙向子字串比對（"chicken biryani" 命中 "biryani"）。
var dishTable = map[string]common.NutritionSummary{
	// 咖哩與印度菜
	"biryani":          {Calories: 450, Protein: 15, Fat: 18, Carbs: 55, Fiber: 1, Sugar: 2, Sodium: 780},
	"butter chicken":   {Calories: 420, Protein: 30, Fat: 22, Carbs: 18, Fiber: 1, Sugar: 3, Sodium: 850},
	"paneer tikka":     {Calories: 280, Protein: 18, Fat: 16, Carbs: 8, Fiber: 1, Sugar: 1, Sodium: 650},
	"dal makhani":      {Calories: 320, Protein: 12, Fat: 14, Carbs: 35, Fiber: 6, Sugar: 2, Sodium: 720},
	"tandoori chicken": {Calories: 200, Protein: 28, Fat: 8, Carbs: 3, Sugar: 1, Sodium: 520},
	"samosa":           {Calories: 310, Protein: 6, Fat: 16, Carbs: 36, Fiber: 2, Sugar: 1, Sodium: 380},
	"naan":             {Calories: 262, Protein: 9, Fat: 5.5, Carbs: 43, Fiber: 1.4, Sugar: 1, Sodium: 500},
	"roti":             {Calories: 264, Protein: 9, Fat: 1.5, Carbs: 48, Fiber: 7, Sugar: 0.5, Sodium: 400},
	"dal":              {Calories: 230, Protein: 16, Fat: 2, Carbs: 40, Fiber: 12, Sugar: 1, Sodium: 450},
	"chole bhature":    {Calories: 450, Protein: 14, Fat: 18, Carbs: 58, Fiber: 8, Sugar: 2, Sodium: 680},
	"aloo gobi":        {Calories: 180, Protein: 5, Fat: 8, Carbs: 24, Fiber: 4, Sugar: 3, Sodium: 420},
	"chana masala":     {Calories: 280, Protein: 11, Fat: 10, Carbs: 38, Fiber: 10, Sugar: 4, Sodium: 650},
	"dal tadka":        {Calories: 240, Protein: 17, Fat: 3, Carbs: 38, Fiber: 10, Sugar: 2, Sodium: 480},
	"pulao":            {Calories: 380, Protein: 8, Fat: 12, Carbs: 58, Fiber: 2, Sugar: 1, Sodium: 620},

	// 甜點
	"kheer":       {Calories: 320, Protein: 8, Fat: 12, Carbs: 48, Sugar: 38, Sodium: 180},
	"gulab jamun": {Calories: 180, Protein: 2, Fat: 8, Carbs: 26, Sugar: 22, Sodium: 80},
	"jalebi":      {Calories: 150, Protein: 1, Fat: 5, Carbs: 26, Sugar: 24, Sodium: 60},
	"barfi":       {Calories: 200, Protein: 4, Fat: 10, Carbs: 26, Fiber: 1, Sugar: 20, Sodium: 120},
	"rasgulla":    {Calories: 130, Protein: 3, Fat: 0.5, Carbs: 28, Sugar: 26, Sodium: 100},
	"halwa":       {Calories: 350, Protein: 5, Fat: 18, Carbs: 44, Fiber: 2, Sugar: 35, Sodium: 150},
	"laddu":       {Calories: 220, Protein: 4, Fat: 12, Carbs: 28, Fiber: 1, Sugar: 22, Sodium: 100},
	"payasam":     {Calories: 280, Protein: 4, Fat: 10, Carbs: 42, Fiber: 1, Sugar: 36, Sodium: 140},
	"pudding":     {Calories: 250, Protein: 6, Fat: 8, Carbs: 38, Sugar: 32, Sodium: 120},
	"brownie":     {Calories: 240, Protein: 3, Fat: 12, Carbs: 32, Fiber: 1, Sugar: 26, Sodium: 180},
	"cheesecake":  {Calories: 350, Protein: 6, Fat: 20, Carbs: 38, Sugar: 30, Sodium: 220},
	"ice cream":   {Calories: 200, Protein: 4, Fat: 10, Carbs: 24, Sugar: 22, Sodium: 80},
	"cake":        {Calories: 280, Protein: 3, Fat: 12, Carbs: 40, Fiber: 1, Sugar: 32, Sodium: 280},
	"cookie":      {Calories: 150, Protein: 2, Fat: 7, Carbs: 20, Sugar: 12, Sodium: 120},
	"chocolate":   {Calories: 240, Protein: 3, Fat: 14, Carbs: 26, Fiber: 2, Sugar: 23, Sodium: 15},

	// 麵飯類
	"pasta":      {Calories: 320, Protein: 12, Fat: 10, Carbs: 48, Fiber: 2, Sugar: 2, Sodium: 350},
	"carbonara":  {Calories: 420, Protein: 18, Fat: 22, Carbs: 40, Fiber: 1, Sugar: 1, Sodium: 680},
	"lasagna":    {Calories: 380, Protein: 20, Fat: 15, Carbs: 42, Fiber: 2, Sugar: 3, Sodium: 720},
	"pizza":      {Calories: 300, Protein: 12, Fat: 12, Carbs: 36, Fiber: 2, Sugar: 2, Sodium: 580},
	"risotto":    {Calories: 350, Protein: 10, Fat: 12, Carbs: 48, Fiber: 1, Sugar: 2, Sodium: 620},
	"fried rice": {Calories: 280, Protein: 9, Fat: 10, Carbs: 40, Fiber: 1, Sugar: 1, Sodium: 580},

	// 湯品
	"soup":         {Calories: 120, Protein: 6, Fat: 4, Carbs: 14, Fiber: 2, Sugar: 2, Sodium: 480},
	"tomato soup":  {Calories: 100, Protein: 3, Fat: 3, Carbs: 16, Fiber: 2, Sugar: 4, Sodium: 520},
	"chicken soup": {Calories: 140, Protein: 14, Fat: 5, Carbs: 8, Fiber: 1, Sugar: 1, Sodium: 620},
	"broth":        {Calories: 30, Protein: 4, Fat: 1, Carbs: 1, Sodium: 820},

	// 沙拉
	"salad":        {Calories: 150, Protein: 6, Fat: 10, Carbs: 12, Fiber: 3, Sugar: 3, Sodium: 280},
	"caesar salad": {Calories: 240, Protein: 10, Fat: 16, Carbs: 14, Fiber: 2, Sugar: 1, Sodium: 520},
	"greek salad":  {Calories: 180, Protein: 8, Fat: 12, Carbs: 12, Fiber: 3, Sugar: 4, Sodium: 480},

	// 三明治類
	"sandwich": {Calories: 350, Protein: 15, Fat: 12, Carbs: 42, Fiber: 2, Sugar: 3, Sodium: 680},
	"burger":   {Calories: 450, Protein: 22, Fat: 20, Carbs: 42, Fiber: 2, Sugar: 6, Sodium: 820},
	"wrap":     {Calories: 320, Protein: 12, Fat: 10, Carbs: 42, Fiber: 3, Sugar: 2, Sodium: 580},

	// 早餐
	"omelet":  {Calories: 200, Protein: 16, Fat: 12, Carbs: 2, Sodium: 280},
	"pancake": {Calories: 280, Protein: 8, Fat: 10, Carbs: 40, Fiber: 1, Sugar: 12, Sodium: 480},
	"waffle":  {Calories: 300, Protein: 7, Fat: 12, Carbs: 42, Fiber: 1, Sugar: 14, Sodium: 520},
	"toast":   {Calories: 200, Protein: 8, Fat: 8, Carbs: 24, Fiber: 3, Sugar: 2, Sodium: 320},
	"cereal":  {Calories: 180, Protein: 4, Fat: 2, Carbs: 36, Fiber: 2, Sugar: 8, Sodium: 260},

	// 肉類海鮮
	"steak":  {Calories: 350, Protein: 45, Fat: 18, Sodium: 75},
	"fish":   {Calories: 280, Protein: 32, Fat: 14, Sodium: 80},
	"shrimp": {Calories: 100, Protein: 20, Fat: 2, Sodium: 180},
	"salmon": {Calories: 300, Protein: 32, Fat: 16, Sodium: 75},
}

// ingredientTable 食材每 100 公克的營養值，
// 用子字串比對食材名（"basmati rice" 命中 "rice"）
var ingredientTable = map[string]common.NutritionSummary{
	"rice":     {Calories: 130, Protein: 2.7, Fat: 0.3, Carbs: 28, Fiber: 0.4, Sugar: 0.1, Sodium: 1},
	"flour":    {Calories: 364, Protein: 10, Fat: 1, Carbs: 76, Fiber: 2.7, Sugar: 0.3, Sodium: 2},
	"chicken":  {Calories: 165, Protein: 31, Fat: 3.6, Sodium: 74},
	"mutton":   {Calories: 294, Protein: 25, Fat: 21, Sodium: 72},
	"fish":     {Calories: 140, Protein: 25, Fat: 4, Sodium: 60},
	"prawn":    {Calories: 99, Protein: 24, Fat: 0.3, Sodium: 111},
	"egg":      {Calories: 155, Protein: 13, Fat: 11, Carbs: 1.1, Sugar: 1.1, Sodium: 124},
	"paneer":   {Calories: 265, Protein: 18, Fat: 21, Carbs: 1.2, Sodium: 18},
	"cheese":   {Calories: 402, Protein: 25, Fat: 33, Carbs: 1.3, Sugar: 0.5, Sodium: 621},
	"milk":     {Calories: 61, Protein: 3.2, Fat: 3.3, Carbs: 4.8, Sugar: 5.1, Sodium: 43},
	"yogurt":   {Calories: 59, Protein: 10, Fat: 0.7, Carbs: 3.6, Sugar: 3.2, Sodium: 36},
	"curd":     {Calories: 59, Protein: 10, Fat: 0.7, Carbs: 3.6, Sugar: 3.2, Sodium: 36},
	"butter":   {Calories: 717, Protein: 0.9, Fat: 81, Carbs: 0.1, Sodium: 11},
	"ghee":     {Calories: 900, Fat: 100},
	"oil":      {Calories: 884, Fat: 100},
	"sugar":    {Calories: 387, Carbs: 100, Sugar: 100, Sodium: 1},
	"onion":    {Calories: 40, Protein: 1.1, Fat: 0.1, Carbs: 9.3, Fiber: 1.7, Sugar: 4.2, Sodium: 4},
	"tomato":   {Calories: 18, Protein: 0.9, Fat: 0.2, Carbs: 3.9, Fiber: 1.2, Sugar: 2.6, Sodium: 5},
	"potato":   {Calories: 77, Protein: 2, Fat: 0.1, Carbs: 17, Fiber: 2.2, Sugar: 0.8, Sodium: 6},
	"carrot":   {Calories: 41, Protein: 0.9, Fat: 0.2, Carbs: 9.6, Fiber: 2.8, Sugar: 4.7, Sodium: 69},
	"spinach":  {Calories: 23, Protein: 2.9, Fat: 0.4, Carbs: 3.6, Fiber: 2.2, Sugar: 0.4, Sodium: 79},
	"peas":     {Calories: 81, Protein: 5.4, Fat: 0.4, Carbs: 14, Fiber: 5.7, Sugar: 5.7, Sodium: 5},
	"lentil":   {Calories: 116, Protein: 9, Fat: 0.4, Carbs: 20, Fiber: 7.9, Sugar: 1.8, Sodium: 2},
	"chickpea": {Calories: 164, Protein: 8.9, Fat: 2.6, Carbs: 27, Fiber: 7.6, Sugar: 4.8, Sodium: 7},
	"garlic":   {Calories: 149, Protein: 6.4, Fat: 0.5, Carbs: 33, Fiber: 2.1, Sugar: 1, Sodium: 17},
	"ginger":   {Calories: 80, Protein: 1.8, Fat: 0.8, Carbs: 18, Fiber: 2, Sugar: 1.7, Sodium: 13},
	"salt":     {Sodium: 38758},
	"cream":    {Calories: 340, Protein: 2.1, Fat: 36, Carbs: 2.8, Sugar: 2.9, Sodium: 26},
	"bread":    {Calories: 265, Protein: 9, Fat: 3.2, Carbs: 49, Fiber: 2.7, Sugar: 5, Sodium: 491},
	"pasta":    {Calories: 131, Protein: 5, Fat: 1.1, Carbs: 25, Fiber: 1.8, Sugar: 0.6, Sodium: 1},
}

// pieceWeights 計數型單位的估計重量 (g)，query 不到用 piece 預設
var pieceWeights = map[string]float64{
	"onion":    110,
	"tomato":   120,
	"potato":   150,
	"egg":      50,
	"carrot":   60,
	"lemon":    60,
	"chili":    10,
	"chilli":   10,
	"capsicum": 120,
}

const (
	defaultPieceGrams = 100
	cloveGrams        = 3
	pinchGrams        = 0.3
	handfulGrams      = 30
)

// categoryDefaults 依菜名關鍵字分類的保底估計值，順序比對
var categoryDefaults = []struct {
	keywords []string
	summary  common.NutritionSummary
}{
	{
		[]string{"cake", "dessert", "sweet", "candy", "chocolate", "brownie", "pudding", "ice cream", "cheesecake", "cookie", "biscuit", "tart", "pie"},
		common.NutritionSummary{Calories: 280, Protein: 3, Fat: 12, Carbs: 40, Fiber: 1, Sugar: 32, Sodium: 200},
	},
	{
		[]string{"salad"},
		common.NutritionSummary{Calories: 150, Protein: 6, Fat: 8, Carbs: 14, Fiber: 3, Sugar: 3, Sodium: 300},
	},
	{
		[]string{"steak", "beef", "chicken", "fish", "salmon", "shrimp", "pork", "lamb", "meat"},
		common.NutritionSummary{Calories: 320, Protein: 35, Fat: 14, Carbs: 8, Sugar: 1, Sodium: 400},
	},
	{
		[]string{"soup", "broth", "stew", "curry"},
		common.NutritionSummary{Calories: 200, Protein: 10, Fat: 7, Carbs: 22, Fiber: 2, Sugar: 3, Sodium: 500},
	},
}

// genericDefault 均衡一餐的通用估計
var genericDefault = common.NutritionSummary{Calories: 250, Protein: 12, Fat: 9, Carbs: 32, Fiber: 2, Sugar: 5, Sodium: 400}

// 子字串比對須走固定順序：直接 range map 的話，
// 同時命中多個鍵的名稱（"salted butter"）每次執行結果會不同
var (
	dishKeys       = sortedKeys(dishTable)
	ingredientKeys = sortedKeys(ingredientTable)
	pieceKeys      = sortedKeys(pieceWeights)
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
