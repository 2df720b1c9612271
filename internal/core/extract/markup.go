package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxInstructionSteps = 20
	defaultServings     = 4
)

// instructionSelectors 常見的作法區塊標記，依序嘗試
var instructionSelectors = []string{
	`[itemprop="recipeInstructions"]`,
	".recipe-instructions",
	".instructions",
	"#instructions",
	".recipe-steps",
}

// servingSelectors 份量標記
var servingSelectors = []string{
	`[itemprop="recipeYield"]`,
	".servings",
	".recipe-servings",
	"#servings",
}

// InstructionsFromMarkup 從 HTML 萃取作法步驟。
// 標記區塊內優先取 li/p/div 文字；全都沒有時退回前十個段落。
func InstructionsFromMarkup(doc *goquery.Document) []string {
	var instructions []string

	for _, selector := range instructionSelectors {
		doc.Find(selector).Each(func(_ int, block *goquery.Selection) {
			block.Find("li, p, div").Each(func(_ int, step *goquery.Selection) {
				text := strings.TrimSpace(step.Text())
				if len(text) > 10 {
					instructions = append(instructions, text)
				}
			})
			// 區塊本身就是一個步驟（沒有子元素）
			if block.Children().Length() == 0 {
				text := strings.TrimSpace(block.Text())
				if len(text) > 10 {
					instructions = append(instructions, text)
				}
			}
		})
		if len(instructions) > 0 {
			break
		}
	}

	if len(instructions) == 0 {
		doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
			if i >= 10 {
				return false
			}
			text := strings.TrimSpace(p.Text())
			if len(text) > 20 {
				instructions = append(instructions, text)
			}
			return true
		})
	}

	if len(instructions) > maxInstructionSteps {
		instructions = instructions[:maxInstructionSteps]
	}
	return instructions
}

// ServingsFromMarkup 從 HTML 萃取份量，找不到預設 4
func ServingsFromMarkup(doc *goquery.Document) int {
	for _, selector := range servingSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if m := numberPattern.FindString(text); m != "" {
			if n, err := strconv.Atoi(strings.SplitN(m, ".", 2)[0]); err == nil && n > 0 {
				return n
			}
		}
	}
	return defaultServings
}
