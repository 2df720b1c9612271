package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

const (
	minStepLength  = 5
	maxGuidance    = 10 // tips 與 warnings 個別上限
	contextPreview = 100
)

// noisePatterns 步驟裡的雜訊：方括號註記、optional 括注、版權與署名行
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[[^\]]*\]`),
	regexp.MustCompile(`(?i)\([^)]*optional[^)]*\)`),
	regexp.MustCompile(`(?i)photo credit.*`),
	regexp.MustCompile(`©.*`),
}

var (
	stepNumberPrefix = regexp.MustCompile(`^\d+[\.\)]\s*`)
	bulletPrefix     = regexp.MustCompile(`^[-•]\s*`)
	durationPattern  = regexp.MustCompile(`(?i)(\d+)\s*(minutes?|mins?|seconds?|secs?|hours?|hrs?)`)
	ovenTempPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:°\s*[CF]|degrees?)`)
)

// formalReplacements 口語→正式用語替換表，依序套用
var formalReplacements = []struct{ casual, formal string }{
	{"make sure", "ensure"},
	{"put in", "incorporate"},
	{"don't", "do not"},
	{"doesn't", "does not"},
	{"it's", "it is"},
	{"you'll", "you will"},
	{"won't", "will not"},
	{"can't", "cannot"},
	{"aren't", "are not"},
	{"isn't", "is not"},
	{"haven't", "have not"},
	{"hasn't", "has not"},
	{"til", "until"},
	{"till", "until"},
	{"let", "allow to"},
	{"put", "place"},
	{"keep", "maintain"},
	{"makes", "yields"},
}

var tipKeywords = []string{"tip:", "chef's tip", "pro tip", "note:", "hint:", "suggestion:"}
var warningKeywords = []string{"caution", "warning", "careful", "ensure", "must", "make sure"}

// compiledFormal 預編譯的整詞替換
var compiledFormal = func() []struct {
	re     *regexp.Regexp
	formal string
} {
	out := make([]struct {
		re     *regexp.Regexp
		formal string
	}, 0, len(formalReplacements))
	for _, r := range formalReplacements {
		out = append(out, struct {
			re     *regexp.Regexp
			formal string
		}{regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.casual) + `\b`), r.formal})
	}
	return out
}()

// InstructionProcessor 把爬回來的原始步驟整理成
// 排序去重、正式措辭的步驟清單，並抽出提示、警告與時間軸。
type InstructionProcessor struct{}

// NewInstructionProcessor 創建指示處理器
func NewInstructionProcessor() *InstructionProcessor {
	return &InstructionProcessor{}
}

// Process 清洗、切句、去重、正式化，再掃描提示/警告與時間軸。
// 空輸入回傳零值結果而非 nil 欄位缺失。
func (p *InstructionProcessor) Process(rawSteps []string) common.ProcessedInstructions {
	organized := organize(rawSteps)

	steps := make([]string, 0, len(organized))
	for _, s := range organized {
		steps = append(steps, professionalize(s))
	}

	return common.ProcessedInstructions{
		Steps:    steps,
		Tips:     extractTips(steps),
		Warnings: extractWarnings(steps),
		Timeline: extractTimeline(steps),
	}
}

// organize 清雜訊、切句、去短、去重（保序）
func organize(rawSteps []string) []string {
	var out []string
	seen := map[string]struct{}{}

	for _, raw := range rawSteps {
		text := strings.TrimSpace(raw)
		if len(text) < minStepLength {
			continue
		}
		for _, pattern := range noisePatterns {
			text = pattern.ReplaceAllString(text, "")
		}
		text = strings.Join(strings.Fields(text), " ")
		if len(text) < minStepLength {
			continue
		}

		for _, sentence := range splitSentences(text) {
			if _, dup := seen[sentence]; dup {
				continue
			}
			seen[sentence] = struct{}{}
			out = append(out, sentence)
		}
	}
	return out
}

// splitSentences 把一行裡黏在一起的多個指示拆開：
// 句尾標點後接大寫字母、或分號，視為句界
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		boundary := false
		switch runes[i] {
		case '.', '!', '?':
			// 往後找第一個非空白字元，須為大寫才切
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && j > i+1 && unicode.IsUpper(runes[j]) {
				boundary = true
				i = j - 1
			}
		case ';':
			boundary = true
		}

		if boundary {
			if s := finishSentence(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := finishSentence(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// finishSentence 修尾：去掉分號、保證句點結尾、過短丟棄
func finishSentence(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
	if len(s) <= minStepLength {
		return ""
	}
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

// professionalize 口語換正式措辭、去序號、首字大寫、補句點
func professionalize(step string) string {
	text := strings.TrimRight(step, "!?.")
	text = strings.TrimSpace(text)

	for _, r := range compiledFormal {
		text = r.re.ReplaceAllString(text, r.formal)
	}

	text = stepNumberPrefix.ReplaceAllString(text, "")
	text = bulletPrefix.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	runes := []rune(text)
	text = string(unicode.ToUpper(runes[0])) + string(runes[1:])
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return text
}

// extractTips 掃描提示觸發詞，不從主步驟序列移除
func extractTips(steps []string) []string {
	var tips []string
	for _, step := range steps {
		lower := strings.ToLower(step)
		for _, kw := range tipKeywords {
			idx := strings.Index(lower, kw)
			if idx < 0 {
				continue
			}
			advice := strings.TrimSpace(step[:idx] + step[idx+len(kw):])
			if len(advice) > 10 {
				tips = append(tips, advice)
			}
			break
		}
		if len(tips) >= maxGuidance {
			break
		}
	}
	return tips
}

// extractWarnings 掃描警告觸發詞
func extractWarnings(steps []string) []string {
	var warnings []string
	for _, step := range steps {
		lower := strings.ToLower(step)
		for _, kw := range warningKeywords {
			if strings.Contains(lower, kw) && len(step) > 10 {
				warnings = append(warnings, step)
				break
			}
		}
		if len(warnings) >= maxGuidance {
			break
		}
	}
	return warnings
}

// extractTimeline 每個提到時間或烤箱溫度的步驟貢獻一筆，
// 不嘗試計算總時長
func extractTimeline(steps []string) []common.TimelineEntry {
	var timeline []common.TimelineEntry
	for _, step := range steps {
		entry := common.TimelineEntry{}
		if m := durationPattern.FindStringSubmatch(step); m != nil {
			entry.Duration = m[1] + " " + strings.ToLower(m[2])
		}
		if m := ovenTempPattern.FindString(step); m != "" {
			entry.OvenTemp = m
		}
		if entry.Duration == "" && entry.OvenTemp == "" {
			continue
		}
		// 以 rune 截斷，位元組切片會切壞多位元組文字
		context := []rune(step)
		if len(context) > contextPreview {
			context = context[:contextPreview]
		}
		entry.Context = string(context)
		timeline = append(timeline, entry)
	}
	return timeline
}
