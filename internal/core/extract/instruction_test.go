package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestProcessSteps(t *testing.T) {
	p := NewInstructionProcessor()

	raw := []string{
		"1. Heat oil in a pan. Add onions and fry till golden.",
		"Make sure the pan is hot [see photo]",
		"Bake at 180°C for 45 minutes",
		"Tip: soak the rice for 30 minutes before cooking",
		"1. Heat oil in a pan. Add onions and fry till golden.", // 重複行
	}

	got := p.Process(raw)

	wantSteps := []string{
		"Heat oil in a pan.",
		"Add onions and fry until golden.",
		"Ensure the pan is hot.",
		"Bake at 180°C for 45 minutes.",
		"Tip: soak the rice for 30 minutes before cooking.",
	}
	if len(got.Steps) != len(wantSteps) {
		t.Fatalf("Process returned %d steps, want %d: %+v", len(got.Steps), len(wantSteps), got.Steps)
	}
	for i, want := range wantSteps {
		if got.Steps[i] != want {
			t.Errorf("step[%d] = %q, want %q", i, got.Steps[i], want)
		}
	}
}

func TestProcessTips(t *testing.T) {
	got := NewInstructionProcessor().Process([]string{
		"Tip: soak the rice for thirty minutes",
		"Pro tip use day-old rice for fried rice",
		"Stir continuously over low heat",
	})

	if len(got.Tips) != 2 {
		t.Fatalf("got %d tips, want 2: %+v", len(got.Tips), got.Tips)
	}
	if got.Tips[0] != "soak the rice for thirty minutes." {
		t.Errorf("tip[0] = %q", got.Tips[0])
	}
}

func TestProcessWarnings(t *testing.T) {
	got := NewInstructionProcessor().Process([]string{
		"Be careful when adding water to hot oil",
		"The dough must rest for an hour",
		"Garnish with coriander",
	})

	if len(got.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %+v", len(got.Warnings), got.Warnings)
	}
}

func TestProcessTimeline(t *testing.T) {
	got := NewInstructionProcessor().Process([]string{
		"Simmer for 20 minutes on low heat",
		"Preheat the oven to 200 degrees",
		"Serve hot with naan",
	})

	if len(got.Timeline) != 2 {
		t.Fatalf("got %d timeline entries, want 2: %+v", len(got.Timeline), got.Timeline)
	}
	if got.Timeline[0].Duration != "20 minutes" {
		t.Errorf("timeline[0].Duration = %q, want %q", got.Timeline[0].Duration, "20 minutes")
	}
	if got.Timeline[1].OvenTemp != "200 degrees" {
		t.Errorf("timeline[1].OvenTemp = %q, want %q", got.Timeline[1].OvenTemp, "200 degrees")
	}
}

func TestProcessTimelineContextMultibyte(t *testing.T) {
	// 超過預覽長度且含多位元組文字的步驟，截斷不可切壞字元
	step := "Simmer for 10 minutes " + strings.Repeat("धीमी आंच पर ", 12)
	got := NewInstructionProcessor().Process([]string{step})

	if len(got.Timeline) != 1 {
		t.Fatalf("got %d timeline entries, want 1: %+v", len(got.Timeline), got.Timeline)
	}
	context := got.Timeline[0].Context
	if !utf8.ValidString(context) {
		t.Errorf("context is not valid UTF-8: %q", context)
	}
	if n := len([]rune(context)); n != 100 {
		t.Errorf("context preview is %d runes, want 100", n)
	}
}

func TestSplitSentencesSemicolon(t *testing.T) {
	got := splitSentences("Chop the onions; mince the garlic")
	want := []string{"Chop the onions.", "mince the garlic."}

	if len(got) != len(want) {
		t.Fatalf("splitSentences returned %d sentences, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProcessEmptyInput(t *testing.T) {
	got := NewInstructionProcessor().Process(nil)
	if len(got.Steps) != 0 || len(got.Tips) != 0 || len(got.Warnings) != 0 || len(got.Timeline) != 0 {
		t.Errorf("empty input should yield empty result, got %+v", got)
	}
}
