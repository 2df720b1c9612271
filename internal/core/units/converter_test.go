package units

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1", 1},
		{"2", 2},
		{"2.5", 2.5},
		{"1/2", 0.5},
		{"3/4", 0.75},
		{"1 1/2", 1.5},
		{"2 1/4", 2.25},
		{"0.25", 0.25},

		// 無法解析一律回 1.0
		{"", 1},
		{"abc", 1},
		{"-3", 1},
		{"1/0", 1},
		{"//", 1},
	}

	for _, tt := range tests {
		got := ParseQuantity(tt.input)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseQuantity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalUnit(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"cups", UnitCup, true},
		{"Cup", UnitCup, true},
		{"tablespoons", UnitTbsp, true},
		{"tsp", UnitTsp, true},
		{"grams", UnitGram, true},
		{"kilo", UnitKg, true},
		{"pounds", UnitLb, true},

		// 印地語音譯
		{"katori", UnitCup, true},
		{"chammach", UnitTsp, true},
		{"badi chammach", UnitTbsp, true},
		{"chutki", UnitPinch, true},
		{"muthi", UnitHandful, true},
		{"tukda", UnitPiece, true},

		// 不認識的單位原樣放行
		{"smidgen", "smidgen", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalUnit(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalUnit(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestVolumeToMass(t *testing.T) {
	c := NewConverter("")

	tests := []struct {
		quantity float64
		unit     string
		hint     string
		want     float64
	}{
		// 1 cup 米 = 240 ml * 0.85 g/ml
		{1, "cup", "basmati rice", 204},
		// 2 tbsp 油 = 30 ml * 0.92
		{2, "tbsp", "vegetable oil", 27.6},
		// 未知食材用水密度
		{1, "cup", "mystery stew", 240},
		{1, "l", "water", 1000},
		// 同時命中 flour 與 rice：排序後 flour 先到
		{1, "cup", "rice flour", 127.2},
	}

	for _, tt := range tests {
		got, err := c.VolumeToMass(tt.quantity, tt.unit, tt.hint)
		if err != nil {
			t.Fatalf("VolumeToMass(%v, %q, %q) error: %v", tt.quantity, tt.unit, tt.hint, err)
		}
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("VolumeToMass(%v, %q, %q) = %v, want %v", tt.quantity, tt.unit, tt.hint, got, tt.want)
		}
	}

	if _, err := c.VolumeToMass(1, "kg", "flour"); err == nil {
		t.Error("VolumeToMass with weight unit should fail")
	}
}

func TestDensityScanDeterministic(t *testing.T) {
	c := NewConverter("")

	first, err := c.VolumeToMass(1, "cup", "rice flour")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		got, err := c.VolumeToMass(1, "cup", "rice flour")
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("VolumeToMass unstable on iteration %d: %v vs %v", i, got, first)
		}
	}
}

func TestDensityOverrideFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "densities.yaml")
	if err := os.WriteFile(path, []byte("rice: 0.7\nhoney: 1.42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewConverter(path)

	tests := []struct {
		hint string
		want float64
	}{
		// 檔案中的鍵被覆蓋
		{"basmati rice", 240 * 0.7},
		// 新鍵加入
		{"honey", 240 * 1.42},
		// 檔案沒提到的鍵維持內建值
		{"plain flour", 240 * 0.53},
	}
	for _, tt := range tests {
		got, err := c.VolumeToMass(1, "cup", tt.hint)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("VolumeToMass(1, cup, %q) = %v, want %v", tt.hint, got, tt.want)
		}
	}
}

func TestDensityOverrideMissingFile(t *testing.T) {
	// 讀不到檔案不影響啟動，內建密度照常生效
	c := NewConverter(filepath.Join(t.TempDir(), "absent.yaml"))
	got, err := c.VolumeToMass(1, "cup", "basmati rice")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-204) > 1e-6 {
		t.Errorf("VolumeToMass with missing override file = %v, want 204", got)
	}
}

func TestNormalizeWeight(t *testing.T) {
	tests := []struct {
		quantity float64
		unit     string
		want     float64
		wantUnit string
	}{
		// 英制換公制
		{1, "oz", 28.3495, UnitGram},
		{1, "lb", 453.592, UnitGram},
		// 量級分桶：達到 1000 g 晉升 kg
		{3, "lb", 1.360776, UnitKg},
		{500, "g", 500, UnitGram},
		{1500, "g", 1.5, UnitKg},
		{2, "kg", 2, UnitKg},
		// 非重量單位原樣通過
		{3, "cup", 3, "cup"},
	}

	for _, tt := range tests {
		got, unit := NormalizeWeight(tt.quantity, tt.unit)
		if math.Abs(got-tt.want) > 1e-6 || unit != tt.wantUnit {
			t.Errorf("NormalizeWeight(%v, %q) = (%v, %q), want (%v, %q)",
				tt.quantity, tt.unit, got, unit, tt.want, tt.wantUnit)
		}
	}
}

func TestIsVolumeUnit(t *testing.T) {
	for _, unit := range []string{UnitCup, UnitTbsp, UnitTsp, UnitMl, UnitLiter} {
		if !IsVolumeUnit(unit) {
			t.Errorf("IsVolumeUnit(%q) = false, want true", unit)
		}
	}
	for _, unit := range []string{UnitGram, UnitKg, UnitPiece, "smidgen"} {
		if IsVolumeUnit(unit) {
			t.Errorf("IsVolumeUnit(%q) = true, want false", unit)
		}
	}
}
