package common

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizeDishName 正規化菜名作為查詢鍵：
// 去掉 "recipe" / "how to make" 之類的前後綴，壓縮空白，逐字首字大寫。
func NormalizeDishName(dishName string) string {
	s := strings.TrimSpace(dishName)
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")

	lower := strings.ToLower(s)
	for _, prefix := range []string{"recipe for ", "how to make ", "how to cook "} {
		if strings.HasPrefix(lower, prefix) {
			s = s[len(prefix):]
			lower = strings.ToLower(s)
		}
	}
	for _, suffix := range []string{" recipe", " dish"} {
		if strings.HasSuffix(lower, suffix) {
			s = s[:len(s)-len(suffix)]
			lower = strings.ToLower(s)
		}
	}

	words := strings.Fields(s)
	for i, w := range words {
		// 逐 rune 處理，位元組切片會切壞多位元組文字
		r := []rune(w)
		words[i] = string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
