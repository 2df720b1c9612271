package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// DuckDuckGoSearch 網頁搜尋來源。
// 用 HTML 版搜尋頁，不需要 API 金鑰。
type DuckDuckGoSearch struct {
	config *config.Config
	client *resty.Client
}

// NewDuckDuckGoSearch 創建搜尋來源
func NewDuckDuckGoSearch(cfg *config.Config) *DuckDuckGoSearch {
	client := resty.New().
		SetBaseURL("https://html.duckduckgo.com").
		SetTimeout(cfg.Sources.Search.Timeout).
		SetHeader("User-Agent", cfg.Sources.Fetcher.UserAgent)

	return &DuckDuckGoSearch{config: cfg, client: client}
}

func (s *DuckDuckGoSearch) Name() string { return "duckduckgo" }

// Search 取結果頁連結，去掉搜尋引擎與影音站自身的 URL
func (s *DuckDuckGoSearch) Search(ctx context.Context, query string) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("/html/")
	if err != nil {
		return nil, common.NewSourceError(common.KindSourceUnavailable, s.Name(), err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, common.NewSourceError(common.KindSourceUnavailable, s.Name(), fmt.Errorf("search returned %d", resp.StatusCode()))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, common.NewSourceError(common.KindInsufficientData, s.Name(), err)
	}

	maxResults := s.config.Sources.Search.MaxResults
	seen := map[string]struct{}{}
	var urls []string

	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		target := resolveRedirect(href)
		if target == "" || skipURL(target) {
			return true
		}
		if _, dup := seen[target]; dup {
			return true
		}
		seen[target] = struct{}{}
		urls = append(urls, target)
		return len(urls) < maxResults
	})

	if len(urls) == 0 {
		return nil, common.NewSourceError(common.KindInsufficientData, s.Name(), fmt.Errorf("no results for %q", query))
	}
	return urls, nil
}

// resolveRedirect 結果連結是 /l/?uddg=<encoded> 形式的跳轉，取回真實 URL
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		if !strings.Contains(href, "duckduckgo.com/l/") {
			return href
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return ""
}

// skipURL 過濾搜尋引擎與影音站，這些頁面抓不到可用食譜
func skipURL(target string) bool {
	lower := strings.ToLower(target)
	for _, host := range []string{"duckduckgo.com", "google.", "youtube.com", "facebook.com", "instagram.com", "pinterest."} {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}
