package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/infrastructure/config"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// HTTPFetcher 頁面抓取器，帶瀏覽器 User-Agent 避免被食譜站擋下
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher 創建頁面抓取器
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.Sources.Fetcher.Timeout).
		SetHeader("User-Agent", cfg.Sources.Fetcher.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &HTTPFetcher{client: client}
}

// Fetch 抓取頁面原始 HTML
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, common.NewSourceError(common.KindSourceUnavailable, "fetcher", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, common.NewSourceError(common.KindSourceUnavailable, "fetcher", fmt.Errorf("page returned %d", resp.StatusCode()))
	}
	return resp.Body(), nil
}
