package fetch

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/shop-comb/app/config"
)

// Fetcher retrieves one search-results page and returns its parsed document.
// Implementations cover static HTML (colly) and JS-rendered listings
// (headless Chrome via chromedp).
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// New returns the fetcher matching the configured kind. Unknown kinds fall
// back to the static fetcher; config validation rejects them upfront.
func New(kind string, userAgent string, timeout time.Duration) Fetcher {
	switch kind {
	case config.FetcherBrowser:
		return NewBrowserFetcher(userAgent, timeout)
	default:
		return NewStaticFetcher(userAgent, timeout)
	}
}
