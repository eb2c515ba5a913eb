package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

var _ Fetcher = (*StaticFetcher)(nil)

// StaticFetcher retrieves server-rendered listing pages with a colly
// collector. One collector per fetch keeps page visits independent: a failed
// page never poisons the next one.
type StaticFetcher struct {
	userAgent string
	timeout   time.Duration
}

func NewStaticFetcher(userAgent string, timeout time.Duration) *StaticFetcher {
	return &StaticFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (f *StaticFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	collector := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.MaxDepth(1),
	)
	collector.SetRequestTimeout(f.timeout)

	var doc *goquery.Document
	var fetchErr error

	collector.OnResponse(func(r *colly.Response) {
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchErr = fmt.Errorf("failed to parse page HTML: %w", err)
			return
		}
		doc = parsed
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("request failed with status %d: %w", r.StatusCode, err)
	})

	if err := collector.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", pageURL, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if doc == nil {
		return nil, fmt.Errorf("no response received for %s", pageURL)
	}

	return doc, nil
}
