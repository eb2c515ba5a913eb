package tasks

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/shop-comb/app/config"
	"github.com/lysyi3m/shop-comb/app/database"
	"github.com/lysyi3m/shop-comb/app/extract"
)

type fakeFetcher struct {
	pages map[string]string // URL -> HTML
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	f.calls = append(f.calls, pageURL)
	html, ok := f.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("fetch failed for %s", pageURL)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type fakeSiteRepo struct {
	sites         map[string]*database.Site
	statusUpdates int
}

func (r *fakeSiteRepo) GetSite(siteName string) (*database.Site, error) {
	return r.sites[siteName], nil
}

func (r *fakeSiteRepo) GetSiteCount() (int, error) {
	return len(r.sites), nil
}

func (r *fakeSiteRepo) UpsertSite(siteName, category, url string) error {
	if r.sites == nil {
		r.sites = make(map[string]*database.Site)
	}
	r.sites[siteName] = &database.Site{Name: siteName, Category: category, URL: url}
	return nil
}

func (r *fakeSiteRepo) UpdateScrapeStatus(siteName string, lastScrapedAt, nextScrapeAt time.Time) error {
	r.statusUpdates++
	return nil
}

type fakeProductRepo struct {
	stored []extract.Product
}

func (r *fakeProductRepo) GetProducts(siteName string, limit int) ([]database.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetProductCount(siteName string) (int, error) {
	return len(r.stored), nil
}

func (r *fakeProductRepo) GetProductStats(siteName string) (int, int, int, error) {
	return len(r.stored), 0, 0, nil
}

func (r *fakeProductRepo) StoreBatch(siteName string, products []extract.Product, scrapedAt time.Time) (int, error) {
	r.stored = append(r.stored, products...)
	return len(products), nil
}

type fakeExporter struct {
	runs int
}

func (e *fakeExporter) Run(siteName, category string, products []extract.Product, scrapedAt time.Time) (string, error) {
	e.runs++
	return "/tmp/" + siteName + "_products.csv", nil
}

func testSiteConfig() *config.Config {
	return &config.Config{
		Name:     "testsite",
		Category: "widgets",
		URL:      "https://shop.example.com/s?k=widget",
		Settings: config.ConfigSettings{
			Enabled:         true,
			Fetcher:         config.FetcherStatic,
			PageParam:       "page",
			MaxPages:        2,
			RefreshInterval: 3600,
			Timeout:         30,
			ReviewRatio:     0.1,
		},
		Selectors: config.ConfigSelectors{
			Item: "div.item",
			Selectors: extract.Selectors{
				Name:         ".title",
				CurrentPrice: ".price",
				ReviewCount:  ".reviews",
			},
		},
	}
}

const pageOneHTML = `<html><body>
	<div class="item"><h2 class="title">Widget A</h2><span class="price">$10.00</span><span class="reviews">(5)</span></div>
	<div class="item"><h2 class="title">Widget B</h2><span class="price">$12.50</span></div>
</body></html>`

const pageTwoHTML = `<html><body>
	<div class="item"><h2 class="title">Widget C</h2><span class="price">N/A</span></div>
</body></html>`

func TestScrapeSiteTaskExecute(t *testing.T) {
	siteConfig := testSiteConfig()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://shop.example.com/s?k=widget":        pageOneHTML,
		"https://shop.example.com/s?k=widget&page=2": pageTwoHTML,
	}}
	siteRepo := &fakeSiteRepo{}
	productRepo := &fakeProductRepo{}
	exporter := &fakeExporter{}

	task := NewScrapeSiteTask(siteConfig.Name, siteConfig, fetcher, siteRepo, productRepo, exporter)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(fetcher.calls) != 2 {
		t.Errorf("Expected 2 page fetches, got %d", len(fetcher.calls))
	}
	if len(productRepo.stored) != 3 {
		t.Fatalf("Expected 3 stored products, got %d", len(productRepo.stored))
	}
	if exporter.runs != 1 {
		t.Errorf("Expected 1 CSV export, got %d", exporter.runs)
	}
	if siteRepo.statusUpdates != 1 {
		t.Errorf("Expected 1 scrape status update, got %d", siteRepo.statusUpdates)
	}

	first := productRepo.stored[0]
	if first.Name != "Widget A" {
		t.Errorf("Expected first product 'Widget A', got '%s'", first.Name)
	}
	if first.CurrentPrice == nil || *first.CurrentPrice != 10.00 {
		t.Errorf("Expected price 10.00, got %v", first.CurrentPrice)
	}
	if first.ReviewCount != 5 {
		t.Errorf("Expected review count 5, got %d", first.ReviewCount)
	}

	// Unparsable price degrades to absent, not failure.
	third := productRepo.stored[2]
	if third.Name != "Widget C" {
		t.Errorf("Expected third product 'Widget C', got '%s'", third.Name)
	}
	if third.CurrentPrice != nil {
		t.Errorf("Expected absent price for 'N/A' text, got %v", *third.CurrentPrice)
	}
}

func TestScrapeSiteTaskSkipsFailedPages(t *testing.T) {
	siteConfig := testSiteConfig()

	// Only page 2 resolves; page 1 fails and must be skipped.
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://shop.example.com/s?k=widget&page=2": pageTwoHTML,
	}}
	productRepo := &fakeProductRepo{}

	task := NewScrapeSiteTask(siteConfig.Name, siteConfig, fetcher, &fakeSiteRepo{}, productRepo, &fakeExporter{})
	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(productRepo.stored) != 1 {
		t.Errorf("Expected 1 product from the surviving page, got %d", len(productRepo.stored))
	}
}

func TestScrapeSiteTaskAllPagesFail(t *testing.T) {
	siteConfig := testSiteConfig()

	task := NewScrapeSiteTask(siteConfig.Name, siteConfig, &fakeFetcher{}, &fakeSiteRepo{}, &fakeProductRepo{}, &fakeExporter{})
	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error when every page fails")
	}
}

func TestScrapeSiteTaskDisabledSite(t *testing.T) {
	siteConfig := testSiteConfig()
	siteConfig.Settings.Enabled = false

	fetcher := &fakeFetcher{}
	task := NewScrapeSiteTask(siteConfig.Name, siteConfig, fetcher, &fakeSiteRepo{}, &fakeProductRepo{}, &fakeExporter{})
	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(fetcher.calls) != 0 {
		t.Errorf("Expected no fetches for disabled site, got %d", len(fetcher.calls))
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeScrapeSite, "testsite")

	if !task.CanRetry() {
		t.Error("Fresh task should be retryable")
	}
	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Task should not be retryable after max retries")
	}
}
