package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/shop-comb/app/config"
	"github.com/lysyi3m/shop-comb/app/database"
	"github.com/lysyi3m/shop-comb/app/extract"
	"github.com/lysyi3m/shop-comb/app/fetch"
)

type ScrapeSiteTask struct {
	Task
	SiteConfig  *config.Config
	fetcher     fetch.Fetcher
	siteRepo    database.SiteRepository
	productRepo database.ProductRepository
	exporter    ExporterInterface
}

func NewScrapeSiteTask(siteName string, siteConfig *config.Config, fetcher fetch.Fetcher,
	siteRepo database.SiteRepository, productRepo database.ProductRepository,
	exporter ExporterInterface) *ScrapeSiteTask {
	return &ScrapeSiteTask{
		Task:        NewTask(TaskTypeScrapeSite, siteName),
		SiteConfig:  siteConfig,
		fetcher:     fetcher,
		siteRepo:    siteRepo,
		productRepo: productRepo,
		exporter:    exporter,
	}
}

func (t *ScrapeSiteTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SiteConfig.Settings.Enabled {
		slog.Debug("Site disabled, skipping", "site", t.SiteName)
		return nil
	}

	products, pagesFetched, err := t.scrapePages(ctx)
	if err != nil {
		return err
	}

	// Every page failing is a site-level outage worth a retry; anything less
	// is partial data, which still gets stored.
	if pagesFetched == 0 {
		return fmt.Errorf("all %d pages failed for site %s", t.SiteConfig.Settings.MaxPages, t.SiteName)
	}

	scrapedAt := time.Now().UTC()

	stored, err := t.productRepo.StoreBatch(t.SiteName, products, scrapedAt)
	if err != nil {
		return fmt.Errorf("failed to store products: %w", err)
	}

	csvPath, err := t.exporter.Run(t.SiteName, t.SiteConfig.Category, products, scrapedAt)
	if err != nil {
		return fmt.Errorf("failed to export CSV snapshot: %w", err)
	}

	nextScrape := scrapedAt.Add(time.Duration(t.SiteConfig.Settings.RefreshInterval) * time.Second)
	if err := t.siteRepo.UpdateScrapeStatus(t.SiteName, scrapedAt, nextScrape); err != nil {
		return fmt.Errorf("failed to update scrape status: %w", err)
	}

	slog.Info("Task completed",
		"type", "ScrapeSite",
		"site", t.SiteName,
		"duration", t.GetDuration(),
		"pages", pagesFetched,
		"products", len(products),
		"stored", stored,
		"csv", csvPath)

	return nil
}

// scrapePages walks the paginated category URL and assembles one record per
// item fragment. A failed page is logged and skipped so that one bad page
// never aborts the rest of the batch.
func (t *ScrapeSiteTask) scrapePages(ctx context.Context) ([]extract.Product, int, error) {
	assembler := extract.NewAssembler(t.SiteConfig.Selectors.Selectors, t.SiteConfig.Settings.ReviewRatio)
	delay := time.Duration(t.SiteConfig.Settings.Delay) * time.Millisecond

	var products []extract.Product
	pagesFetched := 0

	for page := 1; page <= t.SiteConfig.Settings.MaxPages; page++ {
		pageURL := fetch.PageURL(t.SiteConfig.URL, t.SiteConfig.Settings.PageParam, page)

		doc, err := t.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			slog.Warn("Page fetch failed, skipping", "site", t.SiteName, "url", pageURL, "error", err)
			continue
		}

		fragments, err := fetch.CollectFragments(doc, t.SiteConfig.Selectors.Item)
		if err != nil {
			return nil, 0, err
		}

		pagesFetched++

		if len(fragments) == 0 {
			slog.Debug("No items on page, stopping pagination", "site", t.SiteName, "page", page)
			break
		}

		for _, fragment := range fragments {
			products = append(products, assembler.Run(fragment))
		}

		if page < t.SiteConfig.Settings.MaxPages && delay > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return products, pagesFetched, nil
}
