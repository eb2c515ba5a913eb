package database

import (
	"time"

	"github.com/lysyi3m/shop-comb/app/extract"
)

type SiteRepository interface {
	GetSite(siteName string) (*Site, error)
	GetSiteCount() (int, error)

	UpsertSite(siteName, category, url string) error
	UpdateScrapeStatus(siteName string, lastScrapedAt, nextScrapeAt time.Time) error
}

type ProductRepository interface {
	GetProducts(siteName string, limit int) ([]Product, error)
	GetProductCount(siteName string) (int, error)
	GetProductStats(siteName string) (total int, withRating int, withDiscount int, err error)

	StoreBatch(siteName string, products []extract.Product, scrapedAt time.Time) (int, error)
}
