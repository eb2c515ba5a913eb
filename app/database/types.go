package database

import (
	"time"
)

type Site struct {
	ID            int64
	Name          string // Configuration site identifier derived from filename
	Category      string // Caller-supplied category label stored with each run
	URL           string // Category search URL from configuration
	LastScrapedAt *time.Time
	NextScrapeAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Product is the joined read model across the products, reviews, and sales
// tables. Nil pointers correspond to SQL NULLs.
type Product struct {
	ID             int64
	SiteID         int64
	Site           string
	Category       string
	Name           string
	CurrentPrice   *float64
	OriginalPrice  *float64
	DiscountAmount *int
	Rating         *float64
	ReviewCount    int
	UnitsSold      int
	ContentHash    string
	ScrapedAt      time.Time
	CreatedAt      time.Time
}
