package config

import (
	"github.com/lysyi3m/shop-comb/app/extract"
)

// Fetcher kinds selectable per site.
const (
	FetcherStatic  = "static"
	FetcherBrowser = "browser"
)

type Config struct {
	Name      string          // Derived from filename (without .yml extension)
	Category  string          `yaml:"category"`
	URL       string          `yaml:"url"`
	Settings  ConfigSettings  `yaml:"settings"`
	Selectors ConfigSelectors `yaml:"selectors"`
}

type ConfigSettings struct {
	Enabled         bool    `yaml:"enabled"`
	Fetcher         string  `yaml:"fetcher"`          // "static" (colly) or "browser" (chromedp)
	PageParam       string  `yaml:"page_param"`       // query parameter carrying the page number
	MaxPages        int     `yaml:"max_pages"`
	RefreshInterval int     `yaml:"refresh_interval"` // seconds
	Timeout         int     `yaml:"timeout"`          // seconds, per page fetch
	Delay           int     `yaml:"delay"`            // milliseconds between page fetches
	MaxProducts     int     `yaml:"max_products"`     // API listing limit
	ReviewRatio     float64 `yaml:"review_ratio"`     // assumed fraction of buyers who leave a review
}

type ConfigSelectors struct {
	// Item matches one product container on a search-results page; the
	// field selectors are resolved relative to it.
	Item              string `yaml:"item"`
	extract.Selectors `yaml:",inline"`
}
