package tasks

import (
	"time"

	"github.com/lysyi3m/shop-comb/app/extract"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API to manage background scraping.
// Example usage:
//
//	scheduler := NewScheduler(configCache, siteRepo, productRepo, exporter)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewScrapeSiteTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// ExporterInterface is the flat-file sink a scrape run hands its batch to.
type ExporterInterface interface {
	Run(siteName, category string, products []extract.Product, scrapedAt time.Time) (string, error)
}
