package api

import (
	"github.com/lysyi3m/shop-comb/app/config"
	"github.com/lysyi3m/shop-comb/app/database"
	"github.com/lysyi3m/shop-comb/app/tasks"
)

type Handler struct {
	siteRepo    database.SiteRepository
	productRepo database.ProductRepository
	configCache *config.Cache
	scheduler   tasks.TaskSchedulerInterface
	exporter    tasks.ExporterInterface
	userAgent   string
}
