package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/shop-comb/app/cfg"
	"github.com/lysyi3m/shop-comb/app/config"
	"github.com/lysyi3m/shop-comb/app/database"
	"github.com/lysyi3m/shop-comb/app/fetch"
	"github.com/lysyi3m/shop-comb/app/tasks"
)

func NewHandler(configCache *config.Cache, siteRepo database.SiteRepository,
	productRepo database.ProductRepository, exporter tasks.ExporterInterface,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		siteRepo:    siteRepo,
		productRepo: productRepo,
		configCache: configCache,
		scheduler:   scheduler,
		exporter:    exporter,
		userAgent:   cfg.Get().UserAgent,
	}
}

func (h *Handler) GetProducts(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	siteConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Site configuration not found", "site", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	site, err := h.siteRepo.GetSite(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_site", "site", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if site == nil {
		slog.Error("Site not found in database", "site", name)
		c.Status(http.StatusNotFound)
		return
	}

	limit := siteConfig.Settings.MaxProducts
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 && parsed < limit {
			limit = parsed
		}
	}

	products, err := h.productRepo.GetProducts(name, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_products", "site", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Product-Count", strconv.Itoa(len(products)))
	c.Header("X-Site-Name", name)
	if site.LastScrapedAt != nil {
		c.Header("X-Last-Scraped", site.LastScrapedAt.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{
		"site":     name,
		"category": site.Category,
		"products": productsJSON(products),
		"total":    len(products),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if siteCount, err := h.siteRepo.GetSiteCount(); err == nil {
		health["sites"] = siteCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sites":     len(configs),
	}

	totalProducts := 0
	perSite := make(map[string]interface{}, len(configs))

	for _, siteConfig := range configs {
		total, withRating, withDiscount, err := h.productRepo.GetProductStats(siteConfig.Name)
		if err != nil {
			slog.Error("Database error", "operation", "get_product_stats", "site", siteConfig.Name, "error", err)
			continue
		}
		totalProducts += total
		perSite[siteConfig.Name] = map[string]interface{}{
			"products":      total,
			"with_rating":   withRating,
			"with_discount": withDiscount,
		}
	}

	stats["products"] = totalProducts
	stats["per_site"] = perSite

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListSites(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	sites := make([]map[string]interface{}, 0, len(configs))

	for _, siteConfig := range configs {
		siteInfo := map[string]interface{}{
			"name":             siteConfig.Name,
			"url":              siteConfig.URL,
			"category":         siteConfig.Category,
			"enabled":          siteConfig.Settings.Enabled,
			"fetcher":          siteConfig.Settings.Fetcher,
			"max_pages":        siteConfig.Settings.MaxPages,
			"refresh_interval": (time.Duration(siteConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if site, err := h.siteRepo.GetSite(siteConfig.Name); err == nil && site != nil {
			siteInfo["last_scraped_at"] = site.LastScrapedAt
			siteInfo["next_scrape_at"] = site.NextScrapeAt
			siteInfo["updated_at"] = site.UpdatedAt
		}

		if productCount, err := h.productRepo.GetProductCount(siteConfig.Name); err == nil {
			siteInfo["product_count"] = productCount
		}

		sites = append(sites, siteInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sites": sites,
		"total": len(sites),
	})
}

func (h *Handler) APIGetSiteDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing site name parameter"})
		return
	}

	siteConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Site configuration not found", "site", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Site configuration not found"})
		return
	}

	site, err := h.siteRepo.GetSite(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_site", "site", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if site == nil {
		slog.Error("Site not found in database", "site", name)
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found in database"})
		return
	}

	details := map[string]interface{}{
		"name":             name,
		"url":              siteConfig.URL,
		"category":         siteConfig.Category,
		"enabled":          siteConfig.Settings.Enabled,
		"fetcher":          siteConfig.Settings.Fetcher,
		"page_param":       siteConfig.Settings.PageParam,
		"max_pages":        siteConfig.Settings.MaxPages,
		"max_products":     siteConfig.Settings.MaxProducts,
		"review_ratio":     siteConfig.Settings.ReviewRatio,
		"refresh_interval": (time.Duration(siteConfig.Settings.RefreshInterval) * time.Second).String(),
		"timeout":          (time.Duration(siteConfig.Settings.Timeout) * time.Second).String(),
	}

	details["database"] = map[string]interface{}{
		"id":              site.ID,
		"name":            site.Name,
		"last_scraped_at": site.LastScrapedAt,
		"next_scrape_at":  site.NextScrapeAt,
		"created_at":      site.CreatedAt,
		"updated_at":      site.UpdatedAt,
	}

	if total, withRating, withDiscount, err := h.productRepo.GetProductStats(name); err == nil {
		details["products"] = map[string]interface{}{
			"total":         total,
			"with_rating":   withRating,
			"with_discount": withDiscount,
		}
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) APIScrapeSite(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing site name parameter"})
		return
	}

	_, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Site configuration not found", "site", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Site configuration not found"})
		return
	}

	siteConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "site", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	syncSiteTask := tasks.NewSyncSiteConfigTask(name, siteConfig, h.siteRepo)
	err = h.scheduler.EnqueueTask(syncSiteTask)
	if err != nil {
		slog.Error("Error enqueueing sync task", "site", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	timeout := time.Duration(siteConfig.Settings.Timeout) * time.Second
	fetcher := fetch.New(siteConfig.Settings.Fetcher, h.userAgent, timeout)

	scrapeSiteTask := tasks.NewScrapeSiteTask(name, siteConfig, fetcher, h.siteRepo, h.productRepo, h.exporter)
	err = h.scheduler.EnqueueTask(scrapeSiteTask)
	if err != nil {
		slog.Error("Error enqueueing scrape task", "site", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue scrape task",
			"details": err.Error(),
		})
		return
	}

	response := gin.H{
		"success": true,
		"message": "Configuration reloaded and scrape tasks enqueued successfully",
		"site": gin.H{
			"name":     name,
			"category": siteConfig.Category,
			"url":      siteConfig.URL,
		},
		"tasks": []gin.H{
			{
				"id":   syncSiteTask.ID,
				"type": syncSiteTask.Type,
			},
			{
				"id":   scrapeSiteTask.ID,
				"type": scrapeSiteTask.Type,
			},
		},
	}

	c.JSON(http.StatusOK, response)
}

func productsJSON(products []database.Product) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, map[string]interface{}{
			"name":            p.Name,
			"current_price":   p.CurrentPrice,
			"original_price":  p.OriginalPrice,
			"discount_amount": p.DiscountAmount,
			"rating":          p.Rating,
			"review_count":    p.ReviewCount,
			"units_sold":      p.UnitsSold,
			"scraped_at":      p.ScrapedAt.Format(time.RFC3339),
		})
	}
	return out
}
