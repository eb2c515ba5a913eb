package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/shop-comb/app/config"
	"github.com/lysyi3m/shop-comb/app/database"
)

type SyncSiteConfigTask struct {
	Task
	SiteConfig *config.Config
	siteRepo   database.SiteRepository
}

func NewSyncSiteConfigTask(siteName string, siteConfig *config.Config, siteRepo database.SiteRepository) *SyncSiteConfigTask {
	return &SyncSiteConfigTask{
		Task:       NewTask(TaskTypeSyncSiteConfig, siteName),
		SiteConfig: siteConfig,
		siteRepo:   siteRepo,
	}
}

func (t *SyncSiteConfigTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.siteRepo.UpsertSite(
		t.SiteConfig.Name,
		t.SiteConfig.Category,
		t.SiteConfig.URL)
	if err != nil {
		slog.Error("Task failed", "type", "SyncSiteConfig", "site", t.SiteName, "error", err)
		return fmt.Errorf("failed to sync site config to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncSiteConfig",
		"site", t.SiteName,
		"duration", t.GetDuration())

	return nil
}
