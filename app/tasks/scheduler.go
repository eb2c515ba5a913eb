package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/shop-comb/app/cfg"
	"github.com/lysyi3m/shop-comb/app/config"
	"github.com/lysyi3m/shop-comb/app/database"
	"github.com/lysyi3m/shop-comb/app/fetch"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	configCache *config.Cache
	siteRepo    database.SiteRepository
	productRepo database.ProductRepository
	exporter    ExporterInterface
	userAgent   string
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *config.Cache, siteRepo database.SiteRepository,
	productRepo database.ProductRepository, exporter ExporterInterface) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache: configCache,
		siteRepo:    siteRepo,
		productRepo: productRepo,
		exporter:    exporter,
		userAgent:   cfg.UserAgent,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	siteConfigs := s.configCache.GetConfigs()
	if len(siteConfigs) == 0 {
		slog.Debug("No site configurations found")
		return
	}

	slog.Debug("Processing site configurations", "count", len(siteConfigs))

	for _, siteConfig := range siteConfigs {
		syncTask := NewSyncSiteConfigTask(siteConfig.Name, siteConfig, s.siteRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncSiteConfigTask", "site", siteConfig.Name, "error", err)
			continue
		}

		if !siteConfig.Settings.Enabled {
			slog.Debug("Site disabled, skipping ScrapeSiteTask", "site", siteConfig.Name)
			continue
		}

		scrapeTask := NewScrapeSiteTask(siteConfig.Name, siteConfig, s.fetcherFor(siteConfig), s.siteRepo, s.productRepo, s.exporter)
		if err := s.EnqueueTask(scrapeTask); err != nil {
			slog.Warn("Failed to enqueue ScrapeSiteTask", "site", siteConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) enqueueTasks() {
	siteConfigs := s.configCache.GetEnabledConfigs()
	if len(siteConfigs) == 0 {
		slog.Debug("No enabled site configurations found")
		return
	}

	slog.Debug("Processing enabled site configurations for task scheduling", "count", len(siteConfigs))

	for _, siteConfig := range siteConfigs {
		site, err := s.siteRepo.GetSite(siteConfig.Name)
		if err != nil {
			slog.Warn("Failed to get site from database, skipping", "site", siteConfig.Name, "error", err)
			continue
		}
		if site == nil {
			slog.Warn("Site not found in database, skipping", "site", siteConfig.Name)
			continue
		}

		now := time.Now().UTC()
		if site.NextScrapeAt != nil && site.NextScrapeAt.After(now) {
			slog.Debug("Site not due for scraping yet", "site", siteConfig.Name, "next_scrape_at", site.NextScrapeAt)
			continue
		}

		scrapeTask := NewScrapeSiteTask(siteConfig.Name, siteConfig, s.fetcherFor(siteConfig), s.siteRepo, s.productRepo, s.exporter)
		if err := s.EnqueueTask(scrapeTask); err != nil {
			slog.Warn("Failed to enqueue ScrapeSiteTask", "site", siteConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) fetcherFor(siteConfig *config.Config) fetch.Fetcher {
	timeout := time.Duration(siteConfig.Settings.Timeout) * time.Second
	return fetch.New(siteConfig.Settings.Fetcher, s.userAgent, timeout)
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 10*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "site", task.GetSiteName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
