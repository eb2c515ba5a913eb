package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Cache struct {
	sitesDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewCache(sitesDir string) *Cache {
	return &Cache{
		sitesDir: sitesDir,
		cache:    make(map[string]*Config),
	}
}

func (c *Cache) Run() error {
	if _, err := os.Stat(c.sitesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.sitesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive site name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		siteName := fileName[:len(fileName)-4]

		siteConfig, err := c.LoadConfig(siteName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "site", siteName, "enabled", siteConfig.Settings.Enabled,
			"fetcher", siteConfig.Settings.Fetcher, "max_pages", siteConfig.Settings.MaxPages)
	}

	return nil
}

func (c *Cache) LoadConfig(siteName string) (*Config, error) {
	configFile := c.getConfigFilePath(siteName)
	siteConfig, err := c.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set site name from parameter
	siteConfig.Name = siteName

	if err := c.validateConfig(siteConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[siteConfig.Name] = siteConfig

	return siteConfig, nil
}

func (c *Cache) GetConfig(siteName string) (*Config, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	siteConfig, ok := c.cache[siteName]
	if !ok {
		return nil, fmt.Errorf("site config with name '%s' not found", siteName)
	}
	return siteConfig, nil
}

func (c *Cache) GetConfigs() map[string]*Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(c.cache))
	for k, v := range c.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (c *Cache) GetEnabledConfigs() map[string]*Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	enabledConfigs := make(map[string]*Config)
	for k, v := range c.cache {
		if v.Settings.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (c *Cache) GetConfigCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Cache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var siteConfig Config
	if err := yaml.Unmarshal(data, &siteConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if siteConfig.Settings.Fetcher == "" {
		siteConfig.Settings.Fetcher = FetcherStatic
	}
	if siteConfig.Settings.PageParam == "" {
		siteConfig.Settings.PageParam = "page"
	}
	if siteConfig.Settings.MaxPages == 0 {
		siteConfig.Settings.MaxPages = 5
	}
	if siteConfig.Settings.RefreshInterval == 0 {
		siteConfig.Settings.RefreshInterval = 3600
	}
	if siteConfig.Settings.Timeout == 0 {
		siteConfig.Settings.Timeout = 30
	}
	if siteConfig.Settings.Delay == 0 {
		siteConfig.Settings.Delay = 1000
	}
	if siteConfig.Settings.MaxProducts == 0 {
		siteConfig.Settings.MaxProducts = 100
	}
	if siteConfig.Settings.ReviewRatio == 0 {
		siteConfig.Settings.ReviewRatio = 0.1
	}

	return &siteConfig, nil
}

func (c *Cache) validateConfig(siteConfig *Config) error {
	if siteConfig == nil {
		return fmt.Errorf("siteConfig is nil")
	}

	requiredFields := map[string]string{
		"site name":     siteConfig.Name,
		"site URL":      siteConfig.URL,
		"category":      siteConfig.Category,
		"item selector": siteConfig.Selectors.Item,
		"name selector": siteConfig.Selectors.Name,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if siteConfig.Settings.Fetcher != FetcherStatic && siteConfig.Settings.Fetcher != FetcherBrowser {
		return fmt.Errorf("invalid fetcher kind: %s", siteConfig.Settings.Fetcher)
	}

	nonNegativeFields := map[string]int{
		"max pages":        siteConfig.Settings.MaxPages,
		"refresh interval": siteConfig.Settings.RefreshInterval,
		"timeout":          siteConfig.Settings.Timeout,
		"delay":            siteConfig.Settings.Delay,
		"max products":     siteConfig.Settings.MaxProducts,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if siteConfig.Settings.ReviewRatio <= 0 || siteConfig.Settings.ReviewRatio > 1 {
		return fmt.Errorf("review ratio must be in (0, 1], got %v", siteConfig.Settings.ReviewRatio)
	}

	return nil
}

func (c *Cache) getConfigFilePath(siteName string) string {
	return filepath.Join(c.sitesDir, siteName+".yml")
}
