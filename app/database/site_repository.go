package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ SiteRepository = (*siteRepository)(nil)

type siteRepository struct {
	db *DB
}

func NewSiteRepository(db *DB) SiteRepository {
	return &siteRepository{db: db}
}

// UpsertSite registers a configured site, updating category and URL when the
// configuration changed between restarts.
func (r *siteRepository) UpsertSite(siteName, category, url string) error {
	_, err := r.db.Exec(`
		INSERT INTO sites (name, category, url)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			url = EXCLUDED.url,
			updated_at = NOW()
	`, siteName, category, url)
	if err != nil {
		return fmt.Errorf("failed to upsert site: %w", err)
	}

	return nil
}

func (r *siteRepository) GetSite(siteName string) (*Site, error) {
	var site Site
	err := r.db.QueryRow(`
		SELECT id, name, category, url, last_scraped_at, next_scrape_at, created_at, updated_at
		FROM sites
		WHERE name = $1
	`, siteName).Scan(
		&site.ID, &site.Name, &site.Category, &site.URL,
		&site.LastScrapedAt, &site.NextScrapeAt, &site.CreatedAt, &site.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}

	return &site, nil
}

func (r *siteRepository) GetSiteCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sites`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sites: %w", err)
	}

	return count, nil
}

func (r *siteRepository) UpdateScrapeStatus(siteName string, lastScrapedAt, nextScrapeAt time.Time) error {
	result, err := r.db.Exec(`
		UPDATE sites
		SET last_scraped_at = $2, next_scrape_at = $3, updated_at = NOW()
		WHERE name = $1
	`, siteName, lastScrapedAt, nextScrapeAt)
	if err != nil {
		return fmt.Errorf("failed to update scrape status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("site '%s' not registered", siteName)
	}

	return nil
}
