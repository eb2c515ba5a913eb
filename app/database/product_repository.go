package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lysyi3m/shop-comb/app/extract"
)

var _ ProductRepository = (*productRepository)(nil)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	return &productRepository{db: db}
}

// StoreBatch persists one scrape run in a single transaction: a product row
// plus its review and sales rows per record. Re-scraped products (same site
// and content hash) are updated in place. Returns the number of stored rows.
func (r *productRepository) StoreBatch(siteName string, products []extract.Product, scrapedAt time.Time) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var siteID int64
	err = tx.QueryRow(`SELECT id FROM sites WHERE name = $1`, siteName).Scan(&siteID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("site '%s' not registered", siteName)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve site: %w", err)
	}

	stored := 0
	for _, product := range products {
		if err := storeProduct(tx, siteID, product, scrapedAt); err != nil {
			return 0, fmt.Errorf("failed to store product '%s': %w", product.Name, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stored, nil
}

func storeProduct(tx *sql.Tx, siteID int64, product extract.Product, scrapedAt time.Time) error {
	var productID int64
	err := tx.QueryRow(`
		INSERT INTO products (site_id, name, current_price, original_price, discount_amount, content_hash, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (site_id, content_hash) DO UPDATE SET
			name = EXCLUDED.name,
			current_price = EXCLUDED.current_price,
			original_price = EXCLUDED.original_price,
			discount_amount = EXCLUDED.discount_amount,
			scraped_at = EXCLUDED.scraped_at
		RETURNING id
	`, siteID, product.Name, nullFloat(product.CurrentPrice), nullFloat(product.OriginalPrice),
		nullInt(product.DiscountAmount), product.ContentHash, scrapedAt).Scan(&productID)
	if err != nil {
		return fmt.Errorf("failed to upsert product row: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO reviews (product_id, rating, review_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count
	`, productID, nullFloat(product.Rating), product.ReviewCount)
	if err != nil {
		return fmt.Errorf("failed to upsert review row: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO sales (product_id, units_sold)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET
			units_sold = EXCLUDED.units_sold
	`, productID, product.UnitsSold)
	if err != nil {
		return fmt.Errorf("failed to upsert sales row: %w", err)
	}

	return nil
}

func (r *productRepository) GetProducts(siteName string, limit int) ([]Product, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.site_id, s.name, s.category, p.name,
		       p.current_price, p.original_price, p.discount_amount,
		       r.rating, COALESCE(r.review_count, 0), COALESCE(sl.units_sold, 0),
		       p.content_hash, p.scraped_at, p.created_at
		FROM products p
		JOIN sites s ON s.id = p.site_id
		LEFT JOIN reviews r ON r.product_id = p.id
		LEFT JOIN sales sl ON sl.product_id = p.id
		WHERE s.name = $1
		ORDER BY p.scraped_at DESC, p.id
		LIMIT $2
	`, siteName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var product Product
		var currentPrice, originalPrice, rating sql.NullFloat64
		var discount sql.NullInt64

		err := rows.Scan(
			&product.ID, &product.SiteID, &product.Site, &product.Category, &product.Name,
			&currentPrice, &originalPrice, &discount,
			&rating, &product.ReviewCount, &product.UnitsSold,
			&product.ContentHash, &product.ScrapedAt, &product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		product.CurrentPrice = floatPtr(currentPrice)
		product.OriginalPrice = floatPtr(originalPrice)
		product.Rating = floatPtr(rating)
		product.DiscountAmount = intPtr(discount)

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProductCount(siteName string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM products p
		JOIN sites s ON s.id = p.site_id
		WHERE s.name = $1
	`, siteName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) GetProductStats(siteName string) (int, int, int, error) {
	var total, withRating, withDiscount int
	err := r.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE r.rating IS NOT NULL),
		       COUNT(*) FILTER (WHERE p.discount_amount IS NOT NULL)
		FROM products p
		JOIN sites s ON s.id = p.site_id
		LEFT JOIN reviews r ON r.product_id = p.id
		WHERE s.name = $1
	`, siteName).Scan(&total, &withRating, &withDiscount)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get product stats: %w", err)
	}

	return total, withRating, withDiscount, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
