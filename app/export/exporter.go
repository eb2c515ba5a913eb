package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lysyi3m/shop-comb/app/extract"
)

var header = []string{
	"name", "category", "current_price", "original_price",
	"discount_amount", "rating", "review_count", "units_sold", "scraped_at",
}

// Exporter writes one CSV snapshot per site and run, overwriting the
// previous snapshot. Absent numeric fields become empty cells, never zeros.
type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Run writes the batch to <dir>/<site>_products.csv and returns the path.
func (e *Exporter) Run(siteName, category string, products []extract.Product, scrapedAt time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, siteName+"_products.csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	timestamp := scrapedAt.UTC().Format(time.RFC3339)
	for _, product := range products {
		record := []string{
			product.Name,
			category,
			formatFloat(product.CurrentPrice),
			formatFloat(product.OriginalPrice),
			formatInt(product.DiscountAmount),
			formatFloat(product.Rating),
			strconv.Itoa(product.ReviewCount),
			strconv.Itoa(product.UnitsSold),
			timestamp,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return path, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
