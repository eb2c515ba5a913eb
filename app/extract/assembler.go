package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
)

// DefaultName is the placeholder stored when an item exposes no name.
const DefaultName = "N/A"

// Assembler turns raw item fragments into normalized products. It is a pure
// function of its inputs: every field has a documented fallback, so malformed
// markup degrades to defaults and never produces an error.
type Assembler struct {
	selectors   Selectors
	reviewRatio float64
}

func NewAssembler(selectors Selectors, reviewRatio float64) *Assembler {
	return &Assembler{
		selectors:   selectors,
		reviewRatio: reviewRatio,
	}
}

func (a *Assembler) Run(fragment Fragment) Product {
	product := Product{Name: DefaultName}

	if raw, ok := fragment.Text(a.selectors.Name); ok && raw != "" {
		product.Name = raw
	}

	if raw, ok := fragment.Text(a.selectors.CurrentPrice); ok {
		if value, ok := ParsePrice(raw); ok {
			product.CurrentPrice = &value
		}
	}

	if raw, ok := fragment.Text(a.selectors.OriginalPrice); ok {
		if value, ok := ParsePrice(raw); ok {
			product.OriginalPrice = &value
		}
	}

	// Discount exists only when both prices do.
	if product.OriginalPrice != nil && product.CurrentPrice != nil {
		discount := int(math.Floor(*product.OriginalPrice - *product.CurrentPrice))
		product.DiscountAmount = &discount
	}

	if raw, ok := fragment.Text(a.selectors.Rating); ok {
		if value, ok := ParseRating(raw); ok {
			product.Rating = &value
		}
	}

	if raw, ok := fragment.Text(a.selectors.ReviewCount); ok {
		product.ReviewCount = ParseReviewCount(raw)
	}

	product.UnitsSold = a.unitsSold(fragment, product.ReviewCount)
	product.ContentHash = generateContentHash(product)

	return product
}

// unitsSold prefers the listing's own "amount bought" text when the site
// exposes one and it carries digits; otherwise the count is estimated from
// the review count via the configured ratio.
func (a *Assembler) unitsSold(fragment Fragment, reviewCount int) int {
	if a.selectors.AmountBought != "" {
		if raw, ok := fragment.Text(a.selectors.AmountBought); ok {
			if amount := ParseAmountBought(raw); amount > 0 {
				return amount
			}
		}
	}
	return EstimateUnitsSold(reviewCount, a.reviewRatio)
}

// generateContentHash keys a product for re-scrape upserts. Only the name
// participates so that price changes update the existing row instead of
// inserting a duplicate.
func generateContentHash(product Product) string {
	hash := sha256.Sum256([]byte(product.Name))
	return hex.EncodeToString(hash[:])
}
