package extract

import (
	"reflect"
	"testing"
)

var testSelectors = Selectors{
	Name:          ".title",
	CurrentPrice:  ".price-current",
	OriginalPrice: ".price-original",
	Rating:        ".rating",
	ReviewCount:   ".reviews",
	AmountBought:  ".bought",
}

func TestAssembleFullFragment(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item">
		<h2 class="title">Gaming Laptop</h2>
		<span class="price-current">$1,499.99</span>
		<span class="price-original">$1,799.00</span>
		<span class="rating">4.5 out of 5 stars</span>
		<span class="reviews">1,234</span>
		<span class="bought">500+ bought in past month</span>
	</div>`)

	product := NewAssembler(testSelectors, 0.1).Run(fragment)

	if product.Name != "Gaming Laptop" {
		t.Errorf("Expected name 'Gaming Laptop', got '%s'", product.Name)
	}
	if product.CurrentPrice == nil || *product.CurrentPrice != 1499.99 {
		t.Errorf("Expected current price 1499.99, got %v", product.CurrentPrice)
	}
	if product.OriginalPrice == nil || *product.OriginalPrice != 1799.00 {
		t.Errorf("Expected original price 1799.00, got %v", product.OriginalPrice)
	}
	if product.DiscountAmount == nil || *product.DiscountAmount != 299 {
		t.Errorf("Expected discount 299 (floor of 299.01), got %v", product.DiscountAmount)
	}
	if product.Rating == nil || *product.Rating != 4.5 {
		t.Errorf("Expected rating 4.5, got %v", product.Rating)
	}
	if product.ReviewCount != 1234 {
		t.Errorf("Expected review count 1234, got %d", product.ReviewCount)
	}
	if product.UnitsSold != 500 {
		t.Errorf("Expected direct amount-bought 500, got %d", product.UnitsSold)
	}
	if product.ContentHash == "" {
		t.Error("Expected content hash to be generated")
	}
}

func TestAssembleSparseFragment(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item">
		<h2 class="title">Widget</h2>
		<span class="price-current">$19.99</span>
		<span class="reviews">(10)</span>
	</div>`)

	product := NewAssembler(testSelectors, 0.1).Run(fragment)

	if product.Name != "Widget" {
		t.Errorf("Expected name 'Widget', got '%s'", product.Name)
	}
	if product.CurrentPrice == nil || *product.CurrentPrice != 19.99 {
		t.Errorf("Expected current price 19.99, got %v", product.CurrentPrice)
	}
	if product.OriginalPrice != nil {
		t.Errorf("Expected absent original price, got %v", *product.OriginalPrice)
	}
	if product.DiscountAmount != nil {
		t.Errorf("Expected absent discount without original price, got %v", *product.DiscountAmount)
	}
	if product.Rating != nil {
		t.Errorf("Expected absent rating, got %v", *product.Rating)
	}
	if product.ReviewCount != 10 {
		t.Errorf("Expected review count 10 from parenthesis form, got %d", product.ReviewCount)
	}
}

func TestAssembleEmptyFragment(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item"></div>`)

	product := NewAssembler(testSelectors, 0.1).Run(fragment)

	if product.Name != DefaultName {
		t.Errorf("Expected default name '%s', got '%s'", DefaultName, product.Name)
	}
	if product.CurrentPrice != nil || product.OriginalPrice != nil ||
		product.DiscountAmount != nil || product.Rating != nil {
		t.Error("Expected all optional fields to be absent")
	}
	if product.ReviewCount != 0 {
		t.Errorf("Expected review count 0, got %d", product.ReviewCount)
	}
	if product.UnitsSold != 0 {
		t.Errorf("Expected units sold 0, got %d", product.UnitsSold)
	}
}

func TestAssembleDiscountInvariant(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item">
		<span class="price-current">$150.00</span>
		<span class="price-original">$200.00</span>
	</div>`)

	product := NewAssembler(testSelectors, 0.1).Run(fragment)

	if product.DiscountAmount == nil || *product.DiscountAmount != 50 {
		t.Errorf("Expected discount 50, got %v", product.DiscountAmount)
	}
}

func TestAssembleUnitsSoldEstimated(t *testing.T) {
	// No amount-bought text on the page: fall back to the review-ratio estimate.
	fragment := fragmentFromHTML(t, `<div class="item">
		<h2 class="title">Widget</h2>
		<span class="reviews">50</span>
	</div>`)

	product := NewAssembler(testSelectors, 0.1).Run(fragment)

	if product.UnitsSold != 500 {
		t.Errorf("Expected estimated units sold 500, got %d", product.UnitsSold)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item">
		<h2 class="title">Widget</h2>
		<span class="price-current">$19.99</span>
		<span class="rating">4.1 out of 5 stars</span>
		<span class="reviews">(10)</span>
	</div>`)

	assembler := NewAssembler(testSelectors, 0.1)
	first := assembler.Run(fragment)
	second := assembler.Run(fragment)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical records on re-run, got %+v and %+v", first, second)
	}
}
