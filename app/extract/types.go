package extract

// Fragment is the markup subtree of one listed item on a search-results page.
// Implementations resolve a CSS selector to the first matching descendant and
// return its trimmed visible text. Every lookup failure (no match, malformed
// selector, detached subtree) reports absence instead of an error.
type Fragment interface {
	Text(selector string) (string, bool)
}

// Selectors names the per-field CSS selectors used to pull raw text out of an
// item fragment. An empty selector means the site does not expose that field.
type Selectors struct {
	Name          string `yaml:"name"`
	CurrentPrice  string `yaml:"current_price"`
	OriginalPrice string `yaml:"original_price"`
	Rating        string `yaml:"rating"`
	ReviewCount   string `yaml:"review_count"`
	AmountBought  string `yaml:"amount_bought"`
}

// Product is one normalized listing record. Missing or unparsable numeric
// fields stay nil (stored as SQL NULL); review and sales counts always carry
// a concrete value, defaulting to 0.
type Product struct {
	Name           string
	CurrentPrice   *float64
	OriginalPrice  *float64
	DiscountAmount *int
	Rating         *float64
	ReviewCount    int
	UnitsSold      int

	ContentHash string
}
