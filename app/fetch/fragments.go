package fetch

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/lysyi3m/shop-comb/app/extract"
)

// CollectFragments returns one fragment per item container matched on the
// page. A malformed item selector is a configuration error, not a soft miss,
// so it is reported to the caller.
func CollectFragments(doc *goquery.Document, itemSelector string) ([]extract.Fragment, error) {
	matcher, err := cascadia.Compile(itemSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid item selector %q: %w", itemSelector, err)
	}

	var fragments []extract.Fragment
	doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, extract.NewFragment(sel))
	})

	return fragments, nil
}
