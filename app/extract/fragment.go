package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var _ Fragment = (*selectionFragment)(nil)

type selectionFragment struct {
	sel *goquery.Selection
}

// NewFragment wraps a goquery selection as a Fragment. The selection is
// expected to be one item container matched on a listing page.
func NewFragment(sel *goquery.Selection) Fragment {
	return &selectionFragment{sel: sel}
}

// Text returns the trimmed text of the first descendant matching selector.
// The selector is compiled with cascadia.Compile rather than goquery's Find,
// which panics on malformed input.
func (f *selectionFragment) Text(selector string) (string, bool) {
	if f.sel == nil || selector == "" {
		return "", false
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return "", false
	}

	found := f.sel.FindMatcher(matcher).First()
	if found.Length() == 0 {
		return "", false
	}

	return strings.TrimSpace(found.Text()), true
}
