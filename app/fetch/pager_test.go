package fetch

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestPageURL(t *testing.T) {
	base := "https://www.example.com/s?k=gaming+laptop"

	if got := PageURL(base, "page", 1); got != base {
		t.Errorf("Expected page 1 to keep the base URL, got '%s'", got)
	}

	got := PageURL(base, "page", 3)
	if !strings.Contains(got, "page=3") {
		t.Errorf("Expected page parameter in '%s'", got)
	}
	if !strings.Contains(got, "k=gaming+laptop") {
		t.Errorf("Expected existing query preserved in '%s'", got)
	}
}

func TestPageURLCustomParam(t *testing.T) {
	got := PageURL("https://www.example.com/phones/", "p", 2)
	if !strings.Contains(got, "p=2") {
		t.Errorf("Expected custom page parameter in '%s'", got)
	}
}

func TestPageURLInvalidBase(t *testing.T) {
	base := "://not-a-url"
	if got := PageURL(base, "page", 2); got != base {
		t.Errorf("Expected invalid base URL returned unchanged, got '%s'", got)
	}
}

func TestCollectFragments(t *testing.T) {
	html := `<html><body>
		<div class="item"><h2>First</h2></div>
		<div class="item"><h2>Second</h2></div>
		<div class="other"><h2>Not an item</h2></div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	fragments, err := CollectFragments(doc, "div.item")
	if err != nil {
		t.Fatal(err)
	}
	if len(fragments) != 2 {
		t.Fatalf("Expected 2 fragments, got %d", len(fragments))
	}

	name, ok := fragments[0].Text("h2")
	if !ok || name != "First" {
		t.Errorf("Expected first fragment name 'First', got '%s' (ok=%v)", name, ok)
	}
}

func TestCollectFragmentsInvalidSelector(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := CollectFragments(doc, "[[invalid"); err == nil {
		t.Error("Expected error for malformed item selector")
	}
}
