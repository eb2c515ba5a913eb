package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func fragmentFromHTML(t *testing.T, html string) Fragment {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return NewFragment(doc.Find("div.item").First())
}

func TestFragmentText(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item">
		<h2 class="title">  Widget
		</h2>
		<span class="price">$19.99</span>
	</div>`)

	text, ok := fragment.Text(".title")
	if !ok {
		t.Fatal("Expected .title to be present")
	}
	if text != "Widget" {
		t.Errorf("Expected trimmed text 'Widget', got '%s'", text)
	}
}

func TestFragmentTextMiss(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item"><span>anything</span></div>`)

	if _, ok := fragment.Text(".does-not-exist"); ok {
		t.Error("Expected miss for absent selector")
	}
	if _, ok := fragment.Text(""); ok {
		t.Error("Expected miss for empty selector")
	}
}

func TestFragmentTextMalformedSelector(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item"><span>anything</span></div>`)

	// Malformed selectors must degrade to a miss, never panic.
	if _, ok := fragment.Text("[[invalid"); ok {
		t.Error("Expected miss for malformed selector")
	}
}

func TestFragmentTextFirstMatchWins(t *testing.T) {
	fragment := fragmentFromHTML(t, `<div class="item">
		<span class="price">$10.00</span>
		<span class="price">$20.00</span>
	</div>`)

	text, ok := fragment.Text(".price")
	if !ok || text != "$10.00" {
		t.Errorf("Expected first match '$10.00', got '%s' (ok=%v)", text, ok)
	}
}
