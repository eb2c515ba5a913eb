package extract

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$1,234.56", 1234.56, true},
		{"$19.99", 19.99, true},
		{"KSh 2,500", 2500, true},
		{"150", 150, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"Out of stock", 0, false},
		{"1.234.56", 0, false}, // two decimal points leave non-numeric residue
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.input)
		if ok != tt.ok {
			t.Errorf("ParsePrice(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"4.5 out of 5 stars", 4.5, true},
		{"Rated 3 stars", 3, true},
		{"5.0", 5.0, true},
		{"", 0, false},
		{"no rating yet", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseRating(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseRating(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseRating(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseReviewCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1,234", 1234},
		{"87", 87},
		{"(87)", 87},
		{"(1,203)", 1203},
		{"", 0},
		{"N/A", 0},
		{"no reviews", 0},
	}

	for _, tt := range tests {
		if got := ParseReviewCount(tt.input); got != tt.want {
			t.Errorf("ParseReviewCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseAmountBought(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"500+ bought in past month", 500},
		{"1,000+ bought in past month", 1000},
		{"237 sold", 237},
		{"", 0},
		{"N/A", 0},
	}

	for _, tt := range tests {
		if got := ParseAmountBought(tt.input); got != tt.want {
			t.Errorf("ParseAmountBought(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestEstimateUnitsSold(t *testing.T) {
	if got := EstimateUnitsSold(50, 0.1); got != 500 {
		t.Errorf("EstimateUnitsSold(50, 0.1) = %d, want 500", got)
	}
	if got := EstimateUnitsSold(0, 0.1); got != 0 {
		t.Errorf("EstimateUnitsSold(0, 0.1) = %d, want 0", got)
	}
	if got := EstimateUnitsSold(50, 0); got != 0 {
		t.Errorf("EstimateUnitsSold(50, 0) = %d, want 0", got)
	}
	if got := EstimateUnitsSold(33, 0.1); got != 330 {
		t.Errorf("EstimateUnitsSold(33, 0.1) = %d, want 330", got)
	}
}
