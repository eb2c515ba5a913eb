package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalRe    = regexp.MustCompile(`\d+(?:\.\d+)?`)
	parenDigitRe = regexp.MustCompile(`\((\d[\d,]*)\)`)
)

// ParsePrice strips currency symbols and thousands separators from a raw
// price string and parses the remaining digits and decimal point. Non-numeric
// residue ("N/A", empty text) reports absence.
func ParsePrice(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseRating extracts the first decimal-number substring from free text such
// as "4.5 out of 5 stars". No such substring reports absence.
func ParseRating(s string) (float64, bool) {
	match := decimalRe.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseReviewCount turns a review-count string into a non-negative integer.
// The parenthesis form ("(123)") takes the digits inside the first group;
// otherwise every non-digit character is stripped. An empty digit run is 0.
func ParseReviewCount(s string) int {
	if m := parenDigitRe.FindStringSubmatch(s); m != nil {
		return digitsToInt(m[1])
	}
	return digitsToInt(s)
}

// ParseAmountBought parses "amount bought" text such as "1000+ bought in past
// month": digits before a "+" suffix when present, all digits otherwise.
func ParseAmountBought(s string) int {
	if i := strings.Index(s, "+"); i >= 0 {
		s = s[:i]
	}
	return digitsToInt(s)
}

// EstimateUnitsSold converts a review count into an estimated purchase count
// using the configured review-to-sale ratio (the assumed fraction of buyers
// who leave a review). A non-positive ratio yields 0.
func EstimateUnitsSold(reviewCount int, ratio float64) int {
	if ratio <= 0 || reviewCount <= 0 {
		return 0
	}
	return int(math.Round(float64(reviewCount) / ratio))
}

func digitsToInt(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return value
}
