package fetch

import (
	"net/url"
	"strconv"
)

// PageURL sets the page-number query parameter on a category URL, producing
// e.g. "https://www.example.com/s?k=laptop&page=3". Page 1 keeps the URL
// untouched: most listing sites treat the bare category URL as page one.
func PageURL(baseURL, pageParam string, page int) string {
	if page <= 1 {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	q := u.Query()
	q.Set(pageParam, strconv.Itoa(page))
	u.RawQuery = q.Encode()

	return u.String()
}
