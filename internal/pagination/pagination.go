package pagination

import (
	"net/http"
	"strconv"
)

// PageSize is fixed for every list endpoint.
const PageSize = 10

type Page struct {
	Number int
}

// FromRequest reads the "page" query parameter. Missing or malformed
// values fall back to the first page.
func FromRequest(r *http.Request) Page {
	number, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || number < 1 {
		number = 1
	}
	return Page{Number: number}
}

func (p Page) Limit() int {
	return PageSize
}

func (p Page) Offset() int {
	return (p.Number - 1) * PageSize
}
