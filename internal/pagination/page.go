// Package pagination implements page-number pagination for the
// statistics listing.
package pagination

// DefaultPerPage is used when the caller does not specify a page size.
const DefaultPerPage = 20

// MaxPerPage bounds a single page.
const MaxPerPage = 200

// Page describes one requested page.
type Page struct {
	Number  int
	PerPage int
}

// NewPage clamps the requested page number and size to sane values.
func NewPage(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

// Offset returns the row offset of the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// PageResult represents a paginated result set
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResult assembles a PageResult, computing the page count from
// the total row count.
func NewPageResult[T any](items []T, p Page, total int64) PageResult[T] {
	totalPages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		Page:       p.Number,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
