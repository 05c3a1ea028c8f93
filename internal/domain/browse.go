package domain

import "strings"

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 10

// Page is one page of the filtered currency list.
type Page struct {
	Codes      []string
	Number     int // 1-based, clamped
	TotalPages int
	Total      int // size of the filtered set
}

func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext is false exactly when the page is the last one (or there are none).
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Filter keeps the codes containing term, ignoring case, in input order.
func Filter(codes []string, term string) []string {
	needle := strings.ToLower(term)
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if strings.Contains(strings.ToLower(c), needle) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// ClampPage bounds page to [1, totalPages]; with no pages it is 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the requested page of filtered, clamping the page number.
func Paginate(filtered []string, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(filtered), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := page * size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	codes := make([]string, end-start)
	copy(codes, filtered[start:end])

	return Page{
		Codes:      codes,
		Number:     page,
		TotalPages: total,
		Total:      len(filtered),
	}
}
