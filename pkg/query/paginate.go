// Package query filters and paginates slice items the way the dashboard lists do.
package query

// Page is one page of a list
type Page[T any] struct {
	Items      []T `json:"items" yaml:"items"`
	Page       int `json:"page" yaml:"page"`
	PerPage    int `json:"perPage" yaml:"perPage"`
	Total      int `json:"total" yaml:"total"`
	TotalPages int `json:"totalPages" yaml:"totalPages"`
	// From and To are the 1-based positions of the first and last item shown, 0 when empty
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// HasNext reports whether a later page exists
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// Paginate returns the 1-based page of items. page is clamped into range and a
// non-positive perPage shows everything on one page.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	total := len(items)
	if perPage <= 0 {
		perPage = total
		if perPage == 0 {
			perPage = 1
		}
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	result := Page[T]{
		Items:      append(make([]T, 0, end-start), items[start:end]...),
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
	if end > start {
		result.From = start + 1
		result.To = end
	}
	return result
}
