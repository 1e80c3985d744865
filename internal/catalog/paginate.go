package catalog

import (
	"github.com/cairogo-gateway/internal/domain"
)

// DefaultPageSize - cards per Browse page
const DefaultPageSize = 12

// Page - one page of the filtered, sorted list
type Page struct {
	Items      []domain.Attraction `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
	Total      int                 `json:"total"`
}

// Paginate slices items into page number page (1-based). Pages past the end
// are empty; an empty list has zero pages.
func Paginate(items []domain.Attraction, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	p := Page{
		Items:      []domain.Attraction{},
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
		Total:      total,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := min(start+pageSize, total)
	p.Items = items[start:end:end]
	return p
}

// Apply runs filter, sort and paginate in that order.
func Apply(items []domain.Attraction, f domain.FilterState, key domain.SortKey, page, pageSize int) Page {
	return Paginate(Sort(Filter(items, f), key), page, pageSize)
}
