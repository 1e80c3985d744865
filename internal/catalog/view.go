package catalog

import (
	"github.com/cairogo-gateway/internal/domain"
)

// View - list state of one Browse or Recommendations screen.
// Changing filters or sort returns to the first page.
type View struct {
	Filters  domain.FilterState
	Sort     domain.SortKey
	Page     int
	PageSize int
}

// NewView - view on page 1 with the given default sort
func NewView(sort domain.SortKey, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{Sort: sort, Page: 1, PageSize: pageSize}
}

func (v *View) SetFilters(f domain.FilterState) {
	v.Filters = f
	v.Page = 1
}

func (v *View) SetSort(key domain.SortKey) {
	v.Sort = key
	v.Page = 1
}

// SetPage moves to page n; values below 1 select the first page.
func (v *View) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	v.Page = n
}

// ClearFilters resets every filter dimension.
func (v *View) ClearFilters() {
	v.SetFilters(domain.FilterState{})
}

// Render applies the view to items.
func (v *View) Render(items []domain.Attraction) Page {
	return Apply(items, v.Filters, v.Sort, v.Page, v.PageSize)
}
