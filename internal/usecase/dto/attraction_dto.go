package dto

import (
	"strings"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/domain"
)

// BrowseRequest - параметры страницы Browse
type BrowseRequest struct {
	CostTiers     []string `json:"costTiers,omitempty"`
	Moods         []string `json:"moods,omitempty"`
	ActivityTypes []string `json:"activityTypes,omitempty"`
	IndoorOutdoor []string `json:"indoorOutdoor,omitempty"`
	MinRating     int      `json:"minRating" validate:"min=0,max=5"`
	Search        string   `json:"search,omitempty" validate:"max=100"`
	Sort          string   `json:"sort,omitempty" validate:"sortkey"`
	Page          int      `json:"page" validate:"omitempty,min=1"`
	PageSize      int      `json:"pageSize" validate:"omitempty,min=1,max=100"`
}

// Filters returns the filter panel state of the request.
func (r BrowseRequest) Filters() domain.FilterState {
	return domain.FilterState{
		CostTiers:     r.CostTiers,
		Moods:         r.Moods,
		ActivityTypes: r.ActivityTypes,
		IndoorOutdoor: r.IndoorOutdoor,
		MinRating:     r.MinRating,
		Search:        strings.TrimSpace(r.Search),
	}
}

// SplitList parses a comma separated query value; blanks are dropped.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Attraction - карточка достопримечательности
type Attraction struct {
	domain.Attraction
	Stars int `json:"stars"`
}

func ToAttraction(a domain.Attraction) Attraction {
	return Attraction{Attraction: a, Stars: catalog.StarRating(a.Rating)}
}

func ToAttractions(items []domain.Attraction) []Attraction {
	out := make([]Attraction, 0, len(items))
	for _, a := range items {
		out = append(out, ToAttraction(a))
	}
	return out
}

// BrowseResponse - одна страница каталога
type BrowseResponse struct {
	Items       []Attraction       `json:"items"`
	Page        int                `json:"page"`
	PageSize    int                `json:"pageSize"`
	TotalPages  int                `json:"totalPages"`
	Total       int                `json:"total"`
	CatalogSize int                `json:"catalogSize"`
	Sort        domain.SortKey     `json:"sort"`
	Filters     domain.FilterState `json:"filters"`
	PriceByTier map[string]int     `json:"priceByTier"`
}

func NewBrowseResponse(p catalog.Page, catalogSize int, sort domain.SortKey, f domain.FilterState, prices catalog.PriceTable) *BrowseResponse {
	return &BrowseResponse{
		Items:       ToAttractions(p.Items),
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		Total:       p.Total,
		CatalogSize: catalogSize,
		Sort:        sort,
		Filters:     f,
		PriceByTier: map[string]int{
			"Low":    prices.Low,
			"Medium": prices.Medium,
			"High":   prices.High,
		},
	}
}
