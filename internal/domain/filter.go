package domain

import "strings"

// FilterState - the Browse/Recommendations filter panel.
// Every multi-select dimension is any-match, and vacuously true when empty.
type FilterState struct {
	CostTiers     []string `json:"costTiers,omitempty"`
	Moods         []string `json:"moods,omitempty"`
	ActivityTypes []string `json:"activityTypes,omitempty"`
	IndoorOutdoor []string `json:"indoorOutdoor,omitempty"`
	MinRating     int      `json:"minRating,omitempty"`
	Search        string   `json:"search,omitempty"`
}

// IsZero reports whether no filter is selected.
func (f FilterState) IsZero() bool {
	return len(f.CostTiers) == 0 &&
		len(f.Moods) == 0 &&
		len(f.ActivityTypes) == 0 &&
		len(f.IndoorOutdoor) == 0 &&
		f.MinRating == 0 &&
		strings.TrimSpace(f.Search) == ""
}

// SortKey - ordering of the attraction list
type SortKey string

const (
	// SortRelevance keeps the incoming order (ML score order for recommendations).
	SortRelevance   SortKey = "relevance"
	SortRatingDesc  SortKey = "rating_desc"
	SortRatingAsc   SortKey = "rating_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortPriceAsc    SortKey = "price_asc"
	SortDistanceAsc SortKey = "distance_asc"
)

// ParseSortKey maps user input to a SortKey; unknown values fall back to def.
func ParseSortKey(s string, def SortKey) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortRelevance, SortRatingDesc, SortRatingAsc, SortPriceDesc, SortPriceAsc, SortDistanceAsc:
		return k
	default:
		return def
	}
}
