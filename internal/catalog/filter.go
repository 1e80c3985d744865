package catalog

import (
	"strings"

	"github.com/cairogo-gateway/internal/domain"
)

// Filter returns the items passing every predicate of f, in input order.
func Filter(items []domain.Attraction, f domain.FilterState) []domain.Attraction {
	out := make([]domain.Attraction, 0, len(items))
	for i := range items {
		if Matches(items[i], f) {
			out = append(out, items[i])
		}
	}
	return out
}

// Matches ANDs the cost tier, mood, category, indoor/outdoor, min-rating
// and search predicates. Each multi-select predicate is an any-match over
// its selected values and passes when nothing is selected.
func Matches(a domain.Attraction, f domain.FilterState) bool {
	return matchCostTier(a, f.CostTiers) &&
		matchMood(a, f.Moods) &&
		matchCategory(a, f.ActivityTypes) &&
		matchIndoorOutdoor(a, f.IndoorOutdoor) &&
		matchMinRating(a, f.MinRating) &&
		matchSearch(a, f.Search)
}

func matchCostTier(a domain.Attraction, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return containsFold(selected, a.Level)
}

func matchMood(a domain.Attraction, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, m := range a.Moods {
		if containsFold(selected, m) {
			return true
		}
	}
	return false
}

// matchCategory accepts the place category or any of its activity types.
func matchCategory(a domain.Attraction, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if containsFold(selected, a.Category) {
		return true
	}
	for _, t := range a.ActivityTypes {
		if containsFold(selected, t) {
			return true
		}
	}
	return false
}

func matchIndoorOutdoor(a domain.Attraction, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if a.IndoorOutdoor == nil {
		return false
	}
	return containsFold(selected, *a.IndoorOutdoor)
}

func matchMinRating(a domain.Attraction, minRating int) bool {
	if minRating <= 0 {
		return true
	}
	return a.Rating >= float64(minRating)
}

// matchSearch is a case-insensitive substring test over title, description and category.
func matchSearch(a domain.Attraction, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q) ||
		strings.Contains(strings.ToLower(a.Category), q)
}

func containsFold(selected []string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, s := range selected {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
