package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cairogo-gateway/internal/domain"
)

// Sort returns a stably sorted copy of items. SortRelevance and unknown keys
// keep the input order. Attractions without a price or district go last.
func Sort(items []domain.Attraction, key domain.SortKey) []domain.Attraction {
	out := slices.Clone(items)

	var less func(a, b domain.Attraction) int
	switch key {
	case domain.SortRatingDesc:
		less = func(a, b domain.Attraction) int { return cmp.Compare(b.Rating, a.Rating) }
	case domain.SortRatingAsc:
		less = func(a, b domain.Attraction) int { return cmp.Compare(a.Rating, b.Rating) }
	case domain.SortPriceAsc:
		less = func(a, b domain.Attraction) int { return comparePrice(a.Price, b.Price, false) }
	case domain.SortPriceDesc:
		less = func(a, b domain.Attraction) int { return comparePrice(a.Price, b.Price, true) }
	case domain.SortDistanceAsc:
		less = func(a, b domain.Attraction) int { return compareDistrict(a.Distance, b.Distance) }
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}

func comparePrice(a, b *int, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case desc:
		return cmp.Compare(*b, *a)
	default:
		return cmp.Compare(*a, *b)
	}
}

func compareDistrict(a, b string) int {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	default:
		return strings.Compare(a, b)
	}
}
