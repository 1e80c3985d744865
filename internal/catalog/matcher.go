package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cairogo-gateway/internal/domain"
)

// MatchResult - ML recommendations joined to the catalog
type MatchResult struct {
	// Matched holds catalog copies with MLScore set, by descending score.
	Matched []domain.Attraction
	// Unmatched holds recommendations whose name is not a catalog title.
	Unmatched []domain.MLRecommendation
}

// TitleIndex - lowercased, trimmed title -> attraction. The first catalog
// entry wins when titles collide.
type TitleIndex map[string]domain.Attraction

func titleKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewTitleIndex indexes catalog by title.
func NewTitleIndex(catalog []domain.Attraction) TitleIndex {
	idx := make(TitleIndex, len(catalog))
	for _, a := range catalog {
		k := titleKey(a.Title)
		if k == "" {
			continue
		}
		if _, ok := idx[k]; !ok {
			idx[k] = a
		}
	}
	return idx
}

// Lookup finds the attraction titled name, ignoring case and surrounding space.
func (idx TitleIndex) Lookup(name string) (domain.Attraction, bool) {
	a, ok := idx[titleKey(name)]
	return a, ok
}

// Match joins recs to catalog by case-insensitive exact name. When several
// recommendations hit the same attraction the highest score is kept.
func Match(recs []domain.MLRecommendation, catalog []domain.Attraction) MatchResult {
	return NewTitleIndex(catalog).Match(recs)
}

// Match joins recs against the index.
func (idx TitleIndex) Match(recs []domain.MLRecommendation) MatchResult {
	res := MatchResult{
		Matched:   make([]domain.Attraction, 0, len(recs)),
		Unmatched: []domain.MLRecommendation{},
	}
	pos := make(map[int]int, len(recs))

	for _, rec := range recs {
		a, ok := idx.Lookup(rec.Name)
		if !ok {
			res.Unmatched = append(res.Unmatched, rec)
			continue
		}
		score := rec.FinalScore
		if i, dup := pos[a.ID]; dup {
			if score > *res.Matched[i].MLScore {
				res.Matched[i].MLScore = &score
			}
			continue
		}
		a.MLScore = &score
		pos[a.ID] = len(res.Matched)
		res.Matched = append(res.Matched, a)
	}

	slices.SortStableFunc(res.Matched, func(a, b domain.Attraction) int {
		return cmp.Compare(*b.MLScore, *a.MLScore)
	})
	return res
}
