package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairogo-gateway/internal/domain"
)

func TestMatch_CaseInsensitiveName(t *testing.T) {
	catalog := []domain.Attraction{{ID: 1, PlaceID: "p-1", Title: "Karnak Temple"}}

	res := Match([]domain.MLRecommendation{{Name: "karnak temple", FinalScore: 0.91}}, catalog)

	require.Len(t, res.Matched, 1)
	assert.Empty(t, res.Unmatched)
	require.NotNil(t, res.Matched[0].MLScore)
	assert.Equal(t, 0.91, *res.Matched[0].MLScore)
	assert.Equal(t, "p-1", res.Matched[0].PlaceID)
	assert.Nil(t, catalog[0].MLScore, "catalog entry must not be modified")
}

func TestMatch_OrderAndMisses(t *testing.T) {
	catalog := sampleCatalog()
	recs := []domain.MLRecommendation{
		{Name: "Cairo Tower", FinalScore: 0.42},
		{Name: "  EGYPTIAN MUSEUM ", FinalScore: 0.88},
		{Name: "Giza Pyramids Complex", FinalScore: 0.99},
		{Name: "Karnak", FinalScore: 0.75},
		{Name: "Al-Azhar Park", FinalScore: 0.61},
	}

	res := Match(recs, catalog)

	assert.Equal(t, []int{2, 5, 3}, ids(res.Matched))
	require.Len(t, res.Unmatched, 2)
	assert.Equal(t, "Giza Pyramids Complex", res.Unmatched[0].Name)
	assert.Equal(t, "Karnak", res.Unmatched[1].Name)

	for i := 1; i < len(res.Matched); i++ {
		assert.GreaterOrEqual(t, *res.Matched[i-1].MLScore, *res.Matched[i].MLScore)
	}
}

func TestMatch_DuplicateKeepsHighestScore(t *testing.T) {
	catalog := sampleCatalog()
	res := Match([]domain.MLRecommendation{
		{Name: "Cairo Tower", FinalScore: 0.3},
		{Name: "cairo tower", FinalScore: 0.8},
	}, catalog)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, 0.8, *res.Matched[0].MLScore)
}

func TestTitleIndex_FirstTitleWins(t *testing.T) {
	idx := NewTitleIndex([]domain.Attraction{
		{ID: 1, Title: "Citadel"},
		{ID: 2, Title: "citadel "},
		{ID: 3, Title: ""},
	})

	a, ok := idx.Lookup("CITADEL")
	require.True(t, ok)
	assert.Equal(t, 1, a.ID)

	_, ok = idx.Lookup("")
	assert.False(t, ok)
}
