package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairogo-gateway/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestPriceTable_PriceForTier(t *testing.T) {
	tests := []struct {
		tier     string
		expected *int
	}{
		{"low", intPtr(200)},
		{"Low", intPtr(200)},
		{"MEDIUM", intPtr(500)},
		{" high ", intPtr(1000)},
		{"Moderate", nil},
		{"", nil},
		{"free", nil},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultPrices.PriceForTier(tt.tier))
		})
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer("https://api.cairogo.test", "", DefaultPrices)

	t.Run("karnak temple with low tier gets price 200", func(t *testing.T) {
		a := n.Normalize(domain.RawPlace{
			PlaceID:  "p-1",
			Name:     "Karnak Temple",
			CostTier: strPtr("Low"),
		}, 1)

		assert.Equal(t, "Low", a.Level)
		require.NotNil(t, a.Price)
		assert.Equal(t, 200, *a.Price)
	})

	t.Run("unmapped tier leaves price nil", func(t *testing.T) {
		a := n.Normalize(domain.RawPlace{Name: "Cairo Tower", CostTier: strPtr("Moderate")}, 1)
		assert.Equal(t, "Moderate", a.Level)
		assert.Nil(t, a.Price)
	})

	t.Run("description fallback chain", func(t *testing.T) {
		short := n.Normalize(domain.RawPlace{ShortDescription: strPtr("Short"), Description: strPtr("Long")}, 1)
		assert.Equal(t, "Short", short.Description)
		require.NotNil(t, short.LongDescription)
		assert.Equal(t, "Long", *short.LongDescription)

		full := n.Normalize(domain.RawPlace{ShortDescription: strPtr("  "), Description: strPtr("Long")}, 1)
		assert.Equal(t, "Long", full.Description)

		none := n.Normalize(domain.RawPlace{}, 1)
		assert.Equal(t, PlaceholderDescription, none.Description)
		assert.Nil(t, none.LongDescription)
	})

	t.Run("optional metadata stays nil when missing", func(t *testing.T) {
		a := n.Normalize(domain.RawPlace{Name: "Al-Azhar Park"}, 3)
		assert.Equal(t, 3, a.ID)
		assert.Nil(t, a.Photo)
		assert.Nil(t, a.Website)
		assert.Nil(t, a.IndoorOutdoor)
		assert.Nil(t, a.AverageVisitMinutes)
		assert.Nil(t, a.MLScore)
	})
}

func TestNormalizer_NormalizeAll_SequentialIDs(t *testing.T) {
	n := NewNormalizer("https://api.cairogo.test", "", DefaultPrices)
	out := n.NormalizeAll([]domain.RawPlace{
		{PlaceID: "a", Name: "A"},
		{PlaceID: "b", Name: "B"},
		{PlaceID: "c", Name: "C"},
	})

	require.Len(t, out, 3)
	for i, a := range out {
		assert.Equal(t, i+1, a.ID)
	}
	assert.Equal(t, "b", out[1].PlaceID)
}

func TestNormalizedRatingWithinBounds(t *testing.T) {
	n := NewNormalizer("https://api.cairogo.test", "", DefaultPrices)
	inputs := []interface{}{nil, 4.6, -2.0, 7.5, "4.2", "9", "-1", "n/a", true, []int{1}, 3, int64(6)}

	for _, in := range inputs {
		a := n.Normalize(domain.RawPlace{Rating: in}, 1)
		assert.GreaterOrEqual(t, a.Rating, 0.0, "input %v", in)
		assert.LessOrEqual(t, a.Rating, 5.0, "input %v", in)
	}
}

func TestParseRating(t *testing.T) {
	assert.Equal(t, 4.5, ParseRating(4.5))
	assert.Equal(t, 4.2, ParseRating(" 4.2 "))
	assert.Equal(t, 0.0, ParseRating("excellent"))
	assert.Equal(t, 0.0, ParseRating(nil))
	assert.Equal(t, 0.0, ParseRating(map[string]int{}))
}

func TestStarRating(t *testing.T) {
	assert.Equal(t, 0, StarRating(-3))
	assert.Equal(t, 4, StarRating(4.4))
	assert.Equal(t, 5, StarRating(4.5))
	assert.Equal(t, 5, StarRating(12))
}

func TestNormalizer_ResolvePhotoURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		proxy    string
		raw      *string
		expected *string
	}{
		{
			name:     "nil stays nil",
			base:     "https://api.cairogo.test",
			raw:      nil,
			expected: nil,
		},
		{
			name:     "absolute on api origin rewritten to proxy",
			base:     "https://api.cairogo.test",
			proxy:    "/backend",
			raw:      strPtr("https://api.cairogo.test/uploads/karnak.jpg?w=400#top"),
			expected: strPtr("/backend/uploads/karnak.jpg?w=400#top"),
		},
		{
			name:     "absolute on api origin kept without proxy",
			base:     "https://api.cairogo.test",
			raw:      strPtr("https://api.cairogo.test/uploads/karnak.jpg"),
			expected: strPtr("https://api.cairogo.test/uploads/karnak.jpg"),
		},
		{
			name:     "absolute on foreign origin kept",
			base:     "https://api.cairogo.test",
			proxy:    "/backend",
			raw:      strPtr("https://images.example.com/pyramids.png"),
			expected: strPtr("https://images.example.com/pyramids.png"),
		},
		{
			name:     "relative resolved against api base",
			base:     "https://api.cairogo.test",
			raw:      strPtr("/uploads/sphinx.jpg"),
			expected: strPtr("https://api.cairogo.test/uploads/sphinx.jpg"),
		},
		{
			name:     "relative resolved then proxied",
			base:     "https://api.cairogo.test",
			proxy:    "/backend/",
			raw:      strPtr("uploads/sphinx.jpg"),
			expected: strPtr("/backend/uploads/sphinx.jpg"),
		},
		{
			name:     "parse failure passes through",
			base:     "https://api.cairogo.test",
			proxy:    "/backend",
			raw:      strPtr("http://[::1"),
			expected: strPtr("http://[::1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.base, tt.proxy, DefaultPrices)
			assert.Equal(t, tt.expected, n.ResolvePhotoURL(tt.raw))
		})
	}
}
