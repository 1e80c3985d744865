package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairogo-gateway/internal/domain"
)

func intPtr(i int) *int { return &i }

func sampleCatalog() []domain.Attraction {
	return []domain.Attraction{
		{ID: 1, Title: "Karnak Temple", Rating: 4.8, Level: "Low", Price: intPtr(200), Category: "Historical", Distance: "Luxor",
			Moods: []string{"Calm"}, ActivityTypes: []string{"Sightseeing"}, IndoorOutdoor: strPtr("Outdoor")},
		{ID: 2, Title: "Egyptian Museum", Rating: 4.6, Level: "Medium", Price: intPtr(500), Category: "Museum", Distance: "Downtown",
			Moods: []string{"Educational"}, ActivityTypes: []string{"Culture"}, IndoorOutdoor: strPtr("Indoor")},
		{ID: 3, Title: "Cairo Tower", Rating: 4.3, Level: "High", Price: intPtr(1000), Category: "Landmark", Distance: "Zamalek",
			Moods: []string{"Romantic"}, IndoorOutdoor: strPtr("Both")},
		{ID: 4, Title: "Khan el-Khalili", Rating: 4.5, Level: "Moderate", Category: "Market", Distance: "",
			Moods: []string{"Lively", "Romantic"}, ActivityTypes: []string{"Shopping"}},
		{ID: 5, Title: "Al-Azhar Park", Rating: 4.3, Level: "low", Price: intPtr(200), Category: "Park", Distance: "Islamic Cairo",
			Moods: []string{"calm"}, IndoorOutdoor: strPtr("outdoor")},
	}
}

func ids(items []domain.Attraction) []int {
	out := make([]int, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func TestFilter_HighTierAndMinRating(t *testing.T) {
	catalog := []domain.Attraction{
		{ID: 1, Rating: 4.9, Level: "Moderate"},
		{ID: 2, Rating: 4.7, Level: "High"},
	}

	out := Filter(catalog, domain.FilterState{CostTiers: []string{"High"}, MinRating: 4})

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].ID)
}

func TestFilter_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.FilterState
		expected []int
	}{
		{"empty filter keeps everything", domain.FilterState{}, []int{1, 2, 3, 4, 5}},
		{"cost tier is case-insensitive exact", domain.FilterState{CostTiers: []string{"LOW"}}, []int{1, 5}},
		{"cost tier is not substring", domain.FilterState{CostTiers: []string{"Lo"}}, []int{}},
		{"mood any-match", domain.FilterState{Moods: []string{"romantic", "calm"}}, []int{1, 3, 4, 5}},
		{"category matches category label", domain.FilterState{ActivityTypes: []string{"museum"}}, []int{2}},
		{"category matches activity type", domain.FilterState{ActivityTypes: []string{"Shopping"}}, []int{4}},
		{"indoor outdoor excludes unknown", domain.FilterState{IndoorOutdoor: []string{"Outdoor"}}, []int{1, 5}},
		{"min rating inclusive", domain.FilterState{MinRating: 4}, []int{1, 2, 3, 4, 5}},
		{"min rating excludes", domain.FilterState{MinRating: 5}, []int{}},
		{"search title substring", domain.FilterState{Search: "tower"}, []int{3}},
		{"search category", domain.FilterState{Search: "MARK"}, []int{3, 4}},
		{"dimensions are ANDed", domain.FilterState{Moods: []string{"Romantic"}, CostTiers: []string{"High"}}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Filter(sampleCatalog(), tt.filters)))
		})
	}
}

// Adding a value to one dimension never removes items that already passed it.
func TestFilter_MonotonicPerDimension(t *testing.T) {
	catalog := sampleCatalog()

	dims := []struct {
		name   string
		before domain.FilterState
		after  domain.FilterState
	}{
		{"cost", domain.FilterState{CostTiers: []string{"Low"}}, domain.FilterState{CostTiers: []string{"Low", "High"}}},
		{"mood", domain.FilterState{Moods: []string{"Calm"}}, domain.FilterState{Moods: []string{"Calm", "Lively"}}},
		{"category", domain.FilterState{ActivityTypes: []string{"Museum"}}, domain.FilterState{ActivityTypes: []string{"Museum", "Park"}}},
		{"indoor", domain.FilterState{IndoorOutdoor: []string{"Indoor"}}, domain.FilterState{IndoorOutdoor: []string{"Indoor", "Both"}}},
	}

	for _, d := range dims {
		t.Run(d.name, func(t *testing.T) {
			before := ids(Filter(catalog, d.before))
			after := ids(Filter(catalog, d.after))
			for _, id := range before {
				assert.Contains(t, after, id)
			}
		})
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		key      domain.SortKey
		expected []int
	}{
		{domain.SortRatingDesc, []int{1, 2, 4, 3, 5}},
		{domain.SortRatingAsc, []int{3, 5, 4, 2, 1}},
		{domain.SortPriceAsc, []int{1, 5, 2, 3, 4}},
		{domain.SortPriceDesc, []int{3, 2, 1, 5, 4}},
		{domain.SortDistanceAsc, []int{2, 5, 1, 3, 4}},
		{domain.SortRelevance, []int{1, 2, 3, 4, 5}},
		{"", []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Sort(sampleCatalog(), tt.key)))
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	_ = Sort(catalog, domain.SortRatingAsc)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(catalog))
}

func TestPaginate_Invariant(t *testing.T) {
	for n := 0; n <= 30; n++ {
		items := make([]domain.Attraction, n)
		for i := range items {
			items[i] = domain.Attraction{ID: i + 1, Rating: float64(i % 5)}
		}
		sorted := Sort(items, domain.SortRatingDesc)

		for _, size := range []int{1, 5, 12} {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				first := Paginate(sorted, 1, size)
				assert.Equal(t, (n+size-1)/size, first.TotalPages)

				var all []domain.Attraction
				for p := 1; p <= first.TotalPages; p++ {
					all = append(all, Paginate(sorted, p, size).Items...)
				}
				assert.Equal(t, ids(sorted), ids(all))
			})
		}
	}
}

func TestPaginate_EdgeCases(t *testing.T) {
	t.Run("empty list has zero pages", func(t *testing.T) {
		p := Paginate(nil, 1, 12)
		assert.Equal(t, 0, p.TotalPages)
		assert.Empty(t, p.Items)
		assert.NotNil(t, p.Items)
	})

	t.Run("page below one is first page", func(t *testing.T) {
		p := Paginate(sampleCatalog(), 0, 2)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, []int{1, 2}, ids(p.Items))
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		p := Paginate(sampleCatalog(), 9, 2)
		assert.Empty(t, p.Items)
		assert.Equal(t, 3, p.TotalPages)
	})
}

func TestApply(t *testing.T) {
	page := Apply(sampleCatalog(), domain.FilterState{MinRating: 4}, domain.SortPriceAsc, 2, 2)

	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{2, 3}, ids(page.Items))
}

func TestView_ResetsPage(t *testing.T) {
	v := NewView(domain.SortRatingDesc, 2)
	v.SetPage(3)
	assert.Equal(t, 3, v.Page)

	v.SetFilters(domain.FilterState{Moods: []string{"Calm"}})
	assert.Equal(t, 1, v.Page)

	v.SetPage(2)
	v.SetSort(domain.SortPriceDesc)
	assert.Equal(t, 1, v.Page)

	page := v.Render(sampleCatalog())
	assert.Equal(t, []int{1, 5}, ids(page.Items))
}
