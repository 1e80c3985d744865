package cli

import (
	"bytes"
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/favorites"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/repository/cache"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/session"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

const placesJSON = `[
	{"placeId":"p-karnak","name":"Karnak Temple","rating":4.8,"costTier":"Low","category":"Historical","moodTags":["Cultural"]},
	{"placeId":"p-tower","name":"Cairo Tower","rating":4.4,"costTier":"Medium","category":"Landmark","moodTags":["Romantic"]},
	{"placeId":"p-khan","name":"Khan el-Khalili","rating":4.6,"costTier":"Low","category":"Market","moodTags":["Lively"]}
]`

// syncBuffer is written by the favorites watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func newTestCLI(t *testing.T) (*CLI, *syncBuffer) {
	t.Helper()
	logger := zap.NewNop()

	mux := nethttp.NewServeMux()
	mux.HandleFunc("/api/places", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(placesJSON))
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	store := kv.NewMemory()
	sess, err := session.New(context.Background(), store, session.NamespacePrefix+"local", session.WithLogger(logger))
	require.NoError(t, err)

	cacheRepo := cache.NewCacheRepository(store, logger)
	gw := backend.NewGateway(upstream.Client(), upstream.URL, 5*time.Second, logger)
	client := backend.NewClientWithGateway(gw, config.MLConfig{RequestTimeout: 5 * time.Second, BreakerFailures: 3, BreakerTimeout: time.Minute}, logger)

	vibeTags := usecase.NewVibeTagUseCase(client, cacheRepo, time.Hour, logger)
	catalogUC := usecase.NewCatalogUseCase(client, cacheRepo, catalog.NewNormalizer(upstream.URL, "", catalog.DefaultPrices), vibeTags, time.Minute, 12, logger)

	bus := favorites.NewBus(logger)
	t.Cleanup(func() { _ = bus.Close() })
	selector := favorites.NewSelector(client, cacheRepo, time.Minute, store, bus, logger)

	out := &syncBuffer{}
	c := NewCLI(Deps{
		Auth:            usecase.NewAuthUseCase(client, client, logger),
		Profile:         usecase.NewProfileUseCase(client, logger),
		Catalog:         catalogUC,
		Recommendations: usecase.NewRecommendationUseCase(client, catalogUC, cacheRepo, time.Minute, logger),
		Favorites:       usecase.NewFavoriteUseCase(selector, catalogUC, logger),
		Preferences:     usecase.NewPreferenceUseCase(client, cacheRepo, logger),
		Trips:           usecase.NewTripPlanUseCase(client, client, catalogUC, logger),
	}, sess, out, logger)
	return c, out
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: "whoami", want: []string{"whoami"}},
		{input: "fav  add   2", want: []string{"fav", "add", "2"}},
		{input: `trips save 1 "Nile weekend"`, want: []string{"trips", "save", "1", "Nile weekend"}},
		{input: `fav cat 2 ""`, want: []string{"fav", "cat", "2", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.input))
		})
	}
}

func TestCLI_Browse(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, c.Execute(ctx, []string{"browse", "--tier", "Low", "--sort", "rating_desc"}))
	text := out.String()
	assert.Contains(t, text, "Karnak Temple")
	assert.Contains(t, text, "Khan el-Khalili")
	assert.NotContains(t, text, "Cairo Tower")
	assert.Less(t, strings.Index(text, "Karnak"), strings.Index(text, "Khan"))
	assert.Contains(t, text, "Page 1/1, 2 of 3 attractions")

	out.Reset()
	require.NoError(t, c.Execute(ctx, []string{"browse", "pyramids"}))
	assert.Contains(t, out.String(), "No attractions match.")

	err := c.Execute(ctx, []string{"browse", "--min-rating", "7"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidationFailed)
	assert.Contains(t, Describe(err), "minRating: max")
}

func TestCLI_Show(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.Execute(context.Background(), []string{"show", "p-tower"}))
	assert.Contains(t, out.String(), "#2 Cairo Tower")
	assert.Contains(t, out.String(), "moods: Romantic")

	err := c.Execute(context.Background(), []string{"show", "99"})
	assert.ErrorIs(t, err, errors.ErrAttractionNotFound)
}

func TestCLI_LocalFavorites(t *testing.T) {
	c, out := newTestCLI(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Watch(ctx))

	require.NoError(t, c.Execute(ctx, []string{"fav", "add", "2", "Evening"}))
	require.NoError(t, c.Execute(ctx, []string{"fav", "add", "1"}))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "* favorites added: 2")
	}, time.Second, 10*time.Millisecond)

	out.Reset()
	require.NoError(t, c.Execute(ctx, []string{"fav", "ls", "--category", "evening"}))
	assert.Contains(t, out.String(), "#2 Cairo Tower")
	assert.NotContains(t, out.String(), "Karnak")
	assert.Contains(t, out.String(), "Categories: Evening")

	out.Reset()
	require.NoError(t, c.Execute(ctx, []string{"fav", "toggle", "2"}))
	assert.Contains(t, out.String(), "Removed from favorites.")

	err := c.Execute(ctx, []string{"fav", "cat", "2", "Night"})
	assert.ErrorIs(t, err, errors.ErrFavoriteNotFound)

	require.Error(t, c.Execute(ctx, []string{"fav", "bogus"}))
}

func TestCLI_SignedOutCommands(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, c.Execute(ctx, []string{"whoami"}))
	assert.Contains(t, out.String(), "Not signed in.")
	assert.Equal(t, "cairogo> ", c.Prompt())

	assert.ErrorIs(t, c.Execute(ctx, []string{"recommend"}), errors.ErrUnauthorized)
	assert.ErrorIs(t, c.Execute(ctx, []string{"trips"}), errors.ErrUnauthorized)

	err := c.Execute(ctx, []string{"login", "not-an-email", "x"})
	assert.ErrorIs(t, err, errors.ErrValidationFailed)
	assert.Contains(t, Describe(err), "email: email")
}

func TestCLI_DarkModeAndHelp(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, c.Execute(ctx, []string{"dark", "on"}))
	out.Reset()
	require.NoError(t, c.Execute(ctx, []string{"dark"}))
	assert.Equal(t, "Dark mode is on.\n", out.String())
	assert.Error(t, c.Execute(ctx, []string{"dark", "maybe"}))

	out.Reset()
	require.NoError(t, c.Execute(ctx, []string{"help"}))
	assert.Contains(t, out.String(), "  browse\n")
	assert.Less(t, strings.Index(out.String(), "browse"), strings.Index(out.String(), "whoami"))

	out.Reset()
	require.NoError(t, c.Execute(ctx, []string{"help", "fav"}))
	assert.Contains(t, out.String(), "fav add <id>")

	assert.Error(t, c.Execute(ctx, []string{"teleport"}))
	assert.ErrorIs(t, c.Execute(ctx, []string{"exit"}), ErrExit)
}

func TestTripFromPlan(t *testing.T) {
	plan := dto.GeneratedPlan{Number: 1}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		plan.Attractions = append(plan.Attractions, dto.Attraction{Attraction: domain.Attraction{PlaceID: id}})
	}

	req := TripFromPlan(plan, "Giza")
	assert.Equal(t, "Giza", req.Title)
	require.Len(t, req.Days, 2)
	require.Len(t, req.Days[0].Slots, 3)
	assert.Equal(t, domain.SlotMorning, req.Days[0].Slots[0].SlotType)
	assert.Equal(t, domain.SlotEvening, req.Days[0].Slots[2].SlotType)
	assert.Equal(t, "d", req.Days[1].Slots[0].PlaceID)
	assert.Equal(t, domain.SlotAfternoon, req.Days[1].Slots[1].SlotType)
}
