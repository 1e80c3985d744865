package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/session"
)

// fakeBackend serves /api/places behind a bearer check and the refresh endpoint.
type fakeBackend struct {
	validToken    atomic.Value // string
	refreshOK     bool
	refreshDelay  time.Duration
	placesCalls   atomic.Int32
	refreshCalls  atomic.Int32
	lastAuthMu    sync.Mutex
	lastAuth      []string
	refreshBodies []string
}

func newFakeBackend(valid string, refreshOK bool) *fakeBackend {
	f := &fakeBackend{refreshOK: refreshOK}
	f.validToken.Store(valid)
	return f
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/places", func(w http.ResponseWriter, r *http.Request) {
		f.placesCalls.Add(1)
		f.lastAuthMu.Lock()
		f.lastAuth = append(f.lastAuth, r.Header.Get("Authorization"))
		f.lastAuthMu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+f.validToken.Load().(string) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"placeId":"p-1","name":"Karnak Temple","rating":4.8,"costTier":"Low"}]`))
	})
	mux.HandleFunc(RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastAuthMu.Lock()
		f.refreshBodies = append(f.refreshBodies, body["refreshToken"])
		f.lastAuthMu.Unlock()

		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		if !f.refreshOK {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.validToken.Store("access-new")
		_, _ = w.Write([]byte(`{"accessToken":"access-new","refreshToken":"refresh-new"}`))
	})
	return mux
}

func newTestClient(t *testing.T, url string) *Client {
	gw := NewGateway(&http.Client{}, url, 5*time.Second, zap.NewNop())
	return NewClientWithGateway(gw, config.MLConfig{RequestTimeout: 5 * time.Second, BreakerFailures: 2, BreakerTimeout: time.Minute}, zap.NewNop())
}

func newTestSession(t *testing.T) *session.Store {
	st, err := session.New(context.Background(), kv.NewMemory(), "test")
	require.NoError(t, err)
	require.NoError(t, st.SetCredentials(context.Background(), domain.Credentials{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		User:         &domain.User{ID: "u-1", FullName: "Nour Hassan", Email: "nour@example.com"},
	}))
	return st
}

func TestGateway_RefreshThenRetry(t *testing.T) {
	fb := newFakeBackend("access-current", true)
	fb.validToken.Store("only-after-refresh")
	server := httptest.NewServer(fb.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	sess := newTestSession(t)

	places, err := client.ListPlaces(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, places, 1)

	assert.Equal(t, int32(2), fb.placesCalls.Load(), "original + retry")
	assert.Equal(t, int32(1), fb.refreshCalls.Load())
	assert.Equal(t, []string{"refresh-old"}, fb.refreshBodies)
	assert.Equal(t, []string{"Bearer access-old", "Bearer access-new"}, fb.lastAuth)

	assert.Equal(t, "access-new", sess.AccessToken())
	assert.Equal(t, "refresh-new", sess.RefreshToken())
	require.NotNil(t, sess.User())
	assert.Equal(t, "u-1", sess.User().ID, "user is preserved across refresh")
}

func TestGateway_RefreshFailureClearsSession(t *testing.T) {
	fb := newFakeBackend("never-valid", false)
	server := httptest.NewServer(fb.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	sess := newTestSession(t)

	_, err := client.ListPlaces(context.Background(), sess)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	assert.Equal(t, int32(1), fb.placesCalls.Load(), "no retry after failed refresh")
	assert.Equal(t, int32(1), fb.refreshCalls.Load())
	assert.Empty(t, sess.AccessToken())
	assert.Empty(t, sess.RefreshToken())
	assert.Nil(t, sess.User())
}

func TestGateway_SecondUnauthorizedIsReturned(t *testing.T) {
	var placesCalls, refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/places", func(w http.ResponseWriter, r *http.Request) {
		placesCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc(RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_, _ = w.Write([]byte(`{"accessToken":"access-new","refreshToken":"refresh-new"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gw := NewGateway(nil, server.URL, time.Second, zap.NewNop())
	sess := newTestSession(t)

	resp, err := gw.Do(context.Background(), sess, Request{Method: http.MethodGet, Path: "/api/places"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(2), placesCalls.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "access-new", sess.AccessToken(), "refresh itself succeeded")
}

func TestGateway_NoSessionNoRefresh(t *testing.T) {
	fb := newFakeBackend("secret", true)
	server := httptest.NewServer(fb.handler())
	defer server.Close()

	gw := NewGateway(nil, server.URL, time.Second, zap.NewNop())
	resp, err := gw.Do(context.Background(), nil, Request{Method: http.MethodGet, Path: "/api/places"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(0), fb.refreshCalls.Load())
	assert.Equal(t, []string{""}, fb.lastAuth)
}

func TestGateway_MissingRefreshTokenLogsOut(t *testing.T) {
	fb := newFakeBackend("secret", true)
	server := httptest.NewServer(fb.handler())
	defer server.Close()

	sess, err := session.New(context.Background(), kv.NewMemory(), "test")
	require.NoError(t, err)
	require.NoError(t, sess.SetCredentials(context.Background(), domain.Credentials{AccessToken: "stale"}))

	gw := NewGateway(nil, server.URL, time.Second, zap.NewNop())
	resp, err := gw.Do(context.Background(), sess, Request{Method: http.MethodGet, Path: "/api/places"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(0), fb.refreshCalls.Load())
	assert.False(t, sess.IsAuthenticated())
}

func TestGateway_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	fb := newFakeBackend("only-after-refresh", true)
	fb.refreshDelay = 50 * time.Millisecond
	server := httptest.NewServer(fb.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	sess := newTestSession(t)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ListPlaces(context.Background(), sess)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), fb.refreshCalls.Load())
	assert.LessOrEqual(t, fb.placesCalls.Load(), int32(2*callers))
}

func TestGateway_NetworkErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	gw := NewGateway(nil, url, time.Second, zap.NewNop())
	_, err := gw.Do(context.Background(), newTestSession(t), Request{Method: http.MethodGet, Path: "/api/places"})
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
}

func TestGateway_BodyResentOnRetry(t *testing.T) {
	var bodies []string
	var mu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Favorites", func(w http.ResponseWriter, r *http.Request) {
		var in domain.RemoteFavoriteCreate
		_ = json.NewDecoder(r.Body).Decode(&in)
		mu.Lock()
		bodies = append(bodies, in.PlaceID)
		mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer access-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"favoriteId":"f-1","userId":"u-1","placeId":"p-9"}`))
	})
	mux.HandleFunc(RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accessToken":"access-new","refreshToken":"refresh-new"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	fav, err := client.AddFavorite(context.Background(), newTestSession(t), domain.RemoteFavoriteCreate{UserID: "u-1", PlaceID: "p-9"})
	require.NoError(t, err)
	assert.Equal(t, "f-1", fav.FavoriteID)
	assert.Equal(t, []string{"p-9", "p-9"}, bodies)
}
