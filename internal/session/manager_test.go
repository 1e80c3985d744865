package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/repository/kv"
)

func TestManager_GetSharesStore(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemory(), nil, 0, zap.NewNop())
	id := m.NewID()
	assert.True(t, m.ValidID(id))
	assert.False(t, m.ValidID("../etc/passwd"))

	a, err := m.Get(ctx, id)
	require.NoError(t, err)
	b, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, NamespacePrefix+id, a.Namespace())
	assert.Equal(t, 1, m.Len())
}

func TestManager_LoadsPersistedSession(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	id := NewManager(mem, nil, 0, zap.NewNop()).NewID()

	first := NewManager(mem, nil, 0, zap.NewNop())
	st, err := first.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, st.SetCredentials(ctx, domain.Credentials{AccessToken: "a", RefreshToken: "r"}))

	second := NewManager(mem, nil, 0, zap.NewNop())
	st2, err := second.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a", st2.AccessToken())
}

func TestManager_EvictAndDrop(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	m := NewManager(mem, nil, 0, zap.NewNop())

	anon, err := m.Get(ctx, m.NewID())
	require.NoError(t, err)
	_ = anon

	authedID := m.NewID()
	authed, err := m.Get(ctx, authedID)
	require.NoError(t, err)
	require.NoError(t, authed.SetCredentials(ctx, domain.Credentials{AccessToken: "a"}))

	assert.Equal(t, 1, m.Evict())
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Drop(ctx, authedID))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, mem.Len())
}

func TestManager_RotateCarriesPreferences(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	m := NewManager(mem, nil, 0, zap.NewNop())

	oldID := m.NewID()
	old, err := m.Get(ctx, oldID)
	require.NoError(t, err)
	require.NoError(t, old.SetDarkMode(ctx, true))
	require.NoError(t, mem.Set(ctx, old.Namespace()+":attraction_favorites", []byte(`[{"placeId":3}]`), 0))

	id, st, err := m.Rotate(ctx, oldID, "attraction_favorites")
	require.NoError(t, err)
	assert.NotEqual(t, oldID, id)
	assert.Equal(t, NamespacePrefix+id, st.Namespace())
	assert.True(t, st.DarkMode())
	assert.False(t, st.IsAuthenticated())

	v, ok, err := mem.Get(ctx, st.Namespace()+":attraction_favorites")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"placeId":3}]`, string(v))

	same, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.Same(t, st, same)

	require.NoError(t, m.Retire(ctx, oldID, "attraction_favorites"))
	_, ok, err = mem.Get(ctx, NamespacePrefix+oldID+":attraction_favorites")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = mem.Get(ctx, NamespacePrefix+oldID+":darkMode")
	require.NoError(t, err)
	assert.False(t, ok)

	reopened, err := m.Get(ctx, oldID)
	require.NoError(t, err)
	assert.NotSame(t, old, reopened)
	assert.False(t, reopened.DarkMode())
}
