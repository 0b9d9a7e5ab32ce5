package shops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(zap.NewNop().Sugar())

	_, err := store.FindByDomain(ctx, "acme.myshopify.com")
	assert.ErrorIs(t, err, ErrNotFound)

	s := New("acme.myshopify.com")
	s.AccessToken = "first"
	require.NoError(t, store.Save(ctx, s))

	got, err := store.FindByDomain(ctx, "acme.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "first", got.AccessToken)
	assert.False(t, got.CreatedAt.IsZero())

	// a second Save for the same domain keeps identity and overwrites the token
	again := New("acme.myshopify.com")
	again.AccessToken = "second"
	require.NoError(t, store.Save(ctx, again))

	got2, err := store.FindByDomain(ctx, "acme.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got2.ID)
	assert.Equal(t, got.CreatedAt, got2.CreatedAt)
	assert.Equal(t, "second", got2.AccessToken)
}

func TestMemoryStore_FindsSoftDeleted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(zap.NewNop().Sugar())
	ts := time.Now()
	s := New("gone.myshopify.com")
	s.AccessToken = "old"
	s.DeletedAt = &ts
	require.NoError(t, store.Save(ctx, s))

	got, err := store.FindByDomain(ctx, "gone.myshopify.com")
	require.NoError(t, err)
	assert.True(t, got.IsDeleted())

	got.Reinstate("new")
	require.NoError(t, store.Save(ctx, got))
	got, err = store.FindByDomain(ctx, "gone.myshopify.com")
	require.NoError(t, err)
	assert.False(t, got.IsDeleted())
	assert.Equal(t, "new", got.AccessToken)
}

func TestMemoryStore_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore(zap.NewNop().Sugar())
	assert.ErrorIs(t, store.Save(ctx, New("acme.myshopify.com")), context.Canceled)
}

func TestNewMemoryStoreFromEnv(t *testing.T) {
	t.Setenv("SHOP_SEED_JSON", `[{"domain":"a.myshopify.com","access_token":"tok"},{"domain":"b.myshopify.com","deleted":true}]`)
	store := NewMemoryStoreFromEnv(zap.NewNop().Sugar())

	a, err := store.FindByDomain(context.Background(), "a.myshopify.com")
	require.NoError(t, err)
	assert.True(t, a.HasOfflineToken())
	assert.False(t, a.IsDeleted())

	b, err := store.FindByDomain(context.Background(), "b.myshopify.com")
	require.NoError(t, err)
	assert.False(t, b.HasOfflineToken())
	assert.True(t, b.IsDeleted())
}

func TestNewMemoryStoreFromEnv_BadSeed(t *testing.T) {
	t.Setenv("SHOP_SEED_JSON", `{not json`)
	store := NewMemoryStoreFromEnv(zap.NewNop().Sugar())
	_, err := store.FindByDomain(context.Background(), "a.myshopify.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
