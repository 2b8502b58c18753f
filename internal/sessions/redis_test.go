package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/watchlist/internal/config"
	"github.com/magabrotheeeer/watchlist/internal/models"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	store, err := InitServer(context.Background(), cfg, time.Hour)
	require.NoError(t, err)
	return store, mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	expected := models.Session{UID: "uid-1", Name: "Tuoyuan"}
	token, err := store.Create(ctx, expected)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actual, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, expected, *actual)
}

func TestGet_UnknownToken(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Get(context.Background(), "no_such_token")
	require.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestTokensAreOpaqueAndUnique(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	session := models.Session{UID: "uid-1", Name: "Tuoyuan"}
	token1, err := store.Create(ctx, session)
	require.NoError(t, err)
	token2, err := store.Create(ctx, session)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
	assert.NotContains(t, token1, "uid-1")
	assert.Len(t, token1, 64)
}

func TestDelete_Idempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, models.Session{UID: "uid-1", Name: "Tuoyuan"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))

	_, err = store.Get(ctx, token)
	require.ErrorIs(t, err, models.ErrSessionNotFound)

	// Повторный выход не ошибка.
	require.NoError(t, store.Delete(ctx, token))
}

func TestGet_ExpiredToken(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, models.Session{UID: "uid-1", Name: "Tuoyuan"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, token)
	require.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestPing(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	mr.Close()
	assert.Error(t, store.Ping(ctx))
}
