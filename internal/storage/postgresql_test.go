package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/watchlist/internal/models"
)

func TestStorage_CreateMovie(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	verify := NewTestVerification(storage)

	gotID, err := storage.CreateMovie(context.Background(), "My Neighbor Totoro", "1988")
	require.NoError(t, err)
	assert.Equal(t, 1, gotID)
	verify.VerifyMovieExists(t, gotID)
	verify.VerifyMovieData(t, gotID, "My Neighbor Totoro", "1988")

	secondID, err := storage.CreateMovie(context.Background(), "Perfect Blue", "1997")
	require.NoError(t, err)
	assert.Equal(t, 2, secondID)
}

func TestStorage_ReadMovie(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	id := factory.CreateMovie(t, "Leon", "1994")

	t.Run("existing movie", func(t *testing.T) {
		got, err := storage.ReadMovie(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Leon", got.Title)
		assert.Equal(t, "1994", got.Year)
	})

	t.Run("missing movie", func(t *testing.T) {
		_, err := storage.ReadMovie(context.Background(), id+100)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrMovieNotFound)
	})
}

func TestStorage_UpdateMovie(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	id := factory.CreateMovie(t, "Mahjong", "1996")

	t.Run("successful update", func(t *testing.T) {
		err := storage.UpdateMovie(context.Background(), id, "A Brighter Summer Day", "1991")
		require.NoError(t, err)
		verify.VerifyMovieData(t, id, "A Brighter Summer Day", "1991")
	})

	t.Run("missing movie", func(t *testing.T) {
		err := storage.UpdateMovie(context.Background(), id+100, "Nothing", "2000")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrMovieNotFound)
	})
}

func TestStorage_RemoveMovie(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	id := factory.CreateMovie(t, "Swallowtail Butterfly", "1996")

	err := storage.RemoveMovie(context.Background(), id)
	require.NoError(t, err)
	verify.VerifyMovieDeleted(t, id)

	// повторное удаление той же записи
	err = storage.RemoveMovie(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMovieNotFound)
}

func TestStorage_ListMovies(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	t.Run("empty catalog", func(t *testing.T) {
		got, err := storage.ListMovies(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ordered by id", func(t *testing.T) {
		first := factory.CreateMovie(t, "King of Comedy", "1999")
		second := factory.CreateMovie(t, "Devils on the Doorstep", "1999")

		got, err := storage.ListMovies(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first, got[0].ID)
		assert.Equal(t, second, got[1].ID)
		assert.Equal(t, "King of Comedy", got[0].Title)
	})
}

func TestStorage_GetOwner(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	t.Run("no owner yet", func(t *testing.T) {
		_, err := storage.GetOwner(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNoOwner)
	})

	t.Run("single owner", func(t *testing.T) {
		data := GetTestOwnerData()
		factory.CreateOwner(t, data.UID, data.Name, data.LoginName, data.PasswordHash)

		got, err := storage.GetOwner(context.Background())
		require.NoError(t, err)
		assert.Equal(t, data.UID, got.UID)
		assert.Equal(t, data.Name, got.Name)
		require.NotNil(t, got.LoginName)
		assert.Equal(t, data.LoginName, *got.LoginName)
		assert.Equal(t, data.PasswordHash, got.PasswordHash)
	})

	t.Run("more than one row", func(t *testing.T) {
		second := GetTestOwnerData()
		second.LoginName = "intruder"
		factory.CreateOwner(t, second.UID, second.Name, second.LoginName, second.PasswordHash)

		_, err := storage.GetOwner(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrAmbiguousOwner)
	})
}

func TestStorage_UpsertOwner(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	t.Run("creates owner when table is empty", func(t *testing.T) {
		uid, err := storage.UpsertOwner(context.Background(), "Owner", "owner", "hash-one")
		require.NoError(t, err)
		assert.NotEmpty(t, uid)

		got, err := storage.GetOwner(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uid, got.UID)
	})

	t.Run("updates same row on repeat", func(t *testing.T) {
		first, err := storage.UpsertOwner(context.Background(), "Owner", "owner", "hash-one")
		require.NoError(t, err)

		second, err := storage.UpsertOwner(context.Background(), "Renamed", "newlogin", "hash-two")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		got, err := storage.GetOwner(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		require.NotNil(t, got.LoginName)
		assert.Equal(t, "newlogin", *got.LoginName)
		assert.Equal(t, "hash-two", got.PasswordHash)

		var count int
		err = storage.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestStorage_SetPasswordHash(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestOwnerData()
	factory.CreateOwner(t, data.UID, data.Name, data.LoginName, data.PasswordHash)

	err := storage.SetPasswordHash(context.Background(), data.UID, "newhash")
	require.NoError(t, err)

	got, err := storage.GetOwner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)

	err = storage.SetPasswordHash(context.Background(), GetTestOwnerData().UID, "orphan")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoOwner)
}

func TestStorage_UpdateOwnerName(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	data := GetTestOwnerData()
	factory.CreateOwner(t, data.UID, data.Name, data.LoginName, data.PasswordHash)

	err := storage.UpdateOwnerName(context.Background(), data.UID, "New Name")
	require.NoError(t, err)
	verify.VerifyOwnerName(t, data.UID, "New Name")

	err = storage.UpdateOwnerName(context.Background(), GetTestOwnerData().UID, "Ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoOwner)
}

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, storage.CheckDatabaseReady())

	_, err := storage.DB.Exec("DROP TABLE movies")
	require.NoError(t, err)

	assert.Error(t, storage.CheckDatabaseReady())
}
