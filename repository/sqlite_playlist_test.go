package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
)

func TestPlaylistCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePlaylistRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	playlist := &models.Playlist{OwnerID: owner.ID, Name: "Watch Later", Description: "queue"}
	require.NoError(t, repo.Create(ctx, playlist))
	assert.NotEmpty(t, playlist.ID)

	got, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Watch Later", got.Name)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Username)
	assert.Equal(t, 0, got.VideoCount)

	got.Name = "Favorites"
	require.NoError(t, repo.Update(ctx, got))

	require.NoError(t, repo.Delete(ctx, playlist.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, playlist.ID), pkg.ErrNotFound))
}

func TestPlaylistVideoMembership(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePlaylistRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	v1 := seedVideo(t, db, owner.ID, "first")
	v2 := seedVideo(t, db, owner.ID, "second")

	playlist := &models.Playlist{OwnerID: owner.ID, Name: "Mix"}
	require.NoError(t, repo.Create(ctx, playlist))

	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v1.ID))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v2.ID))
	// Aynı videoyu tekrar eklemek hata değildir
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v1.ID))

	got, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.VideoCount)

	lists, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, 2, lists[0].VideoCount)

	require.NoError(t, repo.RemoveVideo(ctx, playlist.ID, v1.ID))
	// Listede olmayan videoyu çıkarmak ErrNotFound
	assert.True(t, errors.Is(repo.RemoveVideo(ctx, playlist.ID, v1.ID), pkg.ErrNotFound))

	got, err = repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 1)
	assert.Equal(t, v2.ID, got.Videos[0].ID)
}
