package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteSessionRepo(db.Conn)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	session := &models.Session{
		UserID:           user.ID,
		RefreshTokenHash: "hash-1",
		UserAgent:        "TestAgent/1.0",
		IPAddress:        "10.0.0.1",
		ExpiresAt:        time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))
	assert.NotEmpty(t, session.ID)

	got, err := repo.GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "TestAgent/1.0", got.UserAgent)

	require.NoError(t, repo.Delete(ctx, session.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, session.ID), pkg.ErrNotFound))

	_, err = repo.GetByTokenHash(ctx, "hash-1")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestSessionDeleteByUserAndExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteSessionRepo(db.Conn)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	mkSession := func(userID, hash string, expiresAt time.Time) {
		require.NoError(t, repo.Create(ctx, &models.Session{
			UserID: userID, RefreshTokenHash: hash, ExpiresAt: expiresAt,
		}))
	}
	mkSession(alice.ID, "a-1", time.Now().Add(time.Hour))
	mkSession(alice.ID, "a-2", time.Now().Add(time.Hour))
	mkSession(bob.ID, "b-1", time.Now().Add(time.Hour))
	mkSession(bob.ID, "b-expired", time.Now().Add(-time.Hour))

	require.NoError(t, repo.DeleteByUser(ctx, alice.ID))
	_, err := repo.GetByTokenHash(ctx, "a-1")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
	_, err = repo.GetByTokenHash(ctx, "b-1")
	assert.NoError(t, err)

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	_, err = repo.GetByTokenHash(ctx, "b-expired")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestPasswordResetSingleUse(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePasswordResetRepo(db.Conn)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: "reset-hash",
		ExpiresAt: time.Now().Add(20 * time.Minute),
	}
	require.NoError(t, repo.Create(ctx, reset))

	got, err := repo.GetByTokenHash(ctx, "reset-hash")
	require.NoError(t, err)
	assert.True(t, got.IsUsable())

	require.NoError(t, repo.MarkUsed(ctx, got.ID))

	// used_at IS NULL koşulu ikinci MarkUsed'u reddeder
	assert.True(t, errors.Is(repo.MarkUsed(ctx, got.ID), pkg.ErrNotFound))

	got, err = repo.GetByTokenHash(ctx, "reset-hash")
	require.NoError(t, err)
	assert.False(t, got.IsUsable())
}

func TestPasswordResetInvalidateForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePasswordResetRepo(db.Conn)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	first := &models.PasswordReset{UserID: user.ID, TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.InvalidateForUser(ctx, user.ID))

	second := &models.PasswordReset{UserID: user.ID, TokenHash: "h2", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByTokenHash(ctx, "h1")
	require.NoError(t, err)
	assert.False(t, got.IsUsable())

	got, err = repo.GetByTokenHash(ctx, "h2")
	require.NoError(t, err)
	assert.True(t, got.IsUsable())
}
