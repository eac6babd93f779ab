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

func TestUserCreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, "does-not-exist")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestUserUniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()
	seedUser(t, db, "alice")

	sameUsername := &models.User{
		Username: "alice", Email: "other@example.com",
		FullName: "Other", PasswordHash: "x", Role: models.RoleUser,
	}
	err := repo.Create(ctx, sameUsername)
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "username")

	sameEmail := &models.User{
		Username: "bob", Email: "alice@example.com",
		FullName: "Bob", PasswordHash: "x", Role: models.RoleUser,
	}
	err = repo.Create(ctx, sameEmail)
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "email")
}

func TestUserUpdateAvatarAndPassword(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	require.NoError(t, repo.UpdateAvatar(ctx, user.ID, "/api/uploads/images/new.png"))
	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/images/new.png", updated.AvatarURL)
	assert.Equal(t, "new-hash", updated.PasswordHash)

	assert.True(t, errors.Is(repo.UpdateAvatar(ctx, "nope", "x"), pkg.ErrNotFound))
}
