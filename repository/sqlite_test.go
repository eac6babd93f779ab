package repository

// Repository testleri gerçek SQLite ile çalışır — her test t.TempDir()
// içinde taze bir veritabanı açar ve migration'ları uygular. Mock SQL
// yerine gerçek şema: FK'lar, UNIQUE'ler ve CHECK'ler de test edilir.

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/playtube/database"
	"github.com/akinalp/playtube/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		AvatarURL:    "/api/uploads/images/" + username + ".png",
		PasswordHash: "$2a$04$notarealhash",
		Role:         models.RoleUser,
	}
	require.NoError(t, NewSQLiteUserRepo(db.Conn).Create(context.Background(), user))
	return user
}

func seedVideo(t *testing.T, db *database.DB, ownerID, title string) *models.Video {
	t.Helper()
	video := &models.Video{
		OwnerID:      ownerID,
		Title:        title,
		VideoURL:     "/api/uploads/videos/" + title + ".mp4",
		ThumbnailURL: "/api/uploads/images/" + title + ".png",
		Duration:     "00:01:00",
		IsPublished:  true,
	}
	require.NoError(t, NewSQLiteVideoRepo(db.Conn).Create(context.Background(), video))
	return video
}
