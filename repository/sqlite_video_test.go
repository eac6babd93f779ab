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

func TestVideoCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteVideoRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	video := seedVideo(t, db, owner.ID, "clip")
	assert.NotEmpty(t, video.ID)

	got, err := repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "clip", got.Title)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Username)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestVideoListFiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteVideoRepo(db.Conn)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedVideo(t, db, alice.ID, "go tutorial")
	seedVideo(t, db, alice.ID, "rust tutorial")
	seedVideo(t, db, bob.ID, "go concert")

	// Yayından kaldırılmış video listede görünmez
	hidden := seedVideo(t, db, bob.ID, "go hidden")
	_, err := repo.TogglePublish(ctx, hidden.ID)
	require.NoError(t, err)

	page, err := repo.List(ctx, models.VideoListQuery{Query: "go"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = repo.List(ctx, models.VideoListQuery{OwnerID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = repo.List(ctx, models.VideoListQuery{Query: "go", OwnerID: bob.ID})
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, "go concert", page.Videos[0].Title)

	// Sayfalama: limit 2 → toplam 3 yayında video, 2 sayfa
	page, err = repo.List(ctx, models.VideoListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Videos, 2)
}

func TestVideoListIncludeUnpublished(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteVideoRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	seedVideo(t, db, owner.ID, "live clip")
	draft := seedVideo(t, db, owner.ID, "draft clip")
	_, err := repo.TogglePublish(ctx, draft.ID)
	require.NoError(t, err)

	// Herkese açık liste taslağı gizler
	page, err := repo.List(ctx, models.VideoListQuery{OwnerID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	// Dashboard listesi (IncludeUnpublished) taslağı da döner —
	// sahip yayından kaldırdığı videosuna hâlâ ulaşabilir
	page, err = repo.List(ctx, models.VideoListQuery{OwnerID: owner.ID, IncludeUnpublished: true})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	titles := []string{page.Videos[0].Title, page.Videos[1].Title}
	assert.ElementsMatch(t, []string{"live clip", "draft clip"}, titles)
}

func TestVideoListSortByTitle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteVideoRepo(db.Conn)
	owner := seedUser(t, db, "owner")
	seedVideo(t, db, owner.ID, "banana")
	seedVideo(t, db, owner.ID, "apple")

	page, err := repo.List(context.Background(), models.VideoListQuery{SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Videos, 2)
	assert.Equal(t, "apple", page.Videos[0].Title)
	assert.Equal(t, "banana", page.Videos[1].Title)
}

func TestVideoViewsAndWatchHistory(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteVideoRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	viewer := seedUser(t, db, "viewer")
	video := seedVideo(t, db, owner.ID, "clip")

	require.NoError(t, repo.IncrementViews(ctx, video.ID))
	require.NoError(t, repo.IncrementViews(ctx, video.ID))

	got, err := repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	// Aynı videoyu iki kez izlemek geçmişte tek satırdır
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, video.ID))
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, video.ID))

	history, err := repo.GetWatchHistory(ctx, viewer.ID, 50)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, video.ID, history[0].Video.ID)
}

func TestVideoOwnerAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteVideoRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	v1 := seedVideo(t, db, owner.ID, "first")
	seedVideo(t, db, owner.ID, "second")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViews(ctx, v1.ID))
	}

	count, err := repo.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	views, err := repo.SumViewsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), views)
}

func TestVideoDeleteCascadesComments(t *testing.T) {
	db := newTestDB(t)
	videoRepo := NewSQLiteVideoRepo(db.Conn)
	commentRepo := NewSQLiteCommentRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "clip")

	comment := &models.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "hello"}
	require.NoError(t, commentRepo.Create(ctx, comment))

	require.NoError(t, videoRepo.Delete(ctx, video.ID))

	// ON DELETE CASCADE yorumları da götürür
	_, err := commentRepo.GetByID(ctx, comment.ID)
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}
