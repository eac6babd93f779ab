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

func TestCommentCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCommentRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "clip")

	comment := &models.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "first!"}
	require.NoError(t, repo.Create(ctx, comment))
	assert.NotEmpty(t, comment.ID)

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", got.Content)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Username)

	got.Content = "edited"
	require.NoError(t, repo.Update(ctx, got))

	require.NoError(t, repo.Delete(ctx, comment.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, comment.ID), pkg.ErrNotFound))
}

func TestCommentListWithReactions(t *testing.T) {
	db := newTestDB(t)
	commentRepo := NewSQLiteCommentRepo(db.Conn)
	reactionRepo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	viewer := seedUser(t, db, "viewer")
	video := seedVideo(t, db, owner.ID, "clip")

	liked := &models.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "liked one"}
	require.NoError(t, commentRepo.Create(ctx, liked))
	plain := &models.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "plain one"}
	require.NoError(t, commentRepo.Create(ctx, plain))

	_, err := reactionRepo.Toggle(ctx, models.TargetComment, liked.ID, viewer.ID, models.ReactionLike)
	require.NoError(t, err)

	page, err := commentRepo.ListByVideo(ctx, video.ID, viewer.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, 2, page.TotalComments)

	byID := map[string]*models.CommentWithReactions{}
	for _, c := range page.Comments {
		byID[c.ID] = c
	}
	assert.Equal(t, 1, byID[liked.ID].TotalLike)
	assert.True(t, byID[liked.ID].IsLiked)
	assert.False(t, byID[plain.ID].IsLiked)

	count, err := commentRepo.CountByVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTweetCRUDAndOwnerFeed(t *testing.T) {
	db := newTestDB(t)
	tweetRepo := NewSQLiteTweetRepo(db.Conn)
	reactionRepo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	viewer := seedUser(t, db, "viewer")

	tweet := &models.Tweet{OwnerID: owner.ID, Content: "hello world", ImageURL: "/api/uploads/images/ab_meme.png"}
	require.NoError(t, tweetRepo.Create(ctx, tweet))
	assert.NotEmpty(t, tweet.ID)

	found, err := tweetRepo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/images/ab_meme.png", found.ImageURL)

	_, err = reactionRepo.Toggle(ctx, models.TargetTweet, tweet.ID, viewer.ID, models.ReactionLike)
	require.NoError(t, err)

	feed, err := tweetRepo.ListByOwner(ctx, owner.ID, viewer.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, 1, feed[0].TotalLike)
	assert.True(t, feed[0].IsLiked)
	assert.Equal(t, "/api/uploads/images/ab_meme.png", feed[0].ImageURL)

	tweet.Content = "edited"
	tweet.ImageURL = ""
	require.NoError(t, tweetRepo.Update(ctx, tweet))

	found, err = tweetRepo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", found.Content)
	assert.Empty(t, found.ImageURL)

	require.NoError(t, tweetRepo.Delete(ctx, tweet.ID))
	_, err = tweetRepo.GetByID(ctx, tweet.ID)
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestCategorySeedData(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCategoryRepo(db.Conn)
	ctx := context.Background()

	categories, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 10)

	gaming, err := repo.GetBySlug(ctx, "gaming")
	require.NoError(t, err)
	assert.Equal(t, "Gaming", gaming.Name)

	_, err = repo.GetBySlug(ctx, "does-not-exist")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestCategoryCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCategoryRepo(db.Conn)
	ctx := context.Background()

	category := &models.Category{Name: "Science & Nature", Slug: "science-nature"}
	require.NoError(t, repo.Create(ctx, category))
	assert.NotEmpty(t, category.ID)
	assert.False(t, category.CreatedAt.IsZero())

	found, err := repo.GetBySlug(ctx, "science-nature")
	require.NoError(t, err)
	assert.Equal(t, "Science & Nature", found.Name)

	// Aynı slug ikinci kez eklenemez
	err = repo.Create(ctx, &models.Category{Name: "Science and Nature", Slug: "science-nature"})
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))

	categories, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 11)
}
