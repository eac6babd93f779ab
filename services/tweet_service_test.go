package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
)

// ─── TweetRepository fake ───

type fakeTweetRepo struct {
	tweets     map[string]*models.Tweet
	failCreate bool
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: make(map[string]*models.Tweet)}
}

func (r *fakeTweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	if r.failCreate {
		return errors.New("disk full")
	}
	tweet.ID = fmt.Sprintf("tweet-%d", len(r.tweets)+1)
	r.tweets[tweet.ID] = tweet
	return nil
}

func (r *fakeTweetRepo) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	tweet, ok := r.tweets[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *tweet
	return &copied, nil
}

func (r *fakeTweetRepo) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]*models.TweetWithReactions, error) {
	return nil, nil
}

func (r *fakeTweetRepo) Update(ctx context.Context, tweet *models.Tweet) error {
	if _, ok := r.tweets[tweet.ID]; !ok {
		return pkg.ErrNotFound
	}
	r.tweets[tweet.ID] = tweet
	return nil
}

func (r *fakeTweetRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tweets[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

type tweetFixture struct {
	svc    TweetService
	tweets *fakeTweetRepo
	users  *fakeUserRepo
	subs   *fakeSubscriptionRepo
	notifs *fakeNotificationRepo
	media  *fakeMediaService
}

func newTweetFixture() *tweetFixture {
	f := &tweetFixture{
		tweets: newFakeTweetRepo(),
		users:  newFakeUserRepo(),
		subs:   newFakeSubscriptionRepo(),
		notifs: newFakeNotificationRepo(),
		media:  &fakeMediaService{},
	}
	f.users.add(&models.User{ID: "owner", Username: "owner"})
	f.svc = NewTweetService(f.tweets, f.users, f.subs, f.notifs, f.media)
	return f
}

func TestTweetCreateWithImage(t *testing.T) {
	f := newTweetFixture()
	ctx := context.Background()

	file, header := newUpload("meme.png", "image/png", "pixels")
	tweet, err := f.svc.Create(ctx, "owner", &models.CreateTweetRequest{Content: "look at this"}, file, header)
	require.NoError(t, err)
	assert.NotEmpty(t, tweet.ImageURL)
	assert.Contains(t, f.media.saved, tweet.ImageURL)

	// Görselsiz tweet de geçerli
	plain, err := f.svc.Create(ctx, "owner", &models.CreateTweetRequest{Content: "just words"}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plain.ImageURL)
}

func TestTweetCreateRollsBackImageOnRepoFailure(t *testing.T) {
	f := newTweetFixture()
	f.tweets.failCreate = true
	ctx := context.Background()

	file, header := newUpload("meme.png", "image/png", "pixels")
	_, err := f.svc.Create(ctx, "owner", &models.CreateTweetRequest{Content: "doomed"}, file, header)
	require.Error(t, err)

	// Diske yazılan görsel yetim kalmadı
	assert.Equal(t, f.media.saved, f.media.removed)
}

func TestTweetUpdateReplacesImage(t *testing.T) {
	f := newTweetFixture()
	ctx := context.Background()

	file, header := newUpload("old.png", "image/png", "pixels")
	tweet, err := f.svc.Create(ctx, "owner", &models.CreateTweetRequest{Content: "v1"}, file, header)
	require.NoError(t, err)
	oldImage := tweet.ImageURL

	file, header = newUpload("new.png", "image/png", "pixels")
	updated, err := f.svc.Update(ctx, "owner", tweet.ID, &models.UpdateTweetRequest{Content: "v2"}, file, header)
	require.NoError(t, err)
	assert.NotEqual(t, oldImage, updated.ImageURL)
	assert.Contains(t, f.media.removed, oldImage)

	// Sahip olmayan güncelleyemez
	_, err = f.svc.Update(ctx, "intruder", tweet.ID, &models.UpdateTweetRequest{Content: "hack"}, nil, nil)
	assert.True(t, errors.Is(err, pkg.ErrForbidden))
}

func TestTweetDeleteRemovesImage(t *testing.T) {
	f := newTweetFixture()
	ctx := context.Background()

	file, header := newUpload("meme.png", "image/png", "pixels")
	tweet, err := f.svc.Create(ctx, "owner", &models.CreateTweetRequest{Content: "bye"}, file, header)
	require.NoError(t, err)

	// Sahip olmayan silemez
	err = f.svc.Delete(ctx, "intruder", tweet.ID)
	assert.True(t, errors.Is(err, pkg.ErrForbidden))

	require.NoError(t, f.svc.Delete(ctx, "owner", tweet.ID))
	assert.Contains(t, f.media.removed, tweet.ImageURL)
}
