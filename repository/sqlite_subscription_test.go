package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionToggleAgainstRealSchema(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteSubscriptionRepo(db.Conn)
	ctx := context.Background()
	channel := seedUser(t, db, "channel")
	viewer := seedUser(t, db, "viewer")

	result, err := repo.Toggle(ctx, viewer.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, result.Subscribed)
	assert.Equal(t, 1, result.TotalSubscribers)

	subscribed, err := repo.IsSubscribed(ctx, viewer.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	// İkinci toggle abonelikten çıkarır
	result, err = repo.Toggle(ctx, viewer.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, result.Subscribed)
	assert.Equal(t, 0, result.TotalSubscribers)
}

func TestSubscriptionSelfSubscribeBlockedBySchema(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteSubscriptionRepo(db.Conn)
	channel := seedUser(t, db, "channel")

	// Service katmanı zaten engeller; CHECK constraint son savunma hattıdır
	_, err := repo.Toggle(context.Background(), channel.ID, channel.ID)
	assert.Error(t, err)
}

func TestSubscriptionListsAndCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteSubscriptionRepo(db.Conn)
	ctx := context.Background()
	channel := seedUser(t, db, "channel")
	other := seedUser(t, db, "other")
	a := seedUser(t, db, "suba")
	b := seedUser(t, db, "subb")

	for _, sub := range []string{a.ID, b.ID} {
		_, err := repo.Toggle(ctx, sub, channel.ID)
		require.NoError(t, err)
	}
	_, err := repo.Toggle(ctx, a.ID, other.ID)
	require.NoError(t, err)

	count, err := repo.CountSubscribers(ctx, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountSubscribedChannels(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	ids, err := repo.ListSubscriberIDs(ctx, channel.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	subscribers, err := repo.ListSubscribers(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 2)
	usernames := []string{subscribers[0].Subscriber.Username, subscribers[1].Subscriber.Username}
	assert.ElementsMatch(t, []string{"suba", "subb"}, usernames)

	channels, err := repo.ListSubscribedChannels(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, channels, 2)
}
