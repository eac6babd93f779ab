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

func TestNotificationBatchAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteNotificationRepo(db.Conn)
	ctx := context.Background()
	actor := seedUser(t, db, "creator")
	sub1 := seedUser(t, db, "subone")
	sub2 := seedUser(t, db, "subtwo")

	batch := []*models.Notification{
		{UserID: sub1.ID, Type: models.NotificationVideoPublish, ActorID: actor.ID, EntityID: "vid-1", Message: "new video"},
		{UserID: sub2.ID, Type: models.NotificationVideoPublish, ActorID: actor.ID, EntityID: "vid-1", Message: "new video"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	assert.NotEmpty(t, batch[0].ID)

	// Boş batch sessiz no-op
	require.NoError(t, repo.CreateBatch(ctx, nil))

	page, err := repo.ListByUser(ctx, sub1.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, 1, page.UnreadCount)
	n := page.Notifications[0]
	assert.Equal(t, "vid-1", n.EntityID)
	require.NotNil(t, n.Actor)
	assert.Equal(t, "creator", n.Actor.Username)
}

func TestNotificationMarkReadIsUserScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteNotificationRepo(db.Conn)
	ctx := context.Background()
	actor := seedUser(t, db, "creator")
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	batch := []*models.Notification{
		{UserID: owner.ID, Type: models.NotificationNewTweet, ActorID: actor.ID, EntityID: "tw-1"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	id := batch[0].ID

	// Başkası işaretleyemez
	assert.True(t, errors.Is(repo.MarkRead(ctx, other.ID, id), pkg.ErrNotFound))

	require.NoError(t, repo.MarkRead(ctx, owner.ID, id))
	count, err := repo.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteNotificationRepo(db.Conn)
	ctx := context.Background()
	actor := seedUser(t, db, "creator")
	owner := seedUser(t, db, "owner")

	batch := []*models.Notification{
		{UserID: owner.ID, Type: models.NotificationVideoPublish, ActorID: actor.ID, EntityID: "v1"},
		{UserID: owner.ID, Type: models.NotificationVideoPublish, ActorID: actor.ID, EntityID: "v2"},
		{UserID: owner.ID, Type: models.NotificationNewTweet, ActorID: actor.ID, EntityID: "t1"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	require.NoError(t, repo.MarkAllRead(ctx, owner.ID))
	count, err := repo.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
