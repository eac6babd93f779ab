package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/ws"
)

func newSubscriptionFixture() (SubscriptionService, *fakeUserRepo, *recordingPublisher) {
	userRepo := newFakeUserRepo()
	publisher := &recordingPublisher{}
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), userRepo, publisher)
	return svc, userRepo, publisher
}

func TestSubscriptionToggleRoundTrip(t *testing.T) {
	svc, userRepo, publisher := newSubscriptionFixture()
	ctx := context.Background()
	channel := userRepo.add(&models.User{ID: "channel", Username: "creator"})

	result, err := svc.Toggle(ctx, "viewer", channel.ID)
	require.NoError(t, err)
	assert.True(t, result.Subscribed)
	assert.Equal(t, 1, result.TotalSubscribers)

	result, err = svc.Toggle(ctx, "viewer", channel.ID)
	require.NoError(t, err)
	assert.False(t, result.Subscribed)
	assert.Equal(t, 0, result.TotalSubscribers)

	events := publisher.all()
	require.Len(t, events, 2)
	// Event kanalın kendi odasına gider — kanalı hangi sayfadan
	// izlerseniz izleyin aynı sayacı görürsünüz.
	assert.Equal(t, ws.ChannelRoom(channel.ID), events[0].Room)
	assert.Equal(t, ws.OpSubscriberAdd, events[0].Event.Op)
	assert.Equal(t, ws.OpSubscriberRemove, events[1].Event.Op)

	data := events[0].Event.Data.(ws.SubscriptionEventData)
	assert.Equal(t, channel.ID, data.ChannelID)
	assert.Equal(t, "viewer", data.ActorID)
	assert.Equal(t, 1, data.TotalSubscribers)
}

func TestSubscriptionTotalIsSnapshot(t *testing.T) {
	svc, userRepo, publisher := newSubscriptionFixture()
	ctx := context.Background()
	channel := userRepo.add(&models.User{ID: "channel", Username: "creator"})

	for _, viewer := range []string{"a", "b", "c"} {
		_, err := svc.Toggle(ctx, viewer, channel.ID)
		require.NoError(t, err)
	}

	events := publisher.all()
	require.Len(t, events, 3)
	last := events[2].Event.Data.(ws.SubscriptionEventData)
	assert.Equal(t, 3, last.TotalSubscribers)
}

func TestSubscriptionSelfSubscribeRejected(t *testing.T) {
	svc, userRepo, publisher := newSubscriptionFixture()
	ctx := context.Background()
	channel := userRepo.add(&models.User{ID: "channel", Username: "creator"})

	_, err := svc.Toggle(ctx, channel.ID, channel.ID)
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
	assert.Empty(t, publisher.all())
}

func TestSubscriptionUnknownChannel(t *testing.T) {
	svc, _, publisher := newSubscriptionFixture()

	_, err := svc.Toggle(context.Background(), "viewer", "missing")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
	assert.Empty(t, publisher.all())
}
