package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/playtube/models"
)

func TestDashboardListVideosIncludesDrafts(t *testing.T) {
	videos := newFakeVideoRepo()
	svc := NewDashboardService(videos, newFakeSubscriptionRepo(), newFakeReactionRepo())
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: "owner", Title: "live", IsPublished: true}))
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: "owner", Title: "draft", IsPublished: false}))
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: "stranger", Title: "other", IsPublished: true}))

	page, err := svc.ListVideos(ctx, "owner", models.VideoListQuery{Page: 1, Limit: 12})
	require.NoError(t, err)

	// Sahibin taslağı da listede — yayından kaldırılan video panelden
	// kaybolmaz. Başkasının videosu listeye sızmaz.
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "owner", videos.lastQuery.OwnerID)
	assert.True(t, videos.lastQuery.IncludeUnpublished)
}
