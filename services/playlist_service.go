package services

import (
	"context"
	"fmt"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
)

// PlaylistService, playlist iş mantığı.
// Playlist'ler realtime event üretmez — sadece sahibinin gördüğü
// kişisel koleksiyonlardır.
type PlaylistService interface {
	Create(ctx context.Context, ownerID string, req *models.CreatePlaylistRequest) (*models.Playlist, error)
	GetByID(ctx context.Context, id string) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Playlist, error)
	Update(ctx context.Context, userID, playlistID string, req *models.UpdatePlaylistRequest) (*models.Playlist, error)
	Delete(ctx context.Context, userID, playlistID string) error
	AddVideo(ctx context.Context, userID, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, userID, playlistID, videoID string) error
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

// NewPlaylistService, constructor.
func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

func (s *playlistService) Create(ctx context.Context, ownerID string, req *models.CreatePlaylistRequest) (*models.Playlist, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	playlist := &models.Playlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, id)
}

func (s *playlistService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Playlist, error) {
	return s.playlistRepo.ListByOwner(ctx, ownerID)
}

func (s *playlistService) Update(ctx context.Context, userID, playlistID string, req *models.UpdatePlaylistRequest) (*models.Playlist, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	playlist, err := s.getOwnedPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		playlist.Name = *req.Name
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, userID, playlistID string) error {
	if _, err := s.getOwnedPlaylist(ctx, userID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo, videoyu playlist'e ekler. Aynı video ikinci kez eklenirse
// sessizce başarılı döner (idempotent).
func (s *playlistService) AddVideo(ctx context.Context, userID, playlistID, videoID string) error {
	if _, err := s.getOwnedPlaylist(ctx, userID, playlistID); err != nil {
		return err
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return err
	}
	return s.playlistRepo.AddVideo(ctx, playlistID, videoID)
}

func (s *playlistService) RemoveVideo(ctx context.Context, userID, playlistID, videoID string) error {
	if _, err := s.getOwnedPlaylist(ctx, userID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
}

// getOwnedPlaylist, playlist'i getirir ve sahiplik kontrolü yapar.
func (s *playlistService) getOwnedPlaylist(ctx context.Context, userID, playlistID string) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, fmt.Errorf("%w: you do not own this playlist", pkg.ErrForbidden)
	}
	return playlist, nil
}
