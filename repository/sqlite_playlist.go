package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/playtube/database"
	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
)

// sqlitePlaylistRepo, PlaylistRepository'nin SQLite implementasyonu.
type sqlitePlaylistRepo struct {
	db database.TxQuerier
}

// NewSQLitePlaylistRepo, constructor fonksiyonu.
func NewSQLitePlaylistRepo(db database.TxQuerier) PlaylistRepository {
	return &sqlitePlaylistRepo{db: db}
}

func (r *sqlitePlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		playlist.OwnerID, playlist.Name, playlist.Description,
	).Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return nil
}

func (r *sqlitePlaylistRepo) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = ?`

	p := &models.Playlist{}
	owner := models.UserSummary{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist by id: %w", err)
	}
	p.Owner = &owner

	// Playlist'in videolarını ekleme sırasına göre doldur
	videoQuery := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.category_id, v.created_at, v.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = ?
		ORDER BY pv.added_at`

	rows, err := r.db.QueryContext(ctx, videoQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist video row: %w", err)
		}
		p.Videos = append(p.Videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlist video rows: %w", err)
	}
	p.VideoCount = len(p.Videos)

	return p, nil
}

func (r *sqlitePlaylistRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Playlist, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM playlist_videos WHERE playlist_id = p.id)
		FROM playlists p
		WHERE p.owner_id = ?
		ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		p := &models.Playlist{}
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
			&p.VideoCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan playlist row: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlist rows: %w", err)
	}

	return playlists, nil
}

func (r *sqlitePlaylistRepo) Update(ctx context.Context, playlist *models.Playlist) error {
	query := `
		UPDATE playlists SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		playlist.Name, playlist.Description, playlist.ID,
	).Scan(&playlist.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	return nil
}

func (r *sqlitePlaylistRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqlitePlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID string) error {
	// INSERT OR IGNORE → aynı video zaten listedeyse no-op (idempotent)
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO playlist_videos (playlist_id, video_id) VALUES (?, ?)`,
		playlistID, videoID); err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}
	return nil
}

func (r *sqlitePlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?`,
		playlistID, videoID)
	if err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
