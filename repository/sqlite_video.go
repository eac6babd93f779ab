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

// sqliteVideoRepo, VideoRepository'nin SQLite implementasyonu.
type sqliteVideoRepo struct {
	db database.TxQuerier
}

// NewSQLiteVideoRepo, constructor fonksiyonu.
func NewSQLiteVideoRepo(db database.TxQuerier) VideoRepository {
	return &sqliteVideoRepo{db: db}
}

func (r *sqliteVideoRepo) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (owner_id, title, description, video_url, thumbnail_url, duration, category_id, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, views, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Duration,
		video.CategoryID,
		video.IsPublished,
	).Scan(&video.ID, &video.Views, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// videoSelect, owner JOIN'li video sorgularının ortak SELECT kısmı.
const videoSelect = `
	SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
	       v.duration, v.views, v.is_published, v.category_id, v.created_at, v.updated_at,
	       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
	FROM videos v
	JOIN users u ON u.id = v.owner_id`

// scanVideo, videoSelect sorgusunun bir satırını Video'ya okur.
// Scanner interface'i hem *sql.Row hem *sql.Rows tarafından karşılanır.
func scanVideo(row interface{ Scan(...any) error }) (*models.Video, error) {
	v := &models.Video{}
	owner := models.UserSummary{}
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
		&v.Duration, &v.Views, &v.IsPublished, &v.CategoryID, &v.CreatedAt, &v.UpdatedAt,
		&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
	)
	if err != nil {
		return nil, err
	}
	v.Owner = &owner
	return v, nil
}

func (r *sqliteVideoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	video, err := scanVideo(r.db.QueryRowContext(ctx, videoSelect+` WHERE v.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return video, nil
}

func (r *sqliteVideoRepo) List(ctx context.Context, q models.VideoListQuery) (*models.VideoPage, error) {
	q.Normalize()

	// WHERE koşullarını dinamik kur — değerler her zaman placeholder ile bind edilir
	where := ` WHERE 1 = 1`
	var args []any

	if !q.IncludeUnpublished {
		where += ` AND v.is_published = 1`
	}
	if q.Query != "" {
		where += ` AND (v.title LIKE ? OR v.description LIKE ?)`
		pattern := "%" + q.Query + "%"
		args = append(args, pattern, pattern)
	}
	if q.OwnerID != "" {
		where += ` AND v.owner_id = ?`
		args = append(args, q.OwnerID)
	}

	// Toplam sayıyı al (sayfalama için)
	var total int
	countQuery := `SELECT COUNT(*) FROM videos v` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	// Sıralama kolonu Normalize'da whitelist'ten geçti — string birleştirme güvenli
	order := fmt.Sprintf(` ORDER BY v.%s %s`, q.SortBy, q.SortOrder)

	query := videoSelect + where + order + ` LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close() // Önemli: rows'u kapatmayı ASLA unutma — aksi halde bağlantı sızar (leak)

	var videos []*models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video rows: %w", err)
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	return &models.VideoPage{
		Videos:     videos,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *sqliteVideoRepo) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos SET title = ?, description = ?, thumbnail_url = ?, category_id = ?,
		       updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		video.Title, video.Description, video.ThumbnailURL, video.CategoryID, video.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
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

func (r *sqliteVideoRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
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

func (r *sqliteVideoRepo) TogglePublish(ctx context.Context, id string) (bool, error) {
	// Tek statement'ta toggle + yeni durumu oku — race'e yer yok
	query := `
		UPDATE videos SET is_published = NOT is_published, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING is_published`

	var published bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&published)
	if errors.Is(err, sql.ErrNoRows) {
		return false, pkg.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle publish: %w", err)
	}

	return published, nil
}

func (r *sqliteVideoRepo) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
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

func (r *sqliteVideoRepo) RecordWatch(ctx context.Context, userID, videoID string) error {
	// UPSERT: aynı video tekrar izlenirse watched_at güncellenir
	query := `
		INSERT INTO watch_history (user_id, video_id) VALUES (?, ?)
		ON CONFLICT(user_id, video_id) DO UPDATE SET watched_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	return nil
}

func (r *sqliteVideoRepo) GetWatchHistory(ctx context.Context, userID string, limit int) ([]*models.WatchHistoryEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.category_id, v.created_at, v.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url,
		       w.watched_at
		FROM watch_history w
		JOIN videos v ON v.id = w.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE w.user_id = ?
		ORDER BY w.watched_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	defer rows.Close()

	var entries []*models.WatchHistoryEntry
	for rows.Next() {
		v := &models.Video{}
		owner := models.UserSummary{}
		entry := &models.WatchHistoryEntry{}
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
			&v.Duration, &v.Views, &v.IsPublished, &v.CategoryID, &v.CreatedAt, &v.UpdatedAt,
			&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
			&entry.WatchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		v.Owner = &owner
		entry.Video = v
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watch history rows: %w", err)
	}

	return entries, nil
}

func (r *sqliteVideoRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM videos WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos by owner: %w", err)
	}
	return count, nil
}

func (r *sqliteVideoRepo) SumViewsByOwner(ctx context.Context, ownerID string) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = ?`, ownerID).Scan(&views)
	if err != nil {
		return 0, fmt.Errorf("failed to sum views by owner: %w", err)
	}
	return views, nil
}
