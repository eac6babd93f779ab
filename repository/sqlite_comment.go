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

// sqliteCommentRepo, CommentRepository'nin SQLite implementasyonu.
type sqliteCommentRepo struct {
	db database.TxQuerier
}

// NewSQLiteCommentRepo, constructor fonksiyonu.
func NewSQLiteCommentRepo(db database.TxQuerier) CommentRepository {
	return &sqliteCommentRepo{db: db}
}

func (r *sqliteCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (video_id, owner_id, content)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.VideoID, comment.OwnerID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *sqliteCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.id = ?`

	c := &models.Comment{}
	owner := models.UserSummary{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	c.Owner = &owner
	return c, nil
}

func (r *sqliteCommentRepo) ListByVideo(ctx context.Context, videoID, viewerID string, page, limit int) (*models.CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE video_id = ?`, videoID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	// Reaction sayıları korelasyonlu subquery ile hesaplanır — ayrı
	// aggregate tablosu yoktur, sayılar her okumada reactions'tan gelir.
	query := `
		SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url,
		       (SELECT COUNT(*) FROM reactions
		        WHERE target_type = 'comment' AND target_id = c.id AND kind = 'like'),
		       EXISTS(SELECT 1 FROM reactions
		        WHERE target_type = 'comment' AND target_id = c.id AND user_id = ? AND kind = 'like'),
		       EXISTS(SELECT 1 FROM reactions
		        WHERE target_type = 'comment' AND target_id = c.id AND user_id = ? AND kind = 'dislike')
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = ?
		ORDER BY c.created_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, viewerID, viewerID, videoID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.CommentWithReactions
	for rows.Next() {
		c := &models.CommentWithReactions{}
		owner := models.UserSummary{}
		if err := rows.Scan(
			&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
			&c.TotalLike, &c.IsLiked, &c.IsDisliked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		c.Owner = &owner
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return &models.CommentPage{
		Comments:      comments,
		TotalComments: total,
		Page:          page,
		Limit:         limit,
	}, nil
}

func (r *sqliteCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, comment.Content, comment.ID).Scan(&comment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (r *sqliteCommentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
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

func (r *sqliteCommentRepo) CountByVideo(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE video_id = ?`, videoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
