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

// sqliteTweetRepo, TweetRepository'nin SQLite implementasyonu.
type sqliteTweetRepo struct {
	db database.TxQuerier
}

// NewSQLiteTweetRepo, constructor fonksiyonu.
func NewSQLiteTweetRepo(db database.TxQuerier) TweetRepository {
	return &sqliteTweetRepo{db: db}
}

func (r *sqliteTweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (owner_id, content, image_url)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tweet.OwnerID, tweet.Content, tweet.ImageURL,
	).Scan(&tweet.ID, &tweet.CreatedAt, &tweet.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

func (r *sqliteTweetRepo) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	query := `
		SELECT t.id, t.owner_id, t.content, t.image_url, t.created_at, t.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = ?`

	t := &models.Tweet{}
	owner := models.UserSummary{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.OwnerID, &t.Content, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt,
		&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet by id: %w", err)
	}

	t.Owner = &owner
	return t, nil
}

func (r *sqliteTweetRepo) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]*models.TweetWithReactions, error) {
	query := `
		SELECT t.id, t.owner_id, t.content, t.image_url, t.created_at, t.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url,
		       (SELECT COUNT(*) FROM reactions
		        WHERE target_type = 'tweet' AND target_id = t.id AND kind = 'like'),
		       EXISTS(SELECT 1 FROM reactions
		        WHERE target_type = 'tweet' AND target_id = t.id AND user_id = ? AND kind = 'like'),
		       EXISTS(SELECT 1 FROM reactions
		        WHERE target_type = 'tweet' AND target_id = t.id AND user_id = ? AND kind = 'dislike')
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = ?
		ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, viewerID, viewerID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	var tweets []*models.TweetWithReactions
	for rows.Next() {
		t := &models.TweetWithReactions{}
		owner := models.UserSummary{}
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Content, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt,
			&owner.ID, &owner.Username, &owner.Email, &owner.FullName, &owner.AvatarURL, &owner.CoverURL,
			&t.TotalLike, &t.IsLiked, &t.IsDisliked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tweet row: %w", err)
		}
		t.Owner = &owner
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tweet rows: %w", err)
	}

	return tweets, nil
}

func (r *sqliteTweetRepo) Update(ctx context.Context, tweet *models.Tweet) error {
	query := `
		UPDATE tweets SET content = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, tweet.Content, tweet.ImageURL, tweet.ID).Scan(&tweet.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update tweet: %w", err)
	}

	return nil
}

func (r *sqliteTweetRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tweets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
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
