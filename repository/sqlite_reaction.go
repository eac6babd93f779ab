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

// sqliteReactionRepo, ReactionRepository'nin SQLite implementasyonu.
//
// Diğer repository'lerden farklı olarak *sql.DB alır (TxQuerier değil) —
// Toggle kendi transaction'ını database.WithTx ile açar.
type sqliteReactionRepo struct {
	db *sql.DB
}

// NewSQLiteReactionRepo, constructor fonksiyonu.
func NewSQLiteReactionRepo(db *sql.DB) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

func (r *sqliteReactionRepo) Toggle(ctx context.Context, target models.ReactionTarget, targetID, userID string, kind models.ReactionKind) (*models.ToggleResult, error) {
	result := &models.ToggleResult{Kind: kind}

	// Tüm adımlar tek transaction'da: toggle kararı ve sayaç okuma arasına
	// başka bir yazma giremez — event'teki sayaçlar toggle anının gerçeğidir.
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// 1. Aynı kind'dan mevcut reaksiyonu silmeyi dene.
		// affected == 1 → toggle-off: kullanıcı aynı butona ikinci kez bastı.
		res, err := tx.ExecContext(ctx,
			`DELETE FROM reactions WHERE target_type = ? AND target_id = ? AND user_id = ? AND kind = ?`,
			target, targetID, userID, kind)
		if err != nil {
			return fmt.Errorf("failed to delete reaction: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}

		if affected == 0 {
			// 2. Silinecek aynı-kind reaksiyon yoktu → ekle veya karşı
			// reaksiyondan çevir. UPSERT iki durumu tek statement'ta halleder.
			_, err := tx.ExecContext(ctx, `
				INSERT INTO reactions (target_type, target_id, user_id, kind) VALUES (?, ?, ?, ?)
				ON CONFLICT(target_type, target_id, user_id) DO UPDATE SET
					kind = excluded.kind, created_at = CURRENT_TIMESTAMP`,
				target, targetID, userID, kind)
			if err != nil {
				return fmt.Errorf("failed to upsert reaction: %w", err)
			}
			result.Added = true
		}

		// 3. Güncel sayaçları aynı transaction içinde oku
		counts, err := countReactions(ctx, tx, target, targetID)
		if err != nil {
			return err
		}
		result.Counts = *counts
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// countReactions, hedefin like/dislike toplamlarını tek sorguda sayar.
func countReactions(ctx context.Context, q database.TxQuerier, target models.ReactionTarget, targetID string) (*models.ReactionCounts, error) {
	counts := &models.ReactionCounts{}
	err := q.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN kind = 'like' THEN 1 END),
			COUNT(CASE WHEN kind = 'dislike' THEN 1 END)
		FROM reactions WHERE target_type = ? AND target_id = ?`,
		target, targetID).Scan(&counts.TotalLike, &counts.TotalUnlike)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	return counts, nil
}

func (r *sqliteReactionRepo) Counts(ctx context.Context, target models.ReactionTarget, targetID string) (*models.ReactionCounts, error) {
	return countReactions(ctx, r.db, target, targetID)
}

func (r *sqliteReactionRepo) Get(ctx context.Context, target models.ReactionTarget, targetID, userID string) (*models.Reaction, error) {
	reaction := &models.Reaction{}
	err := r.db.QueryRowContext(ctx, `
		SELECT target_type, target_id, user_id, kind
		FROM reactions WHERE target_type = ? AND target_id = ? AND user_id = ?`,
		target, targetID, userID).Scan(
		&reaction.TargetType, &reaction.TargetID, &reaction.UserID, &reaction.Kind)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction: %w", err)
	}

	return reaction, nil
}

func (r *sqliteReactionRepo) ListLikedVideos(ctx context.Context, userID string, limit int) ([]*models.Video, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.category_id, v.created_at, v.updated_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
		FROM reactions r
		JOIN videos v ON v.id = r.target_id
		JOIN users u ON u.id = v.owner_id
		WHERE r.target_type = 'video' AND r.user_id = ? AND r.kind = 'like'
		ORDER BY r.created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked video row: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liked video rows: %w", err)
	}

	return videos, nil
}

func (r *sqliteReactionRepo) CountLikesForOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reactions r
		JOIN videos v ON v.id = r.target_id
		WHERE r.target_type = 'video' AND r.kind = 'like' AND v.owner_id = ?`,
		ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for owner: %w", err)
	}
	return count, nil
}
