package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akinalp/playtube/database"
	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
)

// sqliteNotificationRepo, NotificationRepository'nin SQLite implementasyonu.
//
// CreateBatch kendi transaction'ını açtığı için *sql.DB alır.
type sqliteNotificationRepo struct {
	db *sql.DB
}

// NewSQLiteNotificationRepo, constructor fonksiyonu.
func NewSQLiteNotificationRepo(db *sql.DB) NotificationRepository {
	return &sqliteNotificationRepo{db: db}
}

func (r *sqliteNotificationRepo) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	// Fan-out tek transaction'da: abonelerin yarısına bildirim yazılıp
	// yarısına yazılmadan kalmaz.
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO notifications (user_id, type, actor_id, entity_id, message)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, created_at`)
		if err != nil {
			return fmt.Errorf("failed to prepare notification insert: %w", err)
		}
		defer stmt.Close()

		for _, n := range notifications {
			if err := stmt.QueryRowContext(ctx,
				n.UserID, n.Type, n.ActorID, n.EntityID, n.Message,
			).Scan(&n.ID, &n.CreatedAt); err != nil {
				return fmt.Errorf("failed to insert notification: %w", err)
			}
		}
		return nil
	})
}

func (r *sqliteNotificationRepo) ListByUser(ctx context.Context, userID string, page, limit int) (*models.NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	unread, err := r.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT n.id, n.user_id, n.type, n.actor_id, n.entity_id, n.message, n.is_read, n.created_at,
		       u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url
		FROM notifications n
		JOIN users u ON u.id = n.actor_id
		WHERE n.user_id = ?
		ORDER BY n.created_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		actor := models.UserSummary{}
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.ActorID, &n.EntityID, &n.Message, &n.IsRead, &n.CreatedAt,
			&actor.ID, &actor.Username, &actor.Email, &actor.FullName, &actor.AvatarURL, &actor.CoverURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		n.Actor = &actor
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return &models.NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
		Page:          page,
		Limit:         limit,
	}, nil
}

func (r *sqliteNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *sqliteNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	// user_id koşulu: başkasının bildirimi okunmuş olarak işaretlenemez
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
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

func (r *sqliteNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}
