package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akinalp/playtube/database"
	"github.com/akinalp/playtube/models"
)

// sqliteSubscriptionRepo, SubscriptionRepository'nin SQLite implementasyonu.
//
// Toggle kendi transaction'ını açtığı için *sql.DB alır.
type sqliteSubscriptionRepo struct {
	db *sql.DB
}

// NewSQLiteSubscriptionRepo, constructor fonksiyonu.
func NewSQLiteSubscriptionRepo(db *sql.DB) SubscriptionRepository {
	return &sqliteSubscriptionRepo{db: db}
}

func (r *sqliteSubscriptionRepo) Toggle(ctx context.Context, subscriberID, channelID string) (*models.SubscriptionToggleResult, error) {
	result := &models.SubscriptionToggleResult{}

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// 1. Mevcut aboneliği silmeyi dene — affected == 1 ise unsubscribe oldu
		res, err := tx.ExecContext(ctx,
			`DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?`,
			subscriberID, channelID)
		if err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}

		if affected == 0 {
			// 2. Abonelik yoktu → ekle. INSERT OR IGNORE: eşzamanlı çifte
			// toggle'da UNIQUE çakışması hata üretmez.
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO subscriptions (subscriber_id, channel_id) VALUES (?, ?)`,
				subscriberID, channelID); err != nil {
				return fmt.Errorf("failed to insert subscription: %w", err)
			}
			result.Subscribed = true
		}

		// 3. Güncel abone sayısını aynı transaction'da say
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?`,
			channelID).Scan(&result.TotalSubscribers); err != nil {
			return fmt.Errorf("failed to count subscribers: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *sqliteSubscriptionRepo) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?)`,
		subscriberID, channelID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return exists, nil
}

func (r *sqliteSubscriptionRepo) CountSubscribers(ctx context.Context, channelID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?`, channelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func (r *sqliteSubscriptionRepo) CountSubscribedChannels(ctx context.Context, subscriberID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = ?`, subscriberID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribed channels: %w", err)
	}
	return count, nil
}

func (r *sqliteSubscriptionRepo) ListSubscribers(ctx context.Context, channelID string) ([]*models.ChannelSubscriber, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = ?
		ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []*models.ChannelSubscriber
	for rows.Next() {
		cs := &models.ChannelSubscriber{}
		if err := rows.Scan(
			&cs.Subscriber.ID, &cs.Subscriber.Username, &cs.Subscriber.Email,
			&cs.Subscriber.FullName, &cs.Subscriber.AvatarURL, &cs.Subscriber.CoverURL,
			&cs.SubscribedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		subscribers = append(subscribers, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber rows: %w", err)
	}

	return subscribers, nil
}

func (r *sqliteSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*models.SubscribedChannel, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_url, s.created_at,
		       (SELECT COUNT(*) FROM subscriptions WHERE channel_id = u.id)
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = ?
		ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	defer rows.Close()

	var channels []*models.SubscribedChannel
	for rows.Next() {
		sc := &models.SubscribedChannel{}
		if err := rows.Scan(
			&sc.Channel.ID, &sc.Channel.Username, &sc.Channel.Email,
			&sc.Channel.FullName, &sc.Channel.AvatarURL, &sc.Channel.CoverURL,
			&sc.SubscribedAt, &sc.TotalSubscribers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscribed channel row: %w", err)
		}
		channels = append(channels, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscribed channel rows: %w", err)
	}

	return channels, nil
}

func (r *sqliteSubscriptionRepo) ListSubscriberIDs(ctx context.Context, channelID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subscriber_id FROM subscriptions WHERE channel_id = ?`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriber ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber ids: %w", err)
	}

	return ids, nil
}
