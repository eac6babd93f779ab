package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// NotificationRepository, bildirim veritabanı işlemleri için interface.
type NotificationRepository interface {
	// CreateBatch, fan-out on write: video publish'te her abone için bir
	// bildirim satırı tek transaction'da yazılır. Oluşan bildirimler
	// (id'leri doldurulmuş olarak) döner.
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	ListByUser(ctx context.Context, userID string, page, limit int) (*models.NotificationPage, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
