package services

import (
	"context"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/repository"
)

// NotificationService, bildirim okuma iş mantığı.
// Bildirim OLUŞTURMA burada değildir — video/tweet servisleri fan-out
// sırasında doğrudan repository'ye yazar.
type NotificationService interface {
	ListByUser(ctx context.Context, userID string, page, limit int) (*models.NotificationPage, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService, constructor.
func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) ListByUser(ctx context.Context, userID string, page, limit int) (*models.NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.notifRepo.ListByUser(ctx, userID, page, limit)
}

// MarkRead, bildirimi okundu işaretler. WHERE koşulu user_id içerir —
// başka kullanıcının bildirimi işaretlenemez.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notifRepo.MarkRead(ctx, userID, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}
