package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// CategoryRepository, kategori veritabanı işlemleri için interface.
// Temel set migration ile seed edilir; Create yenilerini ekler.
type CategoryRepository interface {
	// Create, kategoriyi ekler ve id/created_at alanlarını doldurur.
	// Aynı isim veya slug varsa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, category *models.Category) error
	GetAll(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}
