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

// sqliteCategoryRepo, CategoryRepository'nin SQLite implementasyonu.
type sqliteCategoryRepo struct {
	db database.TxQuerier
}

// NewSQLiteCategoryRepo, constructor fonksiyonu.
func NewSQLiteCategoryRepo(db database.TxQuerier) CategoryRepository {
	return &sqliteCategoryRepo{db: db}
}

func (r *sqliteCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, slug) VALUES (?, ?)
		 RETURNING id, created_at`,
		category.Name, category.Slug).Scan(&category.ID, &category.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *sqliteCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

func (r *sqliteCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM categories WHERE slug = ?`, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return c, nil
}
