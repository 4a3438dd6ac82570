package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, slug, created_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Get(ctx context.Context, idOrSlug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
	  SELECT id, name, slug, created_at FROM categories WHERE id = ? OR slug = ? LIMIT 1
	`), idOrSlug, idOrSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, domain.NotFound("category", idOrSlug)
	}
	return c, err
}

func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO categories(id, name, slug, created_at) VALUES (?, ?, ?, ?)
	`), c.ID, c.Name, c.Slug, c.CreatedAt)
	return err
}

func (r *CategoryRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM categories WHERE slug = ?`), slug)
	return n > 0, err
}
