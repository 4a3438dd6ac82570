package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID              string          `db:"id"`
	CategoryID      string          `db:"category_id"`
	Name            string          `db:"name"`
	Slug            string          `db:"slug"`
	Description     string          `db:"description"`
	Material        string          `db:"material"`
	Weight          float64         `db:"weight"`
	PriceB2C        float64         `db:"price_b2c"`
	PriceB2B        sql.NullFloat64 `db:"price_b2b"`
	DiscountPercent sql.NullFloat64 `db:"discount_percent"`
	StockQuantity   int             `db:"stock_quantity"`
	IsAntiTarnish   bool            `db:"is_anti_tarnish"`
	IsWaterproof    bool            `db:"is_waterproof"`
	IsActive        bool            `db:"is_active"`
	Images          sql.NullString  `db:"images"`
	CreatedAt       string          `db:"created_at"`
	UpdatedAt       sql.NullString  `db:"updated_at"`
	CategoryName    string          `db:"category_name"`
	CategorySlug    string          `db:"category_slug"`
}

const productSelect = `
  SELECT
    p.id, p.category_id, p.name, p.slug, p.description, p.material, p.weight,
    p.price_b2c, p.price_b2b, p.discount_percent, p.stock_quantity,
    p.is_anti_tarnish, p.is_waterproof, p.is_active, p.images,
    p.created_at, p.updated_at,
    c.name AS category_name, c.slug AS category_slug
  FROM products p
  JOIN categories c ON c.id = p.category_id`

func (r productRow) toDomain() domain.Product {
	p := domain.Product{
		ID:            r.ID,
		Slug:          r.Slug,
		Name:          r.Name,
		Description:   r.Description,
		Material:      r.Material,
		Weight:        r.Weight,
		PriceB2C:      r.PriceB2C,
		StockQuantity: r.StockQuantity,
		IsAntiTarnish: r.IsAntiTarnish,
		IsWaterproof:  r.IsWaterproof,
		IsActive:      r.IsActive,
		Images:        domain.DecodeImages(r.Images.String),
		CategoryID:    r.CategoryID,
		Category:      domain.Category{ID: r.CategoryID, Name: r.CategoryName, Slug: r.CategorySlug},
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt.String,
	}
	if r.PriceB2B.Valid {
		v := r.PriceB2B.Float64
		p.PriceB2B = &v
	}
	if r.DiscountPercent.Valid {
		v := r.DiscountPercent.Float64
		p.DiscountPercent = &v
	}
	return p
}

func toProducts(rows []productRow) []domain.Product {
	out := make([]domain.Product, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// ListActive returns every active product, newest first.
func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, productSelect+`
  WHERE p.is_active
  ORDER BY p.created_at DESC, p.id`)
	if err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ListAll includes inactive products (admin views).
func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, productSelect+`
  ORDER BY p.created_at DESC, p.id`); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Get looks a product up by id or slug.
func (r *ProductRepo) Get(ctx context.Context, idOrSlug string) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(productSelect+`
  WHERE p.id = ? OR p.slug = ?
  LIMIT 1`), idOrSlug, idOrSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFound("product", idOrSlug)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

// SlugTaken reports whether another product (not exceptID) uses slug.
func (r *ProductRepo) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM products WHERE slug = ? AND id <> ?`), slug, exceptID)
	return n > 0, err
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO products(id, category_id, name, slug, description, material, weight,
	    price_b2c, price_b2b, discount_percent, stock_quantity, is_anti_tarnish, is_waterproof,
	    is_active, images, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Material, p.Weight,
		p.PriceB2C, p.PriceB2B, p.DiscountPercent, p.StockQuantity, p.IsAntiTarnish, p.IsWaterproof,
		p.IsActive, domain.EncodeImages(p.Images), p.CreatedAt)
	return err
}

// Update replaces every mutable column of p.
func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE products SET
	    category_id = ?, name = ?, slug = ?, description = ?, material = ?, weight = ?,
	    price_b2c = ?, price_b2b = ?, discount_percent = ?, stock_quantity = ?,
	    is_anti_tarnish = ?, is_waterproof = ?, is_active = ?, images = ?, updated_at = ?
	  WHERE id = ?
	`), p.CategoryID, p.Name, p.Slug, p.Description, p.Material, p.Weight,
		p.PriceB2C, p.PriceB2B, p.DiscountPercent, p.StockQuantity,
		p.IsAntiTarnish, p.IsWaterproof, p.IsActive, domain.EncodeImages(p.Images), now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("product", p.ID)
	}
	return nil
}

// Delete hard-deletes a product; cart and wishlist rows go with it, order
// lines keep their snapshot.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, q := range []string{
		`DELETE FROM cart_items WHERE product_id = ?`,
		`DELETE FROM wishlist_items WHERE product_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(q), id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("product", id)
	}
	return tx.Commit()
}
