package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// InventoryRow backs the admin stock listing.
type InventoryRow struct {
	ProductID string `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Category  string `db:"category" json:"category"`
	Qty       int    `db:"qty" json:"qty"`
	IsActive  bool   `db:"is_active" json:"isActive"`
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]InventoryRow, error) {
	rows := []InventoryRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.id AS product_id, p.name, c.name AS category, p.stock_quantity AS qty, p.is_active
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.stock_quantity, p.name
	`)
	return rows, err
}

// Qty returns current stock for a product, or a NotFound error.
func (r *InventoryRepo) Qty(ctx context.Context, productID string) (int, error) {
	return stockOf(ctx, r.db, productID)
}

// Decrement atomically subtracts by units if enough stock exists.
func (r *InventoryRepo) Decrement(ctx context.Context, productID string, by int) error {
	return decrementStock(ctx, r.db, productID, by)
}

func (r *InventoryRepo) SetQty(ctx context.Context, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE products SET stock_quantity = ?, updated_at = ? WHERE id = ?
	`), qty, now(), productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("product", productID)
	}
	return nil
}

func stockOf(ctx context.Context, q DBTX, productID string) (int, error) {
	var qty int
	err := q.GetContext(ctx, &qty, q.Rebind(`SELECT stock_quantity FROM products WHERE id = ?`), productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFound("product", productID)
	}
	return qty, err
}

func decrementStock(ctx context.Context, q DBTX, productID string, by int) error {
	res, err := q.ExecContext(ctx, q.Rebind(`
		UPDATE products
		SET stock_quantity = stock_quantity - ?
		WHERE id = ? AND stock_quantity >= ?
	`), by, productID, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	have, err := stockOf(ctx, q, productID)
	if err != nil {
		return err
	}
	return &domain.StockError{ProductID: productID, Requested: by, Available: have}
}
