package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is one stored cart row joined with its current product data.
type CartLine struct {
	Product  domain.Product
	Quantity int
	AddedAt  string
}

type cartLineRow struct {
	productRow
	Quantity int    `db:"quantity"`
	AddedAt  string `db:"added_at"`
}

// Add inserts the line or increments its quantity by qty in one statement.
// The write only happens when the product is active and the resulting line
// quantity fits the current stock, so concurrent adds cannot oversell.
// It returns the line quantity after the write.
func (r *CartRepo) Add(ctx context.Context, userID, productID string, qty int) (int, error) {
	ts := now()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO cart_items(user_id, product_id, quantity, created_at, updated_at)
		SELECT ?, p.id, CAST(? AS INTEGER), ?, ?
		FROM products p
		WHERE p.id = ? AND p.is_active AND p.stock_quantity >= ?
		ON CONFLICT(user_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + excluded.quantity,
		    updated_at = excluded.updated_at
		WHERE cart_items.quantity + excluded.quantity <=
		      (SELECT stock_quantity FROM products WHERE id = excluded.product_id)
	`), userID, qty, ts, ts, productID, qty)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, r.explainReject(ctx, userID, productID, qty)
	}
	return r.Quantity(ctx, userID, productID)
}

// explainReject works out why a conditional cart write touched no rows.
func (r *CartRepo) explainReject(ctx context.Context, userID, productID string, add int) error {
	var p struct {
		Stock    int  `db:"stock_quantity"`
		IsActive bool `db:"is_active"`
	}
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT stock_quantity, is_active FROM products WHERE id = ?`), productID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !p.IsActive) {
		return domain.NotFound("product", productID)
	}
	if err != nil {
		return err
	}
	have, err := r.Quantity(ctx, userID, productID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return &domain.StockError{ProductID: productID, Requested: have + add, Available: p.Stock}
}

// Quantity returns the stored quantity of one line.
func (r *CartRepo) Quantity(ctx context.Context, userID, productID string) (int, error) {
	var q int
	err := r.db.GetContext(ctx, &q, r.db.Rebind(`
		SELECT quantity FROM cart_items WHERE user_id = ? AND product_id = ?
	`), userID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFound("cart item", productID)
	}
	return q, err
}

// SetQuantity overwrites a line's quantity if stock allows it.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE cart_items SET quantity = ?, updated_at = ?
		WHERE user_id = ? AND product_id = ?
		  AND ? <= (SELECT stock_quantity FROM products WHERE id = ?)
	`), qty, now(), userID, productID, qty, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.Quantity(ctx, userID, productID); err != nil {
		return err
	}
	have, err := stockOf(ctx, r.db, productID)
	if err != nil {
		return err
	}
	return &domain.StockError{ProductID: productID, Requested: qty, Available: have}
}

func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM cart_items WHERE user_id = ? AND product_id = ?
	`), userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("cart item", productID)
	}
	return nil
}

// Items lists the user's cart in the order lines were first added.
func (r *CartRepo) Items(ctx context.Context, userID string) ([]CartLine, error) {
	return cartItems(ctx, r.db, userID)
}

func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cart_items WHERE user_id = ?`), userID)
	return err
}

func cartItems(ctx context.Context, q DBTX, userID string) ([]CartLine, error) {
	var rows []cartLineRow
	err := q.SelectContext(ctx, &rows, q.Rebind(`
	  SELECT
	    p.id, p.category_id, p.name, p.slug, p.description, p.material, p.weight,
	    p.price_b2c, p.price_b2b, p.discount_percent, p.stock_quantity,
	    p.is_anti_tarnish, p.is_waterproof, p.is_active, p.images,
	    p.created_at, p.updated_at,
	    c.name AS category_name, c.slug AS category_slug,
	    ci.quantity, ci.created_at AS added_at
	  FROM cart_items ci
	  JOIN products p ON p.id = ci.product_id
	  JOIN categories c ON c.id = p.category_id
	  WHERE ci.user_id = ?
	  ORDER BY ci.created_at, p.id
	`), userID)
	if err != nil {
		return nil, err
	}
	out := make([]CartLine, len(rows))
	for i, row := range rows {
		out[i] = CartLine{Product: row.toDomain(), Quantity: row.Quantity, AddedAt: row.AddedAt}
	}
	return out, nil
}
