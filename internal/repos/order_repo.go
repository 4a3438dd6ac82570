package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, user_id, order_type, status, subtotal, shipping, total, payment_method,
  ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
  created_at, COALESCE(updated_at, '') AS updated_at`

// Place writes the order and its lines, takes the stock and removes the
// ordered cart lines in a single transaction. Each line is removed only if
// its quantity still matches the order; otherwise ErrCartChanged is returned.
// Lines added to the cart meanwhile are left alone. Any error rolls
// everything back.
func (r *OrderRepo) Place(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range o.Items {
		if err := decrementStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}

	s := o.ShippingInfo
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
	  INSERT INTO orders
	    (id, user_id, order_type, status, subtotal, shipping, total, payment_method,
	     ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_pincode, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), o.ID, o.UserID, o.OrderType, o.Status, o.Subtotal, o.Shipping, o.Total, o.PaymentMethod,
		s.Name, s.Email, s.Phone, s.Address, s.City, s.State, s.Pincode, o.CreatedAt); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
		  INSERT INTO order_items(order_id, product_id, product_name, quantity, unit_price, is_wholesale)
		  VALUES (?, ?, ?, ?, ?, ?)
		`), o.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.IsWholesale); err != nil {
			return err
		}
	}
	for _, it := range o.Items {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
		  DELETE FROM cart_items WHERE user_id = ? AND product_id = ? AND quantity = ?
		`), o.UserID, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %q: %w", it.ProductID, domain.ErrCartChanged)
		}
	}
	return tx.Commit()
}

// Get loads an order with its lines.
func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o, r.db.Rebind(`SELECT `+orderCols+` FROM orders WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NotFound("order", id)
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = []domain.OrderItem{}
	if err := r.db.SelectContext(ctx, &o.Items, r.db.Rebind(`
		SELECT order_id, product_id, product_name, quantity, unit_price, is_wholesale
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_name
	`), id); err != nil {
		return domain.Order{}, err
	}
	o.FillShipping()
	return o, nil
}

// ListByUser returns a user's order headers, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+orderCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`), userID)
	fill(out)
	return out, err
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+orderCols+`
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT ?
	`), limit)
	fill(out)
	return out, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`), status, now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("order", id)
	}
	return nil
}

func fill(orders []domain.Order) {
	for i := range orders {
		orders[i].FillShipping()
	}
}
