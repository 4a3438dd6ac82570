package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// Add is idempotent.
func (r *WishlistRepo) Add(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO wishlist_items(user_id, product_id, created_at)
	  VALUES(?, ?, ?)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`), userID, productID, now())
	return err
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?
	`), userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("wishlist item", productID)
	}
	return nil
}

// List returns wishlisted products, most recently saved first.
func (r *WishlistRepo) List(ctx context.Context, userID string) ([]domain.Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(productSelect+`
	  JOIN wishlist_items wi ON wi.product_id = p.id
	  WHERE wi.user_id = ?
	  ORDER BY wi.created_at DESC, p.id
	`), userID)
	if err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}
