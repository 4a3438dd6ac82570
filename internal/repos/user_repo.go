package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"julex/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `u.id, u.email, u.name, u.password_hash, u.role, u.created_at`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users u WHERE LOWER(u.email) = LOWER(?)`, email)
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users u WHERE u.id = ?`, id)
}

// SessionUser resolves a session token to its user and touches last_seen.
func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	u, err := r.one(ctx, `
      SELECT `+userCols+`
      FROM sessions s
      JOIN users u ON u.id = s.user_id
      WHERE s.id = ?`, sid)
	if err != nil {
		return nil, err
	}
	_, _ = r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE sessions SET last_seen = ? WHERE id = ?`), now(), sid)
	return u, nil
}

func (r *UserRepo) one(ctx context.Context, q string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(q), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user", "")
	}
	if err != nil {
		return nil, err
	}
	if u.Role == domain.RoleReseller {
		if u.Reseller, err = r.reseller(ctx, u.ID); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (r *UserRepo) reseller(ctx context.Context, userID string) (*domain.Reseller, error) {
	var rs domain.Reseller
	err := r.DB.GetContext(ctx, &rs, r.DB.Rebind(`
	  SELECT user_id, business_name, business_type, gst_number, is_verified, created_at
	  FROM resellers WHERE user_id = ?`), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
	  INSERT INTO users(id, email, name, password_hash, role, created_at)
	  VALUES (?, ?, ?, ?, ?, ?)`), u.ID, u.Email, u.Name, u.Hash, u.Role, u.CreatedAt)
	return err
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER(?)`), email)
	return n > 0, err
}

func (r *UserRepo) BindSession(ctx context.Context, sid, userID string) error {
	ts := now()
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
	  INSERT INTO sessions(id, user_id, created_at, last_seen) VALUES (?, ?, ?, ?)
	  ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = excluded.last_seen
	`), sid, userID, ts, ts)
	return err
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM sessions WHERE id = ?`), sid)
	return err
}

// UpsertReseller stores a business profile and switches the user to the
// reseller role. Re-applying resets verification.
func (r *UserRepo) UpsertReseller(ctx context.Context, rs domain.Reseller) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`
	  INSERT INTO resellers(user_id, business_name, business_type, gst_number, is_verified, created_at)
	  VALUES (?, ?, ?, ?, ?, ?)
	  ON CONFLICT(user_id) DO UPDATE SET
	    business_name = excluded.business_name,
	    business_type = excluded.business_type,
	    gst_number = excluded.gst_number,
	    is_verified = excluded.is_verified
	`), rs.UserID, rs.BusinessName, rs.BusinessType, rs.GSTNumber, false, now()); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE users SET role = ? WHERE id = ? AND role <> ?`),
		domain.RoleReseller, rs.UserID, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Invalid("role", "admins cannot apply as resellers")
	}
	return tx.Commit()
}

func (r *UserRepo) SetResellerVerified(ctx context.Context, userID string, verified bool) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE resellers SET is_verified = ? WHERE user_id = ?`), verified, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("reseller", userID)
	}
	return nil
}

// List returns every user with reseller profiles attached, newest first.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.DB.SelectContext(ctx, &users, `SELECT `+userCols+` FROM users u ORDER BY u.created_at DESC, u.id`); err != nil {
		return nil, err
	}
	var profiles []domain.Reseller
	if err := r.DB.SelectContext(ctx, &profiles, `
	  SELECT user_id, business_name, business_type, gst_number, is_verified, created_at FROM resellers`); err != nil {
		return nil, err
	}
	byUser := make(map[string]*domain.Reseller, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	for i := range users {
		users[i].Reseller = byUser[users[i].ID]
	}
	return users, nil
}

// DeleteUserCascade removes the account with its sessions, cart, wishlist
// and reseller profile. Orders are kept for audit; pending ones are failed.
func (r *UserRepo) DeleteUserCascade(ctx context.Context, userID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE user_id = ? AND status = ?`),
		domain.OrderFailed, now(), userID, domain.OrderPending); err != nil {
		return err
	}
	for _, q := range []string{
		`DELETE FROM sessions WHERE user_id = ?`,
		`DELETE FROM cart_items WHERE user_id = ?`,
		`DELETE FROM wishlist_items WHERE user_id = ?`,
		`DELETE FROM resellers WHERE user_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(q), userID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("user", userID)
	}
	return tx.Commit()
}
