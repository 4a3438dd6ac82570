package domain

const (
	RoleCustomer = "customer"
	RoleReseller = "reseller"
	RoleAdmin    = "admin"
)

type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Hash      string `db:"password_hash" json:"-"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt"`

	Reseller *Reseller `db:"-" json:"reseller,omitempty"`
}

type Reseller struct {
	UserID       string `db:"user_id" json:"-"`
	BusinessName string `db:"business_name" json:"businessName"`
	BusinessType string `db:"business_type" json:"businessType"`
	GSTNumber    string `db:"gst_number" json:"gstNumber"`
	IsVerified   bool   `db:"is_verified" json:"isVerified"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// Viewer returns the pricing identity for u. A nil user is anonymous.
func (u *User) Viewer() Viewer {
	if u == nil {
		return Anonymous()
	}
	if u.Role == RoleReseller {
		return ResellerViewer(u.ID, u.Reseller != nil && u.Reseller.IsVerified)
	}
	return Customer(u.ID)
}
