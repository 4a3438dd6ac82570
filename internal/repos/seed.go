package repos

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"julex/internal/domain"
	applog "julex/internal/log"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

// Catalog is the YAML shape accepted by `julex seed`.
type Catalog struct {
	Categories []SeedCategory `yaml:"categories"`
	Products   []SeedProduct  `yaml:"products"`
}

type SeedCategory struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type SeedProduct struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Category        string   `yaml:"category"` // category slug
	Description     string   `yaml:"description"`
	Material        string   `yaml:"material"`
	Weight          float64  `yaml:"weight"`
	PriceB2C        float64  `yaml:"priceB2c"`
	PriceB2B        *float64 `yaml:"priceB2b"`
	DiscountPercent *float64 `yaml:"discountPercent"`
	Stock           int      `yaml:"stock"`
	AntiTarnish     bool     `yaml:"antiTarnish"`
	Waterproof      bool     `yaml:"waterproof"`
	Images          []string `yaml:"images"`
}

// ParseCatalog decodes a YAML catalog, rejecting unknown keys.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i, p := range c.Products {
		if p.Name == "" || p.Category == "" || p.PriceB2C <= 0 || p.Weight <= 0 {
			return Catalog{}, fmt.Errorf("parse catalog: product #%d (%q) needs name, category, weight and priceB2c", i+1, p.Name)
		}
	}
	return c, nil
}

// SeedDefaults loads the embedded demo catalog into an empty database and
// makes sure the demo accounts exist.
func SeedDefaults(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n == 0 {
		applog.L().Info("seed.catalog.default")
		c, err := ParseCatalog(bytes.NewReader(defaultCatalog))
		if err != nil {
			return err
		}
		if _, _, err := SeedCatalog(db, c); err != nil {
			return err
		}
	}
	return seedUsers(db)
}

// SeedCatalog inserts categories and products that are not present yet
// (matched by slug). It returns how many rows of each were added. Products
// get increasing created_at values in file order so the last entry is newest.
func SeedCatalog(db *sqlx.DB, c Catalog) (cats, prods int, err error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	base := time.Now().Add(-time.Duration(len(c.Products)) * time.Second)
	for _, sc := range c.Categories {
		slug := sc.Slug
		if slug == "" {
			slug = domain.Slugify(sc.Name)
		}
		res, err := tx.Exec(tx.Rebind(`
			INSERT INTO categories(id, name, slug, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(slug) DO NOTHING`), slug, sc.Name, slug, stamp(base))
		if err != nil {
			return 0, 0, err
		}
		if k, _ := res.RowsAffected(); k > 0 {
			cats++
		}
	}

	for i, p := range c.Products {
		var catID string
		if err := tx.Get(&catID, tx.Rebind(`SELECT id FROM categories WHERE slug = ?`), p.Category); err != nil {
			return 0, 0, fmt.Errorf("product %q: unknown category %q", p.Name, p.Category)
		}
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		res, err := tx.Exec(tx.Rebind(`
			INSERT INTO products(id, category_id, name, slug, description, material, weight,
			  price_b2c, price_b2b, discount_percent, stock_quantity, is_anti_tarnish, is_waterproof,
			  is_active, images, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO NOTHING`),
			id, catID, p.Name, domain.Slugify(p.Name), p.Description, p.Material, p.Weight,
			p.PriceB2C, p.PriceB2B, p.DiscountPercent, p.Stock, p.AntiTarnish, p.Waterproof,
			true, domain.EncodeImages(p.Images), stamp(base.Add(time.Duration(i+1)*time.Second)))
		if err != nil {
			return 0, 0, err
		}
		if k, _ := res.RowsAffected(); k > 0 {
			prods++
		}
	}
	return cats, prods, tx.Commit()
}

type seedUser struct {
	ID, Email, Name, Role string
	Reseller              *domain.Reseller
}

// seedUsers ensures the demo accounts exist (idempotent). All share the
// password Passw0rd!.
func seedUsers(db *sqlx.DB) error {
	users := []seedUser{
		{ID: "u-admin", Email: "admin@julex.test", Name: "Admin", Role: domain.RoleAdmin},
		{ID: "u-priya", Email: "priya@julex.test", Name: "Priya", Role: domain.RoleCustomer},
		{ID: "u-arjun", Email: "arjun@julex.test", Name: "Arjun", Role: domain.RoleCustomer},
		{ID: "u-meera", Email: "meera@julex.test", Name: "Meera", Role: domain.RoleReseller,
			Reseller: &domain.Reseller{BusinessName: "Meera Boutique", BusinessType: "retail", GSTNumber: "27AAPFU0939F1ZV", IsVerified: true}},
		{ID: "u-kabir", Email: "kabir@julex.test", Name: "Kabir", Role: domain.RoleReseller,
			Reseller: &domain.Reseller{BusinessName: "Kabir Gifts", BusinessType: "online"}},
	}

	var existing int
	if err := db.Get(&existing, `SELECT COUNT(*) FROM users WHERE id LIKE 'u-%'`); err != nil {
		return err
	}
	if existing >= len(users) {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	for _, u := range users {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO users(id, email, name, password_hash, role, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(email) DO NOTHING`), u.ID, u.Email, u.Name, string(hash), u.Role, ts); err != nil {
			return err
		}
		if r := u.Reseller; r != nil {
			if _, err := tx.Exec(tx.Rebind(`
				INSERT INTO resellers(user_id, business_name, business_type, gst_number, is_verified, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(user_id) DO NOTHING`), u.ID, r.BusinessName, r.BusinessType, r.GSTNumber, r.IsVerified, ts); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
