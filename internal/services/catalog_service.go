package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"julex/internal/cache"
	"julex/internal/catalog"
	"julex/internal/domain"
	"julex/internal/pricing"
	"julex/internal/repos"
	"julex/internal/validate"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Cache cache.ProductCache
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, c cache.ProductCache) *CatalogService {
	if c == nil {
		c = cache.Nop{}
	}
	return &CatalogService{Cats: cats, Prods: prods, Cache: c}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name, ok := validate.Name(name)
	if !ok {
		return domain.Category{}, domain.Invalid("name", "is required (max 60 characters)")
	}
	c := domain.Category{Name: name, Slug: domain.Slugify(name), CreatedAt: stamp()}
	if c.Slug == "" {
		return domain.Category{}, domain.Invalid("name", "needs at least one letter or digit")
	}
	c.ID = c.Slug
	taken, err := s.Cats.SlugTaken(ctx, c.Slug)
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, domain.Invalid("name", "category already exists")
	}
	return c, s.Cats.Create(ctx, c)
}

// Active returns the active product list, from cache when possible.
func (s *CatalogService) Active(ctx context.Context) ([]domain.Product, error) {
	if ps, ok := s.Cache.Products(ctx); ok {
		return ps, nil
	}
	ps, err := s.Prods.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Store(ctx, ps)
	return ps, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, c catalog.Criteria) (catalog.Result, error) {
	ps, err := s.Active(ctx)
	if err != nil {
		return catalog.Result{}, err
	}
	return catalog.Filter(ps, c)
}

// GetProduct returns an active product by id or slug with the viewer's quote.
func (s *CatalogService) GetProduct(ctx context.Context, idOrSlug string, v domain.Viewer) (catalog.Item, error) {
	p, err := s.Prods.Get(ctx, idOrSlug)
	if err != nil {
		return catalog.Item{}, err
	}
	if !p.IsActive {
		return catalog.Item{}, domain.NotFound("product", idOrSlug)
	}
	return catalog.Item{Product: p, Quote: pricing.Resolve(p, v)}, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.ListAll(ctx)
}

// ProductInput is the admin create/patch body. Nil fields are left alone on
// update. In a patch, priceB2b or discountPercent of 0 clears the value.
type ProductInput struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Material        *string   `json:"material"`
	Weight          *float64  `json:"weight"`
	PriceB2C        *float64  `json:"priceB2c"`
	PriceB2B        *float64  `json:"priceB2b"`
	DiscountPercent *float64  `json:"discountPercent"`
	StockQuantity   *int      `json:"stockQuantity"`
	IsAntiTarnish   *bool     `json:"isAntiTarnish"`
	IsWaterproof    *bool     `json:"isWaterproof"`
	IsActive        *bool     `json:"isActive"`
	Images          *[]string `json:"images"`
	Category        *string   `json:"category"` // id or slug
}

type productRules struct {
	Name            string   `json:"name" validate:"required,max=120"`
	Slug            string   `json:"slug" validate:"slug"`
	Description     string   `json:"description" validate:"max=2000"`
	Material        string   `json:"material" validate:"max=120"`
	Weight          float64  `json:"weight" validate:"gt=0"`
	PriceB2C        float64  `json:"priceB2c" validate:"gt=0"`
	PriceB2B        *float64 `json:"priceB2b" validate:"omitempty,gt=0"`
	DiscountPercent *float64 `json:"discountPercent" validate:"omitempty,gt=0,lte=100"`
	StockQuantity   int      `json:"stockQuantity" validate:"gte=0"`
	CategoryID      string   `json:"category" validate:"required"`
	Images          []string `json:"images" validate:"max=20,dive,required,max=500"`
}

func checkProduct(p domain.Product) error {
	return validate.Struct(productRules{
		Name: p.Name, Slug: p.Slug, Description: p.Description, Material: p.Material,
		Weight: p.Weight, PriceB2C: p.PriceB2C, PriceB2B: p.PriceB2B, DiscountPercent: p.DiscountPercent,
		StockQuantity: p.StockQuantity, CategoryID: p.CategoryID, Images: p.Images,
	})
}

func (s *CatalogService) apply(ctx context.Context, p *domain.Product, in ProductInput) error {
	if in.Name != nil {
		p.Name = *in.Name
		p.Slug = domain.Slugify(p.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Material != nil {
		p.Material = *in.Material
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.PriceB2C != nil {
		p.PriceB2C = *in.PriceB2C
	}
	if in.PriceB2B != nil {
		p.PriceB2B = nonZero(*in.PriceB2B)
	}
	if in.DiscountPercent != nil {
		p.DiscountPercent = nonZero(*in.DiscountPercent)
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.IsAntiTarnish != nil {
		p.IsAntiTarnish = *in.IsAntiTarnish
	}
	if in.IsWaterproof != nil {
		p.IsWaterproof = *in.IsWaterproof
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Images != nil {
		p.Images = *in.Images
	}
	if in.Category != nil {
		c, err := s.Cats.Get(ctx, *in.Category)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("category", "unknown category")
		}
		if err != nil {
			return err
		}
		p.CategoryID, p.Category = c.ID, c
	}
	if err := checkProduct(*p); err != nil {
		return err
	}
	taken, err := s.Prods.SlugTaken(ctx, p.Slug, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Invalid("name", "a product with this name already exists")
	}
	return nil
}

func nonZero(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	p := domain.Product{ID: uuid.NewString(), IsActive: true, Images: []string{}, CreatedAt: stamp()}
	if err := s.apply(ctx, &p, in); err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.Cache.Invalidate(ctx)
	return s.Prods.Get(ctx, p.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.apply(ctx, &p, in); err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.Cache.Invalidate(ctx)
	return s.Prods.Get(ctx, p.ID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.Prods.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Prods.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
