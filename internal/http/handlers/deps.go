package handlers

import (
	"github.com/jmoiron/sqlx"

	"julex/internal/cache"
	"julex/internal/repos"
	"julex/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	WishlistHandler  *WishlistHandler
	ResellerHandler  *ResellerHandler
	AdminHandler     *AdminHandler
}

// NewDeps wires repositories, services and handlers over one database and
// product cache. A nil cache disables caching.
func NewDeps(db *sqlx.DB, pc cache.ProductCache) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, pc)
	invSvc := services.NewInventoryService(invRepo, pc)
	cartSvc := services.NewCartService(cartRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, pc)
	wishSvc := services.NewWishlistService(wishRepo, prodRepo)
	resellerSvc := services.NewResellerService(userRepo, orderRepo)

	return &Deps{
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		WishlistHandler:  &WishlistHandler{Wish: wishSvc},
		ResellerHandler:  &ResellerHandler{Resellers: resellerSvc},
		AdminHandler:     &AdminHandler{Orders: orderSvc, Auth: authSvc, Resellers: resellerSvc},
	}
}
