package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzarauf/foodio-backend/api/controllers"
	"github.com/hamzarauf/foodio-backend/api/middleware"
	"github.com/hamzarauf/foodio-backend/internal/auth"
	cartsvc "github.com/hamzarauf/foodio-backend/internal/cart"
	"github.com/hamzarauf/foodio-backend/internal/catalog"
	checkoutsvc "github.com/hamzarauf/foodio-backend/internal/checkout"
	"github.com/hamzarauf/foodio-backend/internal/favorites"
	ordersvc "github.com/hamzarauf/foodio-backend/internal/orders"
	reordersvc "github.com/hamzarauf/foodio-backend/internal/reorder"
	"github.com/hamzarauf/foodio-backend/pkg/auth/session"
	"github.com/hamzarauf/foodio-backend/pkg/config"
	"github.com/hamzarauf/foodio-backend/pkg/db"
	"github.com/hamzarauf/foodio-backend/pkg/logger"
	"github.com/hamzarauf/foodio-backend/pkg/redis"
)

type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	MetricsHandler http.Handler

	AuthService       auth.Service
	CatalogService    catalog.Service
	FavouritesService favorites.Service
	CartService       cartsvc.Service
	CheckoutService   checkoutsvc.Service
	OrdersService     ordersvc.Service
	ReorderService    reordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.MenuProductDetail(deps.CatalogService, logg))
		})

		r.Route("/favourites", func(r chi.Router) {
			r.Get("/", controllers.FavouritesList(deps.FavouritesService, logg))
			r.Post("/", controllers.FavouriteAdd(deps.FavouritesService, logg))
			r.Delete("/{productId}", controllers.FavouriteRemove(deps.FavouritesService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.CartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartService, logg))
			r.Get("/quote", controllers.CheckoutQuote(deps.CheckoutService, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
			r.Post("/{orderId}/reorder", controllers.OrderReorder(deps.ReorderService, logg))
		})
	})

	return r
}
