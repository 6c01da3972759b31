package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Deps groups everything the router hands to controllers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Storage controllers.Pinger
	Metrics http.Handler
	Catalog controllers.CatalogService
	Cart    controllers.CartStore
	Auth    auth.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Storage))
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(deps.Catalog, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		r.Get("/categories", controllers.Categories(deps.Catalog, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogPage(deps.Catalog, logg))
			r.Put("/view", controllers.CatalogSetView(deps.Catalog, logg))
			r.Post("/refresh", controllers.CatalogRefresh(deps.Catalog, logg))
			r.Get("/status", controllers.CatalogStatus(deps.Catalog))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Auth))
			r.Get("/session", controllers.AuthSession(deps.Auth))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(deps.Auth, logg))
			r.Post("/products", controllers.ProductCreate(deps.Catalog, logg))
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart))
				r.Delete("/", controllers.CartClear(deps.Cart))
				r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, logg))
				r.Put("/items/{productId}", controllers.CartSetQuantity(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			})
		})
	})

	return r
}
