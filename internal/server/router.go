package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	carthandler "github.com/fekuna/omnipos-dealer-service/internal/cart/handler"
	categoryhandler "github.com/fekuna/omnipos-dealer-service/internal/category/handler"
	dealerhandler "github.com/fekuna/omnipos-dealer-service/internal/dealer/handler"
	discounthandler "github.com/fekuna/omnipos-dealer-service/internal/discount/handler"
	"github.com/fekuna/omnipos-dealer-service/internal/httpx"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	orderhandler "github.com/fekuna/omnipos-dealer-service/internal/order/handler"
	producthandler "github.com/fekuna/omnipos-dealer-service/internal/product/handler"
	sessionhandler "github.com/fekuna/omnipos-dealer-service/internal/session/handler"
	visibilityhandler "github.com/fekuna/omnipos-dealer-service/internal/visibility/handler"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/middleware"
)

type Handlers struct {
	Session    *sessionhandler.SessionHandler
	Dealer     *dealerhandler.DealerHandler
	Category   *categoryhandler.CategoryHandler
	Product    *producthandler.ProductHandler
	Discount   *discounthandler.DiscountHandler
	Visibility *visibilityhandler.VisibilityHandler
	Cart       *carthandler.CartHandler
	Order      *orderhandler.OrderHandler
}

type Options struct {
	CORSOrigins []string
	Auth        *auth.Middleware
	Dealers     auth.DealerFinder
	Logger      logger.ZapLogger
}

func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Session.Login)
			r.Post("/logout", h.Session.Logout)
			r.With(opts.Auth.Authenticate).Get("/me", h.Session.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(opts.Auth.Authenticate)
			r.Use(opts.Auth.RequireRole(model.RoleAdmin))
			adminRoutes(r, h)
		})

		r.Route("/dealer", func(r chi.Router) {
			r.Use(opts.Auth.Authenticate)
			r.Use(opts.Auth.RequireRole(model.RoleDealer))
			r.Use(opts.Auth.RequireActiveDealer(opts.Dealers))
			dealerRoutes(r, h)
		})
	})

	return r
}

func adminRoutes(r chi.Router, h Handlers) {
	r.Route("/dealers", func(r chi.Router) {
		r.Get("/", h.Dealer.List)
		r.Post("/", h.Dealer.Create)
		r.Get("/{id}", h.Dealer.Get)
		r.Put("/{id}", h.Dealer.Update)
		r.Delete("/{id}", h.Dealer.Delete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Category.List)
		r.Post("/", h.Category.Create)
		r.Get("/{id}", h.Category.Get)
		r.Put("/{id}", h.Category.Update)
		r.Delete("/{id}", h.Category.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.Product.List)
		r.Post("/", h.Product.Create)
		r.Get("/search", h.Product.Search)
		r.Get("/{id}", h.Product.Get)
		r.Put("/{id}", h.Product.Update)
		r.Delete("/{id}", h.Product.Delete)
	})

	r.Route("/discounts", func(r chi.Router) {
		r.Get("/", h.Discount.List)
		r.Post("/", h.Discount.Assign)
		r.Get("/dealer/{id}", h.Discount.GetDealerDiscounts)
		r.Put("/dealer/{id}", h.Discount.ReplaceDealerDiscounts)
		r.Delete("/{id}", h.Discount.Delete)
	})

	r.Route("/visibility", func(r chi.Router) {
		r.Post("/categories", h.Visibility.HideCategory)
		r.Delete("/categories", h.Visibility.UnhideCategory)
		r.Post("/products", h.Visibility.HideProduct)
		r.Delete("/products", h.Visibility.UnhideProduct)
		r.Get("/dealer/{id}", h.Visibility.GetDealerVisibility)
		r.Put("/dealer/{id}", h.Visibility.ReplaceDealerVisibility)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Order.List)
		r.Get("/{id}", h.Order.Get)
		r.Put("/{id}", h.Order.UpdateStatus)
	})
}

func dealerRoutes(r chi.Router, h Handlers) {
	r.Get("/categories", h.Category.ListForDealer)

	r.Get("/products", h.Product.ListCatalog)
	r.Get("/products/{id}", h.Product.GetCatalogProduct)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart.Get)
		r.Post("/", h.Cart.Add)
		r.Put("/", h.Cart.Update)
		r.Delete("/{productId}", h.Cart.Remove)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Order.ListMine)
		r.Post("/", h.Order.Place)
		r.Get("/{id}", h.Order.GetMine)
	})
}
