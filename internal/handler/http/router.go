package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lojinha/api/pkg/health"
	"github.com/lojinha/api/pkg/middleware"

	"github.com/lojinha/api/internal/service"
)

// productListMaxAge is the Cache-Control max-age (seconds) for catalog reads.
const productListMaxAge = 60

// NewRouter creates a chi router with all routes registered. Cart and catalog
// writes sit behind bearer-token auth; registration, login, and catalog reads
// are open, mirroring the public storefront.
func NewRouter(
	cartService *service.CartService,
	productService *service.ProductService,
	userService *service.UserService,
	healthHandler *health.Handler,
	validateToken middleware.TokenValidator,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("lojinha-api"))
	r.Use(middleware.Tracing("lojinha-api"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cartService, logger)
	productHandler := NewProductHandler(productService, logger)
	userHandler := NewUserHandler(userService, logger)

	// Open routes: registration, login, and catalog reads.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestLogger(logger))

		r.Post("/adicionarUsuario", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.With(middleware.CacheControl(productListMaxAge)).Get("/produtos", productHandler.List)
	})

	// Authenticated routes: everything that reads or mutates carts, plus
	// catalog and account administration.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(validateToken))
		r.Use(middleware.RequestLogger(logger))

		r.Post("/adicionarItem", cartHandler.AddItem)
		r.Post("/removerItem", cartHandler.RemoveItem)
		r.Get("/carrinho", cartHandler.List)
		r.Get("/carrinho/{usuarioId}", cartHandler.List)
		r.Delete("/carrinho/{usuarioId}", cartHandler.RemoveCart)

		r.Post("/produtos", productHandler.Create)
		r.Get("/usuarios", userHandler.List)
	})

	return r
}
