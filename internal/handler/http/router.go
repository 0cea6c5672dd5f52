package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/catalog"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/session"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/health"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/middleware"
)

// ServiceName labels metrics and spans emitted by the HTTP layer.
const ServiceName = "storefront"

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Sessions       *session.Factory
	Catalog        catalog.Lookup
	Bus            *broadcast.Bus
	Health         *health.Handler
	Logger         *slog.Logger
	CORS           middleware.CORSConfig
	PprofCIDRs     []string
	SecureCookie   bool
	RequestTimeout time.Duration
	Heartbeat      time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	logger := cfg.Logger

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(ServiceName))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	cartHandler := NewCartHandler(cfg.Sessions, cfg.Catalog, logger)
	wishlistHandler := NewWishlistHandler(cfg.Sessions, cfg.Catalog, logger)
	membershipHandler := NewMembershipHandler(cfg.Sessions, logger)
	eventsHandler := NewEventsHandler(cfg.Sessions, cfg.Bus, cfg.Heartbeat, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ShopperIdentity(cfg.SecureCookie))

		// The event stream is long-lived and must not be buffered or cut off.
		r.Get("/events", eventsHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(chimw.Timeout(cfg.RequestTimeout))
			r.Use(ContentTypeJSON)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)

				r.Post("/items", cartHandler.AddItem)
				r.Get("/items/{productId}", cartHandler.GetItem)
				r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)
				r.Delete("/", wishlistHandler.ClearWishlist)

				r.Post("/items", wishlistHandler.AddItem)
				r.Post("/toggle", wishlistHandler.Toggle)
				r.Get("/items/{productId}", wishlistHandler.GetItem)
				r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
			})

			r.Get("/membership", membershipHandler.GetMembership)
			r.Get("/delivery-location", membershipHandler.GetDeliveryLocation)
		})
	})

	return r
}
