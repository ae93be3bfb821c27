package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/view"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	products *catalog.Catalog,
	store *cart.Store,
	presenter *view.Presenter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	pingers := map[string]controllers.Pinger{}
	if dbP != nil {
		pingers["db"] = dbP
	}
	var idempotencyStore middleware.IdempotencyStore
	if redisClient != nil {
		pingers["redis"] = redisClient
		idempotencyStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pingers, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(presenter, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg))

			r.Get("/", controllers.CartFetch(presenter, logg))
			r.Post("/toggle", controllers.CartToggle(store, presenter, logg))
			r.Post("/items", controllers.CartAddItem(store, products, presenter, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(store, presenter, logg))
			r.Post("/items/{lineId}/increment", controllers.CartIncrement(store, presenter, logg))
			r.Post("/items/{lineId}/decrement", controllers.CartDecrement(store, presenter, logg))
			r.Delete("/products/{productId}", controllers.CartRemoveProduct(store, presenter, logg))
		})
	})

	return r
}
