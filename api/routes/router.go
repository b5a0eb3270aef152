package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eight22lax/stringshop-backend/api/controllers"
	webhookcontrollers "github.com/eight22lax/stringshop-backend/api/controllers/webhooks"
	"github.com/eight22lax/stringshop-backend/api/middleware"
	checkoutsvc "github.com/eight22lax/stringshop-backend/internal/checkout"
	"github.com/eight22lax/stringshop-backend/internal/inventory"
	"github.com/eight22lax/stringshop-backend/internal/orders"
	stripewebhook "github.com/eight22lax/stringshop-backend/internal/webhooks/stripe"
	"github.com/eight22lax/stringshop-backend/pkg/config"
	"github.com/eight22lax/stringshop-backend/pkg/db"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
	"github.com/eight22lax/stringshop-backend/pkg/metrics"
	"github.com/eight22lax/stringshop-backend/pkg/redis"
	"github.com/eight22lax/stringshop-backend/pkg/stripe"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	inventoryService inventory.Service,
	ordersService orders.Service,
	checkoutService checkoutsvc.Service,
	stripeClient *stripe.Client,
	stripeWebhookService *stripewebhook.Service,
	stripeWebhookGuard *stripewebhook.IdempotencyGuard,
) http.Handler {
	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(stripeWebhookService, stripeClient, stripeWebhookGuard, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/storefront", controllers.Storefront(inventoryService, logg))
		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/orders/{pickupCode}", func(r chi.Router) {
			r.Get("/", controllers.OrderStatus(ordersService, logg))
			r.Post("/drop-off", controllers.ConfirmDropOff(ordersService, logg))
			r.Post("/pickup", controllers.ConfirmPickup(ordersService, logg))
			r.Post("/review", controllers.ConfirmReview(ordersService, cfg.Checkout.ReviewURL, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(cfg.Admin, logg))
		r.Get("/ping", controllers.AdminPing())

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(ordersService, logg))
			if !cfg.App.IsProd() {
				r.Post("/test", controllers.AdminCreateTestOrder(checkoutService, logg))
			}
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderDetail(ordersService, logg))
				r.Post("/status", controllers.AdminSetOrderStatus(ordersService, logg))
				r.Post("/step-forward", controllers.AdminStepOrderForward(ordersService, logg))
				r.Post("/step-back", controllers.AdminStepOrderBack(ordersService, logg))
				r.Delete("/", controllers.AdminArchiveOrder(ordersService, logg))
			})
		})

		r.Route("/v1/inventory", func(r chi.Router) {
			r.Get("/", controllers.AdminInventoryList(inventoryService, logg))
			r.Post("/sync", controllers.AdminSyncInventory(inventoryService, logg))
			r.Patch("/{priceId}/stock", controllers.AdminSetInventoryStock(inventoryService, logg))
		})
	})

	return r
}
