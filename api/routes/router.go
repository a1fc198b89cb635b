package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/procurechef/procurechef-backend/api/controllers"
	"github.com/procurechef/procurechef-backend/api/middleware"
	"github.com/procurechef/procurechef-backend/internal/auth"
	"github.com/procurechef/procurechef-backend/internal/inventory"
	"github.com/procurechef/procurechef-backend/internal/notifications"
	"github.com/procurechef/procurechef-backend/internal/orders"
	"github.com/procurechef/procurechef-backend/internal/quotes"
	"github.com/procurechef/procurechef-backend/internal/requests"
	"github.com/procurechef/procurechef-backend/internal/suppliers"
	"github.com/procurechef/procurechef-backend/pkg/auth/session"
	"github.com/procurechef/procurechef-backend/pkg/config"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	"github.com/procurechef/procurechef-backend/pkg/logger"
	"github.com/procurechef/procurechef-backend/pkg/redis"
)

type sessionVerifier interface {
	session.AccessSessionChecker
}

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth          auth.Service
	Inventory     inventory.Service
	Suppliers     suppliers.Service
	Requests      requests.Service
	Quotes        quotes.Service
	Orders        orders.Service
	Notifications notifications.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessions sessionVerifier,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// A nil client must yield nil interfaces so the middlewares disable
	// themselves instead of calling through a typed nil.
	var idemStore redis.IdempotencyStore
	var rateStore redis.RateLimiterStore
	if redisClient != nil {
		idemStore = redisClient
		rateStore = redisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		adminOnly := middleware.RequireRole(string(enums.MemberRoleAdmin), logg)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Inventory, logg))
			r.Post("/", controllers.CreateProduct(svcs.Inventory, logg))
			r.Get("/low-stock", controllers.ListLowStockProducts(svcs.Inventory, logg))
			r.Get("/{id}", controllers.GetProduct(svcs.Inventory, logg))
			r.Put("/{id}", controllers.UpdateProduct(svcs.Inventory, logg))
			r.Post("/{id}/adjust-stock", controllers.AdjustStock(svcs.Inventory, logg))
			r.Get("/{id}/movements", controllers.ListStockMovements(svcs.Inventory, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(svcs.Suppliers, logg))
			r.Post("/", controllers.CreateSupplier(svcs.Suppliers, logg))
			r.Get("/{id}", controllers.GetSupplier(svcs.Suppliers, logg))
			r.Put("/{id}", controllers.UpdateSupplier(svcs.Suppliers, logg))
			r.With(adminOnly).Post("/{id}/deactivate", controllers.DeactivateSupplier(svcs.Suppliers, logg))
			r.With(adminOnly).Post("/{id}/reactivate", controllers.ReactivateSupplier(svcs.Suppliers, logg))
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", controllers.ListRequests(svcs.Requests, logg))
			r.Post("/", controllers.CreateRequest(svcs.Requests, logg))
			r.Get("/{id}", controllers.GetRequest(svcs.Requests, logg))
			r.Put("/{id}", controllers.UpdateRequest(svcs.Requests, logg))
			r.Post("/{id}/submit", controllers.SubmitRequest(svcs.Requests, logg))
			r.With(adminOnly).Post("/{id}/approve", controllers.ApproveRequest(svcs.Requests, logg))
			r.With(adminOnly).Post("/{id}/reject", controllers.RejectRequest(svcs.Requests, logg))
			r.Post("/{id}/cancel", controllers.CancelRequest(svcs.Requests, logg))
			r.Post("/{id}/quotes", controllers.RecordQuote(svcs.Quotes, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.ListQuotes(svcs.Quotes, logg))
			r.Get("/{id}", controllers.GetQuote(svcs.Quotes, logg))
			r.With(adminOnly).Post("/{id}/approve", controllers.ApproveQuote(svcs.Quotes, logg))
			r.With(adminOnly).Post("/{id}/reject", controllers.RejectQuote(svcs.Quotes, logg))
		})

		r.Get("/comparison", controllers.CompareQuotes(svcs.Quotes, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Post("/generate", controllers.GenerateOrders(svcs.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(svcs.Orders, logg))
			r.Get("/{id}/pdf", controllers.OrderPDF(svcs.Orders, logg))
			r.Post("/{id}/send", controllers.SendOrder(svcs.Orders, logg))
			r.With(adminOnly).Post("/{id}/confirm", controllers.ConfirmOrder(svcs.Orders, logg))
			r.Post("/{id}/cancel", controllers.CancelOrder(svcs.Orders, logg))
			r.Post("/{id}/receive", controllers.ReceiveOrder(svcs.Orders, logg))
		})

		r.Route("/exports", func(r chi.Router) {
			r.Get("/comparison.xlsx", controllers.ExportComparisonXLSX(svcs.Quotes, logg))
			r.Get("/inventory.xlsx", controllers.ExportInventoryXLSX(svcs.Inventory, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{id}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})
	})

	return r
}
