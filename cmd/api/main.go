package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/procurechef/procurechef-backend/api/routes"
	"github.com/procurechef/procurechef-backend/internal/auth"
	"github.com/procurechef/procurechef-backend/internal/inventory"
	"github.com/procurechef/procurechef-backend/internal/notifications"
	"github.com/procurechef/procurechef-backend/internal/orders"
	"github.com/procurechef/procurechef-backend/internal/quotes"
	"github.com/procurechef/procurechef-backend/internal/requests"
	"github.com/procurechef/procurechef-backend/internal/suppliers"
	"github.com/procurechef/procurechef-backend/internal/users"
	"github.com/procurechef/procurechef-backend/pkg/auth/session"
	"github.com/procurechef/procurechef-backend/pkg/config"
	"github.com/procurechef/procurechef-backend/pkg/db"
	"github.com/procurechef/procurechef-backend/pkg/logger"
	"github.com/procurechef/procurechef-backend/pkg/migrate"
	"github.com/procurechef/procurechef-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gdb := dbClient.DB()
	productRepo := inventory.NewRepository(gdb)
	supplierRepo := suppliers.NewRepository(gdb)
	requestRepo := requests.NewRepository(gdb)
	quoteRepo := quotes.NewRepository(gdb)
	orderRepo := orders.NewRepository(gdb)
	notificationRepo := notifications.NewRepository(gdb)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gdb),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notificationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	supplierService, err := suppliers.NewService(supplierRepo, orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	requestService, err := requests.NewService(requests.ServiceParams{
		Repo:          requestRepo,
		Products:      productRepo,
		Notifications: notificationService,
		NumberPrefix:  cfg.Procurement.RequestNumberPrefix,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create request service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Repo:          quoteRepo,
		Requests:      requestRepo,
		Suppliers:     supplierRepo,
		Products:      productRepo,
		Notifications: notificationService,
		ValidityDays:  cfg.Procurement.QuoteValidityDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:          orderRepo,
		Comparisons:   quoteService,
		Requests:      requestRepo,
		Notifications: notificationService,
		NumberPrefix:  cfg.Procurement.OrderNumberPrefix,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, sessionManager, routes.Services{
			Auth:          authService,
			Inventory:     inventoryService,
			Suppliers:     supplierService,
			Requests:      requestService,
			Quotes:        quoteService,
			Orders:        orderService,
			Notifications: notificationService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
