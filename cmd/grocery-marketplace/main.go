package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tazecep/grocery-marketplace/internal/api/handlers"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	"github.com/tazecep/grocery-marketplace/internal/cache"
	"github.com/tazecep/grocery-marketplace/internal/config"
	"github.com/tazecep/grocery-marketplace/internal/health"
	"github.com/tazecep/grocery-marketplace/internal/metrics"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/telemetry"
	"github.com/tazecep/grocery-marketplace/pkg/sendgrid"
	"github.com/tazecep/grocery-marketplace/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTelemetry, err := telemetry.Setup(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Failed to connect to the database", slog.Any("error", err))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		}
	}()

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	stripeClient := stripe.NewClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailSender := sendgrid.NewEmailSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.ProductTTL)
	cartService := service.NewCartService(repos.Cart, productService)
	checkoutService := service.NewCheckoutService(cartService, productService)
	notificationService := service.NewNotificationService(repos.Notification, repos.User, emailSender)
	orderService := service.NewOrderService(repos.Order, cartService, checkoutService, productService, notificationService)
	vendorService := service.NewVendorService(repos.Vendor, repos.User, repos.Order, repos.Product, notificationService)
	paymentService := service.NewPaymentService(repos.Payment, repos.Order, stripeClient, cfg.Stripe.Currency)

	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	vendorHandler := handlers.NewVendorHandler(vendorService, userService)
	adminHandler := handlers.NewAdminHandler(vendorService, userService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	auth := authMiddleware.Authenticate
	vendorOnly := authMiddleware.RequireRole(models.RoleVendor)
	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Failed to initialize health checks", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Storage initialized", slog.String("env", cfg.Env))

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	mux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	mux.HandleFunc("GET /api/v1/products", productHandler.List())
	mux.HandleFunc("GET /api/v1/products/{id}", productHandler.Get())
	mux.HandleFunc("GET /api/v1/vendors", vendorHandler.List())
	mux.HandleFunc("GET /api/v1/vendors/nearby", vendorHandler.Nearby())
	mux.HandleFunc("GET /api/v1/vendors/{id}", vendorHandler.Get())
	mux.HandleFunc("GET /api/v1/catalog/coupons/{code}", checkoutHandler.CheckCoupon())
	mux.HandleFunc("GET /api/v1/catalog/gift-wraps", checkoutHandler.GiftWrapOptions())
	mux.HandleFunc("GET /api/v1/catalog/categories", checkoutHandler.Categories())
	mux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.Webhook())

	// Authenticated
	mux.HandleFunc("GET /api/v1/users/me", auth(userHandler.Profile()))
	mux.HandleFunc("GET /api/v1/cart", auth(cartHandler.Get()))
	mux.HandleFunc("POST /api/v1/cart/items", auth(cartHandler.AddItem()))
	mux.HandleFunc("PUT /api/v1/cart/items", auth(cartHandler.UpdateQuantity()))
	mux.HandleFunc("DELETE /api/v1/cart/items", auth(cartHandler.RemoveItem()))
	mux.HandleFunc("DELETE /api/v1/cart", auth(cartHandler.Clear()))
	mux.HandleFunc("GET /api/v1/checkout/quote", auth(checkoutHandler.Quote()))
	mux.HandleFunc("POST /api/v1/orders", auth(orderHandler.Create()))
	mux.HandleFunc("GET /api/v1/orders", auth(orderHandler.ListMine()))
	mux.HandleFunc("GET /api/v1/orders/{id}", auth(orderHandler.Get()))
	mux.HandleFunc("POST /api/v1/orders/{id}/cancel", auth(orderHandler.Cancel()))
	mux.HandleFunc("POST /api/v1/payments", auth(paymentHandler.Create()))
	mux.HandleFunc("GET /api/v1/payments", auth(paymentHandler.ListMine()))
	mux.HandleFunc("GET /api/v1/payments/{id}", auth(paymentHandler.Get()))
	mux.HandleFunc("GET /api/v1/notifications", auth(notificationHandler.ListMine()))
	mux.HandleFunc("POST /api/v1/vendors/apply", auth(vendorHandler.Apply()))

	// Vendor
	mux.HandleFunc("POST /api/v1/vendor/products", auth(vendorOnly(productHandler.Create())))
	mux.HandleFunc("PUT /api/v1/vendor/products/{id}", auth(vendorOnly(productHandler.Update())))
	mux.HandleFunc("DELETE /api/v1/vendor/products/{id}", auth(vendorOnly(productHandler.Delete())))
	mux.HandleFunc("GET /api/v1/vendor/products", auth(vendorOnly(productHandler.ListMine())))
	mux.HandleFunc("GET /api/v1/vendor/orders", auth(vendorOnly(orderHandler.ListForVendor())))
	mux.HandleFunc("PUT /api/v1/vendor/orders/{id}/status", auth(vendorOnly(orderHandler.UpdateStatus())))
	mux.HandleFunc("GET /api/v1/vendor/dashboard", auth(vendorOnly(vendorHandler.Dashboard())))

	// Admin
	mux.HandleFunc("GET /api/v1/admin/applications", auth(adminOnly(adminHandler.ListApplications())))
	mux.HandleFunc("GET /api/v1/admin/applications/{id}", auth(adminOnly(adminHandler.GetApplication())))
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/approve", auth(adminOnly(adminHandler.ApproveApplication())))
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/reject", auth(adminOnly(adminHandler.RejectApplication())))
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/request-documents", auth(adminOnly(adminHandler.RequestDocuments())))
	mux.HandleFunc("GET /api/v1/admin/vendors", auth(adminOnly(adminHandler.ListVendors())))
	mux.HandleFunc("PUT /api/v1/admin/vendors/{id}/status", auth(adminOnly(adminHandler.SetVendorStatus())))
	mux.HandleFunc("GET /api/v1/admin/users", auth(adminOnly(adminHandler.ListUsers())))
	mux.HandleFunc("GET /api/v1/admin/statistics", auth(adminOnly(adminHandler.Statistics())))

	// Operational
	mux.Handle("GET /health", healthHandler.Handler())
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "http.server")

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.Any("error", err))
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry shutdown encountered an issue", slog.Any("error", err))
	}

	slog.Info("Server shut down gracefully")
}
