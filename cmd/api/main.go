package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pasarlink/pasar-api/internal/cache"
	"github.com/pasarlink/pasar-api/internal/config"
	"github.com/pasarlink/pasar-api/internal/database"
	"github.com/pasarlink/pasar-api/internal/handler"
	"github.com/pasarlink/pasar-api/internal/middleware"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/service"
	"github.com/pasarlink/pasar-api/internal/sse"
	"github.com/pasarlink/pasar-api/internal/utils"
	"github.com/pasarlink/pasar-api/internal/worker"
	"github.com/pasarlink/pasar-api/pkg/courier"
	"github.com/pasarlink/pasar-api/pkg/gateway"
	"github.com/pasarlink/pasar-api/pkg/mailer"
	"github.com/pasarlink/pasar-api/pkg/telegram"
)

// main is the application entrypoint for the PasarLink storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting pasar api")

	// 3. Init token signing
	utils.InitJWT(cfg.JWTSecret)

	// 4. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 4a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	cartCache := cache.NewCartCache(redisClient)

	// 5. External clients
	billClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.CollectionID, cfg.Gateway.SignatureKey)
	courierClient := courier.NewClient(cfg.Courier.BaseURL, cfg.Courier.APIKey)
	telegramClient := telegram.NewClient(cfg.Telegram.BotToken)
	smtpMailer := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)

	// 6. Repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	pageRepo := repository.NewPageRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// 7. SSE hub
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 8. Services
	authSvc := service.NewAuthService(userRepo)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo, settingsRepo)
	cartSvc := service.NewCartService(cartCache, productRepo, settingsRepo)
	notifySvc := service.NewNotificationService(notificationRepo, smtpMailer, telegramClient, cfg.Telegram.AdminChatID)
	checkoutSvc := service.NewCheckoutService(
		orderRepo, productRepo, userRepo, settingsRepo, cartSvc,
		billClient, notifySvc, notifier,
		cfg.Gateway.CallbackURL, cfg.Gateway.RedirectURL,
	)
	membershipSvc := service.NewMembershipService(userRepo, settingsRepo)
	cmsSvc := service.NewCMSService(pageRepo, faqRepo)
	shippingSvc := service.NewShippingService(
		shipmentRepo, orderRepo, courierClient, notifySvc, notifier,
		cfg.Courier.PickupPostcode, cfg.Courier.WebhookSecret,
	)
	chatSvc := service.NewChatService(chatRepo, notifySvc, notifier)

	// 9. Handlers
	loginLimiter := middleware.NewLoginRateLimiter()
	handlers := &Handlers{
		Health:        handler.NewHealthHandler(db, redisClient),
		Auth:          handler.NewAuthHandler(authSvc, cartSvc, loginLimiter),
		Catalog:       handler.NewCatalogHandler(catalogSvc, authSvc),
		Cart:          handler.NewCartHandler(cartSvc, authSvc),
		Checkout:      handler.NewCheckoutHandler(checkoutSvc, cartSvc, shippingSvc, authSvc),
		Membership:    handler.NewMembershipHandler(membershipSvc),
		CMS:           handler.NewCMSHandler(cmsSvc),
		Chat:          handler.NewChatHandler(chatSvc, hub),
		Webhook:       handler.NewWebhookHandler(checkoutSvc, shippingSvc),
		SSE:           handler.NewSSEHandler(hub),
		AdminAuth:     handler.NewAdminAuthHandler(adminAuthSvc, loginLimiter),
		AdminCatalog:  handler.NewAdminCatalogHandler(catalogSvc),
		AdminOrder:    handler.NewAdminOrderHandler(checkoutSvc, shippingSvc),
		AdminCMS:      handler.NewAdminCMSHandler(cmsSvc),
		AdminSettings: handler.NewAdminSettingsHandler(membershipSvc),
		AdminChat:     handler.NewAdminChatHandler(chatSvc),
	}

	// 10. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 11. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 12. Start workers
	go worker.NewNotificationWorker(notifySvc, cfg.Worker.NotifyInterval).Start(ctx)
	go worker.NewShipmentWorker(shippingSvc, cfg.Worker.ShipmentInterval, cfg.Worker.ShipmentStaleAfter).Start(ctx)
	go worker.NewOrderExpiryWorker(checkoutSvc, cfg.Worker.OrderExpiryInterval, cfg.Worker.OrderExpiryAfter).Start(ctx)

	// 13. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 15. Cancel context to stop workers
	cancel()

	// 16. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Catalog       *handler.CatalogHandler
	Cart          *handler.CartHandler
	Checkout      *handler.CheckoutHandler
	Membership    *handler.MembershipHandler
	CMS           *handler.CMSHandler
	Chat          *handler.ChatHandler
	Webhook       *handler.WebhookHandler
	SSE           *handler.SSEHandler
	AdminAuth     *handler.AdminAuthHandler
	AdminCatalog  *handler.AdminCatalogHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminCMS      *handler.AdminCMSHandler
	AdminSettings *handler.AdminSettingsHandler
	AdminChat     *handler.AdminChatHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	// External callbacks (authenticated by signature, not session)
	router.POST("/v1/webhooks/payment", handlers.Webhook.PaymentCallback)
	router.POST("/v1/webhooks/courier", handlers.Webhook.CourierCallback)

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", middleware.OptionalCustomer(), handlers.Auth.Login)
		auth.GET("/me", middleware.RequireCustomer(), handlers.Auth.Me)
	}

	// Public storefront (guest or logged-in; membership pricing applies
	// automatically when a valid customer token is present)
	store := router.Group("/v1")
	store.Use(middleware.OptionalCustomer())
	{
		store.GET("/products", handlers.Catalog.GetProducts)
		store.GET("/products/:slug", handlers.Catalog.GetProduct)
		store.GET("/categories", handlers.Catalog.GetCategories)

		store.GET("/cart", handlers.Cart.GetCart)
		store.POST("/cart/items", handlers.Cart.AddItem)
		store.PUT("/cart/items/:productId", handlers.Cart.UpdateItem)
		store.DELETE("/cart/items/:productId", handlers.Cart.RemoveItem)
		store.DELETE("/cart", handlers.Cart.Clear)

		store.POST("/checkout/rates", handlers.Checkout.GetShippingRates)
		store.POST("/checkout", handlers.Checkout.Checkout)
		store.GET("/orders/:orderNo", handlers.Checkout.GetOrder)
		store.GET("/orders/:orderNo/tracking", handlers.Checkout.GetTracking)

		store.GET("/pages/:slug", handlers.CMS.GetPage)
		store.GET("/faqs", handlers.CMS.GetFAQs)

		store.POST("/chat", handlers.Chat.Start)
		store.POST("/chat/:conversationId/messages", handlers.Chat.PostMessage)
		store.GET("/chat/:conversationId/messages", handlers.Chat.GetMessages)
		store.GET("/chat/:conversationId/stream", handlers.Chat.Stream)
	}

	// Customer-only
	customer := router.Group("/v1")
	customer.Use(middleware.RequireCustomer())
	{
		customer.GET("/orders", handlers.Checkout.ListMyOrders)
		customer.GET("/membership/status", handlers.Membership.GetStatus)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.AdminAuth.Login)
	admin.GET("/sse", handlers.SSE.Stream) // token via query param
	admin.Use(middleware.RequireAdmin())
	{
		// Product management
		admin.GET("/products", handlers.AdminCatalog.GetProducts)
		admin.POST("/products", handlers.AdminCatalog.CreateProduct)
		admin.GET("/products/:id", handlers.AdminCatalog.GetProduct)
		admin.PUT("/products/:id", handlers.AdminCatalog.UpdateProduct)
		admin.PATCH("/products/:id/status", handlers.AdminCatalog.SetProductStatus)
		admin.DELETE("/products/:id", handlers.AdminCatalog.DeleteProduct)

		// Category management
		admin.GET("/categories", handlers.AdminCatalog.GetCategories)
		admin.POST("/categories", handlers.AdminCatalog.CreateCategory)
		admin.PUT("/categories/:id", handlers.AdminCatalog.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.AdminCatalog.DeleteCategory)

		// Order management
		admin.GET("/orders", handlers.AdminOrder.GetOrders)
		admin.GET("/orders/stats", handlers.AdminOrder.GetStats)
		admin.GET("/orders/:orderNo", handlers.AdminOrder.GetOrder)
		admin.POST("/orders/:orderNo/shipment", handlers.AdminOrder.BookShipment)

		// Content management
		admin.GET("/pages", handlers.AdminCMS.GetPages)
		admin.POST("/pages", handlers.AdminCMS.CreatePage)
		admin.GET("/pages/:id", handlers.AdminCMS.GetPage)
		admin.PUT("/pages/:id", handlers.AdminCMS.UpdatePage)
		admin.DELETE("/pages/:id", handlers.AdminCMS.DeletePage)
		admin.GET("/faqs", handlers.AdminCMS.GetFAQs)
		admin.POST("/faqs", handlers.AdminCMS.CreateFAQ)
		admin.PUT("/faqs/:id", handlers.AdminCMS.UpdateFAQ)
		admin.DELETE("/faqs/:id", handlers.AdminCMS.DeleteFAQ)

		// Settings
		admin.GET("/settings", handlers.AdminSettings.GetSettings)
		admin.PUT("/settings/membership", handlers.AdminSettings.UpdateMembershipSettings)
		admin.PUT("/settings/receipt", handlers.AdminSettings.UpdateReceiptFooter)

		// Support chat
		admin.GET("/chat", handlers.AdminChat.GetInbox)
		admin.GET("/chat/:conversationId", handlers.AdminChat.GetConversation)
		admin.POST("/chat/:conversationId/messages", handlers.AdminChat.Reply)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
