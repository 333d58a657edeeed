package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	campapp "github.com/camphq/backend/internal/application/camp"
	identityapp "github.com/camphq/backend/internal/application/identity"
	registrationapp "github.com/camphq/backend/internal/application/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/auth"
	"github.com/camphq/backend/internal/infrastructure/cache"
	"github.com/camphq/backend/internal/infrastructure/config"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/camphq/backend/internal/infrastructure/payment"
	"github.com/camphq/backend/internal/infrastructure/persistence"
	"github.com/camphq/backend/internal/interfaces/http/handler"
	"github.com/camphq/backend/internal/interfaces/http/middleware"
	"github.com/camphq/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			CampHQ Backend API
//	@version		1.0
//	@description	Youth sports camp registration platform - camps, checkout, and payments

//	@contact.name	API Support
//	@contact.email	support@camphq.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CampHQ Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	campRepo := persistence.NewGormCampRepository(db.DB)
	addonRepo := persistence.NewGormAddonRepository(db.DB)
	promoRepo := persistence.NewGormPromoCodeRepository(db.DB)
	registrationRepo := persistence.NewGormRegistrationRepository(db.DB)
	pickupRepo := persistence.NewGormAuthorizedPickupRepository(db.DB)
	txManager := persistence.NewGormTxManager(db)

	// Stripe gateway for hosted checkout sessions and webhook verification
	stripeGateway, err := payment.NewStripeGateway(cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize Stripe gateway", zap.Error(err))
	}

	// Idempotency store: Redis when reachable, in-memory otherwise
	idemFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idemStore, err := idemFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idemStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	tenantService := identityapp.NewTenantService(tenantRepo, campRepo)
	campService := campapp.NewCampService(campRepo, addonRepo, promoRepo)
	registrationService := registrationapp.NewRegistrationService(registrationRepo)

	checkoutCfg := registrationapp.DefaultCheckoutConfig()
	checkoutCfg.SessionTimeout = cfg.Checkout.SessionTimeout
	checkoutService := registrationapp.NewCheckoutService(
		campRepo,
		addonRepo,
		promoRepo,
		registrationRepo,
		tenantService,
		txManager,
		stripeGateway,
		idemStore,
		shared.IdempotencyConfig{TTL: cfg.Checkout.IdempotencyTTL, Enabled: true},
		checkoutCfg,
	)

	// Initialize HTTP handlers
	campHandler := handler.NewCampHandler(campService)
	catalogHandler := handler.NewCatalogHandler(campService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	partyHandler := handler.NewPartyHandler(pickupRepo)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	webhookHandler := handler.NewStripeWebhookHandler(stripeGateway, registrationService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Stripe webhook endpoint (no authentication; verified by signature)
	webhookGroup := engine.Group("/api/v1/webhooks")
	webhookGroup.POST("/stripe", webhookHandler.HandleStripeWebhook)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Public storefront endpoints are skipped; checkout carries its own
	// optional-auth middleware so guests can register
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/camps",
			"/api/v1/checkout",
			"/api/v1/webhooks",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Public storefront: camp discovery and checkout
	campRoutes := router.NewDomainGroup("camps", "/camps")
	campRoutes.GET("", campHandler.ListPublishedCamps)
	campRoutes.GET("/:slug", campHandler.GetCampBySlug)

	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	checkoutRoutes.POST("", checkoutHandler.Checkout)

	// Admin: camp and catalog management
	adminRoutes := router.NewDomainGroup("admin", "/admin")

	adminRoutes.POST("/camps", campHandler.CreateCamp)
	adminRoutes.GET("/camps", campHandler.ListTenantCamps)
	adminRoutes.PUT("/camps/:id", campHandler.UpdateCamp)
	adminRoutes.POST("/camps/:id/publish", campHandler.PublishCamp)
	adminRoutes.POST("/camps/:id/archive", campHandler.ArchiveCamp)

	adminRoutes.POST("/addons", catalogHandler.CreateAddon)
	adminRoutes.GET("/addons", catalogHandler.ListAddons)
	adminRoutes.PUT("/addons/:id", catalogHandler.UpdateAddon)
	adminRoutes.DELETE("/addons/:id", catalogHandler.DeactivateAddon)

	adminRoutes.POST("/promo-codes", catalogHandler.CreatePromoCode)
	adminRoutes.GET("/promo-codes", catalogHandler.ListPromoCodes)
	adminRoutes.POST("/promo-codes/validate", catalogHandler.ValidatePromoCode)
	adminRoutes.DELETE("/promo-codes/:id", catalogHandler.DeactivatePromoCode)

	// Admin: registration management
	adminRoutes.GET("/registrations", registrationHandler.ListRegistrations)
	adminRoutes.GET("/registrations/:id", registrationHandler.GetRegistration)
	adminRoutes.POST("/registrations/:id/cancel", registrationHandler.CancelRegistration)

	adminRoutes.GET("/athletes/:id/pickups", partyHandler.ListAthletePickups)
	adminRoutes.DELETE("/pickups/:id", partyHandler.DeactivatePickup)

	// Admin: tenant management
	adminRoutes.POST("/tenants", tenantHandler.CreateTenant)
	adminRoutes.GET("/tenants", tenantHandler.ListTenants)
	adminRoutes.GET("/tenants/:id", tenantHandler.GetTenant)
	adminRoutes.PUT("/tenants/:id", tenantHandler.UpdateTenant)
	adminRoutes.PUT("/tenants/:id/tax-rate", tenantHandler.SetTenantTaxRate)
	adminRoutes.PUT("/tenants/:id/status", tenantHandler.SetTenantStatus)
	adminRoutes.POST("/tenants/:id/default", tenantHandler.MarkTenantDefault)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(campRoutes).
		Register(checkoutRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
