package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fulfillmentapp "github.com/erp/sellerops/internal/application/fulfillment"
	integrationapp "github.com/erp/sellerops/internal/application/integration"
	"github.com/erp/sellerops/internal/infrastructure/cache"
	"github.com/erp/sellerops/internal/infrastructure/config"
	"github.com/erp/sellerops/internal/infrastructure/ecommerce"
	"github.com/erp/sellerops/internal/infrastructure/logger"
	"github.com/erp/sellerops/internal/infrastructure/migration"
	"github.com/erp/sellerops/internal/infrastructure/persistence"
	"github.com/erp/sellerops/internal/infrastructure/printing"
	"github.com/erp/sellerops/internal/infrastructure/scheduler"
	"github.com/erp/sellerops/internal/infrastructure/storage"
	"github.com/erp/sellerops/internal/infrastructure/telemetry"
	"github.com/erp/sellerops/internal/interfaces/http/handler"
	"github.com/erp/sellerops/internal/interfaces/http/middleware"
	"github.com/erp/sellerops/internal/interfaces/http/router"

	_ "github.com/erp/sellerops/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			SellerOps API
//	@version		1.0
//	@description	Marketplace seller operations: order ingestion, route suggestions, picking routes and shipping labels.

//	@contact.name	SellerOps Team

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry: traces, metrics, OTEL logs and continuous profiling
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := telemetry.BridgeLogger(baseLog, providers.Logs, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			baseLog.Error("Error shutting down telemetry", zap.Error(err))
		}
		_ = logger.Sync(log)
	}()

	log.Info("Starting sellerops",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging and query tracing
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSQL(cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.DBTracing(cfg.Telemetry, cfg.Database.Driver, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if err := migrateSchema(db, cfg.Database.Driver, log); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	routeRepo := persistence.NewGormRouteRepository(db.DB)

	// Marketplace client
	mpConfig := ecommerce.NewMarketplaceConfig(cfg.Marketplace.BaseURL)
	if cfg.Marketplace.TimeoutSeconds > 0 {
		mpConfig.TimeoutSeconds = cfg.Marketplace.TimeoutSeconds
	}
	if cfg.Marketplace.UserAgentSuffix != "" {
		mpConfig.UserAgentSuffix = cfg.Marketplace.UserAgentSuffix
	}
	marketplace, err := ecommerce.NewMarketplaceClient(mpConfig, ecommerce.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create marketplace client", zap.Error(err))
	}

	// Sync lock: in-process or redis lease shared across instances
	syncLock, err := cache.NewSyncLockFactory(cfg.Sync, cfg.Redis, cache.WithLogger(log)).CreateLock(ctx)
	if err != nil {
		log.Fatal("Failed to create sync lock", zap.Error(err))
	}
	redisLock, usesRedis := syncLock.(*cache.RedisSyncLock)
	if usesRedis {
		defer func() { _ = redisLock.Close() }()
	}

	// Order ingestion and sync coordination
	ingestion := integrationapp.NewOrderIngestionService(storeRepo, orderRepo, productRepo, marketplace,
		integrationapp.OrderIngestionConfig{
			PageSize:     cfg.Sync.PageSize,
			RemoteStatus: cfg.Sync.RemoteStatus,
		}, log)
	syncMetrics, err := telemetry.NewSyncMetricsFromProvider(providers.Meter)
	if err != nil {
		log.Fatal("Failed to register sync metrics", zap.Error(err))
	}
	ingestion.SetRecorder(syncMetrics)
	coordinator := integrationapp.NewSyncCoordinator(ingestion, syncLock, log)
	inbox := integrationapp.NewStoreInboxService(storeRepo, marketplace, log)

	// Label printing
	labelStorage, err := newLabelStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize label storage", zap.Error(err))
	}
	if c, ok := labelStorage.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Labels.RenderTimeout,
		RemoteURL:      cfg.Labels.ChromeRemoteURL,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() { _ = renderer.Close() }()
	paperSize, _ := printing.ParsePaperSize(cfg.Labels.PaperSize)
	labelPrinter := printing.NewRouteLabelPrinter(printing.NewLabelTemplate(), renderer, labelStorage, paperSize, log)

	// Fulfillment services
	routeService := fulfillmentapp.NewRouteService(routeRepo, orderRepo, labelPrinter, log)
	suggestionService := fulfillmentapp.NewSuggestionService(orderRepo)

	// Scheduled sync
	var trigger *scheduler.OrderSyncTrigger
	if cfg.Sync.AutoEnabled {
		triggerCfg := scheduler.DefaultOrderSyncTriggerConfig()
		triggerCfg.Interval = cfg.Sync.Interval
		triggerCfg.RunTimeout = cfg.Sync.LockTTL
		trigger, err = scheduler.NewOrderSyncTrigger(triggerCfg, coordinator, log)
		if err != nil {
			log.Fatal("Failed to create sync trigger", zap.Error(err))
		}
		if err := trigger.Start(ctx); err != nil {
			log.Fatal("Failed to start sync trigger", zap.Error(err))
		}
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	skipPaths := []string{"/health"}
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     providers.Tracer.IsEnabled(),
			SkipPaths:   skipPaths,
		}),
		logger.GinMiddleware(log, skipPaths...),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(providers.Meter),
		middleware.ProfilingWithConfig(middleware.ProfilingConfig{
			Enabled:   providers.Profiler.IsEnabled(),
			SkipPaths: skipPaths,
		}),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	// Health check lives outside the versioned API
	health := handler.NewHealthHandler().AddCheck("database", db.Ping)
	if usesRedis {
		health.AddCheck("redis", redisLock.Ping)
	}
	engine.GET("/health", health.Check)

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.HTTP.SwaggerEnabled,
			AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithMiddleware(
		middleware.TracingAttributeInjector(),
		middleware.Timeout(cfg.HTTP.RequestTimeout),
	))

	var syncLimiter *middleware.RateLimiter
	if cfg.HTTP.SyncRateLimit > 0 {
		syncLimiter = middleware.NewRateLimiter(cfg.HTTP.SyncRateLimit, cfg.HTTP.SyncRateWindow)
		go syncLimiter.Run(ctx)
	}

	// Sync domain
	syncHandler := handler.NewSyncHandler(coordinator)
	syncRoutes := router.NewDomainGroup("sync", "/sync")
	syncRoutes.GET("/status", syncHandler.Status)
	syncRoutes.POST("/stores", middleware.RateLimit(syncLimiter), syncHandler.SyncAllStores)
	syncRoutes.POST("/stores/:storeId", middleware.RateLimit(syncLimiter), syncHandler.SyncStore)

	// Stores and marketplace inbox
	storeHandler := handler.NewStoreHandler(inbox)
	storeRoutes := router.NewDomainGroup("stores", "/stores")
	storeRoutes.GET("", storeHandler.List)
	storeRoutes.GET("/:storeId/claims", storeHandler.ListClaims)
	storeRoutes.GET("/:storeId/questions", storeHandler.ListQuestions)
	storeRoutes.POST("/:storeId/questions/:questionId/answer", storeHandler.AnswerQuestion)

	// Fulfillment domain: suggestions, manual filter and route lifecycle
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	routeHandler := handler.NewRouteHandler(routeService)
	routeRoutes := router.NewDomainGroup("routes", "/routes")
	routeRoutes.GET("/suggestions", suggestionHandler.SuggestRoutes)
	routeRoutes.POST("", routeHandler.Create)
	routeRoutes.GET("", routeHandler.List)
	routeRoutes.GET("/:id", routeHandler.Get)
	routeRoutes.POST("/:id/ready", routeHandler.MarkReady)
	routeRoutes.POST("/:id/finalize", routeHandler.Finalize)
	routeRoutes.POST("/:id/cancel", routeHandler.Cancel)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("/batchable", suggestionHandler.FilterOrders)

	// Label PDFs
	labelHandler := handler.NewLabelHandler(labelStorage)
	labelRoutes := router.NewDomainGroup("labels", "/labels")
	labelRoutes.GET("/:year/:month/:filename", labelHandler.ServePDF)

	// System
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, r.Routes)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(syncRoutes).
		Register(storeRoutes).
		Register(routeRoutes).
		Register(orderRoutes).
		Register(labelRoutes).
		Register(systemRoutes)
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if trigger != nil {
		if err := trigger.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping sync trigger", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the SQL migrations on postgres and AutoMigrate elsewhere
func migrateSchema(db *persistence.Database, driver string, log *zap.Logger) error {
	if driver != "postgres" {
		return db.AutoMigrate()
	}
	pool, err := db.SQL()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(pool, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// newLabelStorage builds the configured label store. Object keys carry no
// prefix so the labels endpoint serves both backends the same way.
func newLabelStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (printing.LabelStorage, error) {
	if cfg.Labels.Storage != "s3" {
		return printing.NewFileSystemStorage(&printing.FileSystemStorageConfig{
			BasePath: cfg.Labels.BasePath,
			BaseURL:  cfg.Labels.BaseURL,
			Logger:   log,
		})
	}

	s3Storage, err := storage.NewS3LabelStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		storage.WithKeyPrefix(""),
	)
	if err != nil {
		return nil, err
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s3Storage, nil
}
