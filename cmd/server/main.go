package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
	merchandisingapp "github.com/shopadmin/backend/internal/application/merchandising"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/event"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/infrastructure/migration"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
	"github.com/shopadmin/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Warn("Error shutting down logger provider", zap.Error(err))
		}
	}()
	log = lp.Bridge(log, cfg.Telemetry.ServiceName)

	log.Info("Starting shop admin backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Warn("Error shutting down meter provider", zap.Error(err))
		}
	}()
	homepageMetrics, err := telemetry.NewHomepageMetrics(mp.Meter("shop.homepage"))
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database, log.Named("gorm"), logger.GormLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := db.Use(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         tp.Enabled() && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Database.SlowQueryThresh,
	}, log)); err != nil {
		return err
	}

	// Postgres schemas are managed with cmd/migrate. A local sqlite file is
	// brought up to date on start so development needs no extra step.
	if cfg.Database.Driver == "sqlite" {
		if err := migrateSQLite(cfg, log); err != nil {
			return err
		}
	}

	store, err := cache.NewIdempotencyStore(ctx, cfg.Redis, !cfg.IsProduction(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Error closing idempotency store", zap.Error(err))
		}
	}()

	settings, err := merchandisingSettings(cfg.Merchandising)
	if err != nil {
		return err
	}

	// validated by config.Load
	var defaultTenant uuid.UUID
	if cfg.App.DefaultTenantID != "" {
		defaultTenant = uuid.MustParse(cfg.App.DefaultTenantID)
		log.Warn("Requests without X-Tenant-ID use the default tenant", zap.String("tenant_id", defaultTenant.String()))
	}

	eventBus := event.NewInMemoryEventBus(log)

	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db.DB)
	displayRepo := persistence.NewGormHomepageDisplayRepository(db.DB)

	categoryService := catalogapp.NewCategoryService(categoryRepo, eventBus, log)
	manufacturerService := catalogapp.NewManufacturerService(manufacturerRepo, eventBus, log)
	displayService := merchandisingapp.NewHomepageDisplayService(
		displayRepo,
		merchandisingapp.NewRepositoryEntityCatalog(categoryRepo, manufacturerRepo),
		store,
		eventBus,
		settings,
		log,
	)
	displayService.SetMetrics(homepageMetrics)

	eventBus.Subscribe(merchandisingapp.NewCatalogEntityRemovedHandler(displayService, log))
	eventBus.Subscribe(merchandisingapp.NewHomepageDisplayAuditHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Warn("Error stopping event bus", zap.Error(err))
		}
	}()

	health := handler.NewHealthHandler(2 * time.Second)
	health.Register("database", db.PingContext)
	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		health.Register("redis", pinger.Ping)
	}

	var httpMeter metric.Meter
	if mp.Enabled() {
		httpMeter = mp.Meter("http.server")
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
	}

	engine := router.NewEngine(router.EngineConfig{
		HTTP:            cfg.HTTP,
		Production:      cfg.IsProduction(),
		ServiceName:     cfg.Telemetry.ServiceName,
		TracingEnabled:  tp.Enabled(),
		DefaultTenantID: defaultTenant,
		RateLimiter:     limiter,
		Logger:          log,
		Meter:           httpMeter,
	}, router.Handlers{
		System:       handler.NewSystemHandler(cfg.App.Name, version),
		Health:       health,
		Category:     handler.NewCategoryHandler(categoryService),
		Manufacturer: handler.NewManufacturerHandler(manufacturerService),
		Homepage:     handler.NewHomepageDisplayHandler(displayService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func migrateSQLite(cfg *config.Config, log *zap.Logger) error {
	m, err := migration.New(cfg.Database.MigrationURL(), "", log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// merchandisingSettings turns the merchandising config section into the
// per-kind board settings of the homepage display service
func merchandisingSettings(mc config.MerchandisingConfig) (merchandisingapp.Settings, error) {
	categoryPolicy, err := merchandising.ParseResolutionPolicy(mc.CategoryResolution)
	if err != nil {
		return merchandisingapp.Settings{}, err
	}
	manufacturerPolicy, err := merchandising.ParseResolutionPolicy(mc.ManufacturerResolution)
	if err != nil {
		return merchandisingapp.Settings{}, err
	}

	settings := merchandisingapp.DefaultSettings()
	settings.Kinds[merchandising.DisplayKindCategories] = merchandisingapp.KindSettings{
		MaxSlots: mc.MaxHomepageCategories,
		Policy:   categoryPolicy,
	}
	settings.Kinds[merchandising.DisplayKindManufacturers] = merchandisingapp.KindSettings{
		MaxSlots: mc.MaxHomepageManufacturers,
		Policy:   manufacturerPolicy,
	}
	if mc.IdempotencyTTL > 0 {
		settings.IdempotencyTTL = mc.IdempotencyTTL
	}
	return settings, nil
}
