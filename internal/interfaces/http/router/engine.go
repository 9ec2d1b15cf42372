package router

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the endpoints the engine serves
type Handlers struct {
	System       *handler.SystemHandler
	Health       *handler.HealthHandler
	Category     *handler.CategoryHandler
	Manufacturer *handler.ManufacturerHandler
	Homepage     *handler.HomepageDisplayHandler
}

// EngineConfig configures the middleware chain
type EngineConfig struct {
	HTTP            config.HTTPConfig
	Production      bool
	ServiceName     string
	TracingEnabled  bool
	DefaultTenantID uuid.UUID
	// RateLimiter is owned by the caller, who must Stop it. Nil disables
	// rate limiting.
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
	// Meter records request metrics. Nil disables them.
	Meter metric.Meter
}

// NewEngine builds the gin engine with the middleware chain and all routes.
// Request IDs and tenants are resolved before the request logger so every
// log line of a request carries them.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("invalid trusted proxies; trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.Production

	tenantCfg := middleware.DefaultTenantConfig()
	tenantCfg.DefaultTenantID = cfg.DefaultTenantID

	// CORS answers preflights before the tenant check, since browsers do
	// not send X-Tenant-ID on them
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(securityCfg),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
		}),
		middleware.SpanEnricher(),
		middleware.HTTPMetrics(cfg.Meter),
		middleware.Tenant(tenantCfg),
		logger.GinMiddleware(log),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	if h.System != nil {
		r.Register(SystemRoutes(h.System))
	}
	if h.Category != nil && h.Manufacturer != nil {
		r.Register(CatalogRoutes(h.Category, h.Manufacturer))
	}
	if h.Homepage != nil {
		r.Register(MerchandisingRoutes(h.Homepage))
	}
	r.Setup()

	return engine
}

// SystemRoutes mounts /system
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/ping", h.Ping).
		GET("/info", h.GetSystemInfo)
}

// CatalogRoutes mounts /catalog/categories and /catalog/manufacturers
func CatalogRoutes(categories *handler.CategoryHandler, manufacturers *handler.ManufacturerHandler) *DomainGroup {
	catalog := NewDomainGroup("catalog", "/catalog")

	catalog.Group("categories", "/categories").
		POST("", categories.Create).
		GET("", categories.List).
		GET("/:id", categories.GetByID).
		PUT("/:id", categories.Update).
		POST("/:id/activate", categories.Activate).
		POST("/:id/deactivate", categories.Deactivate).
		DELETE("/:id", categories.Delete)

	catalog.Group("manufacturers", "/manufacturers").
		POST("", manufacturers.Create).
		GET("", manufacturers.List).
		GET("/:id", manufacturers.GetByID).
		PUT("/:id", manufacturers.Update).
		POST("/:id/activate", manufacturers.Activate).
		POST("/:id/deactivate", manufacturers.Deactivate).
		DELETE("/:id", manufacturers.Delete)

	return catalog
}

// MerchandisingRoutes mounts /merchandising/homepage
func MerchandisingRoutes(h *handler.HomepageDisplayHandler) *DomainGroup {
	merchandising := NewDomainGroup("merchandising", "/merchandising")

	merchandising.Group("homepage", "/homepage").
		GET("/:kind", h.Get).
		PUT("/:kind", h.Save).
		GET("/:kind/candidates", h.Candidates).
		POST("/:kind/assignments", h.Assign)

	return merchandising
}
