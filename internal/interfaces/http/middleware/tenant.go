package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/interfaces/http/dto"
)

const (
	// TenantIDKey is the gin context key holding the tenant uuid.UUID
	TenantIDKey = "tenant_id"
	// TenantHeaderKey is the header a client names its tenant with
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// DefaultTenantID is used when the header is absent. uuid.Nil makes the
	// header mandatory.
	DefaultTenantID uuid.UUID
	// SkipPaths do not need a tenant
	SkipPaths []string
}

// DefaultTenantConfig requires the header everywhere except health and
// system endpoints
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		SkipPaths: []string{"/health", "/ready", "/api/v1/system"},
	}
}

// Tenant resolves the tenant of a request from the X-Tenant-ID header and
// stores it in the gin context and in the request context for logging
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		tenantID := cfg.DefaultTenantID
		if raw := c.GetHeader(TenantHeaderKey); raw != "" {
			if !isValidTenantID(raw) {
				abortTenant(c, "Invalid tenant ID format")
				return
			}
			tenantID = uuid.MustParse(raw)
		}
		if tenantID == uuid.Nil {
			abortTenant(c, "Tenant identification required")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

// GetTenantID returns the tenant resolved by Tenant
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortTenant(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeBadRequest,
		message,
		GetRequestID(c),
	))
}
