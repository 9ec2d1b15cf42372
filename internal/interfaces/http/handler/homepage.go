package handler

import (
	"github.com/gin-gonic/gin"
	merchandisingapp "github.com/shopadmin/backend/internal/application/merchandising"
	"github.com/shopadmin/backend/internal/domain/merchandising"
)

// IdempotencyKeyHeader lets a client mark retries of the same save
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength caps the header so it cannot bloat store keys
const maxIdempotencyKeyLength = 128

// HomepageDisplayHandler serves the homepage display settings screen
type HomepageDisplayHandler struct {
	BaseHandler
	displayService *merchandisingapp.HomepageDisplayService
}

// NewHomepageDisplayHandler creates a new HomepageDisplayHandler
func NewHomepageDisplayHandler(displayService *merchandisingapp.HomepageDisplayService) *HomepageDisplayHandler {
	return &HomepageDisplayHandler{
		displayService: displayService,
	}
}

// kind parses the :kind path parameter. Unknown kinds are rejected here with
// the same error the service would return.
func (h *HomepageDisplayHandler) kind(c *gin.Context) (merchandising.DisplayKind, bool) {
	kind, err := merchandising.ParseDisplayKind(c.Param("kind"))
	if err != nil {
		h.HandleError(c, err)
		return "", false
	}
	return kind, true
}

// Get handles GET /merchandising/homepage/:kind
func (h *HomepageDisplayHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	display, err := h.displayService.GetDisplay(c.Request.Context(), tenantID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, display)
}

// Candidates handles GET /merchandising/homepage/:kind/candidates
func (h *HomepageDisplayHandler) Candidates(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	candidates, err := h.displayService.ListCandidates(c.Request.Context(), tenantID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, candidates)
}

// Assign handles POST /merchandising/homepage/:kind/assignments.
// A collision under the displace policy is not an error: the response has
// outcome "conflict" and the draft unchanged.
func (h *HomepageDisplayHandler) Assign(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req merchandisingapp.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.displayService.Assign(c.Request.Context(), tenantID, kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Save handles PUT /merchandising/homepage/:kind
func (h *HomepageDisplayHandler) Save(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
	if len(idempotencyKey) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	var req merchandisingapp.SaveDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	display, err := h.displayService.Save(c.Request.Context(), tenantID, kind, req, idempotencyKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, display)
}
