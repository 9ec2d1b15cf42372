package merchandising

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EntityRemover takes an entity off a homepage display
type EntityRemover interface {
	RemoveEntity(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, entityID uuid.UUID) (bool, error)
}

// CatalogEntityRemovedHandler keeps homepage displays free of categories and
// manufacturers that were deleted or deactivated
type CatalogEntityRemovedHandler struct {
	remover EntityRemover
	logger  *zap.Logger
}

// NewCatalogEntityRemovedHandler creates a new CatalogEntityRemovedHandler
func NewCatalogEntityRemovedHandler(remover EntityRemover, logger *zap.Logger) *CatalogEntityRemovedHandler {
	return &CatalogEntityRemovedHandler{
		remover: remover,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CatalogEntityRemovedHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeCategoryDeleted,
		catalog.EventTypeCategoryStatusChanged,
		catalog.EventTypeManufacturerDeleted,
		catalog.EventTypeManufacturerStatusChanged,
	}
}

// Handle removes the entity named by the event from its homepage display
func (h *CatalogEntityRemovedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		kind     merchandising.DisplayKind
		entityID uuid.UUID
	)

	switch e := event.(type) {
	case *catalog.CategoryDeletedEvent:
		kind, entityID = merchandising.DisplayKindCategories, e.CategoryID
	case *catalog.CategoryStatusChangedEvent:
		if e.NewStatus != catalog.CategoryStatusInactive {
			return nil
		}
		kind, entityID = merchandising.DisplayKindCategories, e.CategoryID
	case *catalog.ManufacturerDeletedEvent:
		kind, entityID = merchandising.DisplayKindManufacturers, e.ManufacturerID
	case *catalog.ManufacturerStatusChangedEvent:
		if e.NewStatus != catalog.ManufacturerStatusInactive {
			return nil
		}
		kind, entityID = merchandising.DisplayKindManufacturers, e.ManufacturerID
	default:
		return nil
	}

	removed, err := h.remover.RemoveEntity(ctx, event.TenantID(), kind, entityID)
	if err != nil {
		h.logger.Error("failed to remove entity from homepage display",
			zap.String("event_type", event.EventType()),
			zap.String("tenant_id", event.TenantID().String()),
			zap.String("entity_id", entityID.String()),
			zap.Error(err),
		)
		return err
	}

	if removed {
		h.logger.Info("entity removed from homepage display",
			zap.String("event_type", event.EventType()),
			zap.String("kind", string(kind)),
			zap.String("entity_id", entityID.String()),
		)
	}
	return nil
}

// HomepageDisplayAuditHandler writes an audit log line for every display change
type HomepageDisplayAuditHandler struct {
	logger *zap.Logger
}

// NewHomepageDisplayAuditHandler creates a new HomepageDisplayAuditHandler
func NewHomepageDisplayAuditHandler(logger *zap.Logger) *HomepageDisplayAuditHandler {
	return &HomepageDisplayAuditHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *HomepageDisplayAuditHandler) EventTypes() []string {
	return []string{merchandising.EventTypeHomepageDisplayUpdated}
}

// Handle logs the change
func (h *HomepageDisplayAuditHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	updated, ok := event.(*merchandising.HomepageDisplayUpdatedEvent)
	if !ok {
		return nil
	}
	h.logger.Info("homepage display updated",
		zap.String("tenant_id", updated.TenantID().String()),
		zap.String("display_id", updated.AggregateID().String()),
		zap.String("kind", string(updated.Kind)),
		zap.String("reason", updated.Reason),
		zap.Int("version", updated.Version),
		zap.Strings("entries", updated.Entries),
		zap.Strings("previous_entries", updated.PreviousEntries),
	)
	return nil
}

var (
	_ shared.EventHandler = (*CatalogEntityRemovedHandler)(nil)
	_ shared.EventHandler = (*HomepageDisplayAuditHandler)(nil)
	_ EntityRemover       = (*HomepageDisplayService)(nil)
)
