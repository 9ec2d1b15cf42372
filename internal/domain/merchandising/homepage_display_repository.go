package merchandising

import (
	"context"

	"github.com/google/uuid"
)

// HomepageDisplayRepository persists homepage displays
type HomepageDisplayRepository interface {
	// FindByKind returns the tenant's display of the given kind,
	// or shared.ErrNotFound when none has been saved yet
	FindByKind(ctx context.Context, tenantID uuid.UUID, kind DisplayKind) (*HomepageDisplay, error)

	// Save creates or replaces the display atomically
	Save(ctx context.Context, display *HomepageDisplay) error
}
