package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// Reader looks up catalog entities of type T. Every lookup is scoped to a
// tenant; an entity of another tenant is reported as not found.
type Reader[T any] interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error)

	// FindByIDsForTenant skips unknown IDs
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]T, error)

	// FindByCode expects the upper-cased code
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*T, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// Writer stores catalog entities of type T
type Writer[T any] interface {
	// Save inserts or updates
	Save(ctx context.Context, entity *T) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

type (
	CategoryReader     = Reader[Category]
	ManufacturerReader = Reader[Manufacturer]
)

type CategoryRepository interface {
	Reader[Category]
	Writer[Category]
}

type ManufacturerRepository interface {
	Reader[Manufacturer]
	Writer[Manufacturer]
}
