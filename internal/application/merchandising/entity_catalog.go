package merchandising

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// CatalogEntity is a category or manufacturer as seen by the homepage display
type CatalogEntity struct {
	ID        uuid.UUID
	Code      string
	Name      string
	SortOrder int
	Active    bool
}

// EntityCatalog looks up the entities a display kind positions
type EntityCatalog interface {
	// ActiveEntities lists active entities of the kind in sort order
	ActiveEntities(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind) ([]CatalogEntity, error)
	// FindEntities returns the entities of the kind with the given IDs, any status.
	// Unknown IDs are left out.
	FindEntities(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, ids []uuid.UUID) ([]CatalogEntity, error)
}

// RepositoryEntityCatalog serves EntityCatalog from the catalog repositories.
// It only reads.
type RepositoryEntityCatalog struct {
	categoryRepo     catalog.CategoryReader
	manufacturerRepo catalog.ManufacturerReader
}

func NewRepositoryEntityCatalog(categoryRepo catalog.CategoryReader, manufacturerRepo catalog.ManufacturerReader) *RepositoryEntityCatalog {
	return &RepositoryEntityCatalog{
		categoryRepo:     categoryRepo,
		manufacturerRepo: manufacturerRepo,
	}
}

func activeFilter() shared.Filter {
	return shared.Filter{
		OrderBy:  "sort_order",
		OrderDir: "asc",
		Filters:  map[string]string{"status": "active"},
	}
}

// ActiveEntities implements EntityCatalog
func (c *RepositoryEntityCatalog) ActiveEntities(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind) ([]CatalogEntity, error) {
	switch kind {
	case merchandising.DisplayKindCategories:
		categories, err := c.categoryRepo.FindAllForTenant(ctx, tenantID, activeFilter())
		if err != nil {
			return nil, err
		}
		return fromCategories(categories), nil
	case merchandising.DisplayKindManufacturers:
		manufacturers, err := c.manufacturerRepo.FindAllForTenant(ctx, tenantID, activeFilter())
		if err != nil {
			return nil, err
		}
		return fromManufacturers(manufacturers), nil
	default:
		return nil, merchandising.ErrUnknownDisplayKind
	}
}

// FindEntities implements EntityCatalog
func (c *RepositoryEntityCatalog) FindEntities(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, ids []uuid.UUID) ([]CatalogEntity, error) {
	if len(ids) == 0 {
		return []CatalogEntity{}, nil
	}
	switch kind {
	case merchandising.DisplayKindCategories:
		categories, err := c.categoryRepo.FindByIDsForTenant(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		return fromCategories(categories), nil
	case merchandising.DisplayKindManufacturers:
		manufacturers, err := c.manufacturerRepo.FindByIDsForTenant(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		return fromManufacturers(manufacturers), nil
	default:
		return nil, merchandising.ErrUnknownDisplayKind
	}
}

func fromCategories(categories []catalog.Category) []CatalogEntity {
	out := make([]CatalogEntity, len(categories))
	for i, c := range categories {
		out[i] = CatalogEntity{ID: c.ID, Code: c.Code, Name: c.Name, SortOrder: c.SortOrder, Active: c.IsActive()}
	}
	return out
}

func fromManufacturers(manufacturers []catalog.Manufacturer) []CatalogEntity {
	out := make([]CatalogEntity, len(manufacturers))
	for i, m := range manufacturers {
		out[i] = CatalogEntity{ID: m.ID, Code: m.Code, Name: m.Name, SortOrder: m.SortOrder, Active: m.IsActive()}
	}
	return out
}

var _ EntityCatalog = (*RepositoryEntityCatalog)(nil)
