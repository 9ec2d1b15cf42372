package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/persistence/models"
)

// GormHomepageDisplayRepository implements merchandising.HomepageDisplayRepository using GORM
type GormHomepageDisplayRepository struct {
	db *gorm.DB
}

// NewGormHomepageDisplayRepository creates a new GormHomepageDisplayRepository
func NewGormHomepageDisplayRepository(db *gorm.DB) *GormHomepageDisplayRepository {
	return &GormHomepageDisplayRepository{db: db}
}

// FindByKind returns the tenant's display of the given kind
func (r *GormHomepageDisplayRepository) FindByKind(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind) (*merchandising.HomepageDisplay, error) {
	var model models.HomepageDisplayModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND kind = ?", tenantID, kind).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save writes the whole layout in a single statement. A concurrent first
// save of the same tenant and kind lands on the unique index and updates
// the existing row, so the last writer wins.
func (r *GormHomepageDisplayRepository) Save(ctx context.Context, display *merchandising.HomepageDisplay) error {
	model := models.HomepageDisplayModelFromDomain(display)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"max_slots", "entries", "version", "updated_at"}),
		}).
		Create(model).Error
}

var _ merchandising.HomepageDisplayRepository = (*GormHomepageDisplayRepository)(nil)
