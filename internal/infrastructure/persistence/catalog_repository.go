package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/persistence/models"
)

// catalogRow is the GORM model of catalog entity T, used through its pointer
type catalogRow[T, M any] interface {
	*M
	ToDomain() *T
}

// gormCatalogRepository implements catalog.Reader and catalog.Writer for
// one catalog table. Rows are always filtered by tenant_id.
type gormCatalogRepository[T, M any, PM catalogRow[T, M]] struct {
	db         *gorm.DB
	fromDomain func(*T) PM
}

func (r gormCatalogRepository[T, M, PM]) tenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(M)).Where("tenant_id = ?", tenantID)
}

func (r gormCatalogRepository[T, M, PM]) first(query *gorm.DB) (*T, error) {
	var row M
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return PM(&row).ToDomain(), nil
}

func (r gormCatalogRepository[T, M, PM]) find(query *gorm.DB) ([]T, error) {
	var rows []M
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]T, len(rows))
	for i := range rows {
		out[i] = *PM(&rows[i]).ToDomain()
	}
	return out, nil
}

func (r gormCatalogRepository[T, M, PM]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	return r.first(r.tenant(ctx, tenantID).Where("id = ?", id))
}

func (r gormCatalogRepository[T, M, PM]) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return r.find(r.tenant(ctx, tenantID).Where("id IN ?", ids))
}

func (r gormCatalogRepository[T, M, PM]) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*T, error) {
	return r.first(r.tenant(ctx, tenantID).Where("code = ?", strings.ToUpper(code)))
}

func (r gormCatalogRepository[T, M, PM]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	return r.find(applyListPage(applyListConditions(r.tenant(ctx, tenantID), filter), filter))
}

// CountForTenant ignores the paging fields of filter
func (r gormCatalogRepository[T, M, PM]) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := applyListConditions(r.tenant(ctx, tenantID), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r gormCatalogRepository[T, M, PM]) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.tenant(ctx, tenantID).Where("code = ?", strings.ToUpper(code)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r gormCatalogRepository[T, M, PM]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(r.fromDomain(entity)).Error
}

func (r gormCatalogRepository[T, M, PM]) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(M), "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCategoryRepository stores categories in the categories table
type GormCategoryRepository struct {
	gormCatalogRepository[catalog.Category, models.CategoryModel, *models.CategoryModel]
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{
		gormCatalogRepository[catalog.Category, models.CategoryModel, *models.CategoryModel]{
			db:         db,
			fromDomain: models.CategoryModelFromDomain,
		},
	}
}

// GormManufacturerRepository stores manufacturers in the manufacturers table
type GormManufacturerRepository struct {
	gormCatalogRepository[catalog.Manufacturer, models.ManufacturerModel, *models.ManufacturerModel]
}

func NewGormManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{
		gormCatalogRepository[catalog.Manufacturer, models.ManufacturerModel, *models.ManufacturerModel]{
			db:         db,
			fromDomain: models.ManufacturerModelFromDomain,
		},
	}
}

var (
	_ catalog.CategoryRepository     = (*GormCategoryRepository)(nil)
	_ catalog.ManufacturerRepository = (*GormManufacturerRepository)(nil)
)
