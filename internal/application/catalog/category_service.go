package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// CategoryService manages the categories that homepage displays position
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	store        entityStore[catalog.Category]
}

func NewCategoryService(categoryRepo catalog.CategoryRepository, eventBus shared.EventPublisher, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		store: entityStore[catalog.Category]{
			repo:   categoryRepo,
			bus:    eventBus,
			logger: logger,
			root:   func(c *catalog.Category) *shared.BaseAggregateRoot { return &c.BaseAggregateRoot },
		},
	}
}

// Create rejects a code already used in the tenant
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(req.Code))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this code already exists")
	}

	category, err := catalog.NewCategory(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.store.create(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]CategoryResponse, int64, error) {
	categories, total, err := s.store.list(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses, total, nil
}

// Update applies the fields present in req
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.store.modify(ctx, tenantID, id, func(c *catalog.Category) error {
		if req.Name != nil || req.Description != nil {
			if err := c.Update(orCurrent(req.Name, c.Name), orCurrent(req.Description, c.Description)); err != nil {
				return err
			}
		}
		if req.SortOrder != nil {
			c.SetSortOrder(*req.SortOrder)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

func (s *CategoryService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	return s.changeStatus(ctx, tenantID, id, (*catalog.Category).Activate)
}

// Deactivate also takes the category off the homepage, through the
// merchandising event handlers
func (s *CategoryService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	return s.changeStatus(ctx, tenantID, id, (*catalog.Category).Deactivate)
}

func (s *CategoryService) changeStatus(ctx context.Context, tenantID, id uuid.UUID, change func(*catalog.Category) error) (*CategoryResponse, error) {
	category, err := s.store.modify(ctx, tenantID, id, change)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.remove(ctx, tenantID, id, (*catalog.Category).MarkDeleted)
}
