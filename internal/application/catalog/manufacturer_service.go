package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ManufacturerService manages the manufacturers that homepage displays position
type ManufacturerService struct {
	manufacturerRepo catalog.ManufacturerRepository
	store            entityStore[catalog.Manufacturer]
}

func NewManufacturerService(manufacturerRepo catalog.ManufacturerRepository, eventBus shared.EventPublisher, logger *zap.Logger) *ManufacturerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManufacturerService{
		manufacturerRepo: manufacturerRepo,
		store: entityStore[catalog.Manufacturer]{
			repo:   manufacturerRepo,
			bus:    eventBus,
			logger: logger,
			root:   func(m *catalog.Manufacturer) *shared.BaseAggregateRoot { return &m.BaseAggregateRoot },
		},
	}
}

func (s *ManufacturerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateManufacturerRequest) (*ManufacturerResponse, error) {
	exists, err := s.manufacturerRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(req.Code))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Manufacturer with this code already exists")
	}

	manufacturer, err := catalog.NewManufacturer(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" || req.Website != "" {
		if err := manufacturer.Update(req.Name, req.Description, req.Website); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		manufacturer.SetSortOrder(*req.SortOrder)
	}

	if err := s.store.create(ctx, manufacturer); err != nil {
		return nil, err
	}
	return ToManufacturerResponse(manufacturer), nil
}

func (s *ManufacturerService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ManufacturerResponse, error) {
	manufacturer, err := s.manufacturerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToManufacturerResponse(manufacturer), nil
}

func (s *ManufacturerService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]ManufacturerResponse, int64, error) {
	manufacturers, total, err := s.store.list(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ManufacturerResponse, len(manufacturers))
	for i := range manufacturers {
		responses[i] = *ToManufacturerResponse(&manufacturers[i])
	}
	return responses, total, nil
}

// Update applies the fields present in req
func (s *ManufacturerService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateManufacturerRequest) (*ManufacturerResponse, error) {
	manufacturer, err := s.store.modify(ctx, tenantID, id, func(m *catalog.Manufacturer) error {
		if req.Name != nil || req.Description != nil || req.Website != nil {
			err := m.Update(
				orCurrent(req.Name, m.Name),
				orCurrent(req.Description, m.Description),
				orCurrent(req.Website, m.Website),
			)
			if err != nil {
				return err
			}
		}
		if req.SortOrder != nil {
			m.SetSortOrder(*req.SortOrder)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToManufacturerResponse(manufacturer), nil
}

func (s *ManufacturerService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*ManufacturerResponse, error) {
	return s.changeStatus(ctx, tenantID, id, (*catalog.Manufacturer).Activate)
}

func (s *ManufacturerService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*ManufacturerResponse, error) {
	return s.changeStatus(ctx, tenantID, id, (*catalog.Manufacturer).Deactivate)
}

func (s *ManufacturerService) changeStatus(ctx context.Context, tenantID, id uuid.UUID, change func(*catalog.Manufacturer) error) (*ManufacturerResponse, error) {
	manufacturer, err := s.store.modify(ctx, tenantID, id, change)
	if err != nil {
		return nil, err
	}
	return ToManufacturerResponse(manufacturer), nil
}

func (s *ManufacturerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.remove(ctx, tenantID, id, (*catalog.Manufacturer).MarkDeleted)
}
