package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

type repository[T any] interface {
	catalog.Reader[T]
	catalog.Writer[T]
}

// entityStore runs the load, change, save and publish cycle shared by the
// category and manufacturer services. Events are published only after the
// change is stored; a publishing failure is logged and not returned.
type entityStore[T any] struct {
	repo   repository[T]
	bus    shared.EventPublisher
	logger *zap.Logger
	root   func(*T) *shared.BaseAggregateRoot
}

func (s entityStore[T]) create(ctx context.Context, entity *T) error {
	if err := s.repo.Save(ctx, entity); err != nil {
		return err
	}
	s.publish(ctx, entity)
	return nil
}

func (s entityStore[T]) modify(ctx context.Context, tenantID, id uuid.UUID, change func(*T) error) (*T, error) {
	entity, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := change(entity); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, err
	}
	s.publish(ctx, entity)
	return entity, nil
}

func (s entityStore[T]) remove(ctx context.Context, tenantID, id uuid.UUID, markDeleted func(*T)) error {
	entity, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	markDeleted(entity)
	s.publish(ctx, entity)
	return nil
}

func (s entityStore[T]) list(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]T, int64, error) {
	domainFilter := filter.toDomainFilter()
	entities, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (s entityStore[T]) publish(ctx context.Context, entity *T) {
	agg := s.root(entity)
	events := agg.PullDomainEvents()
	if s.bus == nil || len(events) == 0 {
		return
	}
	if err := s.bus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events",
			zap.String("aggregate_id", agg.ID.String()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}

// orCurrent returns *v when set and current otherwise
func orCurrent(v *string, current string) string {
	if v != nil {
		return *v
	}
	return current
}
