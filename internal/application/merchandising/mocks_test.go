package merchandising

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockHomepageDisplayRepository is a mock implementation of HomepageDisplayRepository
type MockHomepageDisplayRepository struct {
	mock.Mock
}

func (m *MockHomepageDisplayRepository) FindByKind(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind) (*merchandising.HomepageDisplay, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchandising.HomepageDisplay), args.Error(1)
}

func (m *MockHomepageDisplayRepository) Save(ctx context.Context, display *merchandising.HomepageDisplay) error {
	args := m.Called(ctx, display)
	return args.Error(0)
}

// fakeCatalog serves a fixed set of entities for every kind
type fakeCatalog struct {
	entities []CatalogEntity
}

func (c *fakeCatalog) ActiveEntities(_ context.Context, _ uuid.UUID, _ merchandising.DisplayKind) ([]CatalogEntity, error) {
	out := []CatalogEntity{}
	for _, e := range c.entities {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *fakeCatalog) FindEntities(_ context.Context, _ uuid.UUID, _ merchandising.DisplayKind, ids []uuid.UUID) ([]CatalogEntity, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []CatalogEntity{}
	for _, e := range c.entities {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

// memoryIdempotencyStore is a map-backed IdempotencyStore
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{keys: make(map[string]bool)}
}

func (s *memoryIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key], nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *memoryIdempotencyStore) Close() error { return nil }

// recordingPublisher collects published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
