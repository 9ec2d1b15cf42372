package merchandising

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

type serviceFixture struct {
	svc       *HomepageDisplayService
	repo      *MockHomepageDisplayRepository
	store     *memoryIdempotencyStore
	publisher *recordingPublisher
	tenantID  uuid.UUID
	alpha     CatalogEntity
	bravo     CatalogEntity
	charlie   CatalogEntity
	retired   CatalogEntity
}

func newServiceFixture(t *testing.T, maxSlots int) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		repo:      new(MockHomepageDisplayRepository),
		store:     newMemoryIdempotencyStore(),
		publisher: &recordingPublisher{},
		tenantID:  uuid.New(),
		alpha:     CatalogEntity{ID: uuid.New(), Code: "A", Name: "Alpha", Active: true, SortOrder: 1},
		bravo:     CatalogEntity{ID: uuid.New(), Code: "B", Name: "Bravo", Active: true, SortOrder: 2},
		charlie:   CatalogEntity{ID: uuid.New(), Code: "C", Name: "Charlie", Active: true, SortOrder: 3},
		retired:   CatalogEntity{ID: uuid.New(), Code: "R", Name: "Retired", Active: false, SortOrder: 4},
	}
	settings := DefaultSettings()
	for kind, ks := range settings.Kinds {
		ks.MaxSlots = maxSlots
		settings.Kinds[kind] = ks
	}
	entities := &fakeCatalog{entities: []CatalogEntity{f.alpha, f.bravo, f.charlie, f.retired}}
	f.svc = NewHomepageDisplayService(f.repo, entities, f.store, f.publisher, settings, zap.NewNop())
	return f
}

func (f *serviceFixture) stored(kind merchandising.DisplayKind, entries ...string) *merchandising.HomepageDisplay {
	d, _ := merchandising.NewHomepageDisplay(f.tenantID, kind, 9)
	d.Entries = entries
	return d
}

func TestHomepageDisplayService_GetDisplay(t *testing.T) {
	ctx := context.Background()

	t.Run("empty display when nothing saved", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(nil, shared.ErrNotFound)

		resp, err := f.svc.GetDisplay(ctx, f.tenantID, merchandising.DisplayKindCategories)
		require.NoError(t, err)
		assert.Equal(t, "categories", resp.Kind)
		assert.Equal(t, 9, resp.MaxSlots)
		assert.Equal(t, "evict", resp.Policy)
		assert.Empty(t, resp.HomepageEntities)
		assert.Empty(t, resp.Slots)
	})

	t.Run("resolves names for stored layout", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindManufacturers).
			Return(f.stored(merchandising.DisplayKindManufacturers, "", f.bravo.ID.String(), f.alpha.ID.String()), nil)

		resp, err := f.svc.GetDisplay(ctx, f.tenantID, merchandising.DisplayKindManufacturers)
		require.NoError(t, err)
		assert.Equal(t, "displace", resp.Policy)
		assert.Equal(t, []string{"", f.bravo.ID.String(), f.alpha.ID.String()}, resp.HomepageEntities)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, SlotResponse{Slot: 2, EntityID: f.bravo.ID.String(), Code: "B", Name: "Bravo"}, resp.Slots[0])
		assert.Equal(t, 3, resp.Slots[1].Slot)
	})

	t.Run("drops positions beyond a lowered slot count", func(t *testing.T) {
		f := newServiceFixture(t, 2)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).
			Return(f.stored(merchandising.DisplayKindCategories, f.alpha.ID.String(), "", f.bravo.ID.String()), nil)

		resp, err := f.svc.GetDisplay(ctx, f.tenantID, merchandising.DisplayKindCategories)
		require.NoError(t, err)
		assert.Equal(t, []string{f.alpha.ID.String()}, resp.HomepageEntities)
	})

	t.Run("unknown kind", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		_, err := f.svc.GetDisplay(ctx, f.tenantID, merchandising.DisplayKind("brands"))
		assert.ErrorIs(t, err, merchandising.ErrUnknownDisplayKind)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(nil, errors.New("db down"))
		_, err := f.svc.GetDisplay(ctx, f.tenantID, merchandising.DisplayKindCategories)
		assert.EqualError(t, err, "db down")
	})
}

func TestHomepageDisplayService_ListCandidates(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, 9)
	f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).
		Return(f.stored(merchandising.DisplayKindCategories, "", f.charlie.ID.String()), nil)

	candidates, err := f.svc.ListCandidates(ctx, f.tenantID, merchandising.DisplayKindCategories)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "Alpha", candidates[0].Name)
	assert.Equal(t, 0, candidates[0].Slot)
	assert.Equal(t, "Charlie", candidates[2].Name)
	assert.Equal(t, 2, candidates[2].Slot)
}

func TestHomepageDisplayService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("evicts under category policy", func(t *testing.T) {
		f := newServiceFixture(t, 5)
		resp, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindCategories, AssignRequest{
			HomepageEntities: []string{"", f.alpha.ID.String(), "", f.bravo.ID.String()},
			EntityID:         f.alpha.ID.String(),
			Input:            "4",
		})
		require.NoError(t, err)
		assert.Equal(t, "evicted", resp.Outcome)
		require.NotNil(t, resp.Evicted)
		assert.Equal(t, "Bravo", resp.Evicted.Name)
		assert.Equal(t, 2, resp.PreviousSlot)
		assert.Equal(t, []string{"", "", "", f.alpha.ID.String()}, resp.HomepageEntities)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reports conflict under manufacturer policy without confirm", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		draft := []string{f.alpha.ID.String(), f.bravo.ID.String()}
		resp, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindManufacturers, AssignRequest{
			HomepageEntities: draft,
			EntityID:         f.charlie.ID.String(),
			Input:            "1",
		})
		require.NoError(t, err)
		assert.Equal(t, "conflict", resp.Outcome)
		require.NotNil(t, resp.Conflict)
		assert.Equal(t, 1, resp.Conflict.Slot)
		assert.Equal(t, "Alpha", resp.Conflict.OccupantName)
		assert.Contains(t, resp.Conflict.Message, "Slot 1 is already used by Alpha")
		assert.Equal(t, draft, resp.HomepageEntities)
	})

	t.Run("displaces when confirmed", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		resp, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindManufacturers, AssignRequest{
			HomepageEntities: []string{f.alpha.ID.String(), f.bravo.ID.String()},
			EntityID:         f.charlie.ID.String(),
			Input:            "1",
			Confirm:          true,
		})
		require.NoError(t, err)
		assert.Equal(t, "displaced", resp.Outcome)
		require.NotNil(t, resp.Displaced)
		assert.Equal(t, DisplacementResponse{Entity: EntityRefResponse{ID: f.alpha.ID.String(), Name: "Alpha"}, From: 1, To: 3}, *resp.Displaced)
		assert.Equal(t, []string{f.charlie.ID.String(), f.bravo.ID.String(), f.alpha.ID.String()}, resp.HomepageEntities)
	})

	t.Run("range error leaves nothing to return", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		_, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindCategories, AssignRequest{
			EntityID: f.alpha.ID.String(),
			Input:    "10",
		})
		require.ErrorIs(t, err, merchandising.ErrSlotOutOfRange)
		assert.Equal(t, "Enter a number between 1 and 9", err.Error())
	})

	t.Run("rejects inactive entity not on the draft", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		_, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindCategories, AssignRequest{
			EntityID: f.retired.ID.String(),
			Input:    "1",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("inactive entity on the draft can be unassigned", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		resp, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindCategories, AssignRequest{
			HomepageEntities: []string{f.retired.ID.String()},
			EntityID:         f.retired.ID.String(),
			Input:            "",
		})
		require.NoError(t, err)
		assert.Equal(t, "unassigned", resp.Outcome)
		assert.Empty(t, resp.HomepageEntities)
	})

	t.Run("unknown entity", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		_, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindCategories, AssignRequest{
			EntityID: uuid.New().String(),
			Input:    "1",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("malformed draft", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		_, err := f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindCategories, AssignRequest{
			HomepageEntities: []string{"not-a-uuid"},
			EntityID:         f.alpha.ID.String(),
			Input:            "1",
		})
		assert.ErrorIs(t, err, merchandising.ErrInvalidLayout)
	})
}

func TestHomepageDisplayService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("stores layout and publishes update", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		display := f.stored(merchandising.DisplayKindCategories, f.alpha.ID.String())
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(display, nil)
		f.repo.On("Save", mock.Anything, display).Return(nil)

		padded := []string{"", f.bravo.ID.String(), "", ""}
		resp, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, SaveDisplayRequest{HomepageEntities: padded}, "")
		require.NoError(t, err)

		assert.Equal(t, merchandising.Layout{"", f.bravo.ID.String()}, display.Entries)
		assert.Equal(t, []string{"", f.bravo.ID.String()}, resp.HomepageEntities)
		assert.Equal(t, 2, resp.Version)
		require.Len(t, f.publisher.events, 1)
		event := f.publisher.events[0].(*merchandising.HomepageDisplayUpdatedEvent)
		assert.Equal(t, merchandising.Layout{f.alpha.ID.String()}, event.PreviousEntries)
	})

	t.Run("first save creates the display", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindManufacturers).Return(nil, shared.ErrNotFound)
		f.repo.On("Save", mock.Anything, mock.AnythingOfType("*merchandising.HomepageDisplay")).Return(nil)

		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindManufacturers,
			SaveDisplayRequest{HomepageEntities: []string{f.charlie.ID.String()}}, "")
		require.NoError(t, err)

		saved := f.repo.Calls[1].Arguments.Get(1).(*merchandising.HomepageDisplay)
		assert.Equal(t, f.tenantID, saved.TenantID)
		assert.Equal(t, merchandising.DisplayKindManufacturers, saved.Kind)
		assert.Equal(t, merchandising.Layout{f.charlie.ID.String()}, saved.Entries)
	})

	t.Run("rejects inactive entity", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories,
			SaveDisplayRequest{HomepageEntities: []string{f.retired.ID.String()}}, "")
		require.ErrorIs(t, err, merchandising.ErrInvalidLayout)
		assert.Contains(t, err.Error(), "Retired is not active")
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate entity", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		id := f.alpha.ID.String()
		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories,
			SaveDisplayRequest{HomepageEntities: []string{id, id}}, "")
		assert.ErrorIs(t, err, merchandising.ErrInvalidLayout)
	})

	t.Run("rejects layout longer than slot count", func(t *testing.T) {
		f := newServiceFixture(t, 2)
		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories,
			SaveDisplayRequest{HomepageEntities: []string{f.alpha.ID.String(), f.bravo.ID.String(), f.charlie.ID.String()}}, "")
		assert.ErrorIs(t, err, merchandising.ErrInvalidLayout)
	})

	t.Run("repeated idempotency key is rejected", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		display := f.stored(merchandising.DisplayKindCategories)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(display, nil)
		f.repo.On("Save", mock.Anything, display).Return(nil).Once()

		req := SaveDisplayRequest{HomepageEntities: []string{f.alpha.ID.String()}}
		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "key-1")
		require.NoError(t, err)

		_, err = f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "key-1")
		assert.ErrorIs(t, err, ErrDuplicateSubmission)
		f.repo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("failed save can be retried with the same key", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		display := f.stored(merchandising.DisplayKindCategories)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(display, nil)
		f.repo.On("Save", mock.Anything, display).Return(errors.New("db down")).Once()
		f.repo.On("Save", mock.Anything, display).Return(nil).Once()

		req := SaveDisplayRequest{HomepageEntities: []string{f.alpha.ID.String()}}
		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "key-2")
		require.Error(t, err)

		_, err = f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "key-2")
		require.NoError(t, err)
	})

	t.Run("rejected layout does not use up the key", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		display := f.stored(merchandising.DisplayKindCategories)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(display, nil)
		f.repo.On("Save", mock.Anything, display).Return(nil).Once()

		_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories,
			SaveDisplayRequest{HomepageEntities: []string{f.retired.ID.String()}}, "key-3")
		require.ErrorIs(t, err, merchandising.ErrInvalidLayout)

		_, err = f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories,
			SaveDisplayRequest{HomepageEntities: []string{f.alpha.ID.String()}}, "key-3")
		require.NoError(t, err)
	})
}

func TestHomepageDisplayService_Save_ConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, 9)
	display := f.stored(merchandising.DisplayKindCategories)
	f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(display, nil)

	// the save that claims the key is held inside the repository until the
	// other one has returned
	gate := make(chan struct{})
	f.repo.On("Save", mock.Anything, display).Run(func(mock.Arguments) { <-gate }).Return(nil)

	req := SaveDisplayRequest{HomepageEntities: []string{f.alpha.ID.String()}}
	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "same-key")
			errs <- err
		}()
	}

	first := <-errs
	close(gate)
	second := <-errs

	assert.ErrorIs(t, first, ErrDuplicateSubmission)
	assert.NoError(t, second)
	f.repo.AssertNumberOfCalls(t, "Save", 1)
	assert.Len(t, f.publisher.events, 1)
}

func TestHomepageDisplayService_Metrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	m, err := telemetry.NewHomepageMetrics(meter)
	require.NoError(t, err)

	f := newServiceFixture(t, 3)
	f.svc.SetMetrics(m)
	display := f.stored(merchandising.DisplayKindCategories)
	f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindCategories).Return(display, nil)
	f.repo.On("Save", mock.Anything, display).Return(nil)

	req := SaveDisplayRequest{HomepageEntities: []string{f.alpha.ID.String()}}
	_, err = f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "k")
	require.NoError(t, err)
	_, err = f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories, req, "k")
	require.ErrorIs(t, err, ErrDuplicateSubmission)
	_, err = f.svc.Save(ctx, f.tenantID, merchandising.DisplayKindCategories,
		SaveDisplayRequest{HomepageEntities: []string{f.retired.ID.String()}}, "")
	require.Error(t, err)

	assign := AssignRequest{
		HomepageEntities: []string{f.alpha.ID.String()},
		EntityID:         f.bravo.ID.String(),
		Input:            "1",
	}
	_, err = f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindManufacturers, assign)
	require.NoError(t, err)
	assign.Confirm = true
	_, err = f.svc.Assign(ctx, f.tenantID, merchandising.DisplayKindManufacturers, assign)
	require.NoError(t, err)

	counts := collectOutcomes(t, reader)
	assert.Equal(t, map[string]int64{"saved": 1, "duplicate": 1, "rejected": 1}, counts["shop_homepage_save_total"])
	assert.Equal(t, map[string]int64{"conflict": 1, "displaced": 1}, counts["shop_homepage_assignment_total"])
	assert.Equal(t, map[string]int64{"pending": 1, "confirmed": 1}, counts["shop_homepage_conflict_total"])
}

// collectOutcomes sums every counter by its outcome label
func collectOutcomes(t *testing.T, reader *sdkmetric.ManualReader) map[string]map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			byOutcome := map[string]int64{}
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value(telemetry.LabelOutcome)
				byOutcome[outcome.AsString()] += dp.Value
			}
			out[metric.Name] = byOutcome
		}
	}
	return out
}

func TestHomepageDisplayService_RemoveEntity(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and saves", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		display := f.stored(merchandising.DisplayKindManufacturers, f.alpha.ID.String(), f.bravo.ID.String())
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindManufacturers).Return(display, nil)
		f.repo.On("Save", mock.Anything, display).Return(nil)

		removed, err := f.svc.RemoveEntity(ctx, f.tenantID, merchandising.DisplayKindManufacturers, f.alpha.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, merchandising.Layout{"", f.bravo.ID.String()}, display.Entries)
		require.Len(t, f.publisher.events, 1)
	})

	t.Run("nothing saved yet", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindManufacturers).Return(nil, shared.ErrNotFound)

		removed, err := f.svc.RemoveEntity(ctx, f.tenantID, merchandising.DisplayKindManufacturers, f.alpha.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("entity not on display", func(t *testing.T) {
		f := newServiceFixture(t, 9)
		display := f.stored(merchandising.DisplayKindManufacturers, f.bravo.ID.String())
		f.repo.On("FindByKind", mock.Anything, f.tenantID, merchandising.DisplayKindManufacturers).Return(display, nil)

		removed, err := f.svc.RemoveEntity(ctx, f.tenantID, merchandising.DisplayKindManufacturers, f.alpha.ID)
		require.NoError(t, err)
		assert.False(t, removed)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
