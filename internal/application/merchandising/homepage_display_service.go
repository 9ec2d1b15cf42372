package merchandising

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const spanService = "homepage_display"

// ErrDuplicateSubmission is returned when a save is repeated with an
// idempotency key that was already used
var ErrDuplicateSubmission = shared.NewDomainError("DUPLICATE_SUBMISSION", "This save has already been submitted")

// HomepageDisplayService positions categories and manufacturers on the homepage
type HomepageDisplayService struct {
	displayRepo merchandising.HomepageDisplayRepository
	entities    EntityCatalog
	idempotency shared.IdempotencyStore
	eventBus    shared.EventPublisher
	settings    Settings
	metrics     *telemetry.HomepageMetrics
	logger      *zap.Logger
}

// NewHomepageDisplayService creates a new HomepageDisplayService.
// idempotency and eventBus may be nil.
func NewHomepageDisplayService(
	displayRepo merchandising.HomepageDisplayRepository,
	entities EntityCatalog,
	idempotency shared.IdempotencyStore,
	eventBus shared.EventPublisher,
	settings Settings,
	logger *zap.Logger,
) *HomepageDisplayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomepageDisplayService{
		displayRepo: displayRepo,
		entities:    entities,
		idempotency: idempotency,
		eventBus:    eventBus,
		settings:    settings,
		logger:      logger,
	}
}

// SetMetrics sets the homepage counters. Without them nothing is recorded.
func (s *HomepageDisplayService) SetMetrics(m *telemetry.HomepageMetrics) {
	s.metrics = m
}

// GetDisplay returns the saved display of a kind, or an empty one if none has
// been saved
func (s *HomepageDisplayService) GetDisplay(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind) (*DisplayResponse, error) {
	ks, err := s.settings.forKind(kind)
	if err != nil {
		return nil, err
	}

	display, err := s.loadDisplay(ctx, tenantID, kind, ks)
	if err != nil {
		return nil, err
	}

	board, codes, err := s.storedBoard(ctx, display, ks)
	if err != nil {
		return nil, err
	}

	resp := &DisplayResponse{
		Kind:             string(kind),
		MaxSlots:         ks.MaxSlots,
		Policy:           string(ks.Policy),
		HomepageEntities: board.Materialize(),
		Slots:            toSlotResponses(board, codes),
		Version:          display.Version,
	}
	if !display.UpdatedAt.IsZero() {
		updatedAt := display.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp, nil
}

// ListCandidates lists the active entities of a kind with the slot each
// currently holds on the saved display (0 when not shown)
func (s *HomepageDisplayService) ListCandidates(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind) ([]CandidateResponse, error) {
	ks, err := s.settings.forKind(kind)
	if err != nil {
		return nil, err
	}

	entities, err := s.entities.ActiveEntities(ctx, tenantID, kind)
	if err != nil {
		return nil, err
	}

	display, err := s.loadDisplay(ctx, tenantID, kind, ks)
	if err != nil {
		return nil, err
	}
	board, err := s.fitBoard(display, ks, nil)
	if err != nil {
		return nil, err
	}

	out := make([]CandidateResponse, len(entities))
	for i, e := range entities {
		slot, _ := board.SlotOf(e.ID.String())
		out[i] = CandidateResponse{
			ID:        e.ID.String(),
			Code:      e.Code,
			Name:      e.Name,
			SortOrder: e.SortOrder,
			Slot:      int(slot),
		}
	}
	return out, nil
}

// Assign applies one assignment request to the caller's draft layout and
// returns the new draft. Nothing is stored; the draft is saved with Save.
//
// Under the displace policy a collision returns outcome "conflict" and the
// draft unchanged unless req.Confirm is set, in which case the displacement
// is committed.
func (s *HomepageDisplayService) Assign(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, req AssignRequest) (_ *AssignResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "assign",
		attribute.String(telemetry.AttrTenantID, tenantID.String()),
		attribute.String(telemetry.AttrDisplayKind, string(kind)),
		attribute.String(telemetry.AttrEntityID, req.EntityID),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	ks, err := s.settings.forKind(kind)
	if err != nil {
		return nil, err
	}

	draft, ids, err := canonicalLayout(req.HomepageEntities)
	if err != nil {
		return nil, err
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "entity_id must be a UUID")
	}

	known, err := s.entities.FindEntities(ctx, tenantID, kind, append(ids, entityID))
	if err != nil {
		return nil, err
	}
	names, codes := indexEntities(known)

	board, err := merchandising.HydrateSlotBoard(ks.MaxSlots, draft, names)
	if err != nil {
		return nil, err
	}

	entity, err := s.eligibleEntity(entityID, known, board, kind)
	if err != nil {
		return nil, err
	}

	outcome, err := board.RequestAssignment(entity, req.Input, ks.Policy)
	if err != nil {
		return nil, err
	}

	if outcome.Kind == merchandising.OutcomeConflict {
		resolution := telemetry.ConflictPending
		if req.Confirm {
			outcome, err = outcome.Conflict.Resolve()
			if err != nil {
				return nil, err
			}
			resolution = telemetry.ConflictConfirmed
		}
		s.metrics.RecordConflict(ctx, tenantID, string(kind), resolution)
	}
	s.metrics.RecordAssignment(ctx, tenantID, string(kind), string(outcome.Kind))

	span.SetAttributes(
		attribute.String(telemetry.AttrOutcome, string(outcome.Kind)),
		attribute.Int(telemetry.AttrSlot, int(outcome.Slot)),
	)
	logger.L(ctx, s.logger).Debug("homepage assignment",
		zap.String("tenant_id", tenantID.String()),
		zap.String("kind", string(kind)),
		zap.String("entity_id", entity.ID),
		zap.String("outcome", string(outcome.Kind)),
		zap.Int("slot", int(outcome.Slot)),
		zap.Int("previous_slot", int(outcome.PreviousSlot)),
	)

	return toAssignResponse(outcome, board, codes), nil
}

// Save validates and stores a layout as the display of a kind.
// Every entry must be an active entity of that kind. A non-empty
// idempotencyKey is claimed before anything is stored: a key already
// claimed by an earlier or concurrent save is rejected with
// ErrDuplicateSubmission, and a save that fails releases its key so it can
// be retried.
func (s *HomepageDisplayService) Save(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, req SaveDisplayRequest, idempotencyKey string) (_ *DisplayResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "save",
		attribute.String(telemetry.AttrTenantID, tenantID.String()),
		attribute.String(telemetry.AttrDisplayKind, string(kind)),
	)
	defer func() {
		s.metrics.RecordSave(ctx, tenantID, string(kind), saveResult(err))
		telemetry.RecordError(span, err)
		span.End()
	}()

	ks, err := s.settings.forKind(kind)
	if err != nil {
		return nil, err
	}

	persisted := false
	if idempotencyKey != "" && s.idempotency != nil {
		storeKey := fmt.Sprintf("homepage:%s:%s:%s", tenantID, kind, idempotencyKey)
		claimed, claimErr := s.idempotency.MarkProcessed(ctx, storeKey, s.settings.IdempotencyTTL)
		if claimErr != nil {
			return nil, fmt.Errorf("claim idempotency key: %w", claimErr)
		}
		if !claimed {
			return nil, ErrDuplicateSubmission
		}
		defer func() {
			if !persisted {
				s.releaseKey(ctx, storeKey)
			}
		}()
	}

	layout, ids, err := canonicalLayout(req.HomepageEntities)
	if err != nil {
		return nil, err
	}

	known, err := s.entities.FindEntities(ctx, tenantID, kind, ids)
	if err != nil {
		return nil, err
	}
	if err := requireActive(kind, ids, known); err != nil {
		return nil, err
	}
	names, _ := indexEntities(known)

	board, err := merchandising.HydrateSlotBoard(ks.MaxSlots, layout, names)
	if err != nil {
		return nil, err
	}

	display, err := s.loadDisplay(ctx, tenantID, kind, ks)
	if err != nil {
		return nil, err
	}
	display.Replace(board)

	if err := s.displayRepo.Save(ctx, display); err != nil {
		return nil, err
	}
	persisted = true
	s.publishEvents(ctx, display)

	logger.L(ctx, s.logger).Info("homepage display saved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("kind", string(kind)),
		zap.Int("entries", board.Len()),
		zap.Int("version", display.Version),
	)

	return s.GetDisplay(ctx, tenantID, kind)
}

// RemoveEntity takes an entity off the saved display of a kind.
// It reports whether the display changed.
func (s *HomepageDisplayService) RemoveEntity(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, entityID uuid.UUID) (_ bool, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "remove_entity",
		attribute.String(telemetry.AttrTenantID, tenantID.String()),
		attribute.String(telemetry.AttrDisplayKind, string(kind)),
		attribute.String(telemetry.AttrEntityID, entityID.String()),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	display, err := s.displayRepo.FindByKind(ctx, tenantID, kind)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !display.RemoveEntity(entityID.String()) {
		return false, nil
	}

	if err := s.displayRepo.Save(ctx, display); err != nil {
		return false, err
	}
	s.publishEvents(ctx, display)

	return true, nil
}

func (s *HomepageDisplayService) loadDisplay(ctx context.Context, tenantID uuid.UUID, kind merchandising.DisplayKind, ks KindSettings) (*merchandising.HomepageDisplay, error) {
	display, err := s.displayRepo.FindByKind(ctx, tenantID, kind)
	if err == nil {
		return display, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return merchandising.NewHomepageDisplay(tenantID, kind, ks.MaxSlots)
}

// storedBoard hydrates a saved display with entity names resolved from the catalog
func (s *HomepageDisplayService) storedBoard(ctx context.Context, display *merchandising.HomepageDisplay, ks KindSettings) (*merchandising.SlotBoard, map[string]string, error) {
	ids := make([]uuid.UUID, 0, len(display.Entries))
	for _, raw := range display.Entries.IDs() {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	known, err := s.entities.FindEntities(ctx, display.TenantID, display.Kind, ids)
	if err != nil {
		return nil, nil, err
	}
	names, codes := indexEntities(known)

	board, err := s.fitBoard(display, ks, names)
	if err != nil {
		return nil, nil, err
	}
	return board, codes, nil
}

// fitBoard hydrates the display against the configured slot count, which
// may have been lowered since the last save
func (s *HomepageDisplayService) fitBoard(display *merchandising.HomepageDisplay, ks KindSettings, names map[string]string) (*merchandising.SlotBoard, error) {
	board, truncated, err := display.Board(ks.MaxSlots, names)
	if err != nil {
		return nil, err
	}
	if truncated {
		s.logger.Warn("stored homepage layout exceeds configured slots; extra positions ignored",
			zap.String("tenant_id", display.TenantID.String()),
			zap.String("kind", string(display.Kind)),
			zap.Int("stored", len(display.Entries.Trim())),
			zap.Int("max_slots", ks.MaxSlots),
		)
	}
	return board, nil
}

// eligibleEntity resolves the entity being positioned. It must be an active
// entity of the kind, unless it is already on the draft (so an entity that
// was deactivated can still be taken off).
func (s *HomepageDisplayService) eligibleEntity(id uuid.UUID, known []CatalogEntity, board *merchandising.SlotBoard, kind merchandising.DisplayKind) (merchandising.EntityRef, error) {
	_, onBoard := board.SlotOf(id.String())
	for _, e := range known {
		if e.ID != id {
			continue
		}
		if !e.Active && !onBoard {
			return merchandising.EntityRef{}, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s is not active and cannot be shown on the homepage", e.Name))
		}
		return merchandising.EntityRef{ID: id.String(), Name: e.Name}, nil
	}
	if onBoard {
		return merchandising.EntityRef{ID: id.String()}, nil
	}
	return merchandising.EntityRef{}, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("No %s with id %s", singular(kind), id))
}

// releaseKey gives back a claimed idempotency key. It runs after the
// request may already be cancelled, so the store call is detached from it.
func (s *HomepageDisplayService) releaseKey(ctx context.Context, key string) {
	if err := s.idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
		logger.L(ctx, s.logger).Warn("failed to release idempotency key",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *HomepageDisplayService) publishEvents(ctx context.Context, display *merchandising.HomepageDisplay) {
	events := display.PullDomainEvents()
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		logger.L(ctx, s.logger).Error("failed to publish domain events",
			zap.String("aggregate_id", display.ID.String()),
			zap.Error(err),
		)
	}
}

func saveResult(err error) telemetry.SaveResult {
	var domainErr *shared.DomainError
	switch {
	case err == nil:
		return telemetry.SaveResultSaved
	case errors.Is(err, ErrDuplicateSubmission):
		return telemetry.SaveResultDuplicate
	case errors.As(err, &domainErr):
		return telemetry.SaveResultRejected
	default:
		return telemetry.SaveResultFailed
	}
}

// canonicalLayout parses every non-empty entry as a UUID and rewrites it in
// canonical form
func canonicalLayout(entries []string) (merchandising.Layout, []uuid.UUID, error) {
	layout := make(merchandising.Layout, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for i, raw := range entries {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, shared.NewDomainError(merchandising.ErrInvalidLayout.Code, fmt.Sprintf("Position %d: %q is not a valid id", i+1, raw))
		}
		layout[i] = id.String()
		ids = append(ids, id)
	}
	return layout.Trim(), ids, nil
}

func requireActive(kind merchandising.DisplayKind, ids []uuid.UUID, known []CatalogEntity) error {
	byID := make(map[uuid.UUID]CatalogEntity, len(known))
	for _, e := range known {
		byID[e.ID] = e
	}
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return shared.NewDomainError(merchandising.ErrInvalidLayout.Code, fmt.Sprintf("No %s with id %s", singular(kind), id))
		}
		if !e.Active {
			return shared.NewDomainError(merchandising.ErrInvalidLayout.Code, fmt.Sprintf("%s is not active and cannot be shown on the homepage", e.Name))
		}
	}
	return nil
}

func indexEntities(entities []CatalogEntity) (names, codes map[string]string) {
	names = make(map[string]string, len(entities))
	codes = make(map[string]string, len(entities))
	for _, e := range entities {
		names[e.ID.String()] = e.Name
		codes[e.ID.String()] = e.Code
	}
	return names, codes
}

func singular(kind merchandising.DisplayKind) string {
	if kind == merchandising.DisplayKindManufacturers {
		return "manufacturer"
	}
	return "category"
}

func toAssignResponse(outcome merchandising.Outcome, board *merchandising.SlotBoard, codes map[string]string) *AssignResponse {
	resp := &AssignResponse{
		Outcome:          string(outcome.Kind),
		Entity:           toEntityRefResponse(outcome.Entity),
		Slot:             int(outcome.Slot),
		PreviousSlot:     int(outcome.PreviousSlot),
		HomepageEntities: board.Materialize(),
		Slots:            toSlotResponses(board, codes),
	}
	if outcome.Evicted != nil {
		evicted := toEntityRefResponse(*outcome.Evicted)
		resp.Evicted = &evicted
	}
	if d := outcome.Displaced; d != nil {
		resp.Displaced = &DisplacementResponse{
			Entity: toEntityRefResponse(d.Entity),
			From:   int(d.From),
			To:     int(d.To),
		}
	}
	if c := outcome.Conflict; c != nil {
		resp.Conflict = &ConflictResponse{
			Slot:         int(c.Slot),
			OccupantID:   c.Occupant.ID,
			OccupantName: c.Occupant.DisplayName(),
			Message:      fmt.Sprintf("Slot %d is already used by %s. Move it to the next free slot?", c.Slot, c.Occupant.DisplayName()),
		}
	}
	return resp
}
