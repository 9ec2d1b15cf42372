package merchandising

import (
	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// HomepageDisplay is the saved homepage layout for one display kind of a
// tenant. It is always replaced as a whole; concurrent saves are last write
// wins and Version is informational.
type HomepageDisplay struct {
	shared.TenantAggregateRoot
	Kind     DisplayKind
	MaxSlots int
	Entries  Layout
}

// NewHomepageDisplay creates an empty display
func NewHomepageDisplay(tenantID uuid.UUID, kind DisplayKind, maxSlots int) (*HomepageDisplay, error) {
	if _, err := ParseDisplayKind(string(kind)); err != nil {
		return nil, err
	}
	if maxSlots < 1 {
		return nil, ErrInvalidMaxSlots
	}
	return &HomepageDisplay{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		MaxSlots:            maxSlots,
		Entries:             Layout{},
	}, nil
}

// Board hydrates the stored layout against maxSlots. Positions beyond
// maxSlots, left behind when the slot count was lowered after a save, are
// dropped and truncated is set. The stored entries are not modified.
func (d *HomepageDisplay) Board(maxSlots int, names map[string]string) (_ *SlotBoard, truncated bool, err error) {
	layout := d.Entries.Trim()
	if len(layout) > maxSlots {
		layout = layout[:max(maxSlots, 0)].Trim()
		truncated = true
	}
	board, err := HydrateSlotBoard(maxSlots, layout, names)
	return board, truncated, err
}

// Replace stores the board's layout
func (d *HomepageDisplay) Replace(board *SlotBoard) {
	previous := d.Entries
	d.Entries = board.Materialize()
	d.MaxSlots = board.MaxSlots()
	d.Touch()
	d.AddDomainEvent(NewHomepageDisplayUpdatedEvent(d, previous, "save"))
}

// RemoveEntity clears the slot held by entityID. It reports whether anything
// changed.
func (d *HomepageDisplay) RemoveEntity(entityID string) bool {
	previous := d.Entries
	next, found := d.Entries.Without(entityID)
	if !found {
		return false
	}
	d.Entries = next
	d.Touch()
	d.AddDomainEvent(NewHomepageDisplayUpdatedEvent(d, previous, "entity_removed"))
	return true
}
