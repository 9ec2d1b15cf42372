package merchandising

import (
	"github.com/shopadmin/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeHomepageDisplay = "HomepageDisplay"

// Event type constants
const (
	EventTypeHomepageDisplayUpdated = "HomepageDisplayUpdated"
)

// HomepageDisplayUpdatedEvent is published when a display's layout changes
type HomepageDisplayUpdatedEvent struct {
	shared.BaseDomainEvent
	Kind            DisplayKind `json:"kind"`
	Entries         Layout      `json:"entries"`
	PreviousEntries Layout      `json:"previous_entries"`
	Reason          string      `json:"reason"`
	Version         int         `json:"version"`
}

// NewHomepageDisplayUpdatedEvent creates a new HomepageDisplayUpdatedEvent
func NewHomepageDisplayUpdatedEvent(d *HomepageDisplay, previous Layout, reason string) *HomepageDisplayUpdatedEvent {
	return &HomepageDisplayUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHomepageDisplayUpdated, AggregateTypeHomepageDisplay, d.ID, d.TenantID),
		Kind:            d.Kind,
		Entries:         d.Entries,
		PreviousEntries: previous,
		Reason:          reason,
		Version:         d.Version,
	}
}
