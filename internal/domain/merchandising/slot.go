// Package merchandising holds the homepage display model: the slot board that
// positions entities in a bounded range of display-order numbers, the
// positional layout it is persisted as, and the HomepageDisplay aggregate.
package merchandising

import (
	"fmt"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// DefaultMaxSlots is the number of homepage slots used when none is configured
const DefaultMaxSlots = 9

// Slot is a 1-based display-order position on the homepage
type Slot int

// EntityRef identifies an entity placed on the board.
// Name is only used to describe the entity in conflict prompts.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns the name, falling back to the ID
func (e EntityRef) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// ResolutionPolicy decides what happens when an entity is assigned to a slot
// held by another entity.
type ResolutionPolicy string

const (
	// PolicyEvict removes the occupant from the board outright
	PolicyEvict ResolutionPolicy = "evict"
	// PolicyDisplace asks for confirmation, then moves the occupant to the
	// lowest free slot (or off the board when none is free)
	PolicyDisplace ResolutionPolicy = "displace"
)

// ParseResolutionPolicy parses a policy name
func ParseResolutionPolicy(s string) (ResolutionPolicy, error) {
	switch ResolutionPolicy(s) {
	case PolicyEvict, PolicyDisplace:
		return ResolutionPolicy(s), nil
	default:
		return "", shared.NewDomainError("INVALID_POLICY", fmt.Sprintf("Unknown resolution policy %q", s))
	}
}

// DisplayKind is the kind of entity a homepage display positions
type DisplayKind string

const (
	DisplayKindCategories    DisplayKind = "categories"
	DisplayKindManufacturers DisplayKind = "manufacturers"
)

// AllDisplayKinds lists every supported display kind
var AllDisplayKinds = []DisplayKind{DisplayKindCategories, DisplayKindManufacturers}

// ParseDisplayKind parses a display kind from a path segment
func ParseDisplayKind(s string) (DisplayKind, error) {
	switch DisplayKind(s) {
	case DisplayKindCategories, DisplayKindManufacturers:
		return DisplayKind(s), nil
	default:
		return "", ErrUnknownDisplayKind
	}
}
