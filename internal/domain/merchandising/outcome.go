package merchandising

// OutcomeKind describes what an assignment request did to the board
type OutcomeKind string

const (
	OutcomeAssigned   OutcomeKind = "assigned"
	OutcomeUnassigned OutcomeKind = "unassigned"
	OutcomeUnchanged  OutcomeKind = "unchanged"
	OutcomeEvicted    OutcomeKind = "evicted"
	OutcomeConflict   OutcomeKind = "conflict"
	OutcomeDisplaced  OutcomeKind = "displaced"
)

// Outcome is the result of an assignment request.
// Slot is the requested slot (0 for unassign); PreviousSlot is the slot the
// entity held before the request (0 if none).
type Outcome struct {
	Kind         OutcomeKind
	Entity       EntityRef
	Slot         Slot
	PreviousSlot Slot
	Evicted      *EntityRef
	Displaced    *Displacement
	Conflict     *Conflict
}

// Displacement records where a displaced occupant went.
// To is 0 when no slot was free and the occupant left the board.
type Displacement struct {
	Entity EntityRef `json:"entity"`
	From   Slot      `json:"from"`
	To     Slot      `json:"to"`
}

// Conflict is a pending collision under PolicyDisplace.
// The board is untouched until Resolve is called.
type Conflict struct {
	Slot     Slot
	Occupant EntityRef

	entity   EntityRef
	board    *SlotBoard
	resolved bool
}

// Resolve commits the displacement against the board's current state.
// It can be called once.
func (c *Conflict) Resolve() (Outcome, error) {
	if c.resolved {
		return Outcome{}, ErrConflictResolved
	}
	c.resolved = true
	return c.board.displace(c.entity, c.Slot), nil
}

// Resolved reports whether Resolve has been called
func (c *Conflict) Resolved() bool {
	return c.resolved
}
