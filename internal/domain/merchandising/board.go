package merchandising

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// SlotBoard maps display-order slots 1..MaxSlots to entities.
// An entity holds at most one slot and a slot holds at most one entity.
// A board is not safe for concurrent use.
type SlotBoard struct {
	maxSlots int
	slots    map[Slot]EntityRef
	byEntity map[string]Slot
}

// Assignment is one occupied slot
type Assignment struct {
	Slot   Slot      `json:"slot"`
	Entity EntityRef `json:"entity"`
}

// NewSlotBoard creates an empty board with maxSlots slots
func NewSlotBoard(maxSlots int) (*SlotBoard, error) {
	if maxSlots < 1 {
		return nil, ErrInvalidMaxSlots
	}
	return &SlotBoard{
		maxSlots: maxSlots,
		slots:    make(map[Slot]EntityRef),
		byEntity: make(map[string]Slot),
	}, nil
}

// MaxSlots returns the number of slots on the board
func (b *SlotBoard) MaxSlots() int {
	return b.maxSlots
}

// Len returns the number of occupied slots
func (b *SlotBoard) Len() int {
	return len(b.slots)
}

// SlotOf returns the slot held by the entity
func (b *SlotBoard) SlotOf(entityID string) (Slot, bool) {
	s, ok := b.byEntity[entityID]
	return s, ok
}

// Occupant returns the entity holding the slot
func (b *SlotBoard) Occupant(slot Slot) (EntityRef, bool) {
	e, ok := b.slots[slot]
	return e, ok
}

// Assignments returns the occupied slots in ascending slot order
func (b *SlotBoard) Assignments() []Assignment {
	out := make([]Assignment, 0, len(b.slots))
	for s, e := range b.slots {
		out = append(out, Assignment{Slot: s, Entity: e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// Snapshot returns a copy of the slot to entity mapping
func (b *SlotBoard) Snapshot() map[Slot]EntityRef {
	out := make(map[Slot]EntityRef, len(b.slots))
	for s, e := range b.slots {
		out[s] = e
	}
	return out
}

// RequestAssignment moves entity to the slot typed in rawInput.
//
// Blank or non-positive input unassigns the entity. Input that is not a whole
// number, or that is above MaxSlots, is rejected and the board is left as it
// was. When the slot is held by another entity the policy decides: PolicyEvict
// removes the occupant and returns OutcomeEvicted, PolicyDisplace returns
// OutcomeConflict without touching the board and the caller commits with
// Outcome.Conflict.Resolve.
func (b *SlotBoard) RequestAssignment(entity EntityRef, rawInput string, policy ResolutionPolicy) (Outcome, error) {
	target, unassign, err := b.parseSlot(rawInput)
	if err != nil {
		return Outcome{}, err
	}

	prev, hadPrev := b.byEntity[entity.ID]

	if unassign {
		b.remove(entity.ID)
		return Outcome{Kind: OutcomeUnassigned, Entity: entity, PreviousSlot: prev}, nil
	}

	if hadPrev && prev == target {
		return Outcome{Kind: OutcomeUnchanged, Entity: entity, Slot: target, PreviousSlot: prev}, nil
	}

	occupant, occupied := b.slots[target]
	if !occupied {
		b.remove(entity.ID)
		b.put(target, entity)
		return Outcome{Kind: OutcomeAssigned, Entity: entity, Slot: target, PreviousSlot: prev}, nil
	}

	if policy == PolicyDisplace {
		return Outcome{
			Kind:         OutcomeConflict,
			Entity:       entity,
			Slot:         target,
			PreviousSlot: prev,
			Conflict:     &Conflict{Slot: target, Occupant: occupant, entity: entity, board: b},
		}, nil
	}

	b.remove(entity.ID)
	b.remove(occupant.ID)
	b.put(target, entity)
	evicted := occupant
	return Outcome{Kind: OutcomeEvicted, Entity: entity, Slot: target, PreviousSlot: prev, Evicted: &evicted}, nil
}

// ConflictHandler is called when an assignment collides under PolicyDisplace.
// Calling confirm commits the displacement; not calling it leaves the board as
// it was.
type ConflictHandler func(slot Slot, occupantName string, confirm func() error)

// RequestAssignmentWithConfirm is RequestAssignment with the collision routed
// to onConflict instead of being returned.
func (b *SlotBoard) RequestAssignmentWithConfirm(entity EntityRef, rawInput string, policy ResolutionPolicy, onConflict ConflictHandler) (Outcome, error) {
	outcome, err := b.RequestAssignment(entity, rawInput, policy)
	if err != nil || outcome.Kind != OutcomeConflict || onConflict == nil {
		return outcome, err
	}
	c := outcome.Conflict
	onConflict(c.Slot, c.Occupant.DisplayName(), func() error {
		_, err := c.Resolve()
		return err
	})
	return outcome, nil
}

// displace puts entity on slot, moving the current occupant to the lowest
// free slot other than slot, or off the board when every slot is taken.
func (b *SlotBoard) displace(entity EntityRef, slot Slot) Outcome {
	prev, hadPrev := b.byEntity[entity.ID]
	if hadPrev && prev == slot {
		return Outcome{Kind: OutcomeUnchanged, Entity: entity, Slot: slot, PreviousSlot: prev}
	}

	b.remove(entity.ID)

	occupant, occupied := b.slots[slot]
	if !occupied {
		b.put(slot, entity)
		return Outcome{Kind: OutcomeAssigned, Entity: entity, Slot: slot, PreviousSlot: prev}
	}

	b.remove(occupant.ID)
	to := b.lowestFreeExcept(slot)
	if to != 0 {
		b.put(to, occupant)
	}
	b.put(slot, entity)

	return Outcome{
		Kind:         OutcomeDisplaced,
		Entity:       entity,
		Slot:         slot,
		PreviousSlot: prev,
		Displaced:    &Displacement{Entity: occupant, From: slot, To: to},
	}
}

// parseSlot validates raw input before anything on the board changes
func (b *SlotBoard) parseSlot(raw string) (slot Slot, unassign bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, true, nil
	}

	v, perr := strconv.ParseFloat(trimmed, 64)
	if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, invalidSlotInput(raw)
	}
	if v <= 0 {
		return 0, true, nil
	}
	if v > float64(b.maxSlots) {
		return 0, false, slotOutOfRange(b.maxSlots)
	}
	if v != math.Trunc(v) {
		return 0, false, invalidSlotInput(raw)
	}
	return Slot(v), false, nil
}

func (b *SlotBoard) lowestFreeExcept(skip Slot) Slot {
	for s := Slot(1); s <= Slot(b.maxSlots); s++ {
		if s == skip {
			continue
		}
		if _, taken := b.slots[s]; !taken {
			return s
		}
	}
	return 0
}

func (b *SlotBoard) put(slot Slot, entity EntityRef) {
	b.slots[slot] = entity
	b.byEntity[entity.ID] = slot
}

func (b *SlotBoard) remove(entityID string) {
	if s, ok := b.byEntity[entityID]; ok {
		delete(b.slots, s)
		delete(b.byEntity, entityID)
	}
}
