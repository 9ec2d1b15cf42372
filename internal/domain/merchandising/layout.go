package merchandising

// Layout is the persisted form of a board: index i holds the entity ID in
// slot i+1, or "" when that slot is empty. Trailing empties are trimmed, so
// len(layout) is the highest occupied slot.
type Layout []string

// Trim drops trailing empty positions
func (l Layout) Trim() Layout {
	end := len(l)
	for end > 0 && l[end-1] == "" {
		end--
	}
	return l[:end]
}

// IDs returns the non-empty entity IDs in slot order
func (l Layout) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, id := range l {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Without returns a copy of the layout with entityID removed from its slot.
// The second result reports whether the entity was present.
func (l Layout) Without(entityID string) (Layout, bool) {
	out := make(Layout, len(l))
	found := false
	for i, id := range l {
		if id == entityID {
			found = true
			continue
		}
		out[i] = id
	}
	return out.Trim(), found
}

// Materialize renders the board as a Layout
func (b *SlotBoard) Materialize() Layout {
	highest := Slot(0)
	for s := range b.slots {
		if s > highest {
			highest = s
		}
	}
	layout := make(Layout, highest)
	for s, e := range b.slots {
		layout[s-1] = e.ID
	}
	return layout
}

// HydrateSlotBoard rebuilds a board from a Layout. names supplies display
// names by entity ID and may be nil. Layouts longer than maxSlots, or that
// place one entity twice, are rejected.
func HydrateSlotBoard(maxSlots int, layout Layout, names map[string]string) (*SlotBoard, error) {
	board, err := NewSlotBoard(maxSlots)
	if err != nil {
		return nil, err
	}

	trimmed := layout.Trim()
	if len(trimmed) > maxSlots {
		return nil, invalidLayout("Homepage layout has %d positions but only %d slots are available", len(trimmed), maxSlots)
	}

	for i, id := range trimmed {
		if id == "" {
			continue
		}
		if prev, dup := board.byEntity[id]; dup {
			return nil, invalidLayout("Entity %s appears in slots %d and %d", id, prev, i+1)
		}
		board.put(Slot(i+1), EntityRef{ID: id, Name: names[id]})
	}

	return board, nil
}
