package merchandising

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/merchandising"
)

// SaveDisplayRequest is the body of a homepage display save
type SaveDisplayRequest struct {
	HomepageEntities []string `json:"homepage_entities" binding:"required,max=100"`
}

// AssignRequest asks for one entity to be moved on a draft layout
type AssignRequest struct {
	HomepageEntities []string `json:"homepage_entities" binding:"max=100"`
	EntityID         string   `json:"entity_id" binding:"required,uuid"`
	Input            string   `json:"input" binding:"max=32"`
	Confirm          bool     `json:"confirm"`
}

// SlotResponse is one occupied slot
type SlotResponse struct {
	Slot     int    `json:"slot"`
	EntityID string `json:"entity_id"`
	Code     string `json:"code,omitempty"`
	Name     string `json:"name"`
}

// DisplayResponse is a homepage display in API responses
type DisplayResponse struct {
	Kind             string         `json:"kind"`
	MaxSlots         int            `json:"max_slots"`
	Policy           string         `json:"policy"`
	HomepageEntities []string       `json:"homepage_entities"`
	Slots            []SlotResponse `json:"slots"`
	Version          int            `json:"version"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`
}

// CandidateResponse is an active entity that can be placed on the homepage
type CandidateResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Slot      int    `json:"slot"`
}

// EntityRefResponse names an entity
type EntityRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplacementResponse describes where a displaced entity went.
// To is 0 when it left the homepage.
type DisplacementResponse struct {
	Entity EntityRefResponse `json:"entity"`
	From   int               `json:"from"`
	To     int               `json:"to"`
}

// ConflictResponse describes a collision waiting for confirmation
type ConflictResponse struct {
	Slot         int    `json:"slot"`
	OccupantID   string `json:"occupant_id"`
	OccupantName string `json:"occupant_name"`
	Message      string `json:"message"`
}

// AssignResponse is the result of an assignment on a draft layout
type AssignResponse struct {
	Outcome          string                `json:"outcome"`
	Entity           EntityRefResponse     `json:"entity"`
	Slot             int                   `json:"slot"`
	PreviousSlot     int                   `json:"previous_slot"`
	Evicted          *EntityRefResponse    `json:"evicted,omitempty"`
	Displaced        *DisplacementResponse `json:"displaced,omitempty"`
	Conflict         *ConflictResponse     `json:"conflict,omitempty"`
	HomepageEntities []string              `json:"homepage_entities"`
	Slots            []SlotResponse        `json:"slots"`
}

func toEntityRefResponse(e merchandising.EntityRef) EntityRefResponse {
	return EntityRefResponse{ID: e.ID, Name: e.DisplayName()}
}

func toSlotResponses(board *merchandising.SlotBoard, codes map[string]string) []SlotResponse {
	assignments := board.Assignments()
	out := make([]SlotResponse, len(assignments))
	for i, a := range assignments {
		out[i] = SlotResponse{
			Slot:     int(a.Slot),
			EntityID: a.Entity.ID,
			Code:     codes[a.Entity.ID],
			Name:     a.Entity.DisplayName(),
		}
	}
	return out
}
