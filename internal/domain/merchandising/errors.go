package merchandising

import (
	"fmt"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// Engine errors. They compare by code with errors.Is, so the message may carry
// request specific detail.
var (
	ErrInvalidSlotInput   = shared.NewDomainError("INVALID_SLOT_INPUT", "Display order must be a whole number")
	ErrSlotOutOfRange     = shared.NewDomainError("SLOT_OUT_OF_RANGE", "Display order is out of range")
	ErrInvalidLayout      = shared.NewDomainError("INVALID_LAYOUT", "Homepage layout is invalid")
	ErrConflictResolved   = shared.NewDomainError("CONFLICT_RESOLVED", "Conflict has already been resolved")
	ErrUnknownDisplayKind = shared.NewDomainError("UNKNOWN_DISPLAY_KIND", "Unknown homepage display kind")
	ErrInvalidMaxSlots    = shared.NewDomainError("INVALID_MAX_SLOTS", "Number of homepage slots must be at least 1")
)

func slotOutOfRange(maxSlots int) error {
	return shared.NewDomainError(ErrSlotOutOfRange.Code, fmt.Sprintf("Enter a number between 1 and %d", maxSlots))
}

func invalidSlotInput(raw string) error {
	return shared.NewDomainError(ErrInvalidSlotInput.Code, fmt.Sprintf("%q is not a valid display order", raw))
}

func invalidLayout(format string, args ...any) error {
	return shared.NewDomainError(ErrInvalidLayout.Code, fmt.Sprintf(format, args...))
}
