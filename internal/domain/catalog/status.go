package catalog

import "github.com/shopadmin/backend/internal/domain/shared"

const (
	statusActive   = "active"
	statusInactive = "inactive"
)

// switchStatus moves *current to target and reports the status it left.
// Switching to the status already held is an invalid state transition.
func switchStatus[S ~string](entity string, current *S, target S) (S, error) {
	previous := *current
	if previous == target {
		code := "ALREADY_ACTIVE"
		if target == statusInactive {
			code = "ALREADY_INACTIVE"
		}
		return previous, shared.NewDomainError(code, entity+" is already "+string(target))
	}
	*current = target
	return previous, nil
}

// newEvent stamps an event raised by a catalog aggregate
func newEvent(eventType, aggregateType string, root *shared.TenantAggregateRoot) shared.BaseDomainEvent {
	return shared.NewBaseDomainEvent(eventType, aggregateType, root.ID, root.TenantID)
}
