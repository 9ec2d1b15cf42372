package telemetry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// SaveResult labels the end state of a homepage save
type SaveResult string

const (
	SaveResultSaved     SaveResult = "saved"
	SaveResultDuplicate SaveResult = "duplicate"
	SaveResultRejected  SaveResult = "rejected"
	SaveResultFailed    SaveResult = "failed"
)

// ConflictResolution labels what happened to a displace collision
type ConflictResolution string

const (
	ConflictPending   ConflictResolution = "pending"
	ConflictConfirmed ConflictResolution = "confirmed"
)

// HomepageMetrics counts homepage slot assignments and saves by display
// kind. A nil *HomepageMetrics records nothing.
type HomepageMetrics struct {
	assignTotal   *Counter
	conflictTotal *Counter
	saveTotal     *Counter
}

// NewHomepageMetrics registers the homepage counters on meter
func NewHomepageMetrics(meter metric.Meter) (*HomepageMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &HomepageMetrics{}
	var err error
	if m.assignTotal, err = NewCounter(meter,
		"shop_homepage_assignment_total",
		"Slot assignment requests by display kind and outcome",
		"{requests}",
	); err != nil {
		return nil, err
	}
	if m.conflictTotal, err = NewCounter(meter,
		"shop_homepage_conflict_total",
		"Displace collisions by display kind and whether they were confirmed",
		"{conflicts}",
	); err != nil {
		return nil, err
	}
	if m.saveTotal, err = NewCounter(meter,
		"shop_homepage_save_total",
		"Homepage display saves by display kind and result",
		"{saves}",
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordAssignment counts one assignment request with its final outcome
func (m *HomepageMetrics) RecordAssignment(ctx context.Context, tenantID uuid.UUID, kind, outcome string) {
	if m == nil {
		return
	}
	m.assignTotal.Inc(ctx,
		LabelTenantID.String(tenantID.String()),
		LabelDisplayKind.String(kind),
		LabelOutcome.String(outcome),
	)
}

// RecordConflict counts a displace collision
func (m *HomepageMetrics) RecordConflict(ctx context.Context, tenantID uuid.UUID, kind string, resolution ConflictResolution) {
	if m == nil {
		return
	}
	m.conflictTotal.Inc(ctx,
		LabelTenantID.String(tenantID.String()),
		LabelDisplayKind.String(kind),
		LabelOutcome.String(string(resolution)),
	)
}

// RecordSave counts one save attempt
func (m *HomepageMetrics) RecordSave(ctx context.Context, tenantID uuid.UUID, kind string, result SaveResult) {
	if m == nil {
		return
	}
	m.saveTotal.Inc(ctx,
		LabelTenantID.String(tenantID.String()),
		LabelDisplayKind.String(kind),
		LabelOutcome.String(string(result)),
	)
}
