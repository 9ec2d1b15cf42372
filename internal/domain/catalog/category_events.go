package catalog

import (
	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

const AggregateTypeCategory = "Category"

const (
	EventTypeCategoryCreated       = "CategoryCreated"
	EventTypeCategoryUpdated       = "CategoryUpdated"
	EventTypeCategoryStatusChanged = "CategoryStatusChanged"
	EventTypeCategoryDeleted       = "CategoryDeleted"
)

// CategoryCreatedEvent carries the identity of a new category
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

func NewCategoryCreatedEvent(c *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: newEvent(EventTypeCategoryCreated, AggregateTypeCategory, &c.TenantAggregateRoot),
		CategoryID:      c.ID,
		Code:            c.Code,
		Name:            c.Name,
	}
}

// CategoryUpdatedEvent carries the name after an update
type CategoryUpdatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

func NewCategoryUpdatedEvent(c *Category) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		BaseDomainEvent: newEvent(EventTypeCategoryUpdated, AggregateTypeCategory, &c.TenantAggregateRoot),
		CategoryID:      c.ID,
		Code:            c.Code,
		Name:            c.Name,
	}
}

// CategoryStatusChangedEvent is raised on activation and deactivation.
// Deactivation takes the category off every homepage display.
type CategoryStatusChangedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID      `json:"category_id"`
	Code       string         `json:"code"`
	OldStatus  CategoryStatus `json:"old_status"`
	NewStatus  CategoryStatus `json:"new_status"`
}

func NewCategoryStatusChangedEvent(c *Category, from, to CategoryStatus) *CategoryStatusChangedEvent {
	return &CategoryStatusChangedEvent{
		BaseDomainEvent: newEvent(EventTypeCategoryStatusChanged, AggregateTypeCategory, &c.TenantAggregateRoot),
		CategoryID:      c.ID,
		Code:            c.Code,
		OldStatus:       from,
		NewStatus:       to,
	}
}

// CategoryDeletedEvent is raised before the row is removed
type CategoryDeletedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Code       string    `json:"code"`
}

func NewCategoryDeletedEvent(c *Category) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseDomainEvent: newEvent(EventTypeCategoryDeleted, AggregateTypeCategory, &c.TenantAggregateRoot),
		CategoryID:      c.ID,
		Code:            c.Code,
	}
}
