package catalog

import (
	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// CategoryStatus is the lifecycle state of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = statusActive
	CategoryStatusInactive CategoryStatus = statusInactive
)

// Category is a product category that can be featured on the homepage.
// Only active categories are eligible for homepage slots.
type Category struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	SortOrder   int
	Status      CategoryStatus
}

// NewCategory creates an active category; the code is stored upper-cased
func NewCategory(tenantID uuid.UUID, code, name string) (*Category, error) {
	normalized, err := normalizeCode("Category", code)
	if err != nil {
		return nil, err
	}
	if err := validateName("Category", name); err != nil {
		return nil, err
	}

	c := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                normalized,
		Name:                name,
		Status:              CategoryStatusActive,
	}
	c.AddDomainEvent(NewCategoryCreatedEvent(c))
	return c, nil
}

func (c *Category) Update(name, description string) error {
	if err := validateName("Category", name); err != nil {
		return err
	}
	if err := validateDescription("Category", description); err != nil {
		return err
	}

	c.Name, c.Description = name, description
	c.Touch()
	c.AddDomainEvent(NewCategoryUpdatedEvent(c))
	return nil
}

func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.Touch()
}

func (c *Category) Activate() error {
	return c.setStatus(CategoryStatusActive)
}

func (c *Category) Deactivate() error {
	return c.setStatus(CategoryStatusInactive)
}

func (c *Category) setStatus(target CategoryStatus) error {
	previous, err := switchStatus("Category", &c.Status, target)
	if err != nil {
		return err
	}
	c.Touch()
	c.AddDomainEvent(NewCategoryStatusChangedEvent(c, previous, target))
	return nil
}

// MarkDeleted records the deletion event; the repository removes the row
func (c *Category) MarkDeleted() {
	c.AddDomainEvent(NewCategoryDeletedEvent(c))
}

func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}
