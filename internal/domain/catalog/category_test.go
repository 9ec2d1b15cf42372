package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/shared"
)

func newTestCategory(t *testing.T) *Category {
	t.Helper()
	c, err := NewCategory(uuid.New(), "shoes", "Shoes")
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

func TestNewCategory(t *testing.T) {
	tenantID := uuid.New()

	c, err := NewCategory(tenantID, "home-garden", "Home & Garden")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, tenantID, c.TenantID)
	assert.Equal(t, "HOME-GARDEN", c.Code)
	assert.Equal(t, "Home & Garden", c.Name)
	assert.True(t, c.IsActive())
	assert.Equal(t, 1, c.GetVersion())

	events := c.PullDomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*CategoryCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, c.ID, created.CategoryID)
	assert.Equal(t, "HOME-GARDEN", created.Code)
	assert.Empty(t, c.GetDomainEvents(), "pull empties the queue")
}

func TestNewCategoryRejects(t *testing.T) {
	tests := []struct {
		name, code, title, message string
	}{
		{"empty code", "", "Shoes", "code cannot be empty"},
		{"code with symbol", "SHO@ES", "Shoes", "can only contain letters"},
		{"blank name", "SHOES", "   ", "name cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCategory(uuid.New(), tt.code, tt.title)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCategoryUpdate(t *testing.T) {
	c := newTestCategory(t)
	before := c.UpdatedAt

	require.NoError(t, c.Update("Footwear", "Boots, sneakers and sandals"))
	assert.Equal(t, "Footwear", c.Name)
	assert.Equal(t, "Boots, sneakers and sandals", c.Description)
	assert.Equal(t, 2, c.GetVersion())
	assert.False(t, c.UpdatedAt.Before(before))

	events := c.PullDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCategoryUpdated, events[0].EventType())

	t.Run("invalid input leaves the category unchanged", func(t *testing.T) {
		require.Error(t, c.Update("", "desc"))
		err := c.Update("Footwear", strings.Repeat("x", maxDescriptionLength+1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description cannot exceed")

		assert.Equal(t, "Footwear", c.Name)
		assert.Equal(t, 2, c.GetVersion())
		assert.Empty(t, c.GetDomainEvents())
	})
}

func TestCategoryStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		start    CategoryStatus
		act      func(*Category) error
		wantCode string
		want     CategoryStatus
	}{
		{"deactivate active", CategoryStatusActive, (*Category).Deactivate, "", CategoryStatusInactive},
		{"activate inactive", CategoryStatusInactive, (*Category).Activate, "", CategoryStatusActive},
		{"activate active", CategoryStatusActive, (*Category).Activate, "ALREADY_ACTIVE", CategoryStatusActive},
		{"deactivate inactive", CategoryStatusInactive, (*Category).Deactivate, "ALREADY_INACTIVE", CategoryStatusInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCategory(t)
			c.Status = tt.start
			version := c.GetVersion()

			err := tt.act(c)
			assert.Equal(t, tt.want, c.Status)

			if tt.wantCode != "" {
				var de *shared.DomainError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, tt.wantCode, de.Code)
				assert.Equal(t, version, c.GetVersion())
				assert.Empty(t, c.GetDomainEvents())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, version+1, c.GetVersion())
			events := c.PullDomainEvents()
			require.Len(t, events, 1)
			changed, ok := events[0].(*CategoryStatusChangedEvent)
			require.True(t, ok)
			assert.Equal(t, tt.start, changed.OldStatus)
			assert.Equal(t, tt.want, changed.NewStatus)
		})
	}
}

func TestCategorySortOrder(t *testing.T) {
	c := newTestCategory(t)

	c.SetSortOrder(7)

	assert.Equal(t, 7, c.SortOrder)
	assert.Equal(t, 2, c.GetVersion())
	assert.Empty(t, c.GetDomainEvents())
}

func TestCategoryMarkDeleted(t *testing.T) {
	c := newTestCategory(t)

	c.MarkDeleted()

	events := c.PullDomainEvents()
	require.Len(t, events, 1)
	deleted, ok := events[0].(*CategoryDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, c.ID, deleted.CategoryID)
	assert.Equal(t, c.ID, deleted.AggregateID())
	assert.Equal(t, c.TenantID, deleted.TenantID())
	assert.Equal(t, AggregateTypeCategory, deleted.AggregateType())
}
