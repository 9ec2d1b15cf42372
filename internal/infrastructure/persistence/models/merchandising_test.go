package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/merchandising"
)

func TestHomepageDisplayModel_RoundTrip(t *testing.T) {
	tenantID := uuid.New()
	display, err := merchandising.NewHomepageDisplay(tenantID, merchandising.DisplayKindCategories, 9)
	require.NoError(t, err)
	display.Entries = merchandising.Layout{"a", "", "c", "", ""}
	display.Version = 4

	model := HomepageDisplayModelFromDomain(display)
	assert.Equal(t, "homepage_displays", model.TableName())
	assert.Equal(t, []string{"a", "", "c"}, model.Entries)
	assert.Equal(t, tenantID, model.TenantID)

	back := model.ToDomain()
	assert.Equal(t, display.ID, back.ID)
	assert.Equal(t, tenantID, back.TenantID)
	assert.Equal(t, merchandising.DisplayKindCategories, back.Kind)
	assert.Equal(t, 9, back.MaxSlots)
	assert.Equal(t, 4, back.Version)
	assert.Equal(t, merchandising.Layout{"a", "", "c"}, back.Entries)
}

func TestHomepageDisplayModel_EmptyEntries(t *testing.T) {
	model := &HomepageDisplayModel{ID: uuid.New(), Kind: merchandising.DisplayKindManufacturers}
	d := model.ToDomain()
	assert.NotNil(t, d.Entries)
	assert.Empty(t, d.Entries)

	model.FromDomain(d)
	assert.NotNil(t, model.Entries)
}

func TestCategoryModel_RoundTrip(t *testing.T) {
	c, err := catalog.NewCategory(uuid.New(), "tools", "Tools")
	require.NoError(t, err)
	c.SortOrder = 3
	c.Description = "Hand tools"

	m := CategoryModelFromDomain(c)
	assert.Equal(t, "categories", m.TableName())
	assert.Equal(t, "TOOLS", m.Code)

	back := m.ToDomain()
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.TenantID, back.TenantID)
	assert.Equal(t, "Hand tools", back.Description)
	assert.Equal(t, 3, back.SortOrder)
	assert.Equal(t, catalog.CategoryStatusActive, back.Status)
	assert.WithinDuration(t, c.CreatedAt, back.CreatedAt, time.Millisecond)
	assert.Empty(t, back.GetDomainEvents())
}

func TestManufacturerModel_RoundTrip(t *testing.T) {
	mf, err := catalog.NewManufacturer(uuid.New(), "acme", "Acme")
	require.NoError(t, err)
	mf.Website = "https://acme.example"
	mf.Status = catalog.ManufacturerStatusInactive

	m := ManufacturerModelFromDomain(mf)
	assert.Equal(t, "manufacturers", m.TableName())

	back := m.ToDomain()
	assert.Equal(t, mf.ID, back.ID)
	assert.Equal(t, "ACME", back.Code)
	assert.Equal(t, "https://acme.example", back.Website)
	assert.Equal(t, catalog.ManufacturerStatusInactive, back.Status)
}
