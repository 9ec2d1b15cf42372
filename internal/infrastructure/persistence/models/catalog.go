package models

import (
	"github.com/shopadmin/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for catalog.Category
type CategoryModel struct {
	TenantAggregateModel
	Code        string                 `gorm:"type:varchar(50);not null"`
	Name        string                 `gorm:"type:varchar(100);not null"`
	Description string                 `gorm:"type:text"`
	SortOrder   int                    `gorm:"not null;default:0"`
	Status      catalog.CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		SortOrder:           m.SortOrder,
		Status:              m.Status,
	}
}

// FromDomain populates the model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Description = c.Description
	m.SortOrder = c.SortOrder
	m.Status = c.Status
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ManufacturerModel is the persistence model for catalog.Manufacturer
type ManufacturerModel struct {
	TenantAggregateModel
	Code        string                     `gorm:"type:varchar(50);not null"`
	Name        string                     `gorm:"type:varchar(100);not null"`
	Description string                     `gorm:"type:text"`
	Website     string                     `gorm:"type:varchar(255)"`
	SortOrder   int                        `gorm:"not null;default:0"`
	Status      catalog.ManufacturerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ManufacturerModel) TableName() string {
	return "manufacturers"
}

// ToDomain converts the model to a domain Manufacturer
func (m *ManufacturerModel) ToDomain() *catalog.Manufacturer {
	return &catalog.Manufacturer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		Website:             m.Website,
		SortOrder:           m.SortOrder,
		Status:              m.Status,
	}
}

// FromDomain populates the model from a domain Manufacturer
func (m *ManufacturerModel) FromDomain(mf *catalog.Manufacturer) {
	m.FromDomainTenantAggregateRoot(mf.TenantAggregateRoot)
	m.Code = mf.Code
	m.Name = mf.Name
	m.Description = mf.Description
	m.Website = mf.Website
	m.SortOrder = mf.SortOrder
	m.Status = mf.Status
}

// ManufacturerModelFromDomain creates a model from a domain Manufacturer
func ManufacturerModelFromDomain(mf *catalog.Manufacturer) *ManufacturerModel {
	m := &ManufacturerModel{}
	m.FromDomain(mf)
	return m
}
