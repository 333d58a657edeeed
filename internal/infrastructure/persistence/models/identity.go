package models

import (
	"github.com/camphq/backend/internal/domain/identity"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	AggregateModel
	Code           string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string                `gorm:"type:varchar(200);not null"`
	Slug           string                `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status         identity.TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName    string                `gorm:"type:varchar(100)"`
	ContactPhone   string                `gorm:"type:varchar(50)"`
	ContactEmail   string                `gorm:"type:varchar(200)"`
	TaxRatePercent decimal.Decimal       `gorm:"type:decimal(6,3);not null;default:0"`
	IsDefault      bool                  `gorm:"not null;default:false"`
	Notes          string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Code:           m.Code,
		Name:           m.Name,
		Slug:           m.Slug,
		Status:         m.Status,
		ContactName:    m.ContactName,
		ContactPhone:   m.ContactPhone,
		ContactEmail:   m.ContactEmail,
		TaxRatePercent: m.TaxRatePercent,
		IsDefault:      m.IsDefault,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.Slug = t.Slug
	m.Status = t.Status
	m.ContactName = t.ContactName
	m.ContactPhone = t.ContactPhone
	m.ContactEmail = t.ContactEmail
	m.TaxRatePercent = t.TaxRatePercent
	m.IsDefault = t.IsDefault
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}
