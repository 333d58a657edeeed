package models

import (
	"time"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampModel is the persistence model for the Camp domain entity.
// TenantID stays the zero UUID until checkout resolves a tenant for the camp.
type CampModel struct {
	AggregateModel
	TenantID          uuid.UUID        `gorm:"type:uuid;index"`
	Slug              string           `gorm:"type:varchar(150);not null;uniqueIndex"`
	Name              string           `gorm:"type:varchar(200);not null"`
	Description       string           `gorm:"type:text"`
	Location          string           `gorm:"type:varchar(300)"`
	StartDate         time.Time        `gorm:"type:date;not null"`
	EndDate           time.Time        `gorm:"type:date;not null"`
	Capacity          int              `gorm:"not null"`
	BasePrice         decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	EarlyBirdPrice    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	EarlyBirdDeadline *time.Time       `gorm:"index"`
	Status            camp.CampStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
}

// TableName returns the table name for GORM
func (CampModel) TableName() string {
	return "camps"
}

// ToDomain converts the persistence model to a domain Camp entity.
func (m *CampModel) ToDomain() *camp.Camp {
	return &camp.Camp{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		TenantID:          m.TenantID,
		Slug:              m.Slug,
		Name:              m.Name,
		Description:       m.Description,
		Location:          m.Location,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Capacity:          m.Capacity,
		BasePrice:         m.BasePrice,
		EarlyBirdPrice:    m.EarlyBirdPrice,
		EarlyBirdDeadline: m.EarlyBirdDeadline,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Camp entity.
func (m *CampModel) FromDomain(c *camp.Camp) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.TenantID = c.TenantID
	m.Slug = c.Slug
	m.Name = c.Name
	m.Description = c.Description
	m.Location = c.Location
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Capacity = c.Capacity
	m.BasePrice = c.BasePrice
	m.EarlyBirdPrice = c.EarlyBirdPrice
	m.EarlyBirdDeadline = c.EarlyBirdDeadline
	m.Status = c.Status
}

// CampModelFromDomain creates a new persistence model from a domain Camp entity.
func CampModelFromDomain(c *camp.Camp) *CampModel {
	m := &CampModel{}
	m.FromDomain(c)
	return m
}

// AddonModel is the persistence model for the Addon domain entity.
type AddonModel struct {
	TenantAggregateModel
	Name        string              `gorm:"type:varchar(200);not null"`
	Description string              `gorm:"type:text"`
	UnitPrice   decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	IsTaxable   bool                `gorm:"not null;default:false"`
	IsActive    bool                `gorm:"not null;default:true"`
	Variants    []AddonVariantModel `gorm:"foreignKey:AddonID"`
}

// TableName returns the table name for GORM
func (AddonModel) TableName() string {
	return "addons"
}

// ToDomain converts the persistence model to a domain Addon entity with its variants.
func (m *AddonModel) ToDomain() *camp.Addon {
	addon := &camp.Addon{
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		IsTaxable:   m.IsTaxable,
		IsActive:    m.IsActive,
		Variants:    make([]camp.AddonVariant, len(m.Variants)),
	}
	m.PopulateTenantAggregateRoot(&addon.TenantAggregateRoot)
	for i := range m.Variants {
		addon.Variants[i] = m.Variants[i].ToDomain()
	}
	return addon
}

// FromDomain populates the persistence model from a domain Addon entity.
func (m *AddonModel) FromDomain(a *camp.Addon) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.Description = a.Description
	m.UnitPrice = a.UnitPrice
	m.IsTaxable = a.IsTaxable
	m.IsActive = a.IsActive
	m.Variants = make([]AddonVariantModel, len(a.Variants))
	for i := range a.Variants {
		m.Variants[i].FromDomain(&a.Variants[i])
	}
}

// AddonModelFromDomain creates a new persistence model from a domain Addon entity.
func AddonModelFromDomain(a *camp.Addon) *AddonModel {
	m := &AddonModel{}
	m.FromDomain(a)
	return m
}

// AddonVariantModel is the persistence model for the AddonVariant entity.
type AddonVariantModel struct {
	BaseModel
	AddonID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name      string           `gorm:"type:varchar(100);not null"`
	UnitPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	IsActive  bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AddonVariantModel) TableName() string {
	return "addon_variants"
}

// ToDomain converts the persistence model to a domain AddonVariant.
func (m *AddonVariantModel) ToDomain() camp.AddonVariant {
	return camp.AddonVariant{
		BaseEntity: m.BaseModel.ToDomain(),
		AddonID:    m.AddonID,
		Name:       m.Name,
		UnitPrice:  m.UnitPrice,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain AddonVariant.
func (m *AddonVariantModel) FromDomain(v *camp.AddonVariant) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.AddonID = v.AddonID
	m.Name = v.Name
	m.UnitPrice = v.UnitPrice
	m.IsActive = v.IsActive
}

// PromoCodeModel is the persistence model for the PromoCode domain entity.
// Codes are stored uppercase.
type PromoCodeModel struct {
	TenantAggregateModel
	Code      string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_promo_tenant_code,priority:2"`
	Type      camp.PromoType      `gorm:"type:varchar(20);not null"`
	Value     decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	AppliesTo camp.PromoAppliesTo `gorm:"type:varchar(20);not null;default:'both'"`
	StartsAt  *time.Time          `gorm:"index"`
	EndsAt    *time.Time          `gorm:"index"`
	IsActive  bool                `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PromoCodeModel) TableName() string {
	return "promo_codes"
}

// ToDomain converts the persistence model to a domain PromoCode entity.
func (m *PromoCodeModel) ToDomain() *camp.PromoCode {
	promo := &camp.PromoCode{
		Code:      m.Code,
		Type:      m.Type,
		Value:     m.Value,
		AppliesTo: m.AppliesTo,
		StartsAt:  m.StartsAt,
		EndsAt:    m.EndsAt,
		IsActive:  m.IsActive,
	}
	m.PopulateTenantAggregateRoot(&promo.TenantAggregateRoot)
	return promo
}

// FromDomain populates the persistence model from a domain PromoCode entity.
func (m *PromoCodeModel) FromDomain(p *camp.PromoCode) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Code = p.Code
	m.Type = p.Type
	m.Value = p.Value
	m.AppliesTo = p.AppliesTo
	m.StartsAt = p.StartsAt
	m.EndsAt = p.EndsAt
	m.IsActive = p.IsActive
}

// PromoCodeModelFromDomain creates a new persistence model from a domain PromoCode entity.
func PromoCodeModelFromDomain(p *camp.PromoCode) *PromoCodeModel {
	m := &PromoCodeModel{}
	m.FromDomain(p)
	return m
}
