package models

import (
	"github.com/camphq/backend/internal/domain/registration"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegistrationModel is the persistence model for the Registration domain entity.
type RegistrationModel struct {
	TenantAggregateModel
	CampID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProfileID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	AthleteID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	CamperIndex int                 `gorm:"not null;default:0"`
	Status      registration.Status `gorm:"type:varchar(20);not null;default:'pending';index"`

	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SiblingDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PromoDiscount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AddonSubtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Tax             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PromoCode       string          `gorm:"type:varchar(50)"`

	StripeCheckoutSessionID string `gorm:"type:varchar(200);index"`
	ConfirmationNumber      string `gorm:"type:varchar(20);index"`
	CancellationReason      string `gorm:"type:text"`

	Addons []RegistrationAddonModel `gorm:"foreignKey:RegistrationID"`
}

// TableName returns the table name for GORM
func (RegistrationModel) TableName() string {
	return "registrations"
}

// ToDomain converts the persistence model to a domain Registration entity
// with its addon lines.
func (m *RegistrationModel) ToDomain() *registration.Registration {
	reg := &registration.Registration{
		CampID:                  m.CampID,
		ProfileID:               m.ProfileID,
		AthleteID:               m.AthleteID,
		CamperIndex:             m.CamperIndex,
		Status:                  m.Status,
		BasePrice:               m.BasePrice,
		SiblingDiscount:         m.SiblingDiscount,
		PromoDiscount:           m.PromoDiscount,
		AddonSubtotal:           m.AddonSubtotal,
		Tax:                     m.Tax,
		Total:                   m.Total,
		PromoCode:               m.PromoCode,
		StripeCheckoutSessionID: m.StripeCheckoutSessionID,
		ConfirmationNumber:      m.ConfirmationNumber,
		CancellationReason:      m.CancellationReason,
		Addons:                  make([]registration.RegistrationAddon, len(m.Addons)),
	}
	m.PopulateTenantAggregateRoot(&reg.TenantAggregateRoot)
	for i := range m.Addons {
		reg.Addons[i] = m.Addons[i].ToDomain()
	}
	return reg
}

// FromDomain populates the persistence model from a domain Registration entity.
func (m *RegistrationModel) FromDomain(r *registration.Registration) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.CampID = r.CampID
	m.ProfileID = r.ProfileID
	m.AthleteID = r.AthleteID
	m.CamperIndex = r.CamperIndex
	m.Status = r.Status
	m.BasePrice = r.BasePrice
	m.SiblingDiscount = r.SiblingDiscount
	m.PromoDiscount = r.PromoDiscount
	m.AddonSubtotal = r.AddonSubtotal
	m.Tax = r.Tax
	m.Total = r.Total
	m.PromoCode = r.PromoCode
	m.StripeCheckoutSessionID = r.StripeCheckoutSessionID
	m.ConfirmationNumber = r.ConfirmationNumber
	m.CancellationReason = r.CancellationReason
	m.Addons = make([]RegistrationAddonModel, len(r.Addons))
	for i := range r.Addons {
		m.Addons[i].FromDomain(&r.Addons[i])
	}
}

// RegistrationModelFromDomain creates a new persistence model from a domain Registration entity.
func RegistrationModelFromDomain(r *registration.Registration) *RegistrationModel {
	m := &RegistrationModel{}
	m.FromDomain(r)
	return m
}

// RegistrationAddonModel is the persistence model for a registration addon line.
// Name, price, and taxability are snapshots taken at checkout time.
type RegistrationAddonModel struct {
	BaseModel
	RegistrationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddonID        uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID      *uuid.UUID      `gorm:"type:uuid"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsTaxable      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (RegistrationAddonModel) TableName() string {
	return "registration_addons"
}

// ToDomain converts the persistence model to a domain RegistrationAddon.
func (m *RegistrationAddonModel) ToDomain() registration.RegistrationAddon {
	return registration.RegistrationAddon{
		BaseEntity:     m.BaseModel.ToDomain(),
		RegistrationID: m.RegistrationID,
		AddonID:        m.AddonID,
		VariantID:      m.VariantID,
		Name:           m.Name,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		LineTotal:      m.LineTotal,
		IsTaxable:      m.IsTaxable,
	}
}

// FromDomain populates the persistence model from a domain RegistrationAddon.
func (m *RegistrationAddonModel) FromDomain(a *registration.RegistrationAddon) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.RegistrationID = a.RegistrationID
	m.AddonID = a.AddonID
	m.VariantID = a.VariantID
	m.Name = a.Name
	m.Quantity = a.Quantity
	m.UnitPrice = a.UnitPrice
	m.LineTotal = a.LineTotal
	m.IsTaxable = a.IsTaxable
}
