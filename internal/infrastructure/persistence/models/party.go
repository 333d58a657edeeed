package models

import (
	"time"

	"github.com/camphq/backend/internal/domain/party"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfileModel is the persistence model for the Profile domain entity.
// Emails are stored lowercase; the domain normalizes before they get here.
type ProfileModel struct {
	AggregateModel
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Phone        string `gorm:"type:varchar(50)"`
	AddressLine1 string `gorm:"type:varchar(200)"`
	AddressLine2 string `gorm:"type:varchar(200)"`
	City         string `gorm:"type:varchar(100)"`
	State        string `gorm:"type:varchar(50)"`
	Zip          string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *ProfileModel) ToDomain() *party.Profile {
	return &party.Profile{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Phone:        m.Phone,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		State:        m.State,
		Zip:          m.Zip,
	}
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *ProfileModel) FromDomain(p *party.Profile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Email = p.Email
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.Phone = p.Phone
	m.AddressLine1 = p.AddressLine1
	m.AddressLine2 = p.AddressLine2
	m.City = p.City
	m.State = p.State
	m.Zip = p.Zip
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile entity.
func ProfileModelFromDomain(p *party.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}

// AthleteModel is the persistence model for the Athlete domain entity.
type AthleteModel struct {
	AggregateModel
	ProfileID             uuid.UUID    `gorm:"type:uuid;not null;index"`
	FirstName             string       `gorm:"type:varchar(100);not null"`
	LastName              string       `gorm:"type:varchar(100);not null"`
	DateOfBirth           time.Time    `gorm:"type:date;not null"`
	Gender                party.Gender `gorm:"type:varchar(20)"`
	ShirtSize             string       `gorm:"type:varchar(20)"`
	MedicalNotes          string       `gorm:"type:text"`
	EmergencyContactName  string       `gorm:"type:varchar(100)"`
	EmergencyContactPhone string       `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (AthleteModel) TableName() string {
	return "athletes"
}

// ToDomain converts the persistence model to a domain Athlete entity.
func (m *AthleteModel) ToDomain() *party.Athlete {
	return &party.Athlete{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ProfileID:             m.ProfileID,
		FirstName:             m.FirstName,
		LastName:              m.LastName,
		DateOfBirth:           m.DateOfBirth,
		Gender:                m.Gender,
		ShirtSize:             m.ShirtSize,
		MedicalNotes:          m.MedicalNotes,
		EmergencyContactName:  m.EmergencyContactName,
		EmergencyContactPhone: m.EmergencyContactPhone,
	}
}

// FromDomain populates the persistence model from a domain Athlete entity.
func (m *AthleteModel) FromDomain(a *party.Athlete) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.ProfileID = a.ProfileID
	m.FirstName = a.FirstName
	m.LastName = a.LastName
	m.DateOfBirth = a.DateOfBirth
	m.Gender = a.Gender
	m.ShirtSize = a.ShirtSize
	m.MedicalNotes = a.MedicalNotes
	m.EmergencyContactName = a.EmergencyContactName
	m.EmergencyContactPhone = a.EmergencyContactPhone
}

// AthleteModelFromDomain creates a new persistence model from a domain Athlete entity.
func AthleteModelFromDomain(a *party.Athlete) *AthleteModel {
	m := &AthleteModel{}
	m.FromDomain(a)
	return m
}

// AuthorizedPickupModel is the persistence model for the AuthorizedPickup domain entity.
type AuthorizedPickupModel struct {
	BaseModel
	AthleteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Phone        string    `gorm:"type:varchar(50)"`
	Relationship string    `gorm:"type:varchar(100)"`
	IsActive     bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AuthorizedPickupModel) TableName() string {
	return "authorized_pickups"
}

// ToDomain converts the persistence model to a domain AuthorizedPickup entity.
func (m *AuthorizedPickupModel) ToDomain() *party.AuthorizedPickup {
	return &party.AuthorizedPickup{
		BaseEntity:   m.BaseModel.ToDomain(),
		AthleteID:    m.AthleteID,
		Name:         m.Name,
		Phone:        m.Phone,
		Relationship: m.Relationship,
		IsActive:     m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain AuthorizedPickup entity.
func (m *AuthorizedPickupModel) FromDomain(p *party.AuthorizedPickup) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.AthleteID = p.AthleteID
	m.Name = p.Name
	m.Phone = p.Phone
	m.Relationship = p.Relationship
	m.IsActive = p.IsActive
}

// AuthorizedPickupModelFromDomain creates a new persistence model from a domain AuthorizedPickup entity.
func AuthorizedPickupModelFromDomain(p *party.AuthorizedPickup) *AuthorizedPickupModel {
	m := &AuthorizedPickupModel{}
	m.FromDomain(p)
	return m
}
