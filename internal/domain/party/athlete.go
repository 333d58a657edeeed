package party

import (
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Gender is free-form but a few common values are recognized
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = ""
)

// Athlete represents a camper owned by one parent Profile
type Athlete struct {
	shared.BaseAggregateRoot
	ProfileID             uuid.UUID
	FirstName             string
	LastName              string
	DateOfBirth           time.Time
	Gender                Gender
	ShirtSize             string
	MedicalNotes          string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// NewAthlete creates a new athlete. The date of birth is required; callers
// must collect it rather than defaulting it.
func NewAthlete(profileID uuid.UUID, firstName, lastName string, dateOfBirth time.Time) (*Athlete, error) {
	if profileID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Athlete must belong to a profile")
	}
	if err := validatePersonName(firstName, "first name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(lastName, "last name"); err != nil {
		return nil, err
	}
	if dateOfBirth.IsZero() {
		return nil, shared.NewDomainError("MISSING_DATE_OF_BIRTH", "Athlete date of birth is required")
	}
	if dateOfBirth.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_DATE_OF_BIRTH", "Athlete date of birth cannot be in the future")
	}

	athlete := &Athlete{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProfileID:         profileID,
		FirstName:         firstName,
		LastName:          lastName,
		DateOfBirth:       dateOfBirth,
	}

	athlete.AddDomainEvent(NewAthleteCreatedEvent(athlete))

	return athlete, nil
}

// AthleteUpdate carries optional field changes with the same semantics as
// ProfileUpdate: nil leaves the field alone, non-nil is applied.
type AthleteUpdate struct {
	FirstName             *string
	LastName              *string
	DateOfBirth           *time.Time
	Gender                *Gender
	ShirtSize             *string
	MedicalNotes          *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
}

// Apply applies the non-nil fields of the update to the athlete.
// A nil DateOfBirth is ignored; a non-nil zero value is rejected because the
// date of birth can never be cleared once set.
func (a *Athlete) Apply(update AthleteUpdate) error {
	if update.DateOfBirth != nil && update.DateOfBirth.IsZero() {
		return shared.NewDomainError("MISSING_DATE_OF_BIRTH", "Athlete date of birth cannot be cleared")
	}

	changed := false
	if update.FirstName != nil {
		a.FirstName = *update.FirstName
		changed = true
	}
	if update.LastName != nil {
		a.LastName = *update.LastName
		changed = true
	}
	if update.DateOfBirth != nil {
		a.DateOfBirth = *update.DateOfBirth
		changed = true
	}
	if update.Gender != nil {
		a.Gender = *update.Gender
		changed = true
	}
	if update.ShirtSize != nil {
		a.ShirtSize = *update.ShirtSize
		changed = true
	}
	if update.MedicalNotes != nil {
		a.MedicalNotes = *update.MedicalNotes
		changed = true
	}
	if update.EmergencyContactName != nil {
		a.EmergencyContactName = *update.EmergencyContactName
		changed = true
	}
	if update.EmergencyContactPhone != nil {
		a.EmergencyContactPhone = *update.EmergencyContactPhone
		changed = true
	}

	if changed {
		a.UpdatedAt = time.Now()
		a.IncrementVersion()
	}

	return nil
}

// FullName returns the athlete's display name
func (a *Athlete) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// MatchesName reports whether the athlete's name matches, ignoring case and
// surrounding whitespace
func (a *Athlete) MatchesName(firstName, lastName string) bool {
	return strings.EqualFold(strings.TrimSpace(a.FirstName), strings.TrimSpace(firstName)) &&
		strings.EqualFold(strings.TrimSpace(a.LastName), strings.TrimSpace(lastName))
}

// AgeOn returns the athlete's age in whole years on the given date
func (a *Athlete) AgeOn(date time.Time) int {
	age := date.Year() - a.DateOfBirth.Year()
	anniversary := a.DateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(date) {
		age--
	}
	return age
}
