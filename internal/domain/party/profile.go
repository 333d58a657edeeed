package party

import (
	"regexp"
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Profile represents a parent/guardian account.
// It is the aggregate root for the household: athletes and authorized pickups
// hang off it. Profiles are keyed by lowercase email; when the caller is
// authenticated the auth account id becomes the profile id so the two systems
// share a key.
type Profile struct {
	shared.BaseAggregateRoot
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Zip          string
}

// NewProfile creates a new profile with a generated id
func NewProfile(email, firstName, lastName string) (*Profile, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePersonName(firstName, "first name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(lastName, "last name"); err != nil {
		return nil, err
	}

	profile := &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
	}

	profile.AddDomainEvent(NewProfileCreatedEvent(profile))

	return profile, nil
}

// NewProfileWithAuthUser creates a new profile whose id is the auth account id
func NewProfileWithAuthUser(authUserID uuid.UUID, email, firstName, lastName string) (*Profile, error) {
	if authUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTH_USER", "Auth user id cannot be empty")
	}

	profile, err := NewProfile(email, firstName, lastName)
	if err != nil {
		return nil, err
	}
	profile.ID = authUserID

	return profile, nil
}

// ProfileUpdate carries optional field changes. A nil pointer leaves the
// field untouched; a non-nil pointer, even to an empty string, is applied.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Zip          *string
}

// Apply applies the non-nil fields of the update to the profile
func (p *Profile) Apply(update ProfileUpdate) {
	changed := false
	if update.FirstName != nil {
		p.FirstName = *update.FirstName
		changed = true
	}
	if update.LastName != nil {
		p.LastName = *update.LastName
		changed = true
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
		changed = true
	}
	if update.AddressLine1 != nil {
		p.AddressLine1 = *update.AddressLine1
		changed = true
	}
	if update.AddressLine2 != nil {
		p.AddressLine2 = *update.AddressLine2
		changed = true
	}
	if update.City != nil {
		p.City = *update.City
		changed = true
	}
	if update.State != nil {
		p.State = *update.State
		changed = true
	}
	if update.Zip != nil {
		p.Zip = *update.Zip
		changed = true
	}

	if changed {
		p.UpdatedAt = time.Now()
		p.IncrementVersion()
	}
}

// FullName returns the profile's display name
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lowercases and trims an email address, validating its shape.
// All profile lookups go through this so casing never splits a household.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

func validatePersonName(name, label string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Profile "+label+" cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Profile "+label+" cannot exceed 100 characters")
	}
	return nil
}
