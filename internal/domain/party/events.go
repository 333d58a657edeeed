package party

import (
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeProfile = "Profile"
	AggregateTypeAthlete = "Athlete"
)

// Event type constants
const (
	EventTypeProfileCreated = "ProfileCreated"
	EventTypeAthleteCreated = "AthleteCreated"
)

// ProfileCreatedEvent is published when a new profile is created
type ProfileCreatedEvent struct {
	shared.BaseDomainEvent
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewProfileCreatedEvent creates a new ProfileCreatedEvent
func NewProfileCreatedEvent(profile *Profile) *ProfileCreatedEvent {
	return &ProfileCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileCreated, AggregateTypeProfile, profile.ID, uuid.Nil),
		Email:           profile.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
	}
}

// AthleteCreatedEvent is published when a new athlete is created
type AthleteCreatedEvent struct {
	shared.BaseDomainEvent
	ProfileID uuid.UUID `json:"profile_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// NewAthleteCreatedEvent creates a new AthleteCreatedEvent
func NewAthleteCreatedEvent(athlete *Athlete) *AthleteCreatedEvent {
	return &AthleteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAthleteCreated, AggregateTypeAthlete, athlete.ID, uuid.Nil),
		ProfileID:       athlete.ProfileID,
		FirstName:       athlete.FirstName,
		LastName:        athlete.LastName,
	}
}
