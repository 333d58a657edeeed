package party

import (
	"context"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// FindByID finds a profile by its ID (which may be an auth account id)
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindByEmail finds a profile by its normalized (lowercase) email
	FindByEmail(ctx context.Context, email string) (*Profile, error)

	// FindAll finds profiles matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Profile, error)

	// Save creates or updates a profile
	Save(ctx context.Context, profile *Profile) error

	// ExistsByEmail checks if a profile with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AthleteRepository defines the interface for athlete persistence
type AthleteRepository interface {
	// FindByID finds an athlete by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Athlete, error)

	// FindByIDForProfile finds an athlete by ID scoped to its parent profile
	FindByIDForProfile(ctx context.Context, id, profileID uuid.UUID) (*Athlete, error)

	// FindByProfile finds all athletes owned by a profile
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]Athlete, error)

	// FindByProfileAndName finds an athlete by case-insensitive first/last name
	// within a profile. Returns nil, nil when no match exists.
	FindByProfileAndName(ctx context.Context, profileID uuid.UUID, firstName, lastName string) (*Athlete, error)

	// Save creates or updates an athlete
	Save(ctx context.Context, athlete *Athlete) error
}

// AuthorizedPickupRepository defines the interface for pickup persistence
type AuthorizedPickupRepository interface {
	// FindByID finds a pickup by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedPickup, error)

	// FindActiveByAthlete finds all active pickups for an athlete
	FindActiveByAthlete(ctx context.Context, athleteID uuid.UUID) ([]AuthorizedPickup, error)

	// FindByAthleteAndName finds a pickup by case-insensitive name within an
	// athlete, active or not. Returns nil, nil when no match exists.
	FindByAthleteAndName(ctx context.Context, athleteID uuid.UUID, name string) (*AuthorizedPickup, error)

	// Save creates or updates a pickup
	Save(ctx context.Context, pickup *AuthorizedPickup) error
}
