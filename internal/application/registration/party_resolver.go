package registration

import (
	"context"
	"time"

	"github.com/camphq/backend/internal/domain/party"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartyResolver finds or creates the parent profile, athletes, and pickups
// behind a checkout payload. It is constructed over whatever repositories the
// caller is using, so checkout can run it inside its transaction.
type PartyResolver struct {
	profiles party.ProfileRepository
	athletes party.AthleteRepository
	pickups  party.AuthorizedPickupRepository
}

// NewPartyResolver creates a new PartyResolver
func NewPartyResolver(profiles party.ProfileRepository, athletes party.AthleteRepository, pickups party.AuthorizedPickupRepository) *PartyResolver {
	return &PartyResolver{
		profiles: profiles,
		athletes: athletes,
		pickups:  pickups,
	}
}

// ResolveParent finds the parent profile by email, then by auth account id,
// and creates it when neither matches. Non-nil incoming fields overwrite
// what's stored.
func (r *PartyResolver) ResolveParent(ctx context.Context, input ParentInput) (*party.Profile, error) {
	email, err := party.NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	profile, err := r.profiles.FindByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	if profile == nil && input.AuthUserID != nil {
		profile, err = r.profiles.FindByID(ctx, *input.AuthUserID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	if profile == nil {
		if input.AuthUserID != nil {
			profile, err = party.NewProfileWithAuthUser(*input.AuthUserID, email, input.FirstName, input.LastName)
		} else {
			profile, err = party.NewProfile(email, input.FirstName, input.LastName)
		}
		if err != nil {
			return nil, err
		}
	} else {
		update := party.ProfileUpdate{Phone: input.Phone}
		if input.FirstName != "" {
			update.FirstName = &input.FirstName
		}
		if input.LastName != "" {
			update.LastName = &input.LastName
		}
		profile.Apply(update)
	}

	if err := r.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// ResolveAthlete finds the camper's athlete record by explicit id scoped to
// the parent, then by case-insensitive name match, and creates it otherwise.
// The date of birth is required for creation; non-nil incoming fields
// overwrite existing records.
func (r *PartyResolver) ResolveAthlete(ctx context.Context, profileID uuid.UUID, input CamperInput) (*party.Athlete, error) {
	var athlete *party.Athlete
	var err error

	if input.AthleteID != nil {
		athlete, err = r.athletes.FindByIDForProfile(ctx, *input.AthleteID, profileID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	if athlete == nil {
		athlete, err = r.athletes.FindByProfileAndName(ctx, profileID, input.FirstName, input.LastName)
		if err != nil {
			return nil, err
		}
	}

	if athlete == nil {
		var dob = input.DateOfBirth
		if dob == nil {
			// NewAthlete rejects the zero value with the right error
			dob = new(time.Time)
		}
		athlete, err = party.NewAthlete(profileID, input.FirstName, input.LastName, *dob)
		if err != nil {
			return nil, err
		}
	} else {
		update := party.AthleteUpdate{
			DateOfBirth:           input.DateOfBirth,
			ShirtSize:             input.ShirtSize,
			MedicalNotes:          input.MedicalNotes,
			EmergencyContactName:  input.EmergencyContactName,
			EmergencyContactPhone: input.EmergencyContactPhone,
		}
		if input.Gender != nil {
			gender := party.Gender(*input.Gender)
			update.Gender = &gender
		}
		if err := athlete.Apply(update); err != nil {
			return nil, err
		}
	}

	if err := r.athletes.Save(ctx, athlete); err != nil {
		return nil, err
	}

	return athlete, nil
}

// EnsurePickups creates the camper's authorized pickups, deduping by
// case-insensitive name and reactivating soft-deleted matches. Pickup
// problems never fail a checkout; they are logged and swallowed.
func (r *PartyResolver) EnsurePickups(ctx context.Context, athleteID uuid.UUID, inputs []PickupInput) {
	log := logger.FromContext(ctx)

	for _, input := range inputs {
		if input.Name == "" {
			continue
		}

		existing, err := r.pickups.FindByAthleteAndName(ctx, athleteID, input.Name)
		if err != nil {
			log.Warn("pickup lookup failed",
				zap.String("athlete_id", athleteID.String()),
				zap.String("name", input.Name),
				zap.Error(err))
			continue
		}

		if existing != nil {
			if !existing.IsActive {
				existing.Reactivate()
				if err := r.pickups.Save(ctx, existing); err != nil {
					log.Warn("pickup reactivation failed",
						zap.String("pickup_id", existing.ID.String()),
						zap.Error(err))
				}
			}
			continue
		}

		pickup, err := party.NewAuthorizedPickup(athleteID, input.Name, input.Phone, input.Relationship)
		if err != nil {
			log.Warn("invalid pickup skipped",
				zap.String("athlete_id", athleteID.String()),
				zap.String("name", input.Name),
				zap.Error(err))
			continue
		}
		if err := r.pickups.Save(ctx, pickup); err != nil {
			log.Warn("pickup save failed",
				zap.String("athlete_id", athleteID.String()),
				zap.String("name", input.Name),
				zap.Error(err))
		}
	}
}
