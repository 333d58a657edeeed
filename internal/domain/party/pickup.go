package party

import (
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuthorizedPickup is a person allowed to pick an athlete up from camp.
// Rows are soft-deleted via IsActive so history survives.
type AuthorizedPickup struct {
	shared.BaseEntity
	AthleteID    uuid.UUID
	Name         string
	Phone        string
	Relationship string
	IsActive     bool
}

// NewAuthorizedPickup creates a new active pickup authorization
func NewAuthorizedPickup(athleteID uuid.UUID, name, phone, relationship string) (*AuthorizedPickup, error) {
	if athleteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATHLETE", "Pickup must belong to an athlete")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Pickup name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Pickup name cannot exceed 200 characters")
	}

	return &AuthorizedPickup{
		BaseEntity:   shared.NewBaseEntity(),
		AthleteID:    athleteID,
		Name:         name,
		Phone:        strings.TrimSpace(phone),
		Relationship: strings.TrimSpace(relationship),
		IsActive:     true,
	}, nil
}

// MatchesName reports whether the pickup's name matches, ignoring case.
// Used to dedup pickups within an athlete.
func (p *AuthorizedPickup) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
}

// Deactivate soft-deletes the pickup authorization
func (p *AuthorizedPickup) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Reactivate restores a previously deactivated pickup
func (p *AuthorizedPickup) Reactivate() {
	if p.IsActive {
		return
	}
	p.IsActive = true
	p.UpdatedAt = time.Now()
}
