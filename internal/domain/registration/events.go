package registration

import (
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeRegistration = "Registration"

// Event type constants
const (
	EventTypeRegistrationCreated   = "RegistrationCreated"
	EventTypeRegistrationConfirmed = "RegistrationConfirmed"
	EventTypeRegistrationCancelled = "RegistrationCancelled"
)

// RegistrationCreatedEvent is published when a registration is created
type RegistrationCreatedEvent struct {
	shared.BaseDomainEvent
	CampID    uuid.UUID       `json:"camp_id"`
	ProfileID uuid.UUID       `json:"profile_id"`
	AthleteID uuid.UUID       `json:"athlete_id"`
	Total     decimal.Decimal `json:"total"`
}

// NewRegistrationCreatedEvent creates a new RegistrationCreatedEvent
func NewRegistrationCreatedEvent(r *Registration) *RegistrationCreatedEvent {
	return &RegistrationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRegistrationCreated, AggregateTypeRegistration, r.ID, r.TenantID),
		CampID:          r.CampID,
		ProfileID:       r.ProfileID,
		AthleteID:       r.AthleteID,
		Total:           r.Total,
	}
}

// RegistrationConfirmedEvent is published when payment completes
type RegistrationConfirmedEvent struct {
	shared.BaseDomainEvent
	CampID    uuid.UUID `json:"camp_id"`
	SessionID string    `json:"stripe_session_id"`
}

// NewRegistrationConfirmedEvent creates a new RegistrationConfirmedEvent
func NewRegistrationConfirmedEvent(r *Registration) *RegistrationConfirmedEvent {
	return &RegistrationConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRegistrationConfirmed, AggregateTypeRegistration, r.ID, r.TenantID),
		CampID:          r.CampID,
		SessionID:       r.StripeCheckoutSessionID,
	}
}

// RegistrationCancelledEvent is published when a registration is cancelled
type RegistrationCancelledEvent struct {
	shared.BaseDomainEvent
	CampID uuid.UUID `json:"camp_id"`
	Reason string    `json:"reason"`
}

// NewRegistrationCancelledEvent creates a new RegistrationCancelledEvent
func NewRegistrationCancelledEvent(r *Registration, reason string) *RegistrationCancelledEvent {
	return &RegistrationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRegistrationCancelled, AggregateTypeRegistration, r.ID, r.TenantID),
		CampID:          r.CampID,
		Reason:          reason,
	}
}
