package registration

import (
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a registration
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Registration is one camper's spot in one camp. A multi-camper checkout
// produces one registration per camper, all sharing a Stripe checkout
// session id.
type Registration struct {
	shared.TenantAggregateRoot
	CampID    uuid.UUID
	ProfileID uuid.UUID
	AthleteID uuid.UUID
	// CamperIndex is the camper's position within the checkout batch.
	// Index 0 pays full price and receives any promo discount; later indexes
	// receive the sibling discount instead.
	CamperIndex int
	Status      Status

	BasePrice       decimal.Decimal
	SiblingDiscount decimal.Decimal
	PromoDiscount   decimal.Decimal
	AddonSubtotal   decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	PromoCode       string

	StripeCheckoutSessionID string
	ConfirmationNumber      string
	CancellationReason      string

	Addons []RegistrationAddon
}

// RegistrationAddon is a priced addon line attached to a registration.
// Name, price, and taxability are snapshotted so later catalog edits don't
// rewrite history.
type RegistrationAddon struct {
	shared.BaseEntity
	RegistrationID uuid.UUID
	AddonID        uuid.UUID
	VariantID      *uuid.UUID
	Name           string
	Quantity       int
	UnitPrice      decimal.Decimal
	LineTotal      decimal.Decimal
	IsTaxable      bool
}

// NewRegistration creates a pending registration from a priced quote
func NewRegistration(tenantID, campID, profileID, athleteID uuid.UUID, camperIndex int, quote Quote) (*Registration, error) {
	if campID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CAMP", "Registration requires a camp")
	}
	if profileID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Registration requires a parent profile")
	}
	if athleteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATHLETE", "Registration requires an athlete")
	}
	if camperIndex < 0 {
		return nil, shared.NewDomainError("INVALID_INDEX", "Camper index cannot be negative")
	}

	reg := &Registration{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CampID:              campID,
		ProfileID:           profileID,
		AthleteID:           athleteID,
		CamperIndex:         camperIndex,
		Status:              StatusPending,
		BasePrice:           quote.BasePrice.Amount(),
		SiblingDiscount:     quote.SiblingDiscount.Amount(),
		PromoDiscount:       quote.PromoDiscount.Amount(),
		AddonSubtotal:       quote.AddonSubtotal.Amount(),
		Tax:                 quote.Tax.Amount(),
		Total:               quote.Total.Amount(),
	}

	reg.AddDomainEvent(NewRegistrationCreatedEvent(reg))

	return reg, nil
}

// AttachAddonLine appends a snapshotted addon line
func (r *Registration) AttachAddonLine(addonID uuid.UUID, variantID *uuid.UUID, name string, quantity int, unitPrice, lineTotal decimal.Decimal, isTaxable bool) error {
	if addonID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADDON", "Addon id cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Addon quantity must be positive")
	}

	r.Addons = append(r.Addons, RegistrationAddon{
		BaseEntity:     shared.NewBaseEntity(),
		RegistrationID: r.ID,
		AddonID:        addonID,
		VariantID:      variantID,
		Name:           name,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		LineTotal:      lineTotal,
		IsTaxable:      isTaxable,
	})

	return nil
}

// SetPromoCode records the redeemed code on the registration
func (r *Registration) SetPromoCode(code string) {
	r.PromoCode = strings.ToUpper(strings.TrimSpace(code))
}

// AttachStripeSession stamps the shared checkout session id on the
// registration after the session is created.
func (r *Registration) AttachStripeSession(sessionID string) error {
	if sessionID == "" {
		return shared.NewDomainError("INVALID_SESSION", "Stripe session id cannot be empty")
	}

	r.StripeCheckoutSessionID = sessionID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Confirm moves a pending registration to confirmed. Driven by the Stripe
// webhook when payment completes. Confirming an already confirmed
// registration is a no-op so webhook retries stay safe.
func (r *Registration) Confirm() error {
	if r.Status == StatusConfirmed {
		return nil
	}
	if r.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled registrations cannot be confirmed")
	}

	r.Status = StatusConfirmed
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRegistrationConfirmedEvent(r))

	return nil
}

// Cancel cancels the registration with a reason
func (r *Registration) Cancel(reason string) error {
	if r.Status == StatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Registration is already cancelled")
	}

	r.Status = StatusCancelled
	r.CancellationReason = reason
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRegistrationCancelledEvent(r, reason))

	return nil
}

// SetConfirmationNumber assigns a confirmation number once. Registrations
// that already carry one are left untouched so the backfill is idempotent.
func (r *Registration) SetConfirmationNumber(number string) error {
	if r.ConfirmationNumber != "" {
		return nil
	}
	if !IsValidConfirmationNumber(number) {
		return shared.NewDomainError("INVALID_CONFIRMATION", "Malformed confirmation number")
	}

	r.ConfirmationNumber = number
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsActive reports whether the registration holds a camp spot.
// Pending registrations count against capacity so a camper can't lose their
// spot between checkout and payment.
func (r *Registration) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}
