package registration

import (
	"fmt"
	"time"

	"github.com/camphq/backend/internal/domain/registration"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParentInput is the parent/guardian block of a checkout payload
type ParentInput struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
	// AuthUserID is set from the JWT when the caller is authenticated,
	// never from the request body
	AuthUserID *uuid.UUID `json:"-"`
}

// AddonSelectionInput is one addon chosen for a camper. AddonID stays a
// string because the storefront sends placeholder ids for demo addons;
// selections that don't parse as UUIDs are silently skipped.
type AddonSelectionInput struct {
	AddonID   string  `json:"addon_id"`
	VariantID *string `json:"variant_id"`
	Quantity  int     `json:"quantity"`
}

// PickupInput is one authorized pickup person for a camper
type PickupInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// CamperInput is one camper in a checkout payload
type CamperInput struct {
	AthleteID             *uuid.UUID            `json:"athlete_id"`
	FirstName             string                `json:"first_name"`
	LastName              string                `json:"last_name"`
	DateOfBirth           *time.Time            `json:"date_of_birth"`
	Gender                *string               `json:"gender"`
	ShirtSize             *string               `json:"shirt_size"`
	MedicalNotes          *string               `json:"medical_notes"`
	EmergencyContactName  *string               `json:"emergency_contact_name"`
	EmergencyContactPhone *string               `json:"emergency_contact_phone"`
	Addons                []AddonSelectionInput `json:"addons"`
	Pickups               []PickupInput         `json:"pickups"`
}

// CheckoutRequest is the full checkout payload
type CheckoutRequest struct {
	CampID    uuid.UUID     `json:"camp_id"`
	TenantID  *uuid.UUID    `json:"tenant_id"`
	Parent    ParentInput   `json:"parent"`
	Campers   []CamperInput `json:"campers"`
	PromoCode string        `json:"promo_code"`
	// Origin is the scheme://host of the storefront, taken from the request,
	// used to build the Stripe success/cancel URLs
	Origin string `json:"-"`
	// IdempotencyKey is taken from the Idempotency-Key header
	IdempotencyKey string `json:"-"`
}

// MissingFields returns the names of required fields absent from the payload.
// An empty slice means the payload is structurally valid.
func (r *CheckoutRequest) MissingFields() []string {
	var missing []string

	if r.CampID == uuid.Nil {
		missing = append(missing, "camp_id")
	}
	if r.Parent.Email == "" {
		missing = append(missing, "parent.email")
	}
	if r.Parent.FirstName == "" {
		missing = append(missing, "parent.first_name")
	}
	if r.Parent.LastName == "" {
		missing = append(missing, "parent.last_name")
	}
	if len(r.Campers) == 0 {
		missing = append(missing, "campers")
	}
	for i, camper := range r.Campers {
		if camper.FirstName == "" {
			missing = append(missing, fmt.Sprintf("campers[%d].first_name", i))
		}
		if camper.LastName == "" {
			missing = append(missing, fmt.Sprintf("campers[%d].last_name", i))
		}
		if camper.DateOfBirth == nil || camper.DateOfBirth.IsZero() {
			missing = append(missing, fmt.Sprintf("campers[%d].date_of_birth", i))
		}
	}

	return missing
}

// CheckoutResponse is returned after a successful checkout
type CheckoutResponse struct {
	RegistrationIDs []uuid.UUID `json:"registration_ids"`
	CheckoutURL     string      `json:"checkout_url"`
	SessionID       string      `json:"session_id"`
}

// RegistrationAddonResponse represents an addon line in API responses
type RegistrationAddonResponse struct {
	AddonID   uuid.UUID       `json:"addon_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	IsTaxable bool            `json:"is_taxable"`
}

// RegistrationResponse represents a registration in API responses
type RegistrationResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	TenantID           uuid.UUID                   `json:"tenant_id"`
	CampID             uuid.UUID                   `json:"camp_id"`
	ProfileID          uuid.UUID                   `json:"profile_id"`
	AthleteID          uuid.UUID                   `json:"athlete_id"`
	Status             string                      `json:"status"`
	BasePrice          decimal.Decimal             `json:"base_price"`
	SiblingDiscount    decimal.Decimal             `json:"sibling_discount"`
	PromoDiscount      decimal.Decimal             `json:"promo_discount"`
	AddonSubtotal      decimal.Decimal             `json:"addon_subtotal"`
	Tax                decimal.Decimal             `json:"tax"`
	Total              decimal.Decimal             `json:"total"`
	PromoCode          string                      `json:"promo_code,omitempty"`
	ConfirmationNumber string                      `json:"confirmation_number,omitempty"`
	CancellationReason string                      `json:"cancellation_reason,omitempty"`
	SessionID          string                      `json:"stripe_session_id,omitempty"`
	Addons             []RegistrationAddonResponse `json:"addons"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// ToRegistrationResponse converts a domain registration to a response DTO
func ToRegistrationResponse(r *registration.Registration) RegistrationResponse {
	addons := make([]RegistrationAddonResponse, len(r.Addons))
	for i, line := range r.Addons {
		addons[i] = RegistrationAddonResponse{
			AddonID:   line.AddonID,
			VariantID: line.VariantID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			IsTaxable: line.IsTaxable,
		}
	}
	return RegistrationResponse{
		ID:                 r.ID,
		TenantID:           r.TenantID,
		CampID:             r.CampID,
		ProfileID:          r.ProfileID,
		AthleteID:          r.AthleteID,
		Status:             string(r.Status),
		BasePrice:          r.BasePrice,
		SiblingDiscount:    r.SiblingDiscount,
		PromoDiscount:      r.PromoDiscount,
		AddonSubtotal:      r.AddonSubtotal,
		Tax:                r.Tax,
		Total:              r.Total,
		PromoCode:          r.PromoCode,
		ConfirmationNumber: r.ConfirmationNumber,
		CancellationReason: r.CancellationReason,
		SessionID:          r.StripeCheckoutSessionID,
		Addons:             addons,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// RegistrationListFilter represents filtering options for registration listing
type RegistrationListFilter struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	CampID    *uuid.UUID `form:"camp_id"`
	ProfileID *uuid.UUID `form:"profile_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// CancelRegistrationRequest carries the cancellation reason
type CancelRegistrationRequest struct {
	Reason string `json:"reason" binding:"required,min=1"`
}
