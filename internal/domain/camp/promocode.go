package camp

import (
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoType represents how a promo code's value is interpreted
type PromoType string

const (
	PromoTypePercentage PromoType = "percentage"
	PromoTypeFixed      PromoType = "fixed"
)

// PromoAppliesTo restricts which part of an order a promo discounts
type PromoAppliesTo string

const (
	PromoAppliesToRegistration PromoAppliesTo = "registration"
	PromoAppliesToAddons       PromoAppliesTo = "addons"
	PromoAppliesToBoth         PromoAppliesTo = "both"
)

// PromoCode represents a tenant-scoped discount code. Codes are stored
// uppercase; lookups normalize before matching.
type PromoCode struct {
	shared.TenantAggregateRoot
	Code      string
	Type      PromoType
	Value     decimal.Decimal
	AppliesTo PromoAppliesTo
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  bool
}

// NewPromoCode creates a new active promo code
func NewPromoCode(tenantID uuid.UUID, code string, promoType PromoType, value decimal.Decimal, appliesTo PromoAppliesTo) (*PromoCode, error) {
	code = NormalizePromoCode(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Promo code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Promo code cannot exceed 50 characters")
	}
	if err := validatePromoType(promoType); err != nil {
		return nil, err
	}
	if err := validatePromoAppliesTo(appliesTo); err != nil {
		return nil, err
	}
	if !value.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Promo value must be positive")
	}
	if promoType == PromoTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Percentage promo cannot exceed 100")
	}

	return &PromoCode{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Type:                promoType,
		Value:               value,
		AppliesTo:           appliesTo,
		IsActive:            true,
	}, nil
}

// NormalizePromoCode uppercases and trims a promo code for comparison
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SetWindow sets the active window. Either bound may be nil for open-ended.
func (p *PromoCode) SetWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "Promo end cannot be before start")
	}

	p.StartsAt = startsAt
	p.EndsAt = endsAt
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsValidAt reports whether the code can be redeemed at the given instant
func (p *PromoCode) IsValidAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}

// AppliesToRegistration reports whether the code discounts the camp fee
func (p *PromoCode) AppliesToRegistration() bool {
	return p.AppliesTo == PromoAppliesToRegistration || p.AppliesTo == PromoAppliesToBoth
}

// AppliesToAddons reports whether the code discounts addon purchases
func (p *PromoCode) AppliesToAddons() bool {
	return p.AppliesTo == PromoAppliesToAddons || p.AppliesTo == PromoAppliesToBoth
}

// Deactivate permanently disables the code
func (p *PromoCode) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validatePromoType(t PromoType) error {
	switch t {
	case PromoTypePercentage, PromoTypeFixed:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Promo type must be percentage or fixed")
	}
}

func validatePromoAppliesTo(a PromoAppliesTo) error {
	switch a {
	case PromoAppliesToRegistration, PromoAppliesToAddons, PromoAppliesToBoth:
		return nil
	default:
		return shared.NewDomainError("INVALID_APPLIES_TO", "Promo scope must be registration, addons, or both")
	}
}
