package camp

import (
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Addon represents a purchasable extra offered alongside camp registration
// (merchandise, transport, extended care). Taxable addons collect sales tax
// at the tenant's rate; the camp fee itself never does.
type Addon struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	IsTaxable   bool
	IsActive    bool
	Variants    []AddonVariant
}

// AddonVariant is a selectable variation of an addon (e.g. shirt sizes).
// A variant may override the addon's unit price.
type AddonVariant struct {
	shared.BaseEntity
	AddonID   uuid.UUID
	Name      string
	UnitPrice *decimal.Decimal
	IsActive  bool
}

// NewAddon creates a new active addon
func NewAddon(tenantID uuid.UUID, name string, unitPrice decimal.Decimal, isTaxable bool) (*Addon, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Addon name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Addon name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Addon unit price cannot be negative")
	}

	return &Addon{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		UnitPrice:           unitPrice,
		IsTaxable:           isTaxable,
		IsActive:            true,
	}, nil
}

// AddVariant adds a variant to the addon. Variant names are unique within an
// addon, ignoring case.
func (a *Addon) AddVariant(name string, unitPrice *decimal.Decimal) (*AddonVariant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Variant name cannot be empty")
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant unit price cannot be negative")
	}
	for _, v := range a.Variants {
		if strings.EqualFold(v.Name, name) {
			return nil, shared.NewDomainError("DUPLICATE_VARIANT", "Variant name already exists for this addon")
		}
	}

	variant := AddonVariant{
		BaseEntity: shared.NewBaseEntity(),
		AddonID:    a.ID,
		Name:       name,
		UnitPrice:  unitPrice,
		IsActive:   true,
	}
	a.Variants = append(a.Variants, variant)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return &a.Variants[len(a.Variants)-1], nil
}

// VariantByID returns the variant with the given id, or nil
func (a *Addon) VariantByID(id uuid.UUID) *AddonVariant {
	for i := range a.Variants {
		if a.Variants[i].ID == id {
			return &a.Variants[i]
		}
	}
	return nil
}

// PriceForVariant returns the unit price for the given variant id. A nil
// variant id or a variant without an override falls back to the addon price.
func (a *Addon) PriceForVariant(variantID *uuid.UUID) decimal.Decimal {
	if variantID == nil {
		return a.UnitPrice
	}
	if v := a.VariantByID(*variantID); v != nil && v.UnitPrice != nil {
		return *v.UnitPrice
	}
	return a.UnitPrice
}

// Update updates the addon's editable details
func (a *Addon) Update(name, description string, unitPrice decimal.Decimal, isTaxable bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Addon name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Addon unit price cannot be negative")
	}

	a.Name = name
	a.Description = description
	a.UnitPrice = unitPrice
	a.IsTaxable = isTaxable
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Deactivate retires the addon from new registrations
func (a *Addon) Deactivate() {
	if !a.IsActive {
		return
	}
	a.IsActive = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
