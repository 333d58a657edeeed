package camp

import (
	"strings"
	"time"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampStatus represents the lifecycle status of a camp
type CampStatus string

const (
	CampStatusDraft     CampStatus = "draft"
	CampStatusPublished CampStatus = "published"
	CampStatusArchived  CampStatus = "archived"
)

// Camp represents a single camp session parents register for.
// A camp may exist before it is attached to a tenant; checkout resolves and
// persists the tenant on first use, so TenantID is uuid.Nil until then.
type Camp struct {
	shared.BaseAggregateRoot
	TenantID       uuid.UUID
	Slug           string
	Name           string
	Description    string
	Location       string
	StartDate      time.Time
	EndDate        time.Time
	Capacity       int
	BasePrice      decimal.Decimal
	EarlyBirdPrice *decimal.Decimal
	// EarlyBirdDeadline is exclusive: the early-bird price applies only while
	// now is strictly before it.
	EarlyBirdDeadline *time.Time
	Status            CampStatus
}

// NewCamp creates a new camp in draft status
func NewCamp(slug, name string, startDate, endDate time.Time, capacity int, basePrice decimal.Decimal) (*Camp, error) {
	if err := validateCampSlug(slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Camp name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Camp name cannot exceed 200 characters")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATES", "Camp start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATES", "Camp end date cannot be before start date")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Camp capacity must be positive")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Camp base price cannot be negative")
	}

	camp := &Camp{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		StartDate:         startDate,
		EndDate:           endDate,
		Capacity:          capacity,
		BasePrice:         basePrice,
		Status:            CampStatusDraft,
	}

	camp.AddDomainEvent(NewCampCreatedEvent(camp))

	return camp, nil
}

// SetEarlyBird configures early-bird pricing. The deadline is exclusive.
func (c *Camp) SetEarlyBird(price decimal.Decimal, deadline time.Time) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Early-bird price cannot be negative")
	}
	if price.GreaterThan(c.BasePrice) {
		return shared.NewDomainError("INVALID_PRICE", "Early-bird price cannot exceed the base price")
	}
	if deadline.IsZero() {
		return shared.NewDomainError("INVALID_DEADLINE", "Early-bird deadline is required")
	}

	c.EarlyBirdPrice = &price
	c.EarlyBirdDeadline = &deadline
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ClearEarlyBird removes early-bird pricing
func (c *Camp) ClearEarlyBird() {
	c.EarlyBirdPrice = nil
	c.EarlyBirdDeadline = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// EffectivePriceAt returns the per-camper camp price at the given instant.
// Early-bird applies only when both price and deadline are set and now is
// strictly before the deadline.
func (c *Camp) EffectivePriceAt(now time.Time) decimal.Decimal {
	if c.EarlyBirdPrice != nil && c.EarlyBirdDeadline != nil && now.Before(*c.EarlyBirdDeadline) {
		return *c.EarlyBirdPrice
	}
	return c.BasePrice
}

// AssignTenant attaches the camp to a tenant. Once assigned the tenant is
// never changed.
func (c *Camp) AssignTenant(tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant id cannot be empty")
	}
	if c.TenantID != uuid.Nil && c.TenantID != tenantID {
		return shared.NewDomainError("TENANT_MISMATCH", "Camp is already assigned to a different tenant")
	}
	if c.TenantID == tenantID {
		return nil
	}

	c.TenantID = tenantID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// HasTenant reports whether the camp has been attached to a tenant
func (c *Camp) HasTenant() bool {
	return c.TenantID != uuid.Nil
}

// Update updates the camp's editable details
func (c *Camp) Update(name, description, location string, startDate, endDate time.Time, capacity int, basePrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Camp name cannot be empty")
	}
	if endDate.Before(startDate) {
		return shared.NewDomainError("INVALID_DATES", "Camp end date cannot be before start date")
	}
	if capacity <= 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Camp capacity must be positive")
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Camp base price cannot be negative")
	}

	c.Name = name
	c.Description = description
	c.Location = location
	c.StartDate = startDate
	c.EndDate = endDate
	c.Capacity = capacity
	c.BasePrice = basePrice
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCampUpdatedEvent(c))

	return nil
}

// Publish makes the camp visible for registration
func (c *Camp) Publish() error {
	if c.Status == CampStatusPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Camp is already published")
	}
	if c.Status == CampStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Archived camps cannot be published")
	}

	c.Status = CampStatusPublished
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Archive retires the camp from public listings
func (c *Camp) Archive() error {
	if c.Status == CampStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Camp is already archived")
	}

	c.Status = CampStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsPublished returns true if the camp is open for registration
func (c *Camp) IsPublished() bool {
	return c.Status == CampStatusPublished
}

func validateCampSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Camp slug cannot be empty")
	}
	if len(slug) > 150 {
		return shared.NewDomainError("INVALID_SLUG", "Camp slug cannot exceed 150 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Camp slug can only contain letters, numbers, and hyphens")
		}
	}
	return nil
}
