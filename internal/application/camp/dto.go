package camp

import (
	"time"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Camp DTOs
// =============================================================================

// CreateCampRequest represents a request to create a new camp
type CreateCampRequest struct {
	Slug              string           `json:"slug" binding:"required,min=1,max=150"`
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Description       string           `json:"description"`
	Location          string           `json:"location" binding:"max=300"`
	StartDate         time.Time        `json:"start_date" binding:"required"`
	EndDate           time.Time        `json:"end_date" binding:"required"`
	Capacity          int              `json:"capacity" binding:"required,min=1"`
	BasePrice         decimal.Decimal  `json:"base_price" binding:"required"`
	EarlyBirdPrice    *decimal.Decimal `json:"early_bird_price"`
	EarlyBirdDeadline *time.Time       `json:"early_bird_deadline"`
	TenantID          *uuid.UUID       `json:"tenant_id"`
}

// UpdateCampRequest represents a request to update a camp
type UpdateCampRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Description       string           `json:"description"`
	Location          string           `json:"location" binding:"max=300"`
	StartDate         time.Time        `json:"start_date" binding:"required"`
	EndDate           time.Time        `json:"end_date" binding:"required"`
	Capacity          int              `json:"capacity" binding:"required,min=1"`
	BasePrice         decimal.Decimal  `json:"base_price" binding:"required"`
	EarlyBirdPrice    *decimal.Decimal `json:"early_bird_price"`
	EarlyBirdDeadline *time.Time       `json:"early_bird_deadline"`
}

// CampListFilter represents filtering options for camp listing
type CampListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// CampResponse represents a camp in API responses
type CampResponse struct {
	ID                uuid.UUID        `json:"id"`
	TenantID          *uuid.UUID       `json:"tenant_id,omitempty"`
	Slug              string           `json:"slug"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Location          string           `json:"location"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	Capacity          int              `json:"capacity"`
	BasePrice         decimal.Decimal  `json:"base_price"`
	EarlyBirdPrice    *decimal.Decimal `json:"early_bird_price,omitempty"`
	EarlyBirdDeadline *time.Time       `json:"early_bird_deadline,omitempty"`
	EffectivePrice    decimal.Decimal  `json:"effective_price"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Version           int              `json:"version"`
}

// ToCampResponse converts a domain camp to a response DTO. EffectivePrice is
// evaluated at the given instant so listings show what a parent would pay now.
func ToCampResponse(c *camp.Camp, now time.Time) CampResponse {
	resp := CampResponse{
		ID:                c.ID,
		Slug:              c.Slug,
		Name:              c.Name,
		Description:       c.Description,
		Location:          c.Location,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		Capacity:          c.Capacity,
		BasePrice:         c.BasePrice,
		EarlyBirdPrice:    c.EarlyBirdPrice,
		EarlyBirdDeadline: c.EarlyBirdDeadline,
		EffectivePrice:    c.EffectivePriceAt(now),
		Status:            string(c.Status),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		Version:           c.Version,
	}
	if c.HasTenant() {
		tenantID := c.TenantID
		resp.TenantID = &tenantID
	}
	return resp
}

// =============================================================================
// Addon DTOs
// =============================================================================

// CreateAddonRequest represents a request to create a new addon
type CreateAddonRequest struct {
	Name        string                `json:"name" binding:"required,min=1,max=200"`
	Description string                `json:"description"`
	UnitPrice   decimal.Decimal       `json:"unit_price" binding:"required"`
	IsTaxable   bool                  `json:"is_taxable"`
	Variants    []AddonVariantRequest `json:"variants" binding:"dive"`
}

// AddonVariantRequest represents one variant in an addon request
type AddonVariantRequest struct {
	Name      string           `json:"name" binding:"required,min=1,max=100"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateAddonRequest represents a request to update an addon
type UpdateAddonRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	IsTaxable   bool            `json:"is_taxable"`
}

// AddonVariantResponse represents an addon variant in API responses
type AddonVariantResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	IsActive  bool             `json:"is_active"`
}

// AddonResponse represents an addon in API responses
type AddonResponse struct {
	ID          uuid.UUID              `json:"id"`
	TenantID    uuid.UUID              `json:"tenant_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	UnitPrice   decimal.Decimal        `json:"unit_price"`
	IsTaxable   bool                   `json:"is_taxable"`
	IsActive    bool                   `json:"is_active"`
	Variants    []AddonVariantResponse `json:"variants"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ToAddonResponse converts a domain addon to a response DTO
func ToAddonResponse(a *camp.Addon) AddonResponse {
	variants := make([]AddonVariantResponse, len(a.Variants))
	for i, v := range a.Variants {
		variants[i] = AddonVariantResponse{
			ID:        v.ID,
			Name:      v.Name,
			UnitPrice: v.UnitPrice,
			IsActive:  v.IsActive,
		}
	}
	return AddonResponse{
		ID:          a.ID,
		TenantID:    a.TenantID,
		Name:        a.Name,
		Description: a.Description,
		UnitPrice:   a.UnitPrice,
		IsTaxable:   a.IsTaxable,
		IsActive:    a.IsActive,
		Variants:    variants,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// =============================================================================
// Promo code DTOs
// =============================================================================

// CreatePromoCodeRequest represents a request to create a promo code
type CreatePromoCodeRequest struct {
	Code      string          `json:"code" binding:"required,min=1,max=50"`
	Type      string          `json:"type" binding:"required,oneof=percentage fixed"`
	Value     decimal.Decimal `json:"value" binding:"required"`
	AppliesTo string          `json:"applies_to" binding:"required,oneof=registration addons both"`
	StartsAt  *time.Time      `json:"starts_at"`
	EndsAt    *time.Time      `json:"ends_at"`
}

// ValidatePromoCodeRequest represents a request to validate a promo code
type ValidatePromoCodeRequest struct {
	Code string `json:"code" binding:"required,min=1,max=50"`
}

// PromoCodeResponse represents a promo code in API responses
type PromoCodeResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Code      string          `json:"code"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	AppliesTo string          `json:"applies_to"`
	StartsAt  *time.Time      `json:"starts_at,omitempty"`
	EndsAt    *time.Time      `json:"ends_at,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToPromoCodeResponse converts a domain promo code to a response DTO
func ToPromoCodeResponse(p *camp.PromoCode) PromoCodeResponse {
	return PromoCodeResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Code:      p.Code,
		Type:      string(p.Type),
		Value:     p.Value,
		AppliesTo: string(p.AppliesTo),
		StartsAt:  p.StartsAt,
		EndsAt:    p.EndsAt,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
