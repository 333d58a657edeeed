package identity

import (
	"time"

	"github.com/camphq/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest represents a request to create a new tenant
type CreateTenantRequest struct {
	Code           string           `json:"code" binding:"required,min=1,max=50"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Slug           string           `json:"slug" binding:"required,min=1,max=100"`
	ContactName    string           `json:"contact_name" binding:"max=100"`
	ContactPhone   string           `json:"contact_phone" binding:"max=50"`
	ContactEmail   string           `json:"contact_email" binding:"omitempty,email,max=200"`
	TaxRatePercent *decimal.Decimal `json:"tax_rate_percent"`
	Notes          string           `json:"notes"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=200"`
	Notes        *string `json:"notes"`
}

// SetTaxRateRequest represents a request to change a tenant's tax rate
type SetTaxRateRequest struct {
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent" binding:"required"`
}

// TenantListFilter represents filtering options for tenant listing
type TenantListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive suspended"`
	Search   string `form:"search"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Status         string          `json:"status"`
	ContactName    string          `json:"contact_name"`
	ContactPhone   string          `json:"contact_phone"`
	ContactEmail   string          `json:"contact_email"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	IsDefault      bool            `json:"is_default"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToTenantResponse converts a domain tenant to a response DTO
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:             t.ID,
		Code:           t.Code,
		Name:           t.Name,
		Slug:           t.Slug,
		Status:         string(t.Status),
		ContactName:    t.ContactName,
		ContactPhone:   t.ContactPhone,
		ContactEmail:   t.ContactEmail,
		TaxRatePercent: t.TaxRatePercent,
		IsDefault:      t.IsDefault,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Version:        t.Version,
	}
}
