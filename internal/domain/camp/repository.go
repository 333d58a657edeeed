package camp

import (
	"context"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CampRepository defines the interface for camp persistence
type CampRepository interface {
	// FindByID finds a camp by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Camp, error)

	// FindByIDForUpdate finds a camp by ID inside the current transaction,
	// acquiring a row lock so concurrent checkouts serialize on it
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Camp, error)

	// FindBySlug finds a camp by its slug
	FindBySlug(ctx context.Context, slug string) (*Camp, error)

	// FindPublished finds all published camps
	FindPublished(ctx context.Context, filter shared.Filter) ([]Camp, error)

	// FindAllForTenant finds all camps belonging to a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Camp, error)

	// Save creates or updates a camp
	Save(ctx context.Context, c *Camp) error

	// Delete deletes a camp
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySlug checks if a camp with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// AddonRepository defines the interface for addon persistence
type AddonRepository interface {
	// FindByID finds an addon with its variants by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Addon, error)

	// FindByIDForTenant finds an addon scoped to a tenant
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Addon, error)

	// FindActiveForTenant finds all active addons for a tenant
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Addon, error)

	// Save creates or updates an addon with its variants
	Save(ctx context.Context, addon *Addon) error

	// Delete deletes an addon
	Delete(ctx context.Context, id uuid.UUID) error
}

// PromoCodeRepository defines the interface for promo code persistence
type PromoCodeRepository interface {
	// FindByID finds a promo code by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PromoCode, error)

	// FindByCodeForTenant finds a promo code by normalized code within a
	// tenant. Returns nil, nil when no match exists.
	FindByCodeForTenant(ctx context.Context, code string, tenantID uuid.UUID) (*PromoCode, error)

	// FindAllForTenant finds all promo codes for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PromoCode, error)

	// Save creates or updates a promo code
	Save(ctx context.Context, promo *PromoCode) error

	// Delete deletes a promo code
	Delete(ctx context.Context, id uuid.UUID) error
}
