package registration

import (
	"context"

	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for registration persistence
type Repository interface {
	// FindByID finds a registration with its addon lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Registration, error)

	// FindByIDForTenant finds a registration scoped to a tenant
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Registration, error)

	// FindByIDs finds multiple registrations by ID
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Registration, error)

	// FindAllForTenant finds registrations for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Registration, error)

	// FindByCamp finds registrations for a camp
	FindByCamp(ctx context.Context, campID uuid.UUID, filter shared.Filter) ([]Registration, error)

	// FindByProfile finds registrations belonging to a parent profile
	FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]Registration, error)

	// FindByStripeSession finds all registrations in a checkout batch
	FindByStripeSession(ctx context.Context, sessionID string) ([]Registration, error)

	// CountActiveByCamp counts pending and confirmed registrations for a
	// camp. Run inside the checkout transaction after the camp row is locked
	// so the capacity check is race-free.
	CountActiveByCamp(ctx context.Context, campID uuid.UUID) (int64, error)

	// Save creates or updates a registration with its addon lines
	Save(ctx context.Context, reg *Registration) error

	// AttachStripeSession stamps the session id on every registration in a
	// checkout batch
	AttachStripeSession(ctx context.Context, ids []uuid.UUID, sessionID string) error

	// BulkCancel cancels every registration in a batch with the given reason.
	// Used as compensation when the payment session cannot be created.
	BulkCancel(ctx context.Context, ids []uuid.UUID, reason string) error

	// FindMissingConfirmationNumber finds pending and confirmed registrations
	// that never received a confirmation number, for the backfill job.
	// Cancelled registrations are excluded.
	FindMissingConfirmationNumber(ctx context.Context) ([]Registration, error)
}
