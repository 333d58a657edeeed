package persistence

import (
	"context"
	"errors"

	"github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRegistrationRepository implements registration.Repository using GORM
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewGormRegistrationRepository creates a new GormRegistrationRepository
func NewGormRegistrationRepository(db *gorm.DB) *GormRegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// FindByID finds a registration with its addon lines by ID
func (r *GormRegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.Registration, error) {
	var model models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a registration scoped to a tenant
func (r *GormRegistrationRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*registration.Registration, error) {
	var model models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple registrations by ID
func (r *GormRegistrationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]registration.Registration, error) {
	if len(ids) == 0 {
		return []registration.Registration{}, nil
	}

	var regModels []models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		Where("id IN ?", ids).
		Find(&regModels).Error; err != nil {
		return nil, err
	}

	return toDomainRegistrations(regModels), nil
}

// FindAllForTenant finds registrations for a tenant
func (r *GormRegistrationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]registration.Registration, error) {
	query := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("tenant_id = ?", tenantID)
	return r.findAll(query, filter)
}

// FindByCamp finds registrations for a camp
func (r *GormRegistrationRepository) FindByCamp(ctx context.Context, campID uuid.UUID, filter shared.Filter) ([]registration.Registration, error) {
	query := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("camp_id = ?", campID)
	return r.findAll(query, filter)
}

// FindByProfile finds registrations belonging to a parent profile
func (r *GormRegistrationRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]registration.Registration, error) {
	query := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("profile_id = ?", profileID)
	return r.findAll(query, filter)
}

func (r *GormRegistrationRepository) findAll(query *gorm.DB, filter shared.Filter) ([]registration.Registration, error) {
	var regModels []models.RegistrationModel

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, RegistrationSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	query = applyPagination(query, filter)

	if err := query.Preload("Addons").Find(&regModels).Error; err != nil {
		return nil, err
	}

	return toDomainRegistrations(regModels), nil
}

// FindByStripeSession finds all registrations in a checkout batch
func (r *GormRegistrationRepository) FindByStripeSession(ctx context.Context, sessionID string) ([]registration.Registration, error) {
	if sessionID == "" {
		return []registration.Registration{}, nil
	}

	var regModels []models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		Where("stripe_checkout_session_id = ?", sessionID).
		Order("camper_index ASC").
		Find(&regModels).Error; err != nil {
		return nil, err
	}

	return toDomainRegistrations(regModels), nil
}

// CountActiveByCamp counts pending and confirmed registrations for a camp.
// Run inside the checkout transaction after the camp row is locked so the
// capacity check cannot race with a concurrent checkout.
func (r *GormRegistrationRepository) CountActiveByCamp(ctx context.Context, campID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("camp_id = ?", campID).
		Where("status IN ?", []registration.Status{registration.StatusPending, registration.StatusConfirmed}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a registration with its addon lines
func (r *GormRegistrationRepository) Save(ctx context.Context, reg *registration.Registration) error {
	model := models.RegistrationModelFromDomain(reg)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		addons := model.Addons
		model.Addons = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		for i := range addons {
			if err := tx.Save(&addons[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AttachStripeSession stamps the session id on every registration in a
// checkout batch
func (r *GormRegistrationRepository) AttachStripeSession(ctx context.Context, ids []uuid.UUID, sessionID string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("id IN ?", ids).
		Update("stripe_checkout_session_id", sessionID).Error
}

// BulkCancel cancels every registration in a batch with the given reason.
// Used as compensation when the payment session cannot be created.
func (r *GormRegistrationRepository) BulkCancel(ctx context.Context, ids []uuid.UUID, reason string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":              registration.StatusCancelled,
			"cancellation_reason": reason,
		}).Error
}

// FindMissingConfirmationNumber finds pending and confirmed registrations
// that never received a confirmation number, for the backfill job. Pending
// rows are included because an orphan that never got a Stripe session has no
// webhook to confirm it, yet still deserves a number.
func (r *GormRegistrationRepository) FindMissingConfirmationNumber(ctx context.Context) ([]registration.Registration, error) {
	var regModels []models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []registration.Status{registration.StatusPending, registration.StatusConfirmed}).
		Where("confirmation_number IS NULL OR confirmation_number = ''").
		Order("created_at ASC").
		Find(&regModels).Error; err != nil {
		return nil, err
	}

	return toDomainRegistrations(regModels), nil
}

func toDomainRegistrations(regModels []models.RegistrationModel) []registration.Registration {
	regs := make([]registration.Registration, len(regModels))
	for i, model := range regModels {
		regs[i] = *model.ToDomain()
	}
	return regs
}
