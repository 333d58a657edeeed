package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPromoCodeRepository implements PromoCodeRepository using GORM
type GormPromoCodeRepository struct {
	db *gorm.DB
}

// NewGormPromoCodeRepository creates a new GormPromoCodeRepository
func NewGormPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

// FindByID finds a promo code by ID
func (r *GormPromoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*camp.PromoCode, error) {
	var model models.PromoCodeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCodeForTenant finds a promo code by code within a tenant.
// Returns nil, nil when no match exists so callers can distinguish
// "unknown code" from an infrastructure failure.
func (r *GormPromoCodeRepository) FindByCodeForTenant(ctx context.Context, code string, tenantID uuid.UUID) (*camp.PromoCode, error) {
	var model models.PromoCodeModel
	if err := r.db.WithContext(ctx).
		Where("UPPER(code) = ? AND tenant_id = ?", strings.ToUpper(code), tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all promo codes for a tenant
func (r *GormPromoCodeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]camp.PromoCode, error) {
	var promoModels []models.PromoCodeModel
	query := r.db.WithContext(ctx).Model(&models.PromoCodeModel{}).
		Where("tenant_id = ?", tenantID)

	// Apply keyword search
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ?", keyword)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, PromoCodeSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	query = applyPagination(query, filter)

	if err := query.Find(&promoModels).Error; err != nil {
		return nil, err
	}

	promos := make([]camp.PromoCode, len(promoModels))
	for i, model := range promoModels {
		promos[i] = *model.ToDomain()
	}

	return promos, nil
}

// Save creates or updates a promo code
func (r *GormPromoCodeRepository) Save(ctx context.Context, promo *camp.PromoCode) error {
	model := models.PromoCodeModelFromDomain(promo)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a promo code
func (r *GormPromoCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PromoCodeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
