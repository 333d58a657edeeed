package persistence

import (
	"context"
	"errors"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddonRepository implements AddonRepository using GORM
type GormAddonRepository struct {
	db *gorm.DB
}

// NewGormAddonRepository creates a new GormAddonRepository
func NewGormAddonRepository(db *gorm.DB) *GormAddonRepository {
	return &GormAddonRepository{db: db}
}

// FindByID finds an addon with its variants by ID
func (r *GormAddonRepository) FindByID(ctx context.Context, id uuid.UUID) (*camp.Addon, error) {
	var model models.AddonModel
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an addon scoped to a tenant
func (r *GormAddonRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*camp.Addon, error) {
	var model models.AddonModel
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveForTenant finds all active addons for a tenant
func (r *GormAddonRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]camp.Addon, error) {
	var addonModels []models.AddonModel
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("name ASC").
		Find(&addonModels).Error; err != nil {
		return nil, err
	}

	addons := make([]camp.Addon, len(addonModels))
	for i, model := range addonModels {
		addons[i] = *model.ToDomain()
	}

	return addons, nil
}

// Save creates or updates an addon with its variants
func (r *GormAddonRepository) Save(ctx context.Context, addon *camp.Addon) error {
	model := models.AddonModelFromDomain(addon)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variants := model.Variants
		model.Variants = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		for i := range variants {
			if err := tx.Save(&variants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes an addon and its variants
func (r *GormAddonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AddonVariantModel{}, "addon_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.AddonModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
