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
	"gorm.io/gorm/clause"
)

// GormCampRepository implements CampRepository using GORM
type GormCampRepository struct {
	db *gorm.DB
}

// NewGormCampRepository creates a new GormCampRepository
func NewGormCampRepository(db *gorm.DB) *GormCampRepository {
	return &GormCampRepository{db: db}
}

// FindByID finds a camp by its ID
func (r *GormCampRepository) FindByID(ctx context.Context, id uuid.UUID) (*camp.Camp, error) {
	var model models.CampModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a camp by ID with a row lock. Callers must run this
// inside a transaction; the lock holds until the transaction ends, so
// concurrent checkouts for the same camp serialize here.
func (r *GormCampRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*camp.Camp, error) {
	var model models.CampModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a camp by its slug
func (r *GormCampRepository) FindBySlug(ctx context.Context, slug string) (*camp.Camp, error) {
	if slug == "" {
		return nil, shared.ErrNotFound
	}
	var model models.CampModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(slug) = ?", strings.ToLower(slug)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPublished finds all published camps
func (r *GormCampRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]camp.Camp, error) {
	query := r.db.WithContext(ctx).Model(&models.CampModel{}).
		Where("status = ?", camp.CampStatusPublished)
	return r.findAll(query, filter, "start_date", "ASC")
}

// FindAllForTenant finds all camps belonging to a tenant
func (r *GormCampRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]camp.Camp, error) {
	query := r.db.WithContext(ctx).Model(&models.CampModel{}).
		Where("tenant_id = ?", tenantID)
	return r.findAll(query, filter, "created_at", "")
}

func (r *GormCampRepository) findAll(query *gorm.DB, filter shared.Filter, defaultSort, forceOrder string) ([]camp.Camp, error) {
	var campModels []models.CampModel

	// Apply keyword search
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ? OR location ILIKE ?", keyword, keyword, keyword)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, CampSortFields, defaultSort)
	sortOrder := forceOrder
	if sortOrder == "" {
		sortOrder = ValidateSortOrder(filter.OrderDir)
	}
	query = query.Order(sortField + " " + sortOrder)

	query = applyPagination(query, filter)

	if err := query.Find(&campModels).Error; err != nil {
		return nil, err
	}

	camps := make([]camp.Camp, len(campModels))
	for i, model := range campModels {
		camps[i] = *model.ToDomain()
	}

	return camps, nil
}

// Save creates or updates a camp
func (r *GormCampRepository) Save(ctx context.Context, c *camp.Camp) error {
	model := models.CampModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a camp
func (r *GormCampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CampModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks if a camp with the given slug exists
func (r *GormCampRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CampModel{}).
		Where("LOWER(slug) = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
