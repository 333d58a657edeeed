package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/camphq/backend/internal/domain/party"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuthorizedPickupRepository implements AuthorizedPickupRepository using GORM
type GormAuthorizedPickupRepository struct {
	db *gorm.DB
}

// NewGormAuthorizedPickupRepository creates a new GormAuthorizedPickupRepository
func NewGormAuthorizedPickupRepository(db *gorm.DB) *GormAuthorizedPickupRepository {
	return &GormAuthorizedPickupRepository{db: db}
}

// FindByID finds a pickup by ID
func (r *GormAuthorizedPickupRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.AuthorizedPickup, error) {
	var model models.AuthorizedPickupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByAthlete finds all active pickups for an athlete
func (r *GormAuthorizedPickupRepository) FindActiveByAthlete(ctx context.Context, athleteID uuid.UUID) ([]party.AuthorizedPickup, error) {
	var pickupModels []models.AuthorizedPickupModel
	if err := r.db.WithContext(ctx).
		Where("athlete_id = ? AND is_active = ?", athleteID, true).
		Order("created_at ASC").
		Find(&pickupModels).Error; err != nil {
		return nil, err
	}

	pickups := make([]party.AuthorizedPickup, len(pickupModels))
	for i, model := range pickupModels {
		pickups[i] = *model.ToDomain()
	}

	return pickups, nil
}

// FindByAthleteAndName finds a pickup by case-insensitive name within an
// athlete, active or not. Returns nil, nil when no match exists.
func (r *GormAuthorizedPickupRepository) FindByAthleteAndName(ctx context.Context, athleteID uuid.UUID, name string) (*party.AuthorizedPickup, error) {
	var model models.AuthorizedPickupModel
	if err := r.db.WithContext(ctx).
		Where("athlete_id = ?", athleteID).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a pickup
func (r *GormAuthorizedPickupRepository) Save(ctx context.Context, pickup *party.AuthorizedPickup) error {
	model := models.AuthorizedPickupModelFromDomain(pickup)
	return r.db.WithContext(ctx).Save(model).Error
}
