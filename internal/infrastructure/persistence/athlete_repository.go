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

// GormAthleteRepository implements AthleteRepository using GORM
type GormAthleteRepository struct {
	db *gorm.DB
}

// NewGormAthleteRepository creates a new GormAthleteRepository
func NewGormAthleteRepository(db *gorm.DB) *GormAthleteRepository {
	return &GormAthleteRepository{db: db}
}

// FindByID finds an athlete by ID
func (r *GormAthleteRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Athlete, error) {
	var model models.AthleteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProfile finds an athlete by ID scoped to its parent profile
func (r *GormAthleteRepository) FindByIDForProfile(ctx context.Context, id, profileID uuid.UUID) (*party.Athlete, error) {
	var model models.AthleteModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", id, profileID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProfile finds all athletes owned by a profile
func (r *GormAthleteRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]party.Athlete, error) {
	var athleteModels []models.AthleteModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&athleteModels).Error; err != nil {
		return nil, err
	}

	athletes := make([]party.Athlete, len(athleteModels))
	for i, model := range athleteModels {
		athletes[i] = *model.ToDomain()
	}

	return athletes, nil
}

// FindByProfileAndName finds an athlete by case-insensitive first/last name
// within a profile. Returns nil, nil when no match exists.
func (r *GormAthleteRepository) FindByProfileAndName(ctx context.Context, profileID uuid.UUID, firstName, lastName string) (*party.Athlete, error) {
	var model models.AthleteModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Where("LOWER(first_name) = ? AND LOWER(last_name) = ?",
			strings.ToLower(strings.TrimSpace(firstName)),
			strings.ToLower(strings.TrimSpace(lastName))).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an athlete
func (r *GormAthleteRepository) Save(ctx context.Context, athlete *party.Athlete) error {
	model := models.AthleteModelFromDomain(athlete)
	return r.db.WithContext(ctx).Save(model).Error
}
