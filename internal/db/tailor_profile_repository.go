package db

import (
	"context"

	"github.com/terraincognita07/tailorhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TailorProfileRepository struct {
	database *gorm.DB
}

func NewTailorProfileRepository(database *gorm.DB) *TailorProfileRepository {
	return &TailorProfileRepository{database: database}
}

// Upsert stores the profile for profile.UserID, replacing the submitted
// fields of an existing row and keeping its ratings.
func (repo *TailorProfileRepository) Upsert(ctx context.Context, profile *models.TailorProfile) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"business_name",
			"address",
			"specialties",
			"services",
			"price_range",
			"availability",
			"experience",
			"certifications",
			"portfolio",
			"updated_at",
		}),
	}).Omit("User").Create(profile).Error
}

// FindByUserID returns the profile of userID with its owner preloaded.
func (repo *TailorProfileRepository) FindByUserID(ctx context.Context, userID uint) (models.TailorProfile, error) {
	var profile models.TailorProfile
	if err := repo.database.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.TailorProfile{}, err
	}
	return profile, nil
}

// ListWithUsers returns every tailor profile with its owner, best rated first.
func (repo *TailorProfileRepository) ListWithUsers(ctx context.Context) ([]models.TailorProfile, error) {
	profiles := make([]models.TailorProfile, 0)
	if err := repo.database.WithContext(ctx).
		Preload("User").
		Order("rating_average DESC, id ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
