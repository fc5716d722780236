//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, profile *model.ProfileContext) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.ProfileContext, error)
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Upsert(ctx context.Context, db *gorm.DB, profile *model.ProfileContext) error {
	logger := middleware.GetLogger(ctx)

	// 主キーが user_id なので Save が INSERT / UPDATE を使い分ける
	result := db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		logger.Error("Error upserting profile context in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.ProfileContext, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.ProfileContext

	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Profile context not found", "user_id", userID.String())
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile context in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByUserID: %w", result.Error)
	}
	return &profile, nil
}
