//go:generate mockery --name ProgressEntryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressEntryRepository は追記専用の進捗ログを扱います。
// Update / Delete は提供しません。
type ProgressEntryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.ProgressEntry) error // トランザクション対応
	FindByGoal(ctx context.Context, db *gorm.DB, userID, goalID uuid.UUID) ([]*model.ProgressEntry, error)
}

type gormProgressEntryRepository struct{}

func NewGormProgressEntryRepository() ProgressEntryRepository {
	return &gormProgressEntryRepository{}
}

func (r *gormProgressEntryRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.ProgressEntry) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(entry)
	if result.Error != nil {
		logger.Error("Error creating progress entry in DB",
			"error", result.Error,
			"goal_id", entry.GoalID.String(),
		)
		return fmt.Errorf("gormProgressEntryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProgressEntryRepository) FindByGoal(ctx context.Context, db *gorm.DB, userID, goalID uuid.UUID) ([]*model.ProgressEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.ProgressEntry

	result := db.WithContext(ctx).
		Where("user_id = ? AND goal_id = ?", userID, goalID).
		Order("created_at DESC").
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding progress entries in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return nil, fmt.Errorf("gormProgressEntryRepository.FindByGoal: %w", result.Error)
	}
	return entries, nil
}
