//go:generate mockery --name GoalRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CategoryStat はカテゴリ単位の集計クエリの結果行です
type CategoryStat struct {
	Category  model.GoalCategory
	Total     int64
	Completed int64
}

type GoalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, goal *model.Goal) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, userID, goalID uuid.UUID) (*model.Goal, error)
	FindByUserAndLevel(ctx context.Context, db *gorm.DB, userID uuid.UUID, level model.GoalLevel) ([]*model.Goal, error)
	FindByParent(ctx context.Context, db *gorm.DB, userID, parentGoalID uuid.UUID) ([]*model.Goal, error)
	UpdateCurrentValue(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID, value float64) error
	CompleteIfActive(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID, completedAt time.Time) (bool, error)
	CountByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]CategoryStat, error)
}

type gormGoalRepository struct{}

func NewGormGoalRepository() GoalRepository {
	return &gormGoalRepository{}
}

func (r *gormGoalRepository) Create(ctx context.Context, tx *gorm.DB, goal *model.Goal) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(goal)
	if result.Error != nil {
		// (user_id, parent_goal_id, period) の一意制約違反は ErrConflict に変換する
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate period for parent goal",
				"error", result.Error,
				"parent_goal_id", goal.ParentGoalID,
				"period", goal.Period,
			)
			return model.ErrConflict
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}

		logger.Error("Error creating goal in DB",
			"error", result.Error,
			"level", string(goal.Level),
		)
		return fmt.Errorf("gormGoalRepository.Create: %w", result.Error)
	}

	return nil
}

func (r *gormGoalRepository) FindByID(ctx context.Context, db *gorm.DB, userID, goalID uuid.UUID) (*model.Goal, error) {
	logger := middleware.GetLogger(ctx)
	var goal model.Goal

	// user_id でのスコープが所有権チェックを兼ねる
	result := db.WithContext(ctx).Where("goal_id = ? AND user_id = ?", goalID, userID).First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding goal by ID in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return nil, fmt.Errorf("gormGoalRepository.FindByID: %w", result.Error)
	}
	return &goal, nil
}

func (r *gormGoalRepository) FindByUserAndLevel(ctx context.Context, db *gorm.DB, userID uuid.UUID, level model.GoalLevel) ([]*model.Goal, error) {
	logger := middleware.GetLogger(ctx)
	var goals []*model.Goal

	query := db.WithContext(ctx).Where("user_id = ? AND level = ?", userID, level)
	// 年目標は作成日時の降順、月・週目標は期間の降順で返す
	if level == model.LevelYear {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("period DESC")
	}

	result := query.Find(&goals)
	if result.Error != nil {
		logger.Error("Error finding goals by level in DB",
			"error", result.Error,
			"level", string(level),
		)
		return nil, fmt.Errorf("gormGoalRepository.FindByUserAndLevel: %w", result.Error)
	}
	return goals, nil
}

func (r *gormGoalRepository) FindByParent(ctx context.Context, db *gorm.DB, userID, parentGoalID uuid.UUID) ([]*model.Goal, error) {
	logger := middleware.GetLogger(ctx)
	var goals []*model.Goal

	result := db.WithContext(ctx).
		Where("user_id = ? AND parent_goal_id = ?", userID, parentGoalID).
		Order("period ASC").
		Find(&goals)
	if result.Error != nil {
		logger.Error("Error finding goals by parent in DB",
			"error", result.Error,
			"parent_goal_id", parentGoalID.String(),
		)
		return nil, fmt.Errorf("gormGoalRepository.FindByParent: %w", result.Error)
	}
	return goals, nil
}

func (r *gormGoalRepository) UpdateCurrentValue(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID, value float64) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.Goal{}).
		Where("goal_id = ? AND user_id = ?", goalID, userID).
		Update("current_value", value)
	if result.Error != nil {
		logger.Error("Error updating goal current value in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return fmt.Errorf("gormGoalRepository.UpdateCurrentValue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CompleteIfActive は active な行に限って completed へ更新する条件付きUPDATEです。
// 2回目以降の呼び出しでは行が更新されず false が返るため、完了遷移が
// 重複して発火することはありません(completed_at も保持される)。
func (r *gormGoalRepository) CompleteIfActive(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID, completedAt time.Time) (bool, error) {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.Goal{}).
		Where("goal_id = ? AND user_id = ? AND status = ?", goalID, userID, model.StatusActive).
		Updates(map[string]interface{}{
			"status":       model.StatusCompleted,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		logger.Error("Error completing goal in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return false, fmt.Errorf("gormGoalRepository.CompleteIfActive: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormGoalRepository) CountByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]CategoryStat, error) {
	logger := middleware.GetLogger(ctx)
	var stats []CategoryStat

	result := db.WithContext(ctx).Model(&model.Goal{}).
		Select("category, COUNT(*) AS total, COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&stats)
	if result.Error != nil {
		logger.Error("Error counting goals by category in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormGoalRepository.CountByCategory: %w", result.Error)
	}
	return stats, nil
}
