package service

import (
	"context"
	"errors"
	"time"

	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"
	"go_4_goal_wizard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService は進捗の記録・参照と統計の集計を担います
type ProgressService interface {
	RecordProgress(ctx context.Context, userID, goalID uuid.UUID, req *model.RecordProgressRequest) (*model.RecordProgressResponse, error)
	ListProgress(ctx context.Context, userID, goalID uuid.UUID) ([]*model.ProgressEntry, error)
	GetStatistics(ctx context.Context, userID uuid.UUID) (*model.GoalStatistics, error)
}

type progressService struct {
	db           *gorm.DB
	goalRepo     repository.GoalRepository
	progressRepo repository.ProgressEntryRepository
	now          func() time.Time
}

func NewProgressService(db *gorm.DB, goalRepo repository.GoalRepository, progressRepo repository.ProgressEntryRepository) ProgressService {
	return &progressService{
		db:           db,
		goalRepo:     goalRepo,
		progressRepo: progressRepo,
		now:          time.Now,
	}
}

// RecordProgress は進捗値を記録します。1トランザクションで
// (1) 進捗ログへの追記 (2) 現在値の更新 (3) 目標達成時の完了遷移 を行います。
// Completed フラグはこの呼び出しで遷移が起きた場合にのみ true。
// 既に完了済みの目標への記録はエラーではなく、ログと現在値だけが更新されます。
func (s *progressService) RecordProgress(ctx context.Context, userID, goalID uuid.UUID, req *model.RecordProgressRequest) (*model.RecordProgressResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "goal_id", goalID.String())

	if req.Value == nil || *req.Value < 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "進捗の値は0以上で指定してください。", "value", model.ErrInvalidInput)
	}
	value := *req.Value

	var resp *model.RecordProgressResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := s.goalRepo.FindByID(ctx, tx, userID, goalID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("GOAL_NOT_FOUND", "目標が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "目標の取得に失敗しました。", "", model.ErrInternalServer)
		}

		entry := &model.ProgressEntry{
			EntryID: uuid.New(),
			GoalID:  goal.GoalID,
			UserID:  userID,
			Value:   value,
			Notes:   req.Notes,
		}
		if err := s.progressRepo.Create(ctx, tx, entry); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の記録に失敗しました。", "", model.ErrInternalServer)
		}

		if err := s.goalRepo.UpdateCurrentValue(ctx, tx, userID, goalID, value); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の記録に失敗しました。", "", model.ErrInternalServer)
		}

		completed := false
		if goal.TargetValue != nil && value >= *goal.TargetValue {
			// 条件付きUPDATEなので、既に完了済みなら false のまま
			completed, err = s.goalRepo.CompleteIfActive(ctx, tx, userID, goalID, s.now())
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "目標の完了処理に失敗しました。", "", model.ErrInternalServer)
			}
		}

		updated, err := s.goalRepo.FindByID(ctx, tx, userID, goalID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "目標の取得に失敗しました。", "", model.ErrInternalServer)
		}

		resp = &model.RecordProgressResponse{
			Completed: completed,
			Goal:      updated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Progress recorded", "value", value, "completed", resp.Completed)
	return resp, nil
}

func (s *progressService) ListProgress(ctx context.Context, userID, goalID uuid.UUID) ([]*model.ProgressEntry, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "goal_id", goalID.String())

	// 所有権の確認。他ユーザーの目標はNotFoundとして扱う。
	if _, err := s.goalRepo.FindByID(ctx, s.db, userID, goalID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("GOAL_NOT_FOUND", "目標が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標の取得に失敗しました。", "", model.ErrInternalServer)
	}

	entries, err := s.progressRepo.FindByGoal(ctx, s.db, userID, goalID)
	if err != nil {
		logger.Error("Error listing progress entries", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の取得に失敗しました。", "", model.ErrInternalServer)
	}
	if entries == nil {
		entries = []*model.ProgressEntry{}
	}
	return entries, nil
}

// GetStatistics はユーザーの全目標を集計します。
// 完了率は 0〜1 の割合で、目標が1件もない場合は 0 を返します。
func (s *progressService) GetStatistics(ctx context.Context, userID uuid.UUID) (*model.GoalStatistics, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	stats, err := s.goalRepo.CountByCategory(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error aggregating goal statistics", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", model.ErrInternalServer)
	}

	result := &model.GoalStatistics{
		GoalsByCategory: make(map[model.GoalCategory]model.CategoryCount, len(stats)),
	}
	for _, s := range stats {
		result.TotalGoals += s.Total
		result.CompletedGoals += s.Completed
		result.GoalsByCategory[s.Category] = model.CategoryCount{
			Total:     s.Total,
			Completed: s.Completed,
		}
	}
	if result.TotalGoals > 0 {
		result.CompletionRate = float64(result.CompletedGoals) / float64(result.TotalGoals)
	}
	return result, nil
}
