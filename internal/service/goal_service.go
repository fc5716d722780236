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

// GoalService は目標階層(年→月→週)の作成・生成・参照を担います
type GoalService interface {
	CreateYearGoal(ctx context.Context, userID uuid.UUID, req *model.CreateYearGoalRequest) (*model.Goal, error)
	GenerateMonthGoals(ctx context.Context, userID, yearGoalID uuid.UUID) ([]*model.Goal, error)
	GenerateWeekGoals(ctx context.Context, userID, monthGoalID uuid.UUID) ([]*model.Goal, error)
	GetHierarchy(ctx context.Context, userID uuid.UUID) (*model.GoalHierarchyResponse, error)
	MarkCompleted(ctx context.Context, userID, goalID uuid.UUID) (*model.Goal, error)
}

type goalService struct {
	db        *gorm.DB
	goalRepo  repository.GoalRepository
	suggester SuggestionService
	now       func() time.Time // テストで固定するためのフック
}

func NewGoalService(db *gorm.DB, goalRepo repository.GoalRepository, suggester SuggestionService) GoalService {
	return &goalService{
		db:        db,
		goalRepo:  goalRepo,
		suggester: suggester,
		now:       time.Now,
	}
}

func (s *goalService) CreateYearGoal(ctx context.Context, userID uuid.UUID, req *model.CreateYearGoalRequest) (*model.Goal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	if req.Title == "" || !req.Category.IsValid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "タイトルとカテゴリは必須です。", "", model.ErrInvalidInput)
	}
	if req.AIConfidence < 0 || req.AIConfidence > 1 {
		return nil, model.NewAppError("VALIDATION_ERROR", "信頼度は0〜1の範囲で指定してください。", "ai_confidence", model.ErrInvalidInput)
	}

	goal := &model.Goal{
		GoalID:       uuid.New(),
		UserID:       userID,
		Level:        model.LevelYear,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetValue:  req.TargetValue,
		AIGenerated:  req.AIGenerated,
		AIConfidence: req.AIConfidence,
		Status:       model.StatusActive,
	}
	if err := s.goalRepo.Create(ctx, s.db, goal); err != nil {
		logger.Error("Error creating year goal", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "年目標の作成に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Year goal created", "goal_id", goal.GoalID.String(), "category", string(goal.Category))
	return goal, nil
}

func (s *goalService) GenerateMonthGoals(ctx context.Context, userID, yearGoalID uuid.UUID) ([]*model.Goal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "year_goal_id", yearGoalID.String())

	parent, err := s.resolveParent(ctx, userID, yearGoalID, model.LevelYear)
	if err != nil {
		return nil, err
	}

	// 提案生成は決して失敗しない(フォールバックがあるため)
	drafts := s.suggester.SuggestGoals(ctx, userID, model.LevelMonth, parent)

	goals, err := s.materialize(ctx, userID, parent, model.LevelMonth, drafts)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			// 期間の重複 = 生成済み。エラーにせず既存の子目標を返す。
			logger.Info("Month goals already generated for this year goal")
			return s.goalRepo.FindByParent(ctx, s.db, userID, yearGoalID)
		}
		logger.Error("Error materializing month goals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "月目標の生成に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Month goals generated", "count", len(goals))
	return goals, nil
}

func (s *goalService) GenerateWeekGoals(ctx context.Context, userID, monthGoalID uuid.UUID) ([]*model.Goal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "month_goal_id", monthGoalID.String())

	parent, err := s.resolveParent(ctx, userID, monthGoalID, model.LevelMonth)
	if err != nil {
		return nil, err
	}

	drafts := s.suggester.SuggestGoals(ctx, userID, model.LevelWeek, parent)

	goals, err := s.materialize(ctx, userID, parent, model.LevelWeek, drafts)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Info("Week goals already generated for this month goal")
			return s.goalRepo.FindByParent(ctx, s.db, userID, monthGoalID)
		}
		logger.Error("Error materializing week goals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "週目標の生成に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Week goals generated", "count", len(goals))
	return goals, nil
}

// resolveParent は親目標の存在・所有権・階層レベルを検証します。
// 他ユーザーの目標やレベル違いの参照は、存在しないものとして扱う(NotFound)。
func (s *goalService) resolveParent(ctx context.Context, userID, parentID uuid.UUID, wantLevel model.GoalLevel) (*model.Goal, error) {
	parent, err := s.goalRepo.FindByID(ctx, s.db, userID, parentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PARENT_NOT_FOUND", "親の目標が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "親の目標の取得に失敗しました。", "", model.ErrInternalServer)
	}
	if parent.Level != wantLevel {
		return nil, model.NewAppError("PARENT_NOT_FOUND", "親の目標の階層が正しくありません。", "", model.ErrNotFound)
	}
	return parent, nil
}

// materialize はドラフトを期間付きの目標行として一括保存します。
// 1トランザクションで全件挿入し、期間は i 番目のドラフトに対して
// 単調増加するよう割り当てる。途中で失敗した場合は全件ロールバックされます
// (一部だけ保存された状態は残らない)。
func (s *goalService) materialize(ctx context.Context, userID uuid.UUID, parent *model.Goal, level model.GoalLevel, drafts []model.GoalDraft) ([]*model.Goal, error) {
	base := s.now()
	goals := make([]*model.Goal, 0, len(drafts))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, draft := range drafts {
			var period string
			if level == model.LevelMonth {
				period = MonthPeriod(base, i)
			} else {
				period = WeekPeriod(base, i)
			}

			parentID := parent.GoalID
			goal := &model.Goal{
				GoalID:       uuid.New(),
				UserID:       userID,
				Level:        level,
				Period:       &period,
				ParentGoalID: &parentID,
				Title:        draft.Title,
				Description:  draft.Description,
				Category:     draft.Category,
				TargetValue:  draft.TargetValue,
				AIGenerated:  true, // フォールバック経由でもAI起源として扱う(監査用)
				AIConfidence: draft.AIConfidence,
				Status:       model.StatusActive,
			}
			if err := s.goalRepo.Create(ctx, tx, goal); err != nil {
				return err
			}
			goals = append(goals, goal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *goalService) GetHierarchy(ctx context.Context, userID uuid.UUID) (*model.GoalHierarchyResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	yearGoals, err := s.goalRepo.FindByUserAndLevel(ctx, s.db, userID, model.LevelYear)
	if err != nil {
		logger.Error("Error fetching year goals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標階層の取得に失敗しました。", "", model.ErrInternalServer)
	}
	monthGoals, err := s.goalRepo.FindByUserAndLevel(ctx, s.db, userID, model.LevelMonth)
	if err != nil {
		logger.Error("Error fetching month goals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標階層の取得に失敗しました。", "", model.ErrInternalServer)
	}
	weekGoals, err := s.goalRepo.FindByUserAndLevel(ctx, s.db, userID, model.LevelWeek)
	if err != nil {
		logger.Error("Error fetching week goals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "目標階層の取得に失敗しました。", "", model.ErrInternalServer)
	}

	if yearGoals == nil {
		yearGoals = []*model.Goal{}
	}
	if monthGoals == nil {
		monthGoals = []*model.Goal{}
	}
	if weekGoals == nil {
		weekGoals = []*model.Goal{}
	}

	return &model.GoalHierarchyResponse{
		YearGoals:  yearGoals,
		MonthGoals: monthGoals,
		WeekGoals:  weekGoals,
	}, nil
}

// MarkCompleted は目標を手動で完了にします。targetValue を持たない目標は
// 自動完了の契機がないため、この操作が唯一の完了手段になります。
// 遷移は active な行への条件付きUPDATEで、既に完了済みなら ErrConflict。
func (s *goalService) MarkCompleted(ctx context.Context, userID, goalID uuid.UUID) (*model.Goal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "goal_id", goalID.String())

	var completed *model.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := s.goalRepo.CompleteIfActive(ctx, tx, userID, goalID, s.now())
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "目標の完了処理に失敗しました。", "", model.ErrInternalServer)
		}

		goal, err := s.goalRepo.FindByID(ctx, tx, userID, goalID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("GOAL_NOT_FOUND", "目標が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "目標の取得に失敗しました。", "", model.ErrInternalServer)
		}

		if !updated {
			// 行は存在するが active ではなかった = 完了済み
			return model.NewAppError("ALREADY_COMPLETED", "この目標は既に完了しています。", "", model.ErrConflict)
		}

		completed = goal
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Goal manually completed")
	return completed, nil
}
