// internal/service/progress_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_4_goal_wizard/internal/model"
	"go_4_goal_wizard/internal/repository"
	"go_4_goal_wizard/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDBProgress() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

func activeGoalWithTarget(userID, goalID uuid.UUID, target float64) *model.Goal {
	return &model.Goal{
		GoalID:      goalID,
		UserID:      userID,
		Level:       model.LevelWeek,
		Title:       "メッセージを送る",
		Category:    model.CategorySocialSkills,
		TargetValue: &target,
		Status:      model.StatusActive,
	}
}

// --- Test RecordProgress ---
func Test_progressService_RecordProgress(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	userID := uuid.New()
	goalID := uuid.New()

	tests := []struct {
		name          string
		req           *model.RecordProgressRequest
		setupMock     func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository)
		wantErr       error
		wantCompleted bool
	}{
		{
			name: "正常系: 目標値未満の記録では完了しない",
			req:  &model.RecordProgressRequest{Value: f64(3)},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {
				goal := activeGoalWithTarget(userID, goalID, 10)
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(goal, nil).Once()
				progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressEntry")).
					Run(func(args mock.Arguments) {
						entry := args.Get(2).(*model.ProgressEntry)
						assert.Equal(t, goalID, entry.GoalID)
						assert.Equal(t, userID, entry.UserID)
						assert.Equal(t, 3.0, entry.Value)
						assert.NotEqual(t, uuid.Nil, entry.EntryID)
					}).Return(nil).Once()
				goalRepo.On("UpdateCurrentValue", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID, 3.0).
					Return(nil).Once()
				// CompleteIfActive は呼ばれない
				updated := activeGoalWithTarget(userID, goalID, 10)
				updated.CurrentValue = 3
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(updated, nil).Once()
			},
			wantErr:       nil,
			wantCompleted: false,
		},
		{
			name: "正常系: 目標値に到達するとこの呼び出しで完了する",
			req:  &model.RecordProgressRequest{Value: f64(10)},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {
				goal := activeGoalWithTarget(userID, goalID, 10)
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(goal, nil).Once()
				progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressEntry")).
					Return(nil).Once()
				goalRepo.On("UpdateCurrentValue", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID, 10.0).
					Return(nil).Once()
				goalRepo.On("CompleteIfActive", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID, mock.AnythingOfType("time.Time")).
					Return(true, nil).Once()
				completed := activeGoalWithTarget(userID, goalID, 10)
				completed.CurrentValue = 10
				completed.Status = model.StatusCompleted
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(completed, nil).Once()
			},
			wantErr:       nil,
			wantCompleted: true,
		},
		{
			name: "正常系: 完了済みの目標への記録はcompletedにならない",
			req:  &model.RecordProgressRequest{Value: f64(12)},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {
				goal := activeGoalWithTarget(userID, goalID, 10)
				goal.Status = model.StatusCompleted
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(goal, nil).Once()
				progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressEntry")).
					Return(nil).Once()
				goalRepo.On("UpdateCurrentValue", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID, 12.0).
					Return(nil).Once()
				// 条件付きUPDATEは行が更新されず false を返す
				goalRepo.On("CompleteIfActive", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID, mock.AnythingOfType("time.Time")).
					Return(false, nil).Once()
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(goal, nil).Once()
			},
			wantErr:       nil,
			wantCompleted: false,
		},
		{
			name: "正常系: 目標値なしの目標は自動完了しない",
			req:  &model.RecordProgressRequest{Value: f64(100)},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {
				goal := &model.Goal{
					GoalID:   goalID,
					UserID:   userID,
					Level:    model.LevelWeek,
					Category: model.CategoryConfidence,
					Status:   model.StatusActive,
				}
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(goal, nil).Twice()
				progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressEntry")).
					Return(nil).Once()
				goalRepo.On("UpdateCurrentValue", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID, 100.0).
					Return(nil).Once()
			},
			wantErr:       nil,
			wantCompleted: false,
		},
		{
			name:      "異常系: 値がnil",
			req:       &model.RecordProgressRequest{},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name: "異常系: 目標が見つからない",
			req:  &model.RecordProgressRequest{Value: f64(1)},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 進捗ログの書き込み失敗",
			req:  &model.RecordProgressRequest{Value: f64(1)},
			setupMock: func(goalRepo *mocks.GoalRepository, progRepo *mocks.ProgressEntryRepository) {
				goal := activeGoalWithTarget(userID, goalID, 10)
				goalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
					Return(goal, nil).Once()
				progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressEntry")).
					Return(errors.New("db error")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGoalRepo := new(mocks.GoalRepository)
			mockProgRepo := new(mocks.ProgressEntryRepository)
			tt.setupMock(mockGoalRepo, mockProgRepo)
			svc := NewProgressService(db, mockGoalRepo, mockProgRepo)

			resp, err := svc.RecordProgress(ctx, userID, goalID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.wantCompleted, resp.Completed)
				require.NotNil(t, resp.Goal)
			}
			mockGoalRepo.AssertExpectations(t)
			mockProgRepo.AssertExpectations(t)
		})
	}
}

// --- Test ListProgress ---
func Test_progressService_ListProgress(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	userID := uuid.New()
	goalID := uuid.New()

	t.Run("正常系: 進捗履歴を返す", func(t *testing.T) {
		entries := []*model.ProgressEntry{
			{EntryID: uuid.New(), GoalID: goalID, UserID: userID, Value: 5},
			{EntryID: uuid.New(), GoalID: goalID, UserID: userID, Value: 3},
		}

		mockGoalRepo := new(mocks.GoalRepository)
		mockGoalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
			Return(activeGoalWithTarget(userID, goalID, 10), nil).Once()
		mockProgRepo := new(mocks.ProgressEntryRepository)
		mockProgRepo.On("FindByGoal", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
			Return(entries, nil).Once()

		svc := NewProgressService(db, mockGoalRepo, mockProgRepo)

		got, err := svc.ListProgress(ctx, userID, goalID)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
		mockGoalRepo.AssertExpectations(t)
		mockProgRepo.AssertExpectations(t)
	})

	t.Run("正常系: 記録がなくても空スライスを返す", func(t *testing.T) {
		mockGoalRepo := new(mocks.GoalRepository)
		mockGoalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
			Return(activeGoalWithTarget(userID, goalID, 10), nil).Once()
		mockProgRepo := new(mocks.ProgressEntryRepository)
		mockProgRepo.On("FindByGoal", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
			Return(nil, nil).Once()

		svc := NewProgressService(db, mockGoalRepo, mockProgRepo)

		got, err := svc.ListProgress(ctx, userID, goalID)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("異常系: 他ユーザーの目標はNotFound", func(t *testing.T) {
		mockGoalRepo := new(mocks.GoalRepository)
		mockGoalRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, goalID).
			Return(nil, model.ErrNotFound).Once()
		mockProgRepo := new(mocks.ProgressEntryRepository)

		svc := NewProgressService(db, mockGoalRepo, mockProgRepo)

		got, err := svc.ListProgress(ctx, userID, goalID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
		mockProgRepo.AssertNotCalled(t, "FindByGoal")
	})
}

// --- Test GetStatistics ---
func Test_progressService_GetStatistics(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	userID := uuid.New()

	tests := []struct {
		name      string
		stats     []repository.CategoryStat
		wantTotal int64
		wantDone  int64
		wantRate  float64
	}{
		{
			name: "正常系: カテゴリ別の集計と完了率",
			stats: []repository.CategoryStat{
				{Category: model.CategorySocialSkills, Total: 4, Completed: 2},
				{Category: model.CategoryConfidence, Total: 3, Completed: 0},
				{Category: model.CategoryProfile, Total: 1, Completed: 1},
			},
			wantTotal: 8,
			wantDone:  3,
			wantRate:  0.375,
		},
		{
			name:      "正常系: 目標が1件もない場合は完了率0",
			stats:     []repository.CategoryStat{},
			wantTotal: 0,
			wantDone:  0,
			wantRate:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGoalRepo := new(mocks.GoalRepository)
			mockGoalRepo.On("CountByCategory", ctx, mock.AnythingOfType("*gorm.DB"), userID).
				Return(tt.stats, nil).Once()
			mockProgRepo := new(mocks.ProgressEntryRepository)

			svc := NewProgressService(db, mockGoalRepo, mockProgRepo)

			got, err := svc.GetStatistics(ctx, userID)

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantTotal, got.TotalGoals)
			assert.Equal(t, tt.wantDone, got.CompletedGoals)
			assert.InDelta(t, tt.wantRate, got.CompletionRate, 0.001)
			assert.NotNil(t, got.GoalsByCategory)
			mockGoalRepo.AssertExpectations(t)
		})
	}
}
