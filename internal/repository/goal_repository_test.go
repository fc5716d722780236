// internal/repository/goal_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"go_4_goal_wizard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
// テストごとに独立したインメモリDBを作る (cache=shared にしない)
func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // 一意制約違反を gorm.ErrDuplicatedKey に変換させる
	})
	require.NoError(t, err)

	// インメモリDBは接続ごとに独立してしまうため、コネクションを1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Goal{}, &model.ProgressEntry{}, &model.ProfileContext{}))
	return db
}

func strPtr(s string) *string { return &s }

func newYearGoal(userID uuid.UUID, category model.GoalCategory) *model.Goal {
	return &model.Goal{
		GoalID:   uuid.New(),
		UserID:   userID,
		Level:    model.LevelYear,
		Title:    "年目標",
		Category: category,
		Status:   model.StatusActive,
	}
}

func newMonthGoal(userID, parentID uuid.UUID, period string) *model.Goal {
	return &model.Goal{
		GoalID:       uuid.New(),
		UserID:       userID,
		Level:        model.LevelMonth,
		Period:       strPtr(period),
		ParentGoalID: &parentID,
		Title:        "月目標 " + period,
		Category:     model.CategorySocialSkills,
		Status:       model.StatusActive,
	}
}

func Test_gormGoalRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGoalRepository()
	userID := uuid.New()

	t.Run("正常系: 期間なしの年目標は複数作成できる", func(t *testing.T) {
		db := setupRepoTestDB(t)

		require.NoError(t, repo.Create(ctx, db, newYearGoal(userID, model.CategoryRelationship)))
		require.NoError(t, repo.Create(ctx, db, newYearGoal(userID, model.CategoryConfidence)))

		goals, err := repo.FindByUserAndLevel(ctx, db, userID, model.LevelYear)
		require.NoError(t, err)
		assert.Len(t, goals, 2)
	})

	t.Run("異常系: 同じ親と期間の重複はErrConflict", func(t *testing.T) {
		db := setupRepoTestDB(t)
		parent := newYearGoal(userID, model.CategorySocialSkills)
		require.NoError(t, repo.Create(ctx, db, parent))

		require.NoError(t, repo.Create(ctx, db, newMonthGoal(userID, parent.GoalID, "2026-08")))

		err := repo.Create(ctx, db, newMonthGoal(userID, parent.GoalID, "2026-08"))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("正常系: 別ユーザーなら同じ期間でも作成できる", func(t *testing.T) {
		db := setupRepoTestDB(t)
		otherUserID := uuid.New()

		parentA := newYearGoal(userID, model.CategoryProfile)
		parentB := newYearGoal(otherUserID, model.CategoryProfile)
		require.NoError(t, repo.Create(ctx, db, parentA))
		require.NoError(t, repo.Create(ctx, db, parentB))

		require.NoError(t, repo.Create(ctx, db, newMonthGoal(userID, parentA.GoalID, "2026-08")))
		require.NoError(t, repo.Create(ctx, db, newMonthGoal(otherUserID, parentB.GoalID, "2026-08")))
	})
}

func Test_gormGoalRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGoalRepository()
	db := setupRepoTestDB(t)
	userID := uuid.New()

	goal := newYearGoal(userID, model.CategoryConfidence)
	require.NoError(t, repo.Create(ctx, db, goal))

	t.Run("正常系: 自分の目標を取得できる", func(t *testing.T) {
		got, err := repo.FindByID(ctx, db, userID, goal.GoalID)
		require.NoError(t, err)
		assert.Equal(t, goal.GoalID, got.GoalID)
	})

	t.Run("異常系: 他ユーザーの目標はErrNotFound", func(t *testing.T) {
		got, err := repo.FindByID(ctx, db, uuid.New(), goal.GoalID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}

func Test_gormGoalRepository_FindByParent(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGoalRepository()
	db := setupRepoTestDB(t)
	userID := uuid.New()

	parent := newYearGoal(userID, model.CategoryConsistency)
	require.NoError(t, repo.Create(ctx, db, parent))

	// 逆順に挿入しても期間の昇順で返る
	require.NoError(t, repo.Create(ctx, db, newMonthGoal(userID, parent.GoalID, "2026-10")))
	require.NoError(t, repo.Create(ctx, db, newMonthGoal(userID, parent.GoalID, "2026-08")))
	require.NoError(t, repo.Create(ctx, db, newMonthGoal(userID, parent.GoalID, "2026-09")))

	goals, err := repo.FindByParent(ctx, db, userID, parent.GoalID)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "2026-08", *goals[0].Period)
	assert.Equal(t, "2026-09", *goals[1].Period)
	assert.Equal(t, "2026-10", *goals[2].Period)
}

func Test_gormGoalRepository_CompleteIfActive(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGoalRepository()
	db := setupRepoTestDB(t)
	userID := uuid.New()

	goal := newYearGoal(userID, model.CategorySocialSkills)
	require.NoError(t, repo.Create(ctx, db, goal))
	completedAt := time.Now()

	// 1回目: active → completed の遷移が起きる
	updated, err := repo.CompleteIfActive(ctx, db, userID, goal.GoalID, completedAt)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.FindByID(ctx, db, userID, goal.GoalID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)

	// 2回目: 行は更新されず false (completed_at も変わらない)
	updated, err = repo.CompleteIfActive(ctx, db, userID, goal.GoalID, completedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, updated)

	got2, err := repo.FindByID(ctx, db, userID, goal.GoalID)
	require.NoError(t, err)
	assert.WithinDuration(t, *got.CompletedAt, *got2.CompletedAt, time.Second)
}

func Test_gormGoalRepository_UpdateCurrentValue(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGoalRepository()
	db := setupRepoTestDB(t)
	userID := uuid.New()

	goal := newYearGoal(userID, model.CategoryProfile)
	require.NoError(t, repo.Create(ctx, db, goal))

	require.NoError(t, repo.UpdateCurrentValue(ctx, db, userID, goal.GoalID, 7.5))

	got, err := repo.FindByID(ctx, db, userID, goal.GoalID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, got.CurrentValue)

	// 存在しない目標はErrNotFound
	err = repo.UpdateCurrentValue(ctx, db, userID, uuid.New(), 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_gormGoalRepository_CountByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGoalRepository()
	db := setupRepoTestDB(t)
	userID := uuid.New()

	g1 := newYearGoal(userID, model.CategorySocialSkills)
	g2 := newYearGoal(userID, model.CategorySocialSkills)
	g3 := newYearGoal(userID, model.CategoryConfidence)
	require.NoError(t, repo.Create(ctx, db, g1))
	require.NoError(t, repo.Create(ctx, db, g2))
	require.NoError(t, repo.Create(ctx, db, g3))

	// 1件だけ完了させる
	_, err := repo.CompleteIfActive(ctx, db, userID, g1.GoalID, time.Now())
	require.NoError(t, err)

	// 他ユーザーの目標は集計に含まれない
	require.NoError(t, repo.Create(ctx, db, newYearGoal(uuid.New(), model.CategorySocialSkills)))

	stats, err := repo.CountByCategory(ctx, db, userID)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byCategory := make(map[model.GoalCategory]CategoryStat)
	for _, s := range stats {
		byCategory[s.Category] = s
	}
	assert.Equal(t, int64(2), byCategory[model.CategorySocialSkills].Total)
	assert.Equal(t, int64(1), byCategory[model.CategorySocialSkills].Completed)
	assert.Equal(t, int64(1), byCategory[model.CategoryConfidence].Total)
	assert.Equal(t, int64(0), byCategory[model.CategoryConfidence].Completed)
}
