// internal/repository/profile_repository_test.go
package repository

import (
	"context"
	"testing"

	"go_4_goal_wizard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gormProfileRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProfileRepository()
	db := setupRepoTestDB(t)
	userID := uuid.New()

	profile := &model.ProfileContext{
		UserID:           userID,
		CurrentSituation: "アプリを始めたばかり",
		ComfortLevel:     3,
		MainChallenge:    "会話が続かない",
		DesiredOutcome:   "継続的にデートしたい",
	}
	require.NoError(t, repo.Upsert(ctx, db, profile))

	// 同じユーザーで再度保存すると上書きになる(1ユーザー1件)
	profile.ComfortLevel = 7
	require.NoError(t, repo.Upsert(ctx, db, profile))

	got, err := repo.FindByUserID(ctx, db, userID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ComfortLevel)

	var count int64
	require.NoError(t, db.Model(&model.ProfileContext{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_gormProfileRepository_FindByUserID(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProfileRepository()
	db := setupRepoTestDB(t)

	got, err := repo.FindByUserID(ctx, db, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Nil(t, got)
}
