package service

import (
	"context"
	"errors"

	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"
	"go_4_goal_wizard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService は提案の個人化に使うプロフィール情報を管理します
type ProfileService interface {
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *model.UpsertProfileRequest) (*model.ProfileContext, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileContext, error)
}

type profileService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
}

func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		db:          db,
		profileRepo: profileRepo,
	}
}

func (s *profileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *model.UpsertProfileRequest) (*model.ProfileContext, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	profile := &model.ProfileContext{
		UserID:           userID,
		CurrentSituation: req.CurrentSituation,
		ComfortLevel:     req.ComfortLevel,
		MainChallenge:    req.MainChallenge,
		DesiredOutcome:   req.DesiredOutcome,
		StrengthSelf:     req.StrengthSelf,
		WeaknessSelf:     req.WeaknessSelf,
		WeeklyCommitment: req.WeeklyCommitment,
	}
	if err := s.profileRepo.Upsert(ctx, s.db, profile); err != nil {
		logger.Error("Error upserting profile context", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの保存に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Profile context upserted")
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileContext, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが登録されていません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの取得に失敗しました。", "", model.ErrInternalServer)
	}
	return profile, nil
}
