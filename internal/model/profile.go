// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileContext は提案プロンプトの個人化に使うプロフィール情報です。
// 1ユーザーにつき最大1件。存在しないことも正常な状態として扱われ、
// その場合の提案は定型テンプレートにフォールバックします。
type ProfileContext struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	CurrentSituation string    `gorm:"not null" json:"current_situation"`
	ComfortLevel     int       `gorm:"not null" json:"comfort_level"`
	MainChallenge    string    `gorm:"not null" json:"main_challenge"`
	DesiredOutcome   string    `gorm:"not null" json:"desired_outcome"`
	StrengthSelf     string    `json:"strength_self"`
	WeaknessSelf     string    `json:"weakness_self"`
	WeeklyCommitment string    `json:"weekly_commitment"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ProfileContext) TableName() string {
	return "profile_contexts"
}

// プロフィール登録・更新リクエストDTO
type UpsertProfileRequest struct {
	CurrentSituation string `json:"current_situation" validate:"required,max=500"`
	ComfortLevel     int    `json:"comfort_level" validate:"required,min=1,max=10"`
	MainChallenge    string `json:"main_challenge" validate:"required,max=500"`
	DesiredOutcome   string `json:"desired_outcome" validate:"required,max=500"`
	StrengthSelf     string `json:"strength_self" validate:"max=500"`
	WeaknessSelf     string `json:"weakness_self" validate:"max=500"`
	WeeklyCommitment string `json:"weekly_commitment" validate:"max=200"`
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)
