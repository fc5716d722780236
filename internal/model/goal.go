// internal/model/goal.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GoalLevel は目標の階層(年・月・週)を表します
type GoalLevel string

const (
	LevelYear  GoalLevel = "year"
	LevelMonth GoalLevel = "month"
	LevelWeek  GoalLevel = "week"
)

// GoalCategory は目標のカテゴリを表します。作成時に決まり、変更されません。
type GoalCategory string

const (
	CategoryRelationship GoalCategory = "relationship"
	CategoryConfidence   GoalCategory = "confidence"
	CategoryProfile      GoalCategory = "profile"
	CategorySocialSkills GoalCategory = "social_skills"
	CategoryConsistency  GoalCategory = "consistency"
)

// IsValid はカテゴリが定義済みの値かどうかを返します
func (c GoalCategory) IsValid() bool {
	switch c {
	case CategoryRelationship, CategoryConfidence, CategoryProfile,
		CategorySocialSkills, CategoryConsistency:
		return true
	}
	return false
}

// GoalStatus は目標の状態。active → completed の一方向にのみ遷移します。
type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
)

// Goal は年・月・週の各階層の目標を1テーブルで表します。
// Period は年目標では NULL、月目標では "YYYY-MM"、週目標では ISO週 "YYYY-Www"。
// (user_id, parent_goal_id, period) の複合ユニークインデックスで
// 同一親への期間重複生成を防ぐ。年目標は period が NULL のため対象外となり、
// 1ユーザーが複数の年目標を並行して持つことは許容される。
type Goal struct {
	GoalID       uuid.UUID    `gorm:"type:uuid;primaryKey" json:"goal_id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_user_level;index:idx_user_parent_period,unique" json:"-"`
	Level        GoalLevel    `gorm:"not null;index:idx_user_level" json:"level"`
	Period       *string      `gorm:"index:idx_user_parent_period,unique" json:"period,omitempty"`
	ParentGoalID *uuid.UUID   `gorm:"type:uuid;index;index:idx_user_parent_period,unique" json:"parent_goal_id,omitempty"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `json:"description,omitempty"`
	Category     GoalCategory `gorm:"not null" json:"category"`
	TargetValue  *float64     `json:"target_value,omitempty"`
	CurrentValue float64      `gorm:"not null;default:0" json:"current_value"`
	AIGenerated  bool         `gorm:"not null;default:false" json:"ai_generated"`
	AIConfidence float64      `gorm:"not null;default:0" json:"ai_confidence"`
	Status       GoalStatus   `gorm:"not null;default:active" json:"status"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

// GoalDraft は保存前の目標候補(提案サービスの出力)です
type GoalDraft struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     GoalCategory `json:"category"`
	TargetValue  *float64     `json:"target_value,omitempty"`
	Reasoning    string       `json:"reasoning,omitempty"`
	AIConfidence float64      `json:"ai_confidence"`
}

// 年目標作成リクエストDTO
type CreateYearGoalRequest struct {
	Title        string       `json:"title" validate:"required,max=200"`
	Description  string       `json:"description" validate:"max=1000"`
	Category     GoalCategory `json:"category" validate:"required,oneof=relationship confidence profile social_skills consistency"`
	TargetValue  *float64     `json:"target_value,omitempty" validate:"omitempty,gt=0"`
	AIGenerated  bool         `json:"ai_generated"`
	AIConfidence float64      `json:"ai_confidence" validate:"gte=0,lte=1"`
}

// 階層全体のレスポンスDTO
type GoalHierarchyResponse struct {
	YearGoals  []*Goal `json:"year_goals"`
	MonthGoals []*Goal `json:"month_goals"`
	WeekGoals  []*Goal `json:"week_goals"`
}

// カテゴリごとの集計
type CategoryCount struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

// 目標の達成統計レスポンスDTO
type GoalStatistics struct {
	TotalGoals      int64                          `json:"total_goals"`
	CompletedGoals  int64                          `json:"completed_goals"`
	CompletionRate  float64                        `json:"completion_rate"`
	GoalsByCategory map[GoalCategory]CategoryCount `json:"goals_by_category"`
}
