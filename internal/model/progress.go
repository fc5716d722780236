// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressEntry は進捗の記録を表します。追記専用で、更新も削除もされません。
// Value はその時点の絶対値(増分ではない)を保持し、Goal.CurrentValue の
// 監査証跡となります。
type ProgressEntry struct {
	EntryID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"entry_id"`
	GoalID    uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_created" json:"goal_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Value     float64   `gorm:"not null" json:"value"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_goal_created" json:"created_at"`
}

func (ProgressEntry) TableName() string {
	return "goal_progress"
}

// 進捗記録リクエストDTO
type RecordProgressRequest struct {
	Value *float64 `json:"value" validate:"required,gte=0"`
	Notes *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// 進捗記録レスポンスDTO。Completed はこの呼び出しで
// active → completed の遷移が起きた場合にのみ true になります。
type RecordProgressResponse struct {
	Completed bool  `json:"completed"`
	Goal      *Goal `json:"goal"`
}
