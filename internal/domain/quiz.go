package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizRecord is the single live answer key for a user's most recently
// generated quiz. Regeneration overwrites Questions in place; there is never
// more than one row per user.
type QuizRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"not null;uniqueIndex;column:user_id" json:"user_id"`
	Questions datatypes.JSON `gorm:"not null;column:quiz_json" json:"questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizRecord) TableName() string { return "quiz_record" }

// ScoreAttempt is one immutable graded submission. Attempts are append-only;
// cumulative progress is always recomputed from the full set.
type ScoreAttempt struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string    `gorm:"not null;index;column:user_id" json:"user_id"`
	Score  int       `gorm:"not null" json:"score"`
	Total  int       `gorm:"not null" json:"total"`

	CreatedAt time.Time `json:"created_at"`
}

func (ScoreAttempt) TableName() string { return "score_attempt" }
