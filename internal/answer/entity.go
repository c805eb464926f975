package answer

import (
	"time"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"gorm.io/datatypes"
)

// EvaluationBreakdown is the oracle's per-axis assessment, stored as a
// JSON column once evaluation succeeds.
type EvaluationBreakdown struct {
	Correctness  float64 `json:"correctness"`
	Completeness float64 `json:"completeness"`
	Clarity      float64 `json:"clarity"`
}

// Answer records the candidate's transcribed response to exactly one
// question. Score, feedback, evaluation and confidence stay nil until the
// evaluation step fills them in; they remain nil forever if evaluation
// fails, since a submitted answer is never lost over a scoring problem.
type Answer struct {
	ID              uuid.UUID                                   `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID      uuid.UUID                                   `gorm:"type:uuid;not null;uniqueIndex" json:"question_id"`
	Question        *question.Question                          `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	Transcript      string                                      `gorm:"type:text;not null" json:"transcript"`
	AudioURL        *string                                     `gorm:"type:text" json:"audio_url,omitempty"`
	Evaluation      *datatypes.JSONType[EvaluationBreakdown]    `gorm:"type:jsonb" json:"evaluation,omitempty"`
	Feedback        *string                                     `gorm:"type:text" json:"feedback,omitempty"`
	Score           *float64                                    `json:"score,omitempty"`
	ConfidenceScore *float64                                    `json:"confidence_score,omitempty"`
	DurationSeconds int                                         `gorm:"not null;default:0" json:"duration_seconds"`
	CreatedAt       time.Time                                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Answer) TableName() string {
	return "answers"
}
