package interview

import (
	"time"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"gorm.io/datatypes"
)

// Interview is one practice session. OverallScore, DurationMinutes,
// PerformanceTrend, CompletedAt and Report are written exactly once, all
// together, when the interview completes.
type Interview struct {
	ID                 uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID                          `gorm:"type:uuid;not null;index:idx_interview_user_status,priority:1" json:"user_id"`
	JobRole            string                             `gorm:"size:100;not null" json:"job_role"`
	Difficulty         Difficulty                         `gorm:"type:varchar(10);not null" json:"difficulty"`
	Topics             datatypes.JSONSlice[string]        `gorm:"not null" json:"topics"`
	Status             Status                             `gorm:"type:varchar(15);not null;default:PENDING;index:idx_interview_user_status,priority:2" json:"status"`
	OverallScore       *float64                           `json:"overall_score,omitempty"`
	PerformanceTrend   *PerformanceTrend                  `gorm:"type:varchar(15)" json:"performance_trend,omitempty"`
	CompletedQuestions int                                `gorm:"not null;default:0" json:"completed_questions"`
	TotalQuestions     int                                `gorm:"not null" json:"total_questions"`
	DurationMinutes    *int                               `json:"duration_minutes,omitempty"`
	Report             *datatypes.JSONType[gemini.Report] `gorm:"type:jsonb" json:"report,omitempty"`
	StartedAt          time.Time                          `gorm:"autoCreateTime;index" json:"started_at"`
	CompletedAt        *time.Time                         `json:"completed_at,omitempty"`

	Questions []question.Question `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}
