package question

import (
	"time"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Question is one prompt belonging to exactly one interview. Questions are
// created in bulk at interview creation and never mutated afterwards.
// ExpectedAnswer is reference material for the evaluation oracle and is
// kept out of candidate-facing JSON.
type Question struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_question_interview_order,priority:1" json:"interview_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	ExpectedAnswer string     `gorm:"type:text" json:"-"`
	Difficulty     Difficulty `gorm:"type:varchar(10);not null" json:"difficulty"`
	Topic          string     `gorm:"size:100" json:"topic"`
	OrderIndex     int        `gorm:"not null;uniqueIndex:idx_question_interview_order,priority:2" json:"order_index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}

// FromGenerated maps the oracle's output onto question rows, preserving
// the generation sequence as the presentation order.
func FromGenerated(interviewID uuid.UUID, generated []gemini.GeneratedQuestion) []*Question {
	questions := make([]*Question, 0, len(generated))
	for i, g := range generated {
		questions = append(questions, &Question{
			ID:             uuid.New(),
			InterviewID:    interviewID,
			Content:        g.Content,
			ExpectedAnswer: g.ExpectedAnswer,
			Difficulty:     Difficulty(g.Difficulty),
			Topic:          g.Topic,
			OrderIndex:     i,
		})
	}
	return questions
}
