package answer

import "github.com/google/uuid"

type CreateAnswerDTO struct {
	QuestionID      uuid.UUID `json:"question_id"`
	Transcript      string    `json:"transcript"`
	DurationSeconds int       `json:"duration_seconds"`
}
