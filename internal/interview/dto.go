package interview

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
)

var ErrValidation = errors.New("invalid interview parameters")

type CreateInterviewDTO struct {
	JobRole        string     `json:"job_role"`
	Difficulty     Difficulty `json:"difficulty"`
	Topics         []string   `json:"topics"`
	TotalQuestions int        `json:"total_questions"`
}

// Validate rejects malformed parameters before anything is persisted.
func (dto CreateInterviewDTO) Validate() error {
	if n := len(dto.JobRole); n < 2 || n > 100 {
		return fmt.Errorf("%w: job_role must be 2-100 characters", ErrValidation)
	}
	if !dto.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be JUNIOR, MID or SENIOR", ErrValidation)
	}
	if n := len(dto.Topics); n < 1 || n > 10 {
		return fmt.Errorf("%w: topics must have 1-10 entries", ErrValidation)
	}
	for _, topic := range dto.Topics {
		if topic == "" {
			return fmt.Errorf("%w: topics must not contain empty entries", ErrValidation)
		}
	}
	if dto.TotalQuestions < 5 || dto.TotalQuestions > 20 {
		return fmt.Errorf("%w: total_questions must be between 5 and 20", ErrValidation)
	}
	return nil
}

type StartInterviewResponse struct {
	Token    string `json:"token"`
	URL      string `json:"url"`
	RoomName string `json:"room_name"`
}

// QuestionWithAnswer pairs a question with its at-most-one answer for the
// detail view.
type QuestionWithAnswer struct {
	question.Question
	Answer *answer.Answer `json:"answer,omitempty"`
}

type InterviewDetail struct {
	Interview
	Questions []QuestionWithAnswer `json:"questions"`
}

// AgentQuestion exposes the expected answer: only the interviewer agent
// sees this shape.
type AgentQuestion struct {
	ID             uuid.UUID           `json:"id"`
	Content        string              `json:"content"`
	ExpectedAnswer string              `json:"expected_answer"`
	Difficulty     question.Difficulty `json:"difficulty"`
	Topic          string              `json:"topic"`
	OrderIndex     int                 `json:"order_index"`
}

type AgentSnapshot struct {
	InterviewID        uuid.UUID       `json:"interview_id"`
	JobRole            string          `json:"job_role"`
	Difficulty         Difficulty      `json:"difficulty"`
	Questions          []AgentQuestion `json:"questions"`
	CompletedQuestions int             `json:"completed_questions"`
	Status             Status          `json:"status"`
}

type ListMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type ListResponse struct {
	Data []*Interview `json:"data"`
	Meta ListMeta     `json:"meta"`
}
