package answer

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(id uuid.UUID) (*Answer, error)
	ListByInterview(interviewID uuid.UUID) ([]*Answer, error)
	ListRefsByInterview(interviewID uuid.UUID) ([]question.AnswerRef, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uuid.UUID) (*Answer, error) {
	var a Answer
	if err := r.db.Preload("Question").First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByInterview(interviewID uuid.UUID) ([]*Answer, error) {
	var answers []*Answer
	if err := r.db.
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.interview_id = ?", interviewID).
		Preload("Question").
		Order("answers.created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// ListRefsByInterview feeds the adaptive selector without dragging whole
// answer rows along.
func (r *repository) ListRefsByInterview(interviewID uuid.UUID) ([]question.AnswerRef, error) {
	var refs []question.AnswerRef
	if err := r.db.
		Model(&Answer{}).
		Select("answers.question_id", "answers.score", "answers.created_at").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.interview_id = ?", interviewID).
		Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}
