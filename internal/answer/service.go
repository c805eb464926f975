package answer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound        = question.ErrQuestionNotFound
	ErrQuestionAlreadyAnswered = errors.New("question already answered")
	ErrAnswerNotFound          = errors.New("answer not found")
)

type Service interface {
	SubmitAnswer(ctx context.Context, dto CreateAnswerDTO) (*Answer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Answer, error)
	ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]*Answer, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	oracle gemini.Service
	log    logrus.FieldLogger
}

func NewService(db *gorm.DB, repo Repository, oracle gemini.Service, log logrus.FieldLogger) Service {
	return &service{db: db, repo: repo, oracle: oracle, log: log}
}

// SubmitAnswer persists the transcript, triggers evaluation and bumps the
// interview's progress counter as one unit of work. Evaluation is the only
// best-effort step: if the oracle fails after its retry budget the answer
// is kept unscored and the transaction still commits. Everything else
// rolls back together.
func (s *service) SubmitAnswer(ctx context.Context, dto CreateAnswerDTO) (*Answer, error) {
	log := config.WithRequestID(s.log, ctx).WithField("question_id", dto.QuestionID)

	var saved *Answer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q question.Question
		if err := tx.First(&q, "id = ?", dto.QuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		// Serializes submissions and completion for this interview.
		if err := lockInterview(tx, q.InterviewID); err != nil {
			return err
		}

		// Re-checked inside the transaction to close the race between two
		// concurrent submissions for the same question.
		var existing Answer
		err := tx.Where("question_id = ?", dto.QuestionID).First(&existing).Error
		if err == nil {
			return ErrQuestionAlreadyAnswered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		a := &Answer{
			ID:              uuid.New(),
			QuestionID:      q.ID,
			Transcript:      dto.Transcript,
			DurationSeconds: dto.DurationSeconds,
		}
		if err := tx.Create(a).Error; err != nil {
			return err
		}

		evaluation, evalErr := s.oracle.EvaluateAnswer(ctx, q.Content, q.ExpectedAnswer, dto.Transcript)
		if evalErr != nil {
			log.WithError(evalErr).Error("Evaluation failed, keeping answer without score")
		} else {
			applyEvaluation(a, evaluation)
			if err := tx.Save(a).Error; err != nil {
				return err
			}
		}

		if err := tx.Table("interviews").
			Where("id = ?", q.InterviewID).
			UpdateColumn("completed_questions", gorm.Expr("completed_questions + 1")).Error; err != nil {
			return err
		}

		saved = a
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrQuestionNotFound) && !errors.Is(err, ErrQuestionAlreadyAnswered) {
			log.WithError(err).Error("Failed to submit answer")
		}
		return nil, err
	}

	log.WithField("answer_id", saved.ID).Info("Answer submitted")
	return saved, nil
}

func applyEvaluation(a *Answer, evaluation *gemini.AnswerEvaluation) {
	score := evaluation.Score
	feedback := evaluation.Feedback
	breakdown := datatypes.NewJSONType(EvaluationBreakdown{
		Correctness:  evaluation.Correctness,
		Completeness: evaluation.Completeness,
		Clarity:      evaluation.Clarity,
	})

	// Confidence heuristic carried over from the evaluation pipeline: a
	// decisive score either way reads as higher model confidence.
	confidence := 0.6
	if score >= 70 {
		confidence = 0.8
	}

	a.Score = &score
	a.Feedback = &feedback
	a.Evaluation = &breakdown
	a.ConfidenceScore = &confidence
}

// lockInterview takes the per-interview row lock on dialects that support
// it; the tests run on sqlite where the transaction itself is enough.
func lockInterview(tx *gorm.DB, interviewID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT 1 FROM interviews WHERE id = ? FOR UPDATE", interviewID).Error
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Answer, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		config.WithRequestID(s.log, ctx).WithError(err).Error("Failed to load answer")
		return nil, err
	}
	if a == nil {
		return nil, ErrAnswerNotFound
	}
	return a, nil
}

func (s *service) ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]*Answer, error) {
	answers, err := s.repo.ListByInterview(interviewID)
	if err != nil {
		config.WithRequestID(s.log, ctx).WithError(err).Error("Failed to list answers by interview")
		return nil, err
	}
	return answers, nil
}
