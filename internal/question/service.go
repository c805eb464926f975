package question

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/sirupsen/logrus"
)

var ErrQuestionNotFound = errors.New("question not found")

// AnswerSource supplies the recorded answers the selector needs. It is
// implemented by the answer repository; the indirection keeps this package
// free of a dependency cycle.
type AnswerSource interface {
	ListRefsByInterview(interviewID uuid.UUID) ([]AnswerRef, error)
}

type Service interface {
	NextQuestion(ctx context.Context, interviewID uuid.UUID) (*Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Question, error)
}

type service struct {
	repo    Repository
	answers AnswerSource
	log     logrus.FieldLogger
}

func NewService(repo Repository, answers AnswerSource, log logrus.FieldLogger) Service {
	return &service{repo: repo, answers: answers, log: log}
}

// NextQuestion returns nil when every question has been answered.
func (s *service) NextQuestion(ctx context.Context, interviewID uuid.UUID) (*Question, error) {
	log := config.WithRequestID(s.log, ctx)

	questions, err := s.repo.ListByInterview(interviewID)
	if err != nil {
		log.WithError(err).Error("Failed to list questions for interview")
		return nil, err
	}

	answers, err := s.answers.ListRefsByInterview(interviewID)
	if err != nil {
		log.WithError(err).Error("Failed to list answers for interview")
		return nil, err
	}

	next := SelectNext(questions, answers)
	if next == nil {
		log.WithField("interview_id", interviewID).Info("No questions remaining for interview")
	}
	return next, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := s.repo.GetByID(id)
	if err != nil {
		config.WithRequestID(s.log, ctx).WithError(err).Error("Failed to load question")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}
