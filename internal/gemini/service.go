package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Service is the evaluation oracle: it generates the question set for an
// interview, scores individual answers, and writes the final report.
// Every call retries transient failures before surfacing a permanent one.
type Service interface {
	GenerateQuestions(ctx context.Context, jobRole, difficulty string, topics []string, count int) ([]GeneratedQuestion, error)
	EvaluateAnswer(ctx context.Context, questionContent, expectedAnswer, transcript string) (*AnswerEvaluation, error)
	GenerateReport(ctx context.Context, jobRole, difficulty string, details []AnswerDetail) (*Report, error)
}

const maxRetries = 3

type service struct {
	provider Provider
	log      logrus.FieldLogger

	// sleep is swapped out in tests so retries do not wait for real time.
	sleep func(time.Duration)
}

func NewService(provider Provider, log logrus.FieldLogger) Service {
	return &service{
		provider: provider,
		log:      log,
		sleep:    time.Sleep,
	}
}

func (s *service) GenerateQuestions(ctx context.Context, jobRole, difficulty string, topics []string, count int) ([]GeneratedQuestion, error) {
	prompt := buildQuestionsPrompt(jobRole, difficulty, topics, count)

	var questions []GeneratedQuestion
	err := s.retry(ctx, "generate questions", func() error {
		raw, err := s.provider.SendPrompt(ctx, prompt)
		if err != nil {
			return err
		}

		var parsed []GeneratedQuestion
		if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
			return fmt.Errorf("failed to decode questions JSON: %w", err)
		}
		questions = parsed
		return nil
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to generate interview questions")
		return nil, err
	}
	if len(questions) == 0 {
		return nil, errors.New("model returned no questions")
	}

	s.log.WithField("count", len(questions)).Info("Generated interview questions")
	return questions, nil
}

func (s *service) EvaluateAnswer(ctx context.Context, questionContent, expectedAnswer, transcript string) (*AnswerEvaluation, error) {
	prompt := buildEvaluationPrompt(questionContent, expectedAnswer, transcript)

	var evaluation AnswerEvaluation
	err := s.retry(ctx, "evaluate answer", func() error {
		raw, err := s.provider.SendPrompt(ctx, prompt)
		if err != nil {
			return err
		}

		var parsed AnswerEvaluation
		if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
			return fmt.Errorf("failed to decode evaluation JSON: %w", err)
		}
		evaluation = parsed
		return nil
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to evaluate answer")
		return nil, err
	}

	// The weighted overall score is recomputed locally so the contract
	// does not depend on the model doing its own arithmetic.
	evaluation.Score = WeightedScore(evaluation.Correctness, evaluation.Completeness, evaluation.Clarity)

	return &evaluation, nil
}

func (s *service) GenerateReport(ctx context.Context, jobRole, difficulty string, details []AnswerDetail) (*Report, error) {
	prompt := buildReportPrompt(jobRole, difficulty, details)

	var report Report
	err := s.retry(ctx, "generate report", func() error {
		raw, err := s.provider.SendPrompt(ctx, prompt)
		if err != nil {
			return err
		}

		var parsed Report
		if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
			return fmt.Errorf("failed to decode report JSON: %w", err)
		}
		report = parsed
		return nil
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to generate interview report")
		return nil, err
	}

	return &report, nil
}

// WeightedScore combines the evaluation axes into the overall 0-100 score:
// 50% correctness, 30% completeness, 20% clarity.
func WeightedScore(correctness, completeness, clarity float64) float64 {
	return math.Round(correctness*0.5 + completeness*0.3 + clarity*0.2)
}

// retry runs the whole operation, model call and response decode alike,
// up to maxRetries times with exponential backoff (1s then 2s) between
// attempts. Garbled model output gets retried the same as a failed call.
func (s *service) retry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			s.sleep(delay)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		s.log.WithError(err).Warnf("Attempt %d/%d to %s failed", attempt+1, maxRetries, operation)
	}

	return fmt.Errorf("max retries (%d) exceeded to %s: %w", maxRetries, operation, lastErr)
}

// stripFences removes markdown code fences the model occasionally wraps
// around its JSON output.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.Trim(clean, "`")
}
