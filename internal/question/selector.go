package question

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AnswerRef is the slice of an answer the selector needs: which question
// it belongs to, its score (nil while unevaluated) and when it was created.
type AnswerRef struct {
	QuestionID uuid.UUID
	Score      *float64
	CreatedAt  time.Time
}

// SelectNext picks the question a candidate should see next. It is a pure
// function of the persisted questions and answers, so the sequence is
// fully recomputable after a crash or reconnect.
//
// The most recent answer's score routes difficulty: >= 80 prefers HARD,
// 50-79 prefers MEDIUM, below 50 prefers EASY. When the preferred pool is
// exhausted the lowest-order unanswered question is returned so the
// interview always makes progress. Returns nil once everything is
// answered (or there are no questions at all).
func SelectNext(questions []*Question, answers []AnswerRef) *Question {
	if len(questions) == 0 {
		return nil
	}

	answered := make(map[uuid.UUID]struct{}, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = struct{}{}
	}

	unanswered := make([]*Question, 0, len(questions))
	for _, q := range questions {
		if _, ok := answered[q.ID]; !ok {
			unanswered = append(unanswered, q)
		}
	}
	if len(unanswered) == 0 {
		return nil
	}

	sort.SliceStable(unanswered, func(i, j int) bool {
		return unanswered[i].OrderIndex < unanswered[j].OrderIndex
	})

	if len(answers) == 0 {
		return unanswered[0]
	}

	// Stable sort keeps ties deterministic: equal timestamps resolve to
	// the earlier element of the input.
	recent := make([]AnswerRef, len(answers))
	copy(recent, answers)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	lastScore := 0.0
	if recent[0].Score != nil {
		lastScore = *recent[0].Score
	}
	preferred := preferredDifficulty(lastScore)

	for _, q := range unanswered {
		if q.Difficulty == preferred {
			return q
		}
	}
	return unanswered[0]
}

func preferredDifficulty(score float64) Difficulty {
	switch {
	case score >= 80:
		return DifficultyHard
	case score >= 50:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}
