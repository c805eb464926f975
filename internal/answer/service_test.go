package answer_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/interview"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeOracle struct {
	evaluation *gemini.AnswerEvaluation
	evalErr    error
	calls      int
}

func (f *fakeOracle) GenerateQuestions(context.Context, string, string, []string, int) ([]gemini.GeneratedQuestion, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOracle) EvaluateAnswer(context.Context, string, string, string) (*gemini.AnswerEvaluation, error) {
	f.calls++
	return f.evaluation, f.evalErr
}

func (f *fakeOracle) GenerateReport(context.Context, string, string, []gemini.AnswerDetail) (*gemini.Report, error) {
	return nil, errors.New("not implemented")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&interview.Interview{}, &question.Question{}, &answer.Answer{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedInterview(t *testing.T, db *gorm.DB, questionCount int) (*interview.Interview, []*question.Question) {
	t.Helper()

	itv := &interview.Interview{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		JobRole:        "Backend Engineer",
		Difficulty:     interview.DifficultyMid,
		Topics:         datatypes.NewJSONSlice([]string{"Go", "Databases"}),
		Status:         interview.StatusInProgress,
		TotalQuestions: questionCount,
	}
	if err := db.Create(itv).Error; err != nil {
		t.Fatalf("failed to seed interview: %v", err)
	}

	questions := make([]*question.Question, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := &question.Question{
			ID:             uuid.New(),
			InterviewID:    itv.ID,
			Content:        "What does a goroutine cost?",
			ExpectedAnswer: "A few kilobytes of stack.",
			Difficulty:     question.DifficultyMedium,
			Topic:          "Go",
			OrderIndex:     i,
		}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
		questions = append(questions, q)
	}
	return itv, questions
}

func completedQuestions(t *testing.T, db *gorm.DB, interviewID uuid.UUID) int {
	t.Helper()

	var itv interview.Interview
	if err := db.First(&itv, "id = ?", interviewID).Error; err != nil {
		t.Fatalf("failed to reload interview: %v", err)
	}
	return itv.CompletedQuestions
}

func TestSubmitAnswer(t *testing.T) {
	ctx := context.Background()
	log := newTestLogger()

	t.Run("PersistsEvaluationAndIncrementsCounter", func(t *testing.T) {
		db := newTestDB(t)
		itv, questions := seedInterview(t, db, 2)
		oracle := &fakeOracle{evaluation: &gemini.AnswerEvaluation{
			Score:        85,
			Correctness:  90,
			Completeness: 80,
			Clarity:      85,
			Feedback:     "Solid answer.",
		}}
		svc := answer.NewService(db, answer.NewRepository(db), oracle, log)

		a, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      questions[0].ID,
			Transcript:      "Goroutines start with a small stack that grows on demand.",
			DurationSeconds: 42,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer returned error: %v", err)
		}
		if a.Score == nil || *a.Score != 85 {
			t.Fatalf("expected score 85, got %v", a.Score)
		}
		if a.ConfidenceScore == nil || *a.ConfidenceScore != 0.8 {
			t.Errorf("expected confidence 0.8 for score >= 70, got %v", a.ConfidenceScore)
		}
		if a.Evaluation == nil {
			t.Fatal("expected evaluation breakdown to be stored")
		}
		if breakdown := a.Evaluation.Data(); breakdown.Correctness != 90 {
			t.Errorf("expected correctness 90 in breakdown, got %v", breakdown.Correctness)
		}
		if got := completedQuestions(t, db, itv.ID); got != 1 {
			t.Errorf("expected completed_questions 1, got %d", got)
		}

		if _, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      questions[1].ID,
			Transcript:      "The scheduler multiplexes goroutines onto OS threads.",
			DurationSeconds: 30,
		}); err != nil {
			t.Fatalf("second SubmitAnswer returned error: %v", err)
		}
		if got := completedQuestions(t, db, itv.ID); got != 2 {
			t.Errorf("expected completed_questions 2, got %d", got)
		}
	})

	t.Run("LowScoreGetsLowerConfidence", func(t *testing.T) {
		db := newTestDB(t)
		_, questions := seedInterview(t, db, 1)
		oracle := &fakeOracle{evaluation: &gemini.AnswerEvaluation{Score: 55, Feedback: "Partially correct."}}
		svc := answer.NewService(db, answer.NewRepository(db), oracle, log)

		a, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      questions[0].ID,
			Transcript:      "Goroutines are like threads but cheaper, I think.",
			DurationSeconds: 20,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer returned error: %v", err)
		}
		if a.ConfidenceScore == nil || *a.ConfidenceScore != 0.6 {
			t.Errorf("expected confidence 0.6 for score < 70, got %v", a.ConfidenceScore)
		}
	})

	t.Run("DuplicateSubmissionKeepsFirstTranscript", func(t *testing.T) {
		db := newTestDB(t)
		itv, questions := seedInterview(t, db, 1)
		oracle := &fakeOracle{evaluation: &gemini.AnswerEvaluation{Score: 70}}
		svc := answer.NewService(db, answer.NewRepository(db), oracle, log)

		first, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      questions[0].ID,
			Transcript:      "The first transcript for this question.",
			DurationSeconds: 15,
		})
		if err != nil {
			t.Fatalf("first SubmitAnswer returned error: %v", err)
		}

		_, err = svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      questions[0].ID,
			Transcript:      "A second transcript that must be rejected.",
			DurationSeconds: 15,
		})
		if !errors.Is(err, answer.ErrQuestionAlreadyAnswered) {
			t.Fatalf("expected ErrQuestionAlreadyAnswered, got %v", err)
		}

		reloaded, err := svc.GetByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetByID returned error: %v", err)
		}
		if reloaded.Transcript != "The first transcript for this question." {
			t.Errorf("first transcript was overwritten: %q", reloaded.Transcript)
		}
		if got := completedQuestions(t, db, itv.ID); got != 1 {
			t.Errorf("rejected duplicate must not bump the counter, got %d", got)
		}
	})

	t.Run("EvaluationFailureKeepsAnswerUnscored", func(t *testing.T) {
		db := newTestDB(t)
		itv, questions := seedInterview(t, db, 1)
		oracle := &fakeOracle{evalErr: errors.New("model unavailable")}
		svc := answer.NewService(db, answer.NewRepository(db), oracle, log)

		a, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      questions[0].ID,
			Transcript:      "An answer the model never got to score.",
			DurationSeconds: 25,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer must commit despite evaluation failure, got %v", err)
		}
		if a.Score != nil {
			t.Errorf("expected unscored answer, got score %v", *a.Score)
		}

		reloaded, err := svc.GetByID(ctx, a.ID)
		if err != nil {
			t.Fatalf("GetByID returned error: %v", err)
		}
		if reloaded.Score != nil || reloaded.Evaluation != nil {
			t.Error("unscored answer must stay unscored after reload")
		}
		if got := completedQuestions(t, db, itv.ID); got != 1 {
			t.Errorf("counter must still advance on evaluation failure, got %d", got)
		}
	})

	t.Run("UnknownQuestion", func(t *testing.T) {
		db := newTestDB(t)
		seedInterview(t, db, 1)
		svc := answer.NewService(db, answer.NewRepository(db), &fakeOracle{}, log)

		_, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
			QuestionID:      uuid.New(),
			Transcript:      "An answer to a question that does not exist.",
			DurationSeconds: 10,
		})
		if !errors.Is(err, answer.ErrQuestionNotFound) {
			t.Fatalf("expected ErrQuestionNotFound, got %v", err)
		}
	})
}

func TestListRefsByInterview(t *testing.T) {
	ctx := context.Background()
	log := newTestLogger()

	db := newTestDB(t)
	_, questions := seedInterview(t, db, 2)
	oracle := &fakeOracle{evaluation: &gemini.AnswerEvaluation{Score: 90}}
	repo := answer.NewRepository(db)
	svc := answer.NewService(db, repo, oracle, log)

	if _, err := svc.SubmitAnswer(ctx, answer.CreateAnswerDTO{
		QuestionID:      questions[0].ID,
		Transcript:      "A complete answer to the first question.",
		DurationSeconds: 30,
	}); err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}

	refs, err := repo.ListRefsByInterview(questions[0].InterviewID)
	if err != nil {
		t.Fatalf("ListRefsByInterview returned error: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	if refs[0].QuestionID != questions[0].ID {
		t.Errorf("ref points at wrong question: %s", refs[0].QuestionID)
	}
	if refs[0].Score == nil || *refs[0].Score != 90 {
		t.Errorf("expected ref score 90, got %v", refs[0].Score)
	}
}
