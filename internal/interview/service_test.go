package interview_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/interview"
	"github.com/mxngjxa/micro1-zara-mock/internal/livekit"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeOracle struct {
	questions []gemini.GeneratedQuestion
	genErr    error

	evaluation *gemini.AnswerEvaluation
	evalErr    error

	report    *gemini.Report
	reportErr error
}

func (f *fakeOracle) GenerateQuestions(context.Context, string, string, []string, int) ([]gemini.GeneratedQuestion, error) {
	return f.questions, f.genErr
}

func (f *fakeOracle) EvaluateAnswer(context.Context, string, string, string) (*gemini.AnswerEvaluation, error) {
	return f.evaluation, f.evalErr
}

func (f *fakeOracle) GenerateReport(context.Context, string, string, []gemini.AnswerDetail) (*gemini.Report, error) {
	return f.report, f.reportErr
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

func newTestRooms(t *testing.T) livekit.Service {
	t.Helper()

	rooms, err := livekit.NewService("test-api-key", "test-api-secret", "wss://rooms.example.com")
	if err != nil {
		t.Fatalf("failed to build room service: %v", err)
	}
	return rooms
}

func generatedQuestions(n int) []gemini.GeneratedQuestion {
	out := make([]gemini.GeneratedQuestion, 0, n)
	difficulties := []string{"EASY", "MEDIUM", "HARD"}
	for i := 0; i < n; i++ {
		out = append(out, gemini.GeneratedQuestion{
			Content:        "Explain a core concept.",
			ExpectedAnswer: "The reference answer.",
			Difficulty:     difficulties[i%len(difficulties)],
			Topic:          "Go",
		})
	}
	return out
}

func newTestService(t *testing.T, db *gorm.DB, oracle gemini.Service) interview.Service {
	t.Helper()

	log := newTestLogger()
	return interview.NewService(db, interview.NewRepository(db), answer.NewRepository(db), oracle, newTestRooms(t), log)
}

func createInterview(t *testing.T, svc interview.Service, userID uuid.UUID) *interview.Interview {
	t.Helper()

	itv, err := svc.Create(context.Background(), userID, interview.CreateInterviewDTO{
		JobRole:        "Backend Engineer",
		Difficulty:     interview.DifficultyMid,
		Topics:         []string{"Go", "Databases"},
		TotalQuestions: 5,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return itv
}

// answerQuestion writes an answer row directly; the submission pipeline
// has its own tests.
func answerQuestion(t *testing.T, db *gorm.DB, questionID uuid.UUID, score *float64, transcript string) {
	t.Helper()

	a := &answer.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		Transcript: transcript,
		Score:      score,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to seed answer: %v", err)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsInterviewWithQuestions", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})

		itv := createInterview(t, svc, uuid.New())
		if itv.Status != interview.StatusPending {
			t.Errorf("expected PENDING, got %s", itv.Status)
		}
		if len(itv.Questions) != 5 {
			t.Fatalf("expected 5 questions, got %d", len(itv.Questions))
		}
		for i, q := range itv.Questions {
			if q.OrderIndex != i {
				t.Errorf("question %d has order_index %d", i, q.OrderIndex)
			}
		}

		var count int64
		if err := db.Model(&question.Question{}).Where("interview_id = ?", itv.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count questions: %v", err)
		}
		if count != 5 {
			t.Errorf("expected 5 persisted questions, got %d", count)
		}
	})

	t.Run("GenerationFailureRollsBack", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{genErr: errors.New("model unavailable")})

		_, err := svc.Create(context.Background(), uuid.New(), interview.CreateInterviewDTO{
			JobRole:        "Backend Engineer",
			Difficulty:     interview.DifficultyMid,
			Topics:         []string{"Go"},
			TotalQuestions: 5,
		})
		if err == nil {
			t.Fatal("expected error from failed question generation")
		}

		var count int64
		if err := db.Model(&interview.Interview{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count interviews: %v", err)
		}
		if count != 0 {
			t.Errorf("interview row must not survive a generation failure, found %d", count)
		}
	})

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})

		_, err := svc.Create(ctx, uuid.New(), interview.CreateInterviewDTO{
			JobRole:        "B",
			Difficulty:     interview.DifficultyMid,
			Topics:         []string{"Go"},
			TotalQuestions: 5,
		})
		if !errors.Is(err, interview.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestStartInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstStartMovesToInProgress", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})
		userID := uuid.New()
		itv := createInterview(t, svc, userID)

		resp, err := svc.Start(ctx, userID, itv.ID)
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
		if resp.RoomName != livekit.RoomName(itv.ID) {
			t.Errorf("room name %q does not derive from interview id", resp.RoomName)
		}
		if resp.Token == "" || resp.URL == "" {
			t.Error("expected token and server url in start response")
		}

		var reloaded interview.Interview
		if err := db.First(&reloaded, "id = ?", itv.ID).Error; err != nil {
			t.Fatalf("failed to reload interview: %v", err)
		}
		if reloaded.Status != interview.StatusInProgress {
			t.Errorf("expected IN_PROGRESS, got %s", reloaded.Status)
		}
	})

	t.Run("RestartKeepsRoomAndIssuesFreshToken", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})
		userID := uuid.New()
		itv := createInterview(t, svc, userID)

		first, err := svc.Start(ctx, userID, itv.ID)
		if err != nil {
			t.Fatalf("first Start returned error: %v", err)
		}

		var afterFirst interview.Interview
		if err := db.First(&afterFirst, "id = ?", itv.ID).Error; err != nil {
			t.Fatalf("failed to reload interview: %v", err)
		}

		second, err := svc.Start(ctx, userID, itv.ID)
		if err != nil {
			t.Fatalf("second Start returned error: %v", err)
		}
		if first.RoomName != second.RoomName {
			t.Errorf("room name changed across starts: %q vs %q", first.RoomName, second.RoomName)
		}
		if second.Token == "" {
			t.Error("expected a credential on reconnect")
		}

		var reloaded interview.Interview
		if err := db.First(&reloaded, "id = ?", itv.ID).Error; err != nil {
			t.Fatalf("failed to reload interview: %v", err)
		}
		if reloaded.Status != interview.StatusInProgress {
			t.Errorf("restart must not change status, got %s", reloaded.Status)
		}
		if !reloaded.StartedAt.Equal(afterFirst.StartedAt) {
			t.Errorf("restart must not reset started_at: %v vs %v", reloaded.StartedAt, afterFirst.StartedAt)
		}
	})

	t.Run("WrongUser", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})
		itv := createInterview(t, svc, uuid.New())

		_, err := svc.Start(ctx, uuid.New(), itv.ID)
		if !errors.Is(err, interview.ErrInterviewNotFound) {
			t.Fatalf("expected ErrInterviewNotFound for another user's interview, got %v", err)
		}
	})

	t.Run("CompletedInterview", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5), report: &gemini.Report{Summary: "done"}})
		userID := uuid.New()
		itv := createInterview(t, svc, userID)

		if _, err := svc.Start(ctx, userID, itv.ID); err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
		answerQuestion(t, db, itv.Questions[0].ID, floatPtr(75), "A scored answer.")
		if _, err := svc.Complete(ctx, userID, itv.ID); err != nil {
			t.Fatalf("Complete returned error: %v", err)
		}

		_, err := svc.Start(ctx, userID, itv.ID)
		if !errors.Is(err, interview.ErrInterviewCompleted) {
			t.Fatalf("expected ErrInterviewCompleted, got %v", err)
		}
	})
}

func TestCompleteInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("AggregatesScoredAnswersOnly", func(t *testing.T) {
		db := newTestDB(t)
		oracle := &fakeOracle{
			questions: generatedQuestions(5),
			report: &gemini.Report{
				Summary:   "Strong showing overall.",
				Strengths: []string{"Clear explanations"},
			},
		}
		svc := newTestService(t, db, oracle)
		userID := uuid.New()
		itv := createInterview(t, svc, userID)
		if _, err := svc.Start(ctx, userID, itv.ID); err != nil {
			t.Fatalf("Start returned error: %v", err)
		}

		answerQuestion(t, db, itv.Questions[0].ID, floatPtr(80), "First answer.")
		answerQuestion(t, db, itv.Questions[1].ID, floatPtr(60), "Second answer.")
		answerQuestion(t, db, itv.Questions[2].ID, floatPtr(100), "Third answer.")
		answerQuestion(t, db, itv.Questions[3].ID, nil, "Unscored answer.")

		completed, err := svc.Complete(ctx, userID, itv.ID)
		if err != nil {
			t.Fatalf("Complete returned error: %v", err)
		}
		if completed.Status != interview.StatusCompleted {
			t.Errorf("expected COMPLETED, got %s", completed.Status)
		}
		if completed.OverallScore == nil || *completed.OverallScore != 80 {
			t.Errorf("expected overall score 80, got %v", completed.OverallScore)
		}
		if completed.CompletedAt == nil {
			t.Error("expected completed_at to be set")
		}
		if completed.PerformanceTrend == nil {
			t.Fatal("expected a performance trend")
		}
		if completed.Report == nil {
			t.Fatal("expected a report")
		}
		if got := completed.Report.Data().Summary; got != "Strong showing overall." {
			t.Errorf("unexpected report summary: %q", got)
		}
	})

	t.Run("ReportFailureFallsBack", func(t *testing.T) {
		db := newTestDB(t)
		oracle := &fakeOracle{
			questions: generatedQuestions(5),
			reportErr: errors.New("model unavailable"),
		}
		svc := newTestService(t, db, oracle)
		userID := uuid.New()
		itv := createInterview(t, svc, userID)
		if _, err := svc.Start(ctx, userID, itv.ID); err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
		answerQuestion(t, db, itv.Questions[0].ID, floatPtr(70), "A scored answer.")

		completed, err := svc.Complete(ctx, userID, itv.ID)
		if err != nil {
			t.Fatalf("completion must survive a report failure, got %v", err)
		}
		if completed.Report == nil {
			t.Fatal("expected the fallback report")
		}
		report := completed.Report.Data()
		if report.Summary != gemini.FallbackReport().Summary {
			t.Errorf("expected fallback summary, got %q", report.Summary)
		}
		if report.Strengths == nil || len(report.Strengths) != 0 {
			t.Errorf("fallback report must carry empty lists, got %v", report.Strengths)
		}
		if completed.OverallScore == nil || *completed.OverallScore != 70 {
			t.Errorf("fallback path must still aggregate scores, got %v", completed.OverallScore)
		}
	})

	t.Run("NoScoredAnswers", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})
		userID := uuid.New()
		itv := createInterview(t, svc, userID)
		if _, err := svc.Start(ctx, userID, itv.ID); err != nil {
			t.Fatalf("Start returned error: %v", err)
		}

		completed, err := svc.Complete(ctx, userID, itv.ID)
		if err != nil {
			t.Fatalf("Complete returned error: %v", err)
		}
		if completed.OverallScore == nil || *completed.OverallScore != 0 {
			t.Errorf("expected overall score 0 with no scored answers, got %v", completed.OverallScore)
		}
		if completed.PerformanceTrend == nil || *completed.PerformanceTrend != interview.TrendConsistent {
			t.Errorf("expected CONSISTENT trend, got %v", completed.PerformanceTrend)
		}
	})

	t.Run("SecondCompleteRejected", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5), report: &gemini.Report{Summary: "done"}})
		userID := uuid.New()
		itv := createInterview(t, svc, userID)
		if _, err := svc.Start(ctx, userID, itv.ID); err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
		answerQuestion(t, db, itv.Questions[0].ID, floatPtr(90), "A scored answer.")

		if _, err := svc.Complete(ctx, userID, itv.ID); err != nil {
			t.Fatalf("first Complete returned error: %v", err)
		}
		_, err := svc.Complete(ctx, userID, itv.ID)
		if !errors.Is(err, interview.ErrInterviewCompleted) {
			t.Fatalf("expected ErrInterviewCompleted, got %v", err)
		}
	})
}

func TestAgentSnapshot(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(3)})
	itv := createInterview(t, svc, uuid.New())

	t.Run("MatchingRoom", func(t *testing.T) {
		snapshot, err := svc.AgentSnapshot(ctx, itv.ID, livekit.RoomName(itv.ID))
		if err != nil {
			t.Fatalf("AgentSnapshot returned error: %v", err)
		}
		if len(snapshot.Questions) != 3 {
			t.Fatalf("expected 3 questions, got %d", len(snapshot.Questions))
		}
		if snapshot.Questions[0].ExpectedAnswer == "" {
			t.Error("agent snapshot must include expected answers")
		}
	})

	t.Run("WrongRoom", func(t *testing.T) {
		_, err := svc.AgentSnapshot(ctx, itv.ID, "interview-some-other-room")
		if !errors.Is(err, interview.ErrInvalidRoomName) {
			t.Fatalf("expected ErrInvalidRoomName, got %v", err)
		}
	})
}

func TestListInterviews(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	svc := newTestService(t, db, &fakeOracle{questions: generatedQuestions(5)})
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		createInterview(t, svc, userID)
	}
	createInterview(t, svc, uuid.New())

	resp, err := svc.List(ctx, userID, nil, 1, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if resp.Meta.Total != 3 {
		t.Errorf("expected total 3 for this user, got %d", resp.Meta.Total)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 results on page 1, got %d", len(resp.Data))
	}
	if resp.Meta.Pages != 2 {
		t.Errorf("expected 2 pages, got %d", resp.Meta.Pages)
	}

	pending := interview.StatusPending
	filtered, err := svc.List(ctx, userID, &pending, 1, 10)
	if err != nil {
		t.Fatalf("filtered List returned error: %v", err)
	}
	if filtered.Meta.Total != 3 {
		t.Errorf("expected 3 pending interviews, got %d", filtered.Meta.Total)
	}
}
