package interview

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/livekit"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInterviewNotFound  = errors.New("interview not found")
	ErrInterviewCompleted = errors.New("interview already completed")
	ErrInvalidRoomName    = errors.New("room name does not match interview")
)

const participantName = "Candidate"

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateInterviewDTO) (*Interview, error)
	Start(ctx context.Context, userID, id uuid.UUID) (*StartInterviewResponse, error)
	Complete(ctx context.Context, userID, id uuid.UUID) (*Interview, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*InterviewDetail, error)
	List(ctx context.Context, userID uuid.UUID, status *Status, page, limit int) (*ListResponse, error)
	AgentSnapshot(ctx context.Context, id uuid.UUID, roomName string) (*AgentSnapshot, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	answerRepo answer.Repository
	oracle     gemini.Service
	rooms      livekit.Service
	log        logrus.FieldLogger
}

func NewService(db *gorm.DB, repo Repository, answerRepo answer.Repository, oracle gemini.Service, rooms livekit.Service, log logrus.FieldLogger) Service {
	return &service{
		db:         db,
		repo:       repo,
		answerRepo: answerRepo,
		oracle:     oracle,
		rooms:      rooms,
		log:        log,
	}
}

// Create persists the interview and its oracle-generated question set in
// one transaction. A generation failure rolls everything back: an
// interview without questions must never exist.
func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateInterviewDTO) (*Interview, error) {
	log := config.WithRequestID(s.log, ctx).WithField("user_id", userID)

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var created *Interview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itv := &Interview{
			ID:             uuid.New(),
			UserID:         userID,
			JobRole:        dto.JobRole,
			Difficulty:     dto.Difficulty,
			Topics:         datatypes.NewJSONSlice(dto.Topics),
			Status:         StatusPending,
			TotalQuestions: dto.TotalQuestions,
		}
		if err := tx.Create(itv).Error; err != nil {
			return err
		}

		generated, err := s.oracle.GenerateQuestions(ctx, dto.JobRole, string(dto.Difficulty), dto.Topics, dto.TotalQuestions)
		if err != nil {
			return err
		}

		questions := question.FromGenerated(itv.ID, generated)
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}

		itv.Questions = make([]question.Question, 0, len(questions))
		for _, q := range questions {
			itv.Questions = append(itv.Questions, *q)
		}
		created = itv
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to create interview")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"interview_id": created.ID,
		"questions":    len(created.Questions),
	}).Info("Interview created")
	return created, nil
}

// Start is idempotent with respect to the room: the room name is derived
// from the interview id, and only the first start flips PENDING to
// IN_PROGRESS and stamps started_at. A fresh credential is issued on
// every call so a candidate can reconnect.
func (s *service) Start(ctx context.Context, userID, id uuid.UUID) (*StartInterviewResponse, error) {
	log := config.WithRequestID(s.log, ctx).WithField("interview_id", id)

	itv, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load interview")
		return nil, err
	}
	if itv == nil {
		return nil, ErrInterviewNotFound
	}
	if itv.Status == StatusCompleted {
		return nil, ErrInterviewCompleted
	}

	roomName := livekit.RoomName(itv.ID)
	token, err := s.rooms.GenerateToken(livekit.TokenOptions{
		RoomName:        roomName,
		ParticipantName: participantName,
		ParticipantID:   userID.String(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to issue room credential")
		return nil, err
	}

	if itv.Status == StatusPending {
		itv.Status = StatusInProgress
		itv.StartedAt = time.Now()
		if err := s.repo.Save(itv); err != nil {
			log.WithError(err).Error("Failed to move interview to IN_PROGRESS")
			return nil, err
		}
		log.Info("Interview started")
	}

	return &StartInterviewResponse{
		Token:    token,
		URL:      s.rooms.ServerURL(),
		RoomName: roomName,
	}, nil
}

// Complete aggregates every scored answer into the final result and
// writes the completion fields atomically. Report generation is best
// effort: a permanent oracle failure substitutes the fallback report and
// the completion still succeeds.
func (s *service) Complete(ctx context.Context, userID, id uuid.UUID) (*Interview, error) {
	log := config.WithRequestID(s.log, ctx).WithField("interview_id", id)

	var completed *Interview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockInterview(tx, id); err != nil {
			return err
		}

		var itv Interview
		if err := tx.First(&itv, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInterviewNotFound
			}
			return err
		}
		if itv.Status == StatusCompleted {
			return ErrInterviewCompleted
		}

		var questions []*question.Question
		if err := tx.
			Where("interview_id = ?", id).
			Order("order_index ASC").
			Find(&questions).Error; err != nil {
			return err
		}

		var answers []*answer.Answer
		if err := tx.
			Joins("JOIN questions ON questions.id = answers.question_id").
			Where("questions.interview_id = ?", id).
			Find(&answers).Error; err != nil {
			return err
		}
		byQuestion := make(map[uuid.UUID]*answer.Answer, len(answers))
		for _, a := range answers {
			byQuestion[a.QuestionID] = a
		}

		// Scores accumulate in presentation order; unscored answers are
		// excluded from the aggregate entirely.
		totalScore := 0.0
		scores := make([]float64, 0, len(questions))
		details := make([]gemini.AnswerDetail, 0, len(questions))
		for _, q := range questions {
			a, ok := byQuestion[q.ID]
			if !ok || a.Score == nil {
				continue
			}
			totalScore += *a.Score
			scores = append(scores, *a.Score)

			detail := gemini.AnswerDetail{
				Question: q.Content,
				Answer:   a.Transcript,
				Evaluation: gemini.AnswerEvaluation{
					Score: *a.Score,
				},
			}
			if a.Feedback != nil {
				detail.Evaluation.Feedback = *a.Feedback
			}
			if a.Evaluation != nil {
				breakdown := a.Evaluation.Data()
				detail.Evaluation.Correctness = breakdown.Correctness
				detail.Evaluation.Completeness = breakdown.Completeness
				detail.Evaluation.Clarity = breakdown.Clarity
			}
			details = append(details, detail)
		}

		overallScore := 0.0
		if len(scores) > 0 {
			overallScore = math.Round(totalScore / float64(len(scores)))
		}

		now := time.Now()
		durationMinutes := 0
		if !itv.StartedAt.IsZero() {
			durationMinutes = int(math.Round(now.Sub(itv.StartedAt).Minutes()))
		}

		trend := ClassifyTrend(scores)

		report := gemini.Report{}
		if len(details) > 0 {
			generated, reportErr := s.oracle.GenerateReport(ctx, itv.JobRole, string(itv.Difficulty), details)
			if reportErr != nil {
				log.WithError(reportErr).Error("Report generation failed, using fallback report")
				report = gemini.FallbackReport()
			} else {
				report = *generated
			}
		}

		reportJSON := datatypes.NewJSONType(report)
		itv.Status = StatusCompleted
		itv.CompletedAt = &now
		itv.OverallScore = &overallScore
		itv.DurationMinutes = &durationMinutes
		itv.PerformanceTrend = &trend
		itv.Report = &reportJSON

		if err := tx.Omit("Questions").Save(&itv).Error; err != nil {
			return err
		}

		completed = &itv
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInterviewNotFound) && !errors.Is(err, ErrInterviewCompleted) {
			log.WithError(err).Error("Failed to complete interview")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"overall_score": *completed.OverallScore,
		"trend":         *completed.PerformanceTrend,
	}).Info("Interview completed")
	return completed, nil
}

func (s *service) GetByID(ctx context.Context, userID, id uuid.UUID) (*InterviewDetail, error) {
	log := config.WithRequestID(s.log, ctx)

	itv, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load interview")
		return nil, err
	}
	if itv == nil {
		return nil, ErrInterviewNotFound
	}

	answers, err := s.answerRepo.ListByInterview(id)
	if err != nil {
		log.WithError(err).Error("Failed to load answers for interview")
		return nil, err
	}
	byQuestion := make(map[uuid.UUID]*answer.Answer, len(answers))
	for _, a := range answers {
		a.Question = nil
		byQuestion[a.QuestionID] = a
	}

	detail := &InterviewDetail{Interview: *itv}
	detail.Interview.Questions = nil
	for _, q := range itv.Questions {
		detail.Questions = append(detail.Questions, QuestionWithAnswer{
			Question: q,
			Answer:   byQuestion[q.ID],
		})
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, status *Status, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	result, err := s.repo.ListByUser(userID, status, page, limit)
	if err != nil {
		config.WithRequestID(s.log, ctx).WithError(err).Error("Failed to list interviews")
		return nil, err
	}
	return result, nil
}

// AgentSnapshot hands the interviewer agent everything it needs to run
// the session, expected answers included. The caller must present the
// exact room name derived from the interview id.
func (s *service) AgentSnapshot(ctx context.Context, id uuid.UUID, roomName string) (*AgentSnapshot, error) {
	if roomName != livekit.RoomName(id) {
		return nil, ErrInvalidRoomName
	}

	itv, err := s.repo.GetByID(id)
	if err != nil {
		config.WithRequestID(s.log, ctx).WithError(err).Error("Failed to load interview for agent")
		return nil, err
	}
	if itv == nil {
		return nil, ErrInterviewNotFound
	}

	snapshot := &AgentSnapshot{
		InterviewID:        itv.ID,
		JobRole:            itv.JobRole,
		Difficulty:         itv.Difficulty,
		CompletedQuestions: itv.CompletedQuestions,
		Status:             itv.Status,
	}
	for _, q := range itv.Questions {
		snapshot.Questions = append(snapshot.Questions, AgentQuestion{
			ID:             q.ID,
			Content:        q.Content,
			ExpectedAnswer: q.ExpectedAnswer,
			Difficulty:     q.Difficulty,
			Topic:          q.Topic,
			OrderIndex:     q.OrderIndex,
		})
	}
	return snapshot, nil
}

// lockInterview takes the per-interview row lock on dialects that support
// it, so submissions and completion serialize against each other.
func lockInterview(tx *gorm.DB, id uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT 1 FROM interviews WHERE id = ? FOR UPDATE", id).Error
}
