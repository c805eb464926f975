package container

import (
	"context"
	"fmt"

	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/auth"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/interview"
	"github.com/mxngjxa/micro1-zara-mock/internal/livekit"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"github.com/mxngjxa/micro1-zara-mock/internal/user"
	"github.com/sirupsen/logrus"
)

// Container wires the whole application graph from configuration. It is
// the only place construction order matters.
type Container struct {
	Config config.Config
	Logger *logrus.Logger

	AuthService *auth.Service

	UserContainer      *user.Container
	GeminiContainer    *gemini.Container
	QuestionContainer  *question.Container
	AnswerContainer    *answer.Container
	InterviewContainer *interview.Container
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := config.NewLogger(cfg)

	db, err := config.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	authService, err := auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}

	crypto, err := config.NewCrypto(cfg.CryptoKey)
	if err != nil {
		return nil, fmt.Errorf("build crypto: %w", err)
	}

	rooms, err := livekit.NewService(cfg.LiveKitAPIKey, cfg.LiveKitAPISecret, cfg.LiveKitURL)
	if err != nil {
		return nil, fmt.Errorf("build room service: %w", err)
	}

	geminiContainer, err := gemini.NewContainer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		return nil, fmt.Errorf("build gemini client: %w", err)
	}

	userContainer := user.NewContainer(db, authService, crypto, log)
	answerContainer := answer.NewContainer(db, geminiContainer.Service, log)
	questionContainer := question.NewContainer(db, answerContainer.Repo, log)
	interviewContainer := interview.NewContainer(db, answerContainer.Repo, geminiContainer.Service, rooms, log)

	return &Container{
		Config:             cfg,
		Logger:             log,
		AuthService:        authService,
		UserContainer:      userContainer,
		GeminiContainer:    geminiContainer,
		QuestionContainer:  questionContainer,
		AnswerContainer:    answerContainer,
		InterviewContainer: interviewContainer,
	}, nil
}
