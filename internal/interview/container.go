package interview

import (
	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/mxngjxa/micro1-zara-mock/internal/livekit"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, answerRepo answer.Repository, oracle gemini.Service, rooms livekit.Service, log logrus.FieldLogger) *Container {
	repo := NewRepository(db)
	service := NewService(db, repo, answerRepo, oracle, rooms, log)
	handler := NewHandler(service, log)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
