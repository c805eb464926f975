package question

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, answers AnswerSource, log logrus.FieldLogger) *Container {
	repo := NewRepository(db)
	service := NewService(repo, answers, log)
	handler := NewHandler(service, log)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
