package answer

import (
	"github.com/mxngjxa/micro1-zara-mock/internal/gemini"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, oracle gemini.Service, log logrus.FieldLogger) *Container {
	repo := NewRepository(db)
	service := NewService(db, repo, oracle, log)
	handler := NewHandler(service, log)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
