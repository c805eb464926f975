package user

import (
	"github.com/mxngjxa/micro1-zara-mock/internal/auth"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, tokens *auth.Service, crypto *config.Crypto, log logrus.FieldLogger) *Container {
	repo := NewRepository(db)
	service := NewService(repo, tokens, crypto, log)
	handler := NewHandler(service, log)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
