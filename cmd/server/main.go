package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/mxngjxa/micro1-zara-mock/internal/container"
	"github.com/mxngjxa/micro1-zara-mock/internal/router"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	ctx := context.Background()
	c, err := container.New(ctx)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	handler := router.New(router.RouterConfig{
		AuthService:      c.AuthService,
		UserHandler:      c.UserContainer.Handler,
		InterviewHandler: c.InterviewContainer.Handler,
		QuestionHandler:  c.QuestionContainer.Handler,
		AnswerHandler:    c.AnswerContainer.Handler,
		AllowedOrigins:   c.Config.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + c.Config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	c.Logger.WithField("port", c.Config.Port).Info("Server listening")
	if err := server.ListenAndServe(); err != nil {
		c.Logger.WithError(err).Fatal("Server stopped")
	}
}
