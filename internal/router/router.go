package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/auth"
	"github.com/mxngjxa/micro1-zara-mock/internal/interview"
	"github.com/mxngjxa/micro1-zara-mock/internal/middlewares"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
	"github.com/mxngjxa/micro1-zara-mock/internal/user"
)

type RouterConfig struct {
	AuthService      *auth.Service
	UserHandler      *user.Handler
	InterviewHandler *interview.Handler
	QuestionHandler  *question.Handler
	AnswerHandler    *answer.Handler
	AllowedOrigins   []string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Mount("/", user.PublicRoutes(cfg.UserHandler))
		r.Post("/logout", auth.NewHandler().Logout)
	})

	// The interviewer agent authenticates with the room name rather than
	// a user session.
	r.Mount("/agent/interviews", interview.AgentRoutes(cfg.InterviewHandler))

	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthService.Middleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/interviews", interview.Routes(cfg.InterviewHandler, cfg.QuestionHandler, cfg.AnswerHandler))
		r.Mount("/questions", question.Routes(cfg.QuestionHandler))
		r.Mount("/answers", answer.Routes(cfg.AnswerHandler))
	})
	return r
}
