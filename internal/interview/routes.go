package interview

import (
	"github.com/go-chi/chi/v5"
	"github.com/mxngjxa/micro1-zara-mock/internal/answer"
	"github.com/mxngjxa/micro1-zara-mock/internal/question"
)

// Routes mounts the full interview surface, including the per-interview
// question and answer subroutes that need the interview id.
func Routes(h *Handler, questions *question.Handler, answers *answer.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateInterview)
	r.Get("/", h.ListInterviews)
	r.Get("/{id}", h.GetInterview)
	r.Post("/{id}/start", h.StartInterview)
	r.Post("/{id}/complete", h.CompleteInterview)
	r.Get("/{id}/questions/next", questions.NextQuestion)
	r.Get("/{id}/answers", answers.ListByInterview)

	return r
}

// AgentRoutes is mounted outside the session-authenticated group: the
// interviewer agent proves itself with the room name instead.
func AgentRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetAgentSnapshot)
	return r
}
