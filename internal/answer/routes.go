package answer

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.SubmitAnswer)
	r.Get("/{id}", h.GetAnswer)
	return r
}
