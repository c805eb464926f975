package user

import "github.com/go-chi/chi/v5"

// Routes is the session-protected surface; PublicRoutes is mounted
// without the auth middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	return r
}

func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	return r
}
