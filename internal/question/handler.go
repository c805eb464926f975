package question

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
	log     logrus.FieldLogger
}

func NewHandler(s Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: s, log: log}
}

// NextQuestion serves the adaptive "what should the candidate see next"
// query. A 204 means the interview content is exhausted.
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	interviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid interview id")
		return
	}

	next, err := h.service.NextQuestion(r.Context(), interviewID)
	if err != nil {
		log.WithError(err).Error("Failed to select next question")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	config.JSON(w, http.StatusOK, next)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid question id")
		return
	}

	q, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			config.Error(w, http.StatusNotFound, "question not found")
			return
		}
		log.WithError(err).Error("Failed to get question")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, q)
}
