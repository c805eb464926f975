package answer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/sirupsen/logrus"
)

const minTranscriptLength = 10

type Handler struct {
	service Service
	log     logrus.FieldLogger
}

func NewHandler(s Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: s, log: log}
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	var dto CreateAnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.QuestionID == uuid.Nil {
		config.Error(w, http.StatusBadRequest, "question_id is required")
		return
	}
	if len(dto.Transcript) < minTranscriptLength {
		config.Error(w, http.StatusBadRequest, "transcript is too short")
		return
	}
	if dto.DurationSeconds < 0 {
		config.Error(w, http.StatusBadRequest, "duration_seconds must not be negative")
		return
	}

	a, err := h.service.SubmitAnswer(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			config.Error(w, http.StatusNotFound, "question not found")
		case errors.Is(err, ErrQuestionAlreadyAnswered):
			config.Error(w, http.StatusConflict, "question already answered")
		default:
			log.WithError(err).Error("Failed to submit answer")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid answer id")
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAnswerNotFound) {
			config.Error(w, http.StatusNotFound, "answer not found")
			return
		}
		log.WithError(err).Error("Failed to get answer")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, a)
}

// ListByInterview is mounted under the interview routes.
func (h *Handler) ListByInterview(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	interviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid interview id")
		return
	}

	answers, err := h.service.ListByInterview(r.Context(), interviewID)
	if err != nil {
		log.WithError(err).Error("Failed to list answers")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, answers)
}
