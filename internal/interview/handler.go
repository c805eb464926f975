package interview

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/auth"
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

func (h *Handler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var dto CreateInterviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itv, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			config.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("Failed to create interview")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusCreated, itv)
}

func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid interview id")
		return
	}

	resp, err := h.service.Start(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrInterviewNotFound):
			config.Error(w, http.StatusNotFound, "interview not found")
		case errors.Is(err, ErrInterviewCompleted):
			config.Error(w, http.StatusConflict, "interview already completed")
		default:
			log.WithError(err).Error("Failed to start interview")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) CompleteInterview(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid interview id")
		return
	}

	itv, err := h.service.Complete(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrInterviewNotFound):
			config.Error(w, http.StatusNotFound, "interview not found")
		case errors.Is(err, ErrInterviewCompleted):
			config.Error(w, http.StatusConflict, "interview already completed")
		default:
			log.WithError(err).Error("Failed to complete interview")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, itv)
}

func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid interview id")
		return
	}

	detail, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrInterviewNotFound) {
			config.Error(w, http.StatusNotFound, "interview not found")
			return
		}
		log.WithError(err).Error("Failed to get interview")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var status *Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := Status(raw)
		switch s {
		case StatusPending, StatusInProgress, StatusCompleted, StatusAbandoned:
			status = &s
		default:
			config.Error(w, http.StatusBadRequest, "invalid status filter")
			return
		}
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.service.List(r.Context(), userID, status, page, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list interviews")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

// GetAgentSnapshot serves the interviewer agent. It authenticates by room
// name rather than user session, so the invalid-room case reads as 403.
func (h *Handler) GetAgentSnapshot(w http.ResponseWriter, r *http.Request) {
	log := config.WithRequestID(h.log, r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid interview id")
		return
	}
	roomName := r.URL.Query().Get("room")
	if roomName == "" {
		config.Error(w, http.StatusBadRequest, "room is required")
		return
	}

	snapshot, err := h.service.AgentSnapshot(r.Context(), id, roomName)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRoomName):
			config.Error(w, http.StatusForbidden, "room name does not match interview")
		case errors.Is(err, ErrInterviewNotFound):
			config.Error(w, http.StatusNotFound, "interview not found")
		default:
			log.WithError(err).Error("Failed to load agent snapshot")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, snapshot)
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}
