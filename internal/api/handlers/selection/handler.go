package selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/selection"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/selection/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия выбора не найдена или истекла"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "нельзя выбрать прошедшую дату"
	msgInvalidHour        = "час не входит в расписание площадки"
)

// Handler обслуживает сессию выбора слотов: /api/v1/selections
type Handler struct {
	service SelectionService
	logger  Logger
}

func NewHandler(service SelectionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start POST /api/v1/selections
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /selections - Invalid request body")
		return
	}

	result, err := h.service.Start(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /selections", "", err)
		return
	}

	h.logger.Info("POST /selections - Session started: session=%s, date=%s", result.SessionID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/selections/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, "GET /selections/{id}", sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SetDate PUT /api/v1/selections/{sessionId}/date
// Смена даты сбрасывает выбранные слоты
func (h *Handler) SetDate(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.SetDateRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("PUT /selections/{id}/date - Invalid request body: session=%s", sessionID)
		return
	}

	result, err := h.service.SetDate(r.Context(), sessionID, &req)
	if err != nil {
		h.respondError(w, "PUT /selections/{id}/date", sessionID, err)
		return
	}

	h.logger.Info("PUT /selections/{id}/date - Date changed: session=%s, date=%s", sessionID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Toggle POST /api/v1/selections/{sessionId}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.ToggleRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /selections/{id}/toggle - Invalid request body: session=%s", sessionID)
		return
	}

	result, err := h.service.Toggle(r.Context(), sessionID, &req)
	if err != nil {
		h.respondError(w, "POST /selections/{id}/toggle", sessionID, err)
		return
	}

	h.logger.Info("POST /selections/{id}/toggle - Toggled: session=%s, hour=%d, slots=%d, total=%d",
		sessionID, *req.Hour, result.SlotCount, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Clear DELETE /api/v1/selections/{sessionId}
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.Clear(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, "DELETE /selections/{id}", sessionID, err)
		return
	}

	h.logger.Info("DELETE /selections/{id} - Selection cleared: session=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route, sessionID string, err error) {
	switch {
	case errors.Is(err, selection.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session=%s", route, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, selection.ErrInvalidDate):
		h.logger.Warn("%s - Invalid date: session=%s", route, sessionID)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, selection.ErrDateInPast):
		h.logger.Warn("%s - Date in past: session=%s", route, sessionID)
		handlers.RespondBadRequest(w, msgDateInPast)

	case errors.Is(err, selection.ErrInvalidHour):
		h.logger.Warn("%s - Invalid hour: session=%s", route, sessionID)
		handlers.RespondBadRequest(w, msgInvalidHour)

	default:
		h.logger.Error("%s - Internal error: session=%s, error=%v", route, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
