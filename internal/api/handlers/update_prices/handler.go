package update_prices

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/prices"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/prices/models"
)

const (
	msgInvalidHour        = "час не входит в расписание площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPrice       = "некорректная цена"
	msgNotFound           = "для этого часа действует цена по умолчанию"
)

// Handler управление ценами администратором: /api/v1/admin/prices
type Handler struct {
	service PriceService
	logger  Logger
}

func NewHandler(service PriceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Set PUT /api/v1/admin/prices/{hour}
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	hour, err := strconv.Atoi(mux.Vars(r)["hour"])
	if err != nil {
		h.logger.Warn("PUT /admin/prices/{hour} - Invalid hour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHour)
		return
	}

	var req models.SetPriceRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("PUT /admin/prices/{hour} - Invalid request body: hour=%d", hour)
		return
	}

	row, err := h.service.SetOverride(r.Context(), hour, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/prices/{hour}", hour, err)
		return
	}

	h.logger.Info("PUT /admin/prices/{hour} - Price updated: hour=%d, price=%d", hour, row.Price)
	handlers.RespondJSON(w, http.StatusOK, row)
}

// Reset DELETE /api/v1/admin/prices/{hour}
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	hour, err := strconv.Atoi(mux.Vars(r)["hour"])
	if err != nil {
		h.logger.Warn("DELETE /admin/prices/{hour} - Invalid hour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHour)
		return
	}

	if err := h.service.ResetHour(r.Context(), hour); err != nil {
		h.respondError(w, "DELETE /admin/prices/{hour}", hour, err)
		return
	}

	h.logger.Info("DELETE /admin/prices/{hour} - Price reset to default: hour=%d", hour)
	handlers.RespondNoContent(w)
}

// ResetAll DELETE /api/v1/admin/prices
func (h *Handler) ResetAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ResetAll(r.Context())
	if err != nil {
		h.logger.Error("DELETE /admin/prices - Failed to reset prices: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/prices - All prices reset: removed=%d", result.Removed)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, hour int, err error) {
	switch {
	case errors.Is(err, prices.ErrInvalidHour):
		h.logger.Warn("%s - Hour outside cycle: hour=%d", route, hour)
		handlers.RespondBadRequest(w, msgInvalidHour)

	case errors.Is(err, prices.ErrInvalidPrice):
		h.logger.Warn("%s - Invalid price: hour=%d", route, hour)
		handlers.RespondBadRequest(w, msgInvalidPrice)

	case errors.Is(err, prices.ErrOverrideNotFound):
		h.logger.Warn("%s - Override not found: hour=%d", route, hour)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Internal error: hour=%d, error=%v", route, hour, err)
		handlers.RespondInternalError(w)
	}
}
