package get_slot_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	getSlotCatalog "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_slot_catalog"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast  = "нельзя выбрать прошедшую дату"
)

type Handler struct {
	useCase GetSlotCatalogUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotCatalogUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotCatalog.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getSlotCatalog.ErrInvalidDate):
			h.logger.Warn("GET /slots - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getSlotCatalog.ErrDateInPast):
			h.logger.Warn("GET /slots - Date in past: %s", date)
			handlers.RespondBadRequest(w, msgDateInPast)

		default:
			h.logger.Error("GET /slots - Failed to build catalog: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Catalog retrieved: date=%s, available=%d, confirmed=%t",
		date, result.AvailableCount, result.AvailabilityConfirmed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
