package get_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
// Query params: date (опционально, без даты считается за всё время)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var date *string
	if d := r.URL.Query().Get("date"); d != "" {
		date = &d
	}

	result, err := h.service.Stats(r.Context(), date)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/stats - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /admin/stats - Failed to compute stats: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/stats - Stats computed: total=%d, revenue=%d", result.TotalBookings, result.RevenueCollected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
