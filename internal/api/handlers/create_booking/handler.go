package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TurfBookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized             = "требуется авторизация"
	msgInvalidRequestBody       = "некорректное тело запроса"
	msgSessionNotFound          = "сессия выбора не найдена или истекла"
	msgEmptySelection           = "не выбрано ни одного слота"
	msgInvalidBookingDate       = "некорректная дата бронирования"
	msgDateInPast               = "нельзя забронировать прошедшую дату"
	msgSlotNotAvailable         = "выбранный слот уже забронирован, оплата будет возвращена"
	msgPaymentReferenceRequired = "требуется идентификатор платежа"
	msgPaymentNotVerified       = "платеж не подтвержден"
	msgPaymentGateway           = "платежный сервис недоступен, попробуйте позже"
	msgInvalidInput             = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Создает бронирование из сессии выбора после подтверждения оплаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%d", userID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSessionNotFound):
			h.logger.Warn("POST /bookings - Session not found: user_id=%d, session=%s", userID, req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createBooking.ErrEmptySelection):
			h.logger.Warn("POST /bookings - Empty selection: user_id=%d, session=%s", userID, req.SessionID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, session=%s", userID, req.SessionID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: user_id=%d, session=%s", userID, req.SessionID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, session=%s, error=%v", userID, req.SessionID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPaymentReferenceRequired):
			h.logger.Warn("POST /bookings - Payment reference missing: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgPaymentReferenceRequired)

		case errors.Is(err, createBooking.ErrPaymentNotVerified):
			h.logger.Warn("POST /bookings - Payment not verified: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotVerified)

		case errors.Is(err, createBooking.ErrPaymentGateway):
			h.logger.Error("POST /bookings - Payment gateway error: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, session=%s, error=%v",
				userID, req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, date=%s, slots=%d",
		result.Booking.ID, userID, result.Booking.Date, result.Booking.SlotCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
