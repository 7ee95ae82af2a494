package checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия выбора не найдена или истекла"
	msgEmptySelection     = "не выбрано ни одного слота"
	msgInvalidPaymentMode = "некорректный способ оплаты, ожидается advance или full"
	msgSlotNotAvailable   = "выбранный слот уже забронирован"
	msgPaymentGateway     = "платежный сервис недоступен, попробуйте позже"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
// Считает сумму к оплате и создает платеж в шлюзе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /checkout - Invalid request body")
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("POST /checkout - Session not found: session=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, checkout.ErrEmptySelection):
			h.logger.Warn("POST /checkout - Empty selection: session=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, checkout.ErrInvalidPaymentMode):
			h.logger.Warn("POST /checkout - Invalid payment mode: mode=%s", req.Mode)
			handlers.RespondBadRequest(w, msgInvalidPaymentMode)

		case errors.Is(err, checkout.ErrSlotNotAvailable):
			h.logger.Warn("POST /checkout - Slot not available: session=%s, error=%v", req.SessionID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, checkout.ErrPaymentGateway):
			h.logger.Error("POST /checkout - Payment gateway error: session=%s, error=%v", req.SessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		default:
			h.logger.Error("POST /checkout - Failed to checkout: session=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout - Payment prepared: session=%s, mode=%s, charge=%d, provider=%s",
		req.SessionID, result.Mode, result.ChargeAmount, result.Provider)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
