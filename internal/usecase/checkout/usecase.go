package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/session"
)

// UseCase use case для расчета суммы и создания платежа по выбору слотов
type UseCase struct {
	sessions    SessionStore
	bookingRepo BookingRepository
	gateway     PaymentGateway
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:    sessions,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// Execute рассчитывает сумму к оплате и создает платеж ровно на эту сумму
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Checkout: session=%s, mode=%s", req.SessionID, req.Mode)

	if !req.Mode.IsValid() {
		uc.logger.Warn("Checkout: invalid payment mode=%q", req.Mode)
		return nil, ErrInvalidPaymentMode
	}

	// 1. Загружаем выбор
	sel, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrCorruptedSession) {
			uc.logger.Warn("Checkout: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("Checkout: failed to load session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	if sel.IsEmpty() {
		uc.logger.Warn("Checkout: session=%s has empty selection", req.SessionID)
		return nil, ErrEmptySelection
	}

	// 2. Предварительная проверка доступности; окончательная - при создании бронирования
	booked, err := uc.bookingRepo.GetBookedHours(ctx, sel.Date())
	if err != nil {
		uc.logger.Warn("Checkout: failed to read booked hours for date=%s, skipping pre-check: %v", sel.Date(), err)
	} else if hour, taken := firstTaken(sel.Hours(), booked); taken {
		uc.logger.Warn("Checkout: hour=%d on date=%s is already booked", hour, sel.Date())
		return nil, fmt.Errorf("%w: %s", ErrSlotNotAvailable, domain.SlotID(sel.Date(), hour))
	}

	// 3. Считаем сумму и создаем платеж
	total := sel.TotalPrice()
	charge := domain.ChargeAmount(total, req.Mode)

	description := fmt.Sprintf("Turf booking %s, %d slot(s)", sel.Date(), sel.Len())
	metadata := map[string]string{
		"session_id": req.SessionID,
		"date":       sel.Date(),
		"mode":       string(req.Mode),
		"slots":      strconv.Itoa(sel.Len()),
	}

	intent, err := uc.gateway.CreateIntent(ctx, charge, description, metadata)
	if err != nil {
		uc.logger.Error("Checkout: failed to create payment intent for session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	uc.logger.Info("Checkout: session=%s total=%d charge=%d provider=%s", req.SessionID, total, charge, intent.Provider)

	return &Response{
		SessionID:    req.SessionID,
		Date:         sel.Date(),
		Slots:        sel.Slots(),
		Mode:         req.Mode,
		TotalPrice:   total,
		ChargeAmount: charge,
		BalanceDue:   total - charge,
		Provider:     intent.Provider,
		ReferenceID:  intent.ReferenceID,
		ClientSecret: intent.ClientSecret,
		Currency:     intent.Currency,
	}, nil
}

// firstTaken первый выбранный час, который уже занят
func firstTaken(selected, booked []int) (int, bool) {
	taken := make(map[int]struct{}, len(booked))
	for _, h := range booked {
		taken[h] = struct{}{}
	}
	for _, h := range selected {
		if _, ok := taken[h]; ok {
			return h, true
		}
	}
	return 0, false
}
