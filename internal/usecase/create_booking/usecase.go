package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/session"
	bookingRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/payment"
)

// Результаты проверки оплаты для метрик
const (
	verificationVerified = "verified"
	verificationRejected = "rejected"
	verificationError    = "error"
)

// UseCase use case для создания бронирования из выбора слотов
type UseCase struct {
	bookingRepo  BookingRepository
	sessions     SessionStore
	gateway      PaymentGateway
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessions SessionStore,
	gateway PaymentGateway,
	txManager TransactionManager,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sessions:     sessions,
		gateway:      gateway,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Оплата проверяется на точную сумму к списанию; если после этого
// бронирование не удалось сохранить, платеж возвращается.
// Один платеж подтверждает не более одного бронирования.
// Использует сериализуемую транзакцию для предотвращения двойного бронирования часа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, session=%s, mode=%s", req.UserID, req.SessionID, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем выбор слотов
	sel, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrCorruptedSession) {
			uc.logger.Warn("CreateBooking: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("CreateBooking: failed to load session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	if sel.IsEmpty() {
		uc.logger.Warn("CreateBooking: session=%s has empty selection", req.SessionID)
		return nil, ErrEmptySelection
	}

	// 3. Проверяем дату
	if err := domain.CheckBookableDate(sel.Date(), uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date=%s rejected: %v", sel.Date(), err)
		if errors.Is(err, domain.ErrDateInPast) {
			return nil, ErrDateInPast
		}
		return nil, ErrInvalidDate
	}

	// 4. Проверяем оплату на точную сумму к списанию
	charge := domain.ChargeAmount(sel.TotalPrice(), req.Mode)
	if err := uc.verifyPayment(ctx, req.PaymentReferenceID, charge, req.SessionID); err != nil {
		return nil, err
	}
	if err := uc.checkReferenceUnused(ctx, req.PaymentReferenceID); err != nil {
		return nil, err
	}

	// 5. Собираем бронирование
	draft := domain.ComposeBooking(sel, req.Mode, req.PaymentReferenceID)
	booking := draft.ToBooking(req.UserID, domain.CustomerContact{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
		Email: req.CustomerEmail,
	})

	// 6. Сохраняем; при ошибке возвращаем платеж, если он не принадлежит другому бронированию
	created, err := uc.persist(ctx, booking)
	if err != nil {
		if !errors.Is(err, ErrPaymentNotVerified) {
			uc.refund(ctx, req.PaymentReferenceID)
		}
		return nil, err
	}

	// 7. Очищаем выбор
	if err := uc.sessions.Delete(ctx, req.SessionID); err != nil {
		uc.logger.Warn("CreateBooking: failed to clear session=%s: %v", req.SessionID, err)
	}

	uc.metrics.ObserveBookingCreated(string(req.Mode))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, date=%s, slots=%d, total=%d, paid=%d",
		created.ID, created.Date, created.SlotCount, created.TotalPrice, created.AdvancePaid)

	return &Response{
		Booking:       created,
		ChargedAmount: charge,
		Provider:      uc.gateway.Provider(),
	}, nil
}

func (uc *UseCase) verifyPayment(ctx context.Context, referenceID *string, charge int, sessionID string) error {
	err := uc.gateway.Verify(ctx, referenceID, charge, sessionID)
	switch {
	case err == nil:
		uc.metrics.ObservePaymentVerification(verificationVerified)
		return nil
	case errors.Is(err, payment.ErrReferenceRequired):
		uc.metrics.ObservePaymentVerification(verificationRejected)
		uc.logger.Warn("CreateBooking: payment reference is missing")
		return ErrPaymentReferenceRequired
	case errors.Is(err, payment.ErrNotVerified), errors.Is(err, payment.ErrAmountMismatch):
		uc.metrics.ObservePaymentVerification(verificationRejected)
		uc.logger.Warn("CreateBooking: payment not verified for charge=%d: %v", charge, err)
		return fmt.Errorf("%w: %v", ErrPaymentNotVerified, err)
	default:
		uc.metrics.ObservePaymentVerification(verificationError)
		uc.logger.Error("CreateBooking: payment verification failed: %v", err)
		return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
}

// checkReferenceUnused отклоняет платеж, которым уже оплачено другое бронирование
func (uc *UseCase) checkReferenceUnused(ctx context.Context, referenceID *string) error {
	if referenceID == nil || *referenceID == "" {
		return nil
	}

	used, err := uc.bookingRepo.IsPaymentReferenceUsed(ctx, *referenceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check payment=%s usage: %v", *referenceID, err)
		return fmt.Errorf("%w: failed to check payment reference: %v", ErrInternal, err)
	}
	if used {
		uc.metrics.ObservePaymentVerification(verificationRejected)
		uc.logger.Warn("CreateBooking: payment=%s already backs another booking", *referenceID)
		return fmt.Errorf("%w: payment reference already used", ErrPaymentNotVerified)
	}
	return nil
}

func (uc *UseCase) persist(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	hours := booking.Hours()

	// Быстрая проверка без блокировок
	booked, err := uc.bookingRepo.GetBookedHours(ctx, booking.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking: pre-check of booked hours failed, relying on transaction: %v", err)
	} else if hour, taken := firstTaken(hours, booked); taken {
		uc.logger.Warn("CreateBooking: hour=%d on date=%s is already booked", hour, booking.Date)
		return nil, fmt.Errorf("%w: %s", ErrSlotNotAvailable, domain.SlotID(booking.Date, hour))
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторная проверка с блокировкой строк (FOR UPDATE)
		booked, err := uc.bookingRepo.GetBookedHours(txCtx, booking.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get booked hours: %v", err)
			return fmt.Errorf("%w: failed to get booked hours: %v", ErrInternal, err)
		}

		if hour, taken := firstTaken(hours, booked); taken {
			uc.logger.Warn("CreateBooking: hour=%d on date=%s was booked concurrently", hour, booking.Date)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, domain.SlotID(booking.Date, hour))
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if errors.Is(err, bookingRepo.ErrDuplicatePaymentReference) {
			uc.metrics.ObservePaymentVerification(verificationRejected)
			uc.logger.Warn("CreateBooking: payment reference was used concurrently")
			return fmt.Errorf("%w: payment reference already used", ErrPaymentNotVerified)
		}
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrPaymentNotVerified) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		// ошибка фиксации транзакции (например, конфликт сериализации)
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return result, nil
}

func (uc *UseCase) refund(ctx context.Context, referenceID *string) {
	if referenceID == nil || *referenceID == "" {
		return
	}
	// возврат отправляется даже при отмененном запросе
	ctx = context.WithoutCancel(ctx)

	// параллельный запрос мог успеть сохранить бронирование с этим же платежом
	used, err := uc.bookingRepo.IsPaymentReferenceUsed(ctx, *referenceID)
	if err != nil {
		uc.logger.Error("CreateBooking: REFUND SKIPPED for payment=%s, usage check failed, manual action required: %v", *referenceID, err)
		return
	}
	if used {
		uc.logger.Warn("CreateBooking: payment=%s backs another booking, refund skipped", *referenceID)
		return
	}

	if err := uc.gateway.Refund(ctx, *referenceID); err != nil {
		uc.logger.Error("CreateBooking: REFUND FAILED for payment=%s, manual action required: %v", *referenceID, err)
		return
	}
	uc.logger.Warn("CreateBooking: payment=%s refunded after failed booking", *referenceID)
}
