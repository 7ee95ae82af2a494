package create_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия выбора не найдена или истекла
	ErrSessionNotFound = errors.New("create_booking: session not found")

	// ErrEmptySelection возвращается, когда не выбрано ни одного слота
	ErrEmptySelection = errors.New("create_booking: no slots selected")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPaymentReferenceRequired возвращается, когда шлюз требует идентификатор платежа
	ErrPaymentReferenceRequired = errors.New("create_booking: payment reference is required")

	// ErrPaymentNotVerified возвращается, когда платеж не подтвержден или сумма не совпадает
	ErrPaymentNotVerified = errors.New("create_booking: payment is not verified")

	// ErrPaymentGateway возвращается, когда платежный шлюз недоступен
	ErrPaymentGateway = errors.New("create_booking: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
