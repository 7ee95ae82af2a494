package checkout

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия выбора не найдена или истекла
	ErrSessionNotFound = errors.New("checkout: session not found")

	// ErrEmptySelection возвращается, когда не выбрано ни одного слота
	ErrEmptySelection = errors.New("checkout: no slots selected")

	// ErrInvalidPaymentMode возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMode = errors.New("checkout: invalid payment mode")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("checkout: slot is not available")

	// ErrPaymentGateway возвращается, когда платежный шлюз не смог создать платеж
	ErrPaymentGateway = errors.New("checkout: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)
