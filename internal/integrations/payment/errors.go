package payment

import "errors"

var (
	// ErrReferenceRequired возвращается, когда шлюз требует идентификатор платежа, а он не передан
	ErrReferenceRequired = errors.New("payment: payment reference is required")

	// ErrNotVerified возвращается, когда платеж не завершен
	ErrNotVerified = errors.New("payment: payment is not completed")

	// ErrAmountMismatch возвращается, когда списанная сумма не совпадает с ожидаемой
	ErrAmountMismatch = errors.New("payment: charged amount does not match")

	// ErrInvalidAmount возвращается при неположительной сумме
	ErrInvalidAmount = errors.New("payment: amount must be positive")

	// ErrGateway возвращается при ошибках обращения к платежному шлюзу
	ErrGateway = errors.New("payment: gateway error")
)
