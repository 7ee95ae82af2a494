package selection

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия выбора не найдена или истекла
	ErrSessionNotFound = errors.New("selection: session not found")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("selection: invalid date")

	// ErrDateInPast возвращается, когда дата уже прошла
	ErrDateInPast = errors.New("selection: date is in the past")

	// ErrInvalidHour возвращается, когда час не входит в рабочий цикл
	ErrInvalidHour = errors.New("selection: hour is outside the booking cycle")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("selection: internal error")
)
