package prices

import "errors"

var (
	// ErrInvalidHour возвращается, когда час не входит в рабочий цикл
	ErrInvalidHour = errors.New("hour is outside the booking cycle")

	// ErrInvalidPrice возвращается, когда цена вне допустимого диапазона
	ErrInvalidPrice = errors.New("price is out of range")

	// ErrOverrideNotFound возвращается, когда для часа действует цена по умолчанию
	ErrOverrideNotFound = errors.New("price override not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
