package get_slot_catalog

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_slot_catalog: invalid date")

	// ErrDateInPast возвращается, когда дата уже прошла
	ErrDateInPast = errors.New("get_slot_catalog: date is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_catalog: internal error")
)
