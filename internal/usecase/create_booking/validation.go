package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, req.Mode)
	}

	if err := validateOptional("customerName", req.CustomerName, domain.MaxCustomerNameLen); err != nil {
		return err
	}

	if err := validateOptional("customerPhone", req.CustomerPhone, domain.MaxCustomerPhoneLen); err != nil {
		return err
	}
	if req.CustomerPhone != nil {
		if err := validate.Var(*req.CustomerPhone, "e164|numeric"); err != nil {
			return fmt.Errorf("%w: invalid customerPhone", ErrInvalidInput)
		}
	}

	if err := validateOptional("customerEmail", req.CustomerEmail, domain.MaxCustomerEmailLen); err != nil {
		return err
	}
	if req.CustomerEmail != nil {
		if err := validate.Var(*req.CustomerEmail, "email"); err != nil {
			return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
		}
	}

	return nil
}

// validateOptional проверяет необязательное текстовое поле: если указано, не пустое и не длиннее maxLen
func validateOptional(field string, value *string, maxLen int) error {
	if value == nil {
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return fmt.Errorf("%w: %s must not be blank", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(*value) > maxLen {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, maxLen)
	}
	return nil
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
