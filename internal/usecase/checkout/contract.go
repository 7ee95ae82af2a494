package checkout

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/payment"
)

// SessionStore хранилище выбора слотов
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Selection, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBookedHours(ctx context.Context, date string) ([]int, error)
}

// PaymentGateway платежный шлюз
type PaymentGateway interface {
	Provider() string
	CreateIntent(ctx context.Context, amount int, description string, metadata map[string]string) (*payment.Intent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
