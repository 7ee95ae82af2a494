package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBookedHours(ctx context.Context, date string) ([]int, error)
	IsPaymentReferenceUsed(ctx context.Context, referenceID string) (bool, error)
}

// SessionStore хранилище выбора слотов
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Selection, error)
	Delete(ctx context.Context, sessionID string) error
}

// PaymentGateway платежный шлюз
type PaymentGateway interface {
	Provider() string
	Verify(ctx context.Context, referenceID *string, amount int, sessionID string) error
	Refund(ctx context.Context, referenceID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований и проверок оплаты
type Metrics interface {
	ObserveBookingCreated(mode string)
	ObservePaymentVerification(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production.
// Location задает часовой пояс площадки; nil означает локальное время процесса.
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в часовом поясе площадки
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
