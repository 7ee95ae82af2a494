package selection

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// SessionStore хранилище выбора слотов по идентификатору сессии
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Selection, error)
	Save(ctx context.Context, sessionID string, sel *domain.Selection) error
	Delete(ctx context.Context, sessionID string) error
}

// BookedHoursReader источник занятых часов на дату
type BookedHoursReader interface {
	GetBookedHours(ctx context.Context, date string) ([]int, error)
}

// PriceSource источник действующей таблицы цен
type PriceSource interface {
	PriceTable(ctx context.Context) (domain.PriceTable, error)
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
