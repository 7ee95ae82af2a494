package prices

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// PriceRepository интерфейс репозитория переопределенных цен
type PriceRepository interface {
	GetAll(ctx context.Context) ([]domain.PriceOverride, error)
	Upsert(ctx context.Context, hour, price int) (*domain.PriceOverride, error)
	Delete(ctx context.Context, hour int) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
