package update_prices

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/service/prices/models"
)

type PriceService interface {
	SetOverride(ctx context.Context, hour int, req *models.SetPriceRequest) (*models.PriceRowResponse, error)
	ResetHour(ctx context.Context, hour int) error
	ResetAll(ctx context.Context) (*models.ResetAllResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
