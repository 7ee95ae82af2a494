package get_prices

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/service/prices/models"
)

type PriceService interface {
	GetTable(ctx context.Context) (*models.PriceTableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
