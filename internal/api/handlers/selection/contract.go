package selection

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/service/selection/models"
)

type SelectionService interface {
	Start(ctx context.Context, req *models.StartRequest) (*models.SelectionResponse, error)
	Get(ctx context.Context, sessionID string) (*models.SelectionResponse, error)
	SetDate(ctx context.Context, sessionID string, req *models.SetDateRequest) (*models.SelectionResponse, error)
	Toggle(ctx context.Context, sessionID string, req *models.ToggleRequest) (*models.SelectionResponse, error)
	Clear(ctx context.Context, sessionID string) (*models.SelectionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
