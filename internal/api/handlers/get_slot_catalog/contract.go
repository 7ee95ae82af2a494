package get_slot_catalog

import (
	"context"

	getSlotCatalog "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_slot_catalog"
)

type GetSlotCatalogUseCase interface {
	Execute(ctx context.Context, req *getSlotCatalog.Request) (*getSlotCatalog.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
