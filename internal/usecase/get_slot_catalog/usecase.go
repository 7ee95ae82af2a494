package get_slot_catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// UseCase use case для получения каталога слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	prices       PriceSource
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	prices PriceSource,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		prices:       prices,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Execute строит каталог: цены из таблицы, статусы по занятым часам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotCatalog: date=%s", req.Date)

	if err := domain.CheckBookableDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetSlotCatalog: invalid date=%q: %v", req.Date, err)
		if errors.Is(err, domain.ErrDateInPast) {
			return nil, ErrDateInPast
		}
		return nil, ErrInvalidDate
	}

	table, err := uc.prices.PriceTable(ctx)
	if err != nil {
		uc.logger.Error("GetSlotCatalog: failed to load prices: %v", err)
		return nil, fmt.Errorf("%w: failed to load prices: %v", ErrInternal, err)
	}

	confirmed := true
	booked, err := uc.bookingRepo.GetBookedHours(ctx, req.Date)
	if err != nil {
		uc.logger.Warn("GetSlotCatalog: failed to read booked hours for date=%s, showing all slots as available: %v", req.Date, err)
		booked = nil
		confirmed = false
	}

	slots := domain.GenerateCatalog(req.Date, booked, table)

	available := 0
	for _, s := range slots {
		if s.IsAvailable() {
			available++
		}
	}

	uc.logger.Info("GetSlotCatalog: date=%s, %d of %d slots available", req.Date, available, len(slots))

	return &Response{
		Date:                  req.Date,
		Slots:                 slots,
		Groups:                domain.GroupSlots(slots),
		AvailableCount:        available,
		AvailabilityConfirmed: confirmed,
	}, nil
}
