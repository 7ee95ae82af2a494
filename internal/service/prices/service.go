package prices

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	priceRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/prices"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/prices/models"
)

// Service сервис цен на слоты
type Service struct {
	priceRepo PriceRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(priceRepo PriceRepository, logger Logger) *Service {
	return &Service{
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// PriceTable возвращает действующую таблицу цен (значения по умолчанию + переопределения)
func (s *Service) PriceTable(ctx context.Context) (domain.PriceTable, error) {
	overrides, err := s.priceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("PriceTable: repository error: %v", err)
		return domain.PriceTable{}, fmt.Errorf("%w: PriceTable - repository error: %v", ErrInternal, err)
	}
	return domain.NewPriceTable(overrides), nil
}

// GetTable возвращает таблицу цен по всем 18 часам
func (s *Service) GetTable(ctx context.Context) (*models.PriceTableResponse, error) {
	table, err := s.PriceTable(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromPriceTable(table), nil
}

// SetOverride устанавливает цену часа для всех дат
// Существующие бронирования сохраняют свои цены
func (s *Service) SetOverride(ctx context.Context, hour int, req *models.SetPriceRequest) (*models.PriceRowResponse, error) {
	s.logger.Info("SetOverride: hour=%d price=%d", hour, req.Price)

	if !domain.IsValidHour(hour) {
		s.logger.Warn("SetOverride: hour=%d is outside the cycle", hour)
		return nil, ErrInvalidHour
	}
	if !domain.IsValidPrice(req.Price) {
		s.logger.Warn("SetOverride: price=%d out of range for hour=%d", req.Price, hour)
		return nil, ErrInvalidPrice
	}

	override, err := s.priceRepo.Upsert(ctx, hour, req.Price)
	if err != nil {
		s.logger.Error("SetOverride: repository error for hour=%d: %v", hour, err)
		return nil, fmt.Errorf("%w: SetOverride - repository error: %v", ErrInternal, err)
	}

	row := models.FromHour(domain.NewPriceTable([]domain.PriceOverride{*override}), hour)
	return &row, nil
}

// ResetHour возвращает часу цену по умолчанию
func (s *Service) ResetHour(ctx context.Context, hour int) error {
	if !domain.IsValidHour(hour) {
		return ErrInvalidHour
	}

	if err := s.priceRepo.Delete(ctx, hour); err != nil {
		if errors.Is(err, priceRepo.ErrOverrideNotFound) {
			s.logger.Warn("ResetHour: hour=%d has no override", hour)
			return ErrOverrideNotFound
		}
		s.logger.Error("ResetHour: repository error for hour=%d: %v", hour, err)
		return fmt.Errorf("%w: ResetHour - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ResetHour: hour=%d reset to default", hour)
	return nil
}

// ResetAll удаляет все переопределения
func (s *Service) ResetAll(ctx context.Context) (*models.ResetAllResponse, error) {
	n, err := s.priceRepo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("ResetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ResetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ResetAll: removed %d overrides", n)
	return &models.ResetAllResponse{Removed: n}, nil
}
