package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/session"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/selection/models"
)

// Service управляет выбором слотов в рамках сессии
type Service struct {
	sessions     SessionStore
	bookedHours  BookedHoursReader
	prices       PriceSource
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса выбора
func NewService(
	sessions SessionStore,
	bookedHours BookedHoursReader,
	prices PriceSource,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		sessions:     sessions,
		bookedHours:  bookedHours,
		prices:       prices,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Start открывает новую сессию с пустым выбором на дату
func (s *Service) Start(ctx context.Context, req *models.StartRequest) (*models.SelectionResponse, error) {
	if err := s.checkDate(req.Date); err != nil {
		s.logger.Warn("Start: invalid date=%q: %v", req.Date, err)
		return nil, err
	}

	sessionID := uuid.NewString()
	sel := domain.NewSelection(req.Date)
	if err := s.save(ctx, "Start", sessionID, sel); err != nil {
		return nil, err
	}

	s.logger.Info("Start: session=%s opened for date=%s", sessionID, req.Date)
	return models.FromDomainSelection(sessionID, sel), nil
}

// Get возвращает текущий выбор сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*models.SelectionResponse, error) {
	sel, err := s.load(ctx, "Get", sessionID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSelection(sessionID, sel), nil
}

// SetDate переключает дату; при смене даты выбор очищается
func (s *Service) SetDate(ctx context.Context, sessionID string, req *models.SetDateRequest) (*models.SelectionResponse, error) {
	if err := s.checkDate(req.Date); err != nil {
		s.logger.Warn("SetDate: invalid date=%q for session=%s: %v", req.Date, sessionID, err)
		return nil, err
	}

	sel, err := s.load(ctx, "SetDate", sessionID)
	if err != nil {
		return nil, err
	}

	sel.SetDate(req.Date)
	if err := s.save(ctx, "SetDate", sessionID, sel); err != nil {
		return nil, err
	}
	return models.FromDomainSelection(sessionID, sel), nil
}

// Toggle выбирает слот или снимает выбор.
// Слот берется из каталога на дату, поэтому цена и статус всегда актуальны.
// Занятые слоты не меняют выбор (Changed=false).
func (s *Service) Toggle(ctx context.Context, sessionID string, req *models.ToggleRequest) (*models.SelectionResponse, error) {
	if req.Hour == nil || !domain.IsValidHour(*req.Hour) {
		return nil, ErrInvalidHour
	}
	if err := s.checkDate(req.Date); err != nil {
		s.logger.Warn("Toggle: invalid date=%q for session=%s: %v", req.Date, sessionID, err)
		return nil, err
	}

	sel, err := s.load(ctx, "Toggle", sessionID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	slot, _ := domain.FindSlot(catalog, *req.Hour)
	changed := sel.Toggle(slot)
	if !changed {
		s.logger.Info("Toggle: slot %s is %s, selection of session=%s unchanged", slot.ID, slot.Status, sessionID)
	} else if err := s.save(ctx, "Toggle", sessionID, sel); err != nil {
		return nil, err
	}

	resp := models.FromDomainSelection(sessionID, sel)
	resp.Changed = &changed
	return resp, nil
}

// Clear очищает выбор, дата сохраняется
func (s *Service) Clear(ctx context.Context, sessionID string) (*models.SelectionResponse, error) {
	sel, err := s.load(ctx, "Clear", sessionID)
	if err != nil {
		return nil, err
	}

	sel.Clear()
	if err := s.save(ctx, "Clear", sessionID, sel); err != nil {
		return nil, err
	}
	return models.FromDomainSelection(sessionID, sel), nil
}

func (s *Service) catalog(ctx context.Context, date string) ([]domain.Slot, error) {
	table, err := s.prices.PriceTable(ctx)
	if err != nil {
		s.logger.Error("Toggle: failed to load prices: %v", err)
		return nil, fmt.Errorf("%w: failed to load prices: %v", ErrInternal, err)
	}

	booked, err := s.bookedHours.GetBookedHours(ctx, date)
	if err != nil {
		// при создании бронирования доступность перепроверяется в транзакции
		s.logger.Warn("Toggle: booked hours for date=%s unavailable, treating all as free: %v", date, err)
		booked = nil
	}

	return domain.GenerateCatalog(date, booked, table), nil
}

func (s *Service) load(ctx context.Context, op, sessionID string) (*domain.Selection, error) {
	sel, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrCorruptedSession) {
			s.logger.Warn("%s: session=%s not found: %v", op, sessionID, err)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: failed to load session=%s: %v", op, sessionID, err)
		return nil, fmt.Errorf("%w: %s - session store error: %v", ErrInternal, op, err)
	}
	return sel, nil
}

func (s *Service) save(ctx context.Context, op, sessionID string, sel *domain.Selection) error {
	if err := s.sessions.Save(ctx, sessionID, sel); err != nil {
		s.logger.Error("%s: failed to save session=%s: %v", op, sessionID, err)
		return fmt.Errorf("%w: %s - session store error: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) checkDate(date string) error {
	err := domain.CheckBookableDate(date, s.timeProvider.Now())
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return ErrInvalidDate
	case errors.Is(err, domain.ErrDateInPast):
		return ErrDateInPast
	}
	return err
}
