package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
)

const maxListLimit = 200

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d admin=%t", id, userID, isAdmin)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя: все, предстоящие или прошедшие
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, scope=%q", req.UserID, req.Scope)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	statuses, ok := models.StatusesForScope(req.Scope)
	if !ok {
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, req.Scope)
	}

	userID := req.UserID
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{UserID: &userID, Statuses: statuses})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// List список бронирований для администратора с фильтром по дате и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Stats сводка по бронированиям (за дату или за всё время)
func (s *Service) Stats(ctx context.Context, date *string) (*models.StatsResponse, error) {
	if date != nil && !isValidDate(*date) {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *date)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Date: date})
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(date, domain.ComputeStats(bookings)), nil
}

// UpdateStatus меняет статус бронирования (только администратор).
// Статус принимается в форме хранения или отображения.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	target, ok := models.ToDomainBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status=%q for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	switch target {
	case domain.StatusFullyPaid:
		return s.MarkFullyPaid(ctx, bookingID)
	case domain.StatusCompleted:
		return s.Complete(ctx, bookingID)
	case domain.StatusCancelled:
		return s.Cancel(ctx, bookingID)
	default:
		s.logger.Warn("UpdateStatus: status=%s cannot be set manually for booking id=%d", target, bookingID)
		return nil, ErrInvalidTransition
	}
}

// MarkFullyPaid фиксирует оплату остатка на месте
func (s *Service) MarkFullyPaid(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	return s.changeStatus(ctx, bookingID, domain.StatusFullyPaid)
}

// Complete отмечает бронирование как состоявшееся
func (s *Service) Complete(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	return s.changeStatus(ctx, bookingID, domain.StatusCompleted)
}

// Cancel отменяет бронирование, освобождая его слоты
func (s *Service) Cancel(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	return s.changeStatus(ctx, bookingID, domain.StatusCancelled)
}

// CompletePast переводит прошедшие бронирования (дата раньше today) в completed
func (s *Service) CompletePast(ctx context.Context, today string) (int64, error) {
	n, err := s.bookingRepo.CompletePast(ctx, today)
	if err != nil {
		s.logger.Error("CompletePast: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompletePast - repository error: %v", ErrInternal, err)
	}

	s.metrics.ObserveLifecycleCompleted(n)
	if n > 0 {
		s.logger.Info("CompletePast: %d bookings before %s marked completed", n, today)
	}
	return n, nil
}

func (s *Service) changeStatus(ctx context.Context, bookingID int64, target domain.BookingStatus) (*models.BookingResponse, error) {
	s.logger.Info("changeStatus: booking id=%d -> %s", bookingID, target)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "changeStatus", bookingID)
		if err != nil {
			return err
		}

		if !domain.CanTransition(booking.Status, target) {
			s.logger.Warn("changeStatus: booking id=%d cannot move %s -> %s", bookingID, booking.Status, target)
			return ErrInvalidTransition
		}

		if target == domain.StatusFullyPaid {
			err = s.bookingRepo.MarkFullyPaid(txCtx, bookingID)
		} else {
			err = s.bookingRepo.UpdateStatus(txCtx, bookingID, booking.Status, target)
		}
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				s.logger.Warn("changeStatus: booking id=%d changed concurrently", bookingID)
				return ErrInvalidTransition
			}
			s.logger.Error("changeStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: changeStatus - repository error: %v", ErrInternal, err)
		}

		if target == domain.StatusFullyPaid {
			booking.MarkFullyPaid()
		} else {
			booking.Status = target
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveStatusChange(string(target))
	s.logger.Info("changeStatus: booking id=%d is now %s", bookingID, target)
	return models.FromDomainBooking(result), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func toDomainFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{Limit: req.Limit, Offset: req.Offset}

	if req.Limit < 0 || req.Offset < 0 {
		return filter, fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidInput)
	}
	if filter.Limit == 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	if req.Date != nil {
		if !isValidDate(*req.Date) {
			return filter, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		filter.Date = req.Date
	}

	if req.Status != nil {
		status, ok := models.ToDomainBookingStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

func isValidDate(date string) bool {
	_, err := time.Parse(domain.DateFormat, date)
	return err == nil
}
