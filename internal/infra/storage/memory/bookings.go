package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/booking"
)

// BookingStore хранилище бронирований в памяти процесса.
// Возвращает те же ошибки, что и postgres-репозиторий.
type BookingStore struct {
	mu       sync.RWMutex
	nextID   int64
	nextLine int64
	bookings map[int64]*domain.Booking
	now      func() time.Time
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[int64]*domain.Booking),
		now:      time.Now,
	}
}

func (s *BookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.PaymentReferenceID != nil && s.referenceUsed(*booking.PaymentReferenceID) {
		return nil, bookingRepo.ErrDuplicatePaymentReference
	}

	s.nextID++
	booking.ID = s.nextID
	booking.CreatedAt = s.now()
	booking.UpdatedAt = booking.CreatedAt
	for i := range booking.Slots {
		s.nextLine++
		booking.Slots[i].ID = s.nextLine
		booking.Slots[i].BookingID = booking.ID
	}

	s.bookings[booking.ID] = cloneBooking(booking)
	return booking, nil
}

func (s *BookingStore) IsPaymentReferenceUsed(_ context.Context, referenceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.referenceUsed(referenceID), nil
}

func (s *BookingStore) referenceUsed(referenceID string) bool {
	for _, b := range s.bookings {
		if b.PaymentReferenceID != nil && *b.PaymentReferenceID == referenceID {
			return true
		}
	}
	return false
}

func (s *BookingStore) GetBookedHours(_ context.Context, date string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hours := make([]int, 0)
	for _, b := range s.bookings {
		if b.Date != date || !b.IsActive() {
			continue
		}
		hours = append(hours, b.Hours()...)
	}
	sort.Ints(hours)
	return hours, nil
}

func (s *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (s *BookingStore) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if matches(b, filter) {
			result = append(result, cloneBooking(b))
		}
	}

	// как в postgres: дата по убыванию, затем id по убыванию
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].ID > result[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*domain.Booking{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = s.now()
	return nil
}

func (s *BookingStore) MarkFullyPaid(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || !b.CanMarkFullyPaid() {
		return bookingRepo.ErrStatusConflict
	}
	b.MarkFullyPaid()
	b.UpdatedAt = s.now()
	return nil
}

func (s *BookingStore) CompletePast(_ context.Context, before string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, b := range s.bookings {
		if b.Date < before && b.IsUpcoming() {
			b.Status = domain.StatusCompleted
			b.UpdatedAt = s.now()
			n++
		}
	}
	return n, nil
}

func matches(b *domain.Booking, f domain.BookingsFilter) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	if f.Date != nil && b.Date != *f.Date {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if b.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.Slots = make([]domain.BookingSlot, len(b.Slots))
	copy(c.Slots, b.Slots)
	return &c
}
