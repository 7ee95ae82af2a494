package domain

import "time"

// BookingStatus represents the status of a booking in its compact storage form
type BookingStatus string

const (
	StatusAdvancePaid BookingStatus = "advance_paid"
	StatusFullyPaid   BookingStatus = "fully_paid"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
)

// PaymentMode how much of the total is charged at booking time
type PaymentMode string

const (
	PaymentModeAdvance PaymentMode = "advance"
	PaymentModeFull    PaymentMode = "full"
)

// IsValid returns true for known payment modes
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeAdvance || m == PaymentModeFull
}

// BookingSlot one hour line of a booking, keeps its own price
type BookingSlot struct {
	ID             int64
	BookingID      int64
	StartHour      int
	EndHour        int
	TimeRangeLabel string
	Price          int
}

// CustomerContact optional contact details left at checkout
type CustomerContact struct {
	Name  *string
	Phone *string
	Email *string
}

// Booking represents a confirmed reservation
type Booking struct {
	ID                 int64
	UserID             int64
	Date               string // YYYY-MM-DD
	Slots              []BookingSlot
	SlotCount          int
	TotalPrice         int
	AdvancePaid        int
	BalanceDue         int
	Status             BookingStatus
	PaymentMode        PaymentMode
	PaymentReferenceID *string // nil when paid without a gateway

	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hours returns start hours of all booking lines
func (b *Booking) Hours() []int {
	hours := make([]int, 0, len(b.Slots))
	for _, s := range b.Slots {
		hours = append(hours, s.StartHour)
	}
	return hours
}

// IsActive returns true if the booking still occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsUpcoming returns true if the booking has not been played or cancelled yet
func (b *Booking) IsUpcoming() bool {
	return b.Status == StatusAdvancePaid || b.Status == StatusFullyPaid
}

// CanMarkFullyPaid returns true if the balance can be collected
func (b *Booking) CanMarkFullyPaid() bool {
	return b.Status == StatusAdvancePaid
}

// CanBeCompleted returns true if the booking can be marked as played
func (b *Booking) CanBeCompleted() bool {
	return b.IsUpcoming()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsUpcoming()
}

// MarkFullyPaid settles the balance
func (b *Booking) MarkFullyPaid() {
	b.AdvancePaid = b.TotalPrice
	b.BalanceDue = 0
	b.Status = StatusFullyPaid
}

// CanTransition returns true if a booking in status from may move to status to
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusAdvancePaid:
		return to == StatusFullyPaid || to == StatusCompleted || to == StatusCancelled
	case StatusFullyPaid:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	UserID   *int64          // Фильтр по пользователю (опционально)
	Date     *string         // Фильтр по дате YYYY-MM-DD (опционально)
	Statuses []BookingStatus // Фильтр по статусам (пустой = все)
	Limit    int             // 0 = без ограничения
	Offset   int
}
