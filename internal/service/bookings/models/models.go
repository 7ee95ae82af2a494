package models

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// Scope выборки бронирований пользователя
const (
	ScopeAll      = "all"
	ScopeUpcoming = "upcoming"
	ScopePast     = "past"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      int64  `json:"userId"`
	RequesterID int64  `json:"-"`
	Scope       string `json:"scope,omitempty"` // all | upcoming | past
}

// ListBookingsRequest запрос администратора на список бронирований
type ListBookingsRequest struct {
	Date   *string `json:"date,omitempty"`   // YYYY-MM-DD
	Status *string `json:"status,omitempty"` // в форме хранения или отображения
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response модели

// BookingSlotResponse строка слота в бронировании
type BookingSlotResponse struct {
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
	TimeRange string `json:"timeRange"`
	Price     int    `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64                 `json:"id"`
	UserID             int64                 `json:"userId"`
	Date               string                `json:"date"`
	Slots              []BookingSlotResponse `json:"slots"`
	SlotCount          int                   `json:"slotCount"`
	TotalPrice         int                   `json:"totalPrice"`
	AdvancePaid        int                   `json:"advancePaid"`
	BalanceDue         int                   `json:"balanceDue"`
	Status             string                `json:"status"`
	StatusLabel        string                `json:"statusLabel"`
	PaymentMode        string                `json:"paymentMode"`
	PaymentReferenceID *string               `json:"paymentReferenceId"`
	CustomerName       *string               `json:"customerName,omitempty"`
	CustomerPhone      *string               `json:"customerPhone,omitempty"`
	CustomerEmail      *string               `json:"customerEmail,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse сводка для администратора
type StatsResponse struct {
	Date                  *string `json:"date,omitempty"`
	TotalBookings         int     `json:"totalBookings"`
	ActiveBookings        int     `json:"activeBookings"`
	CancelledBookings     int     `json:"cancelledBookings"`
	BookedSlots           int     `json:"bookedSlots"`
	RevenueCollected      int     `json:"revenueCollected"`
	RevenueCollectedLabel string  `json:"revenueCollectedLabel"`
	PendingBalance        int     `json:"pendingBalance"`
	PendingBalanceLabel   string  `json:"pendingBalanceLabel"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	slots := make([]BookingSlotResponse, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = BookingSlotResponse{
			StartHour: s.StartHour,
			EndHour:   s.EndHour,
			TimeRange: s.TimeRangeLabel,
			Price:     s.Price,
		}
	}

	return &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		Date:               b.Date,
		Slots:              slots,
		SlotCount:          b.SlotCount,
		TotalPrice:         b.TotalPrice,
		AdvancePaid:        b.AdvancePaid,
		BalanceDue:         b.BalanceDue,
		Status:             string(b.Status),
		StatusLabel:        domain.StatusToDisplay(string(b.Status)),
		PaymentMode:        string(b.PaymentMode),
		PaymentReferenceID: b.PaymentReferenceID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		CustomerEmail:      b.CustomerEmail,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует сводку
func FromDomainStats(date *string, st domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		Date:                  date,
		TotalBookings:         st.TotalBookings,
		ActiveBookings:        st.ActiveBookings,
		CancelledBookings:     st.CancelledBookings,
		BookedSlots:           st.BookedSlots,
		RevenueCollected:      st.RevenueCollected,
		RevenueCollectedLabel: domain.FormatPrice(st.RevenueCollected),
		PendingBalance:        st.PendingBalance,
		PendingBalanceLabel:   domain.FormatPrice(st.PendingBalance),
	}
}

// ToDomainBookingStatus принимает статус в форме хранения ("fully_paid")
// или отображения ("Fully Paid") и проверяет, что он известен
func ToDomainBookingStatus(status string) (domain.BookingStatus, bool) {
	storage := domain.StatusToStorage(status)
	if !domain.IsKnownStatus(storage) {
		return "", false
	}
	return domain.BookingStatus(storage), true
}

// StatusesForScope статусы, соответствующие выборке пользователя
func StatusesForScope(scope string) ([]domain.BookingStatus, bool) {
	switch scope {
	case "", ScopeAll:
		return nil, true
	case ScopeUpcoming:
		return domain.UpcomingStatuses, true
	case ScopePast:
		return domain.PastStatuses, true
	default:
		return nil, false
	}
}
