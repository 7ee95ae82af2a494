package create_booking

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-TurfBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SessionID          string  `json:"sessionId" validate:"required"`
	Mode               string  `json:"mode" validate:"required,oneof=advance full"`
	PaymentReferenceID *string `json:"paymentReferenceId,omitempty"`
	CustomerName       *string `json:"customerName,omitempty"`
	CustomerPhone      *string `json:"customerPhone,omitempty"`
	CustomerEmail      *string `json:"customerEmail,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking       *models.BookingResponse `json:"booking"`
	ChargedAmount int                     `json:"chargedAmount"`
	ChargedLabel  string                  `json:"chargedLabel"`
	Provider      string                  `json:"provider"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:             userID,
		SessionID:          r.SessionID,
		Mode:               domain.PaymentMode(r.Mode),
		PaymentReferenceID: r.PaymentReferenceID,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		CustomerEmail:      r.CustomerEmail,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:       models.FromDomainBooking(resp.Booking),
		ChargedAmount: resp.ChargedAmount,
		ChargedLabel:  domain.FormatPrice(resp.ChargedAmount),
		Provider:      resp.Provider,
	}
}
