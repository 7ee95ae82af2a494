package checkout

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/usecase/checkout"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Mode      string `json:"mode" validate:"required,oneof=advance full"`
}

// SlotResponse строка слота в сводке оплаты
type SlotResponse struct {
	ID        string `json:"id"`
	Hour      int    `json:"hour"`
	TimeRange string `json:"timeRange"`
	Price     int    `json:"price"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	SessionID         string         `json:"sessionId"`
	Date              string         `json:"date"`
	Slots             []SlotResponse `json:"slots"`
	Mode              string         `json:"mode"`
	TotalPrice        int            `json:"totalPrice"`
	TotalPriceLabel   string         `json:"totalPriceLabel"`
	ChargeAmount      int            `json:"chargeAmount"`
	ChargeAmountLabel string         `json:"chargeAmountLabel"`
	BalanceDue        int            `json:"balanceDue"`
	BalanceDueLabel   string         `json:"balanceDueLabel"`
	Provider          string         `json:"provider"`
	ReferenceID       *string        `json:"referenceId"`
	ClientSecret      string         `json:"clientSecret,omitempty"`
	Currency          string         `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest() *checkout.Request {
	return &checkout.Request{
		SessionID: r.SessionID,
		Mode:      domain.PaymentMode(r.Mode),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkout.Response) *CheckoutResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{ID: s.ID, Hour: s.Hour, TimeRange: s.TimeRange, Price: s.Price})
	}

	return &CheckoutResponse{
		SessionID:         resp.SessionID,
		Date:              resp.Date,
		Slots:             slots,
		Mode:              string(resp.Mode),
		TotalPrice:        resp.TotalPrice,
		TotalPriceLabel:   domain.FormatPrice(resp.TotalPrice),
		ChargeAmount:      resp.ChargeAmount,
		ChargeAmountLabel: domain.FormatPrice(resp.ChargeAmount),
		BalanceDue:        resp.BalanceDue,
		BalanceDueLabel:   domain.FormatPrice(resp.BalanceDue),
		Provider:          resp.Provider,
		ReferenceID:       resp.ReferenceID,
		ClientSecret:      resp.ClientSecret,
		Currency:          resp.Currency,
	}
}
