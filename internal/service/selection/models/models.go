package models

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// StartRequest запрос на открытие сессии выбора
type StartRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// SetDateRequest запрос на смену даты
type SetDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ToggleRequest запрос на выбор/снятие слота
type ToggleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Hour *int   `json:"hour" validate:"required,min=0,max=23"`
}

// SlotResponse слот в выборе
type SlotResponse struct {
	ID         string `json:"id"`
	Hour       int    `json:"hour"`
	StartLabel string `json:"startLabel"`
	EndLabel   string `json:"endLabel"`
	TimeRange  string `json:"timeRange"`
	Price      int    `json:"price"`
	Group      string `json:"group"`
}

// SelectionResponse текущее состояние выбора
type SelectionResponse struct {
	SessionID       string         `json:"sessionId"`
	Date            string         `json:"date"`
	Slots           []SlotResponse `json:"slots"`
	SlotCount       int            `json:"slotCount"`
	TotalPrice      int            `json:"totalPrice"`
	TotalPriceLabel string         `json:"totalPriceLabel"`
	Changed         *bool          `json:"changed,omitempty"` // только для toggle
}

// FromDomainSelection конвертирует выбор в DTO
func FromDomainSelection(sessionID string, sel *domain.Selection) *SelectionResponse {
	slots := sel.Slots()
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromDomainSlot(s))
	}

	total := sel.TotalPrice()
	return &SelectionResponse{
		SessionID:       sessionID,
		Date:            sel.Date(),
		Slots:           out,
		SlotCount:       len(out),
		TotalPrice:      total,
		TotalPriceLabel: domain.FormatPrice(total),
	}
}

// FromDomainSlot конвертирует слот в DTO
func FromDomainSlot(s domain.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		Hour:       s.Hour,
		StartLabel: s.StartLabel,
		EndLabel:   s.EndLabel,
		TimeRange:  s.TimeRange,
		Price:      s.Price,
		Group:      string(s.Group),
	}
}
