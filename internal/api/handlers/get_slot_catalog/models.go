package get_slot_catalog

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	getSlotCatalog "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_slot_catalog"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID         string `json:"id"`
	Hour       int    `json:"hour"`
	StartLabel string `json:"startLabel"`
	EndLabel   string `json:"endLabel"`
	TimeRange  string `json:"timeRange"`
	Price      int    `json:"price"`
	PriceLabel string `json:"priceLabel"`
	Status     string `json:"status"`
	Group      string `json:"group"`
}

// GroupResponse группа слотов (Morning, Afternoon, Evening, Night)
type GroupResponse struct {
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

// CatalogResponse HTTP ответ каталога
type CatalogResponse struct {
	Date                  string          `json:"date"`
	Slots                 []SlotResponse  `json:"slots"`
	Groups                []GroupResponse `json:"groups"`
	AvailableCount        int             `json:"availableCount"`
	AvailabilityConfirmed bool            `json:"availabilityConfirmed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotCatalog.Response) *CatalogResponse {
	groups := make([]GroupResponse, 0, len(resp.Groups))
	for _, g := range resp.Groups {
		groups = append(groups, GroupResponse{Name: string(g.Name), Slots: fromSlots(g.Slots)})
	}

	return &CatalogResponse{
		Date:                  resp.Date,
		Slots:                 fromSlots(resp.Slots),
		Groups:                groups,
		AvailableCount:        resp.AvailableCount,
		AvailabilityConfirmed: resp.AvailabilityConfirmed,
	}
}

func fromSlots(slots []domain.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			ID:         s.ID,
			Hour:       s.Hour,
			StartLabel: s.StartLabel,
			EndLabel:   s.EndLabel,
			TimeRange:  s.TimeRange,
			Price:      s.Price,
			PriceLabel: domain.FormatPrice(s.Price),
			Status:     string(s.Status),
			Group:      string(s.Group),
		})
	}
	return out
}
