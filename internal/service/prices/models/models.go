package models

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// SetPriceRequest запрос на установку цены часа
type SetPriceRequest struct {
	Price int `json:"price" validate:"required,min=1,max=100000"`
}

// PriceRowResponse строка таблицы цен
type PriceRowResponse struct {
	Hour         int    `json:"hour"`
	TimeRange    string `json:"timeRange"`
	Group        string `json:"group"`
	Price        int    `json:"price"`
	PriceLabel   string `json:"priceLabel"`
	DefaultPrice int    `json:"defaultPrice"`
	Overridden   bool   `json:"overridden"`
}

// PriceTableResponse полная таблица цен в порядке показа
type PriceTableResponse struct {
	Prices []PriceRowResponse `json:"prices"`
}

// ResetAllResponse результат сброса всех цен
type ResetAllResponse struct {
	Removed int64 `json:"removed"`
}

// FromPriceTable строит ответ по всем часам цикла
func FromPriceTable(table domain.PriceTable) *PriceTableResponse {
	rows := make([]PriceRowResponse, 0, len(domain.HourCycle))
	for _, hour := range domain.HourCycle {
		rows = append(rows, FromHour(table, hour))
	}
	return &PriceTableResponse{Prices: rows}
}

// FromHour строка таблицы для одного часа
func FromHour(table domain.PriceTable, hour int) PriceRowResponse {
	price := table.Price(hour)
	return PriceRowResponse{
		Hour:         hour,
		TimeRange:    domain.TimeRangeLabel(hour),
		Group:        string(domain.GroupForHour(hour)),
		Price:        price,
		PriceLabel:   domain.FormatPrice(price),
		DefaultPrice: domain.DefaultPrice(hour),
		Overridden:   table.IsOverridden(hour),
	}
}
