package domain

import "time"

// PriceOverride admin-maintained price for an hour, applied to every date
type PriceOverride struct {
	Hour      int
	Price     int
	UpdatedAt time.Time
}

// DefaultPrice returns the tiered default price for an hour of the cycle
func DefaultPrice(hour int) int {
	switch {
	case hour >= 7 && hour <= 9:
		return EarlyMorningPrice
	case hour >= 10 && hour <= 16:
		return DayPrice
	case hour >= 17 && hour <= 21:
		return PeakPrice
	default:
		return LateNightPrice
	}
}

// PriceTable default prices overlaid with overrides keyed by hour
type PriceTable struct {
	overrides map[int]int
}

// NewPriceTable builds a table from overrides; overrides for hours outside the cycle are ignored
func NewPriceTable(overrides []PriceOverride) PriceTable {
	m := make(map[int]int, len(overrides))
	for _, o := range overrides {
		if IsValidHour(o.Hour) {
			m[o.Hour] = o.Price
		}
	}
	return PriceTable{overrides: m}
}

// Price returns the effective price for an hour
func (t PriceTable) Price(hour int) int {
	if p, ok := t.overrides[hour]; ok {
		return p
	}
	return DefaultPrice(hour)
}

// IsOverridden reports whether the hour has an admin override
func (t PriceTable) IsOverridden(hour int) bool {
	_, ok := t.overrides[hour]
	return ok
}

// IsValidPrice reports whether price is within admin bounds
func IsValidPrice(price int) bool {
	return price >= MinSlotPrice && price <= MaxSlotPrice
}
