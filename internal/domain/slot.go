package domain

import "fmt"

// SlotStatus represents availability of a slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotClosed    SlotStatus = "closed"
)

// Slot represents one bookable 1-hour interval on a given date
type Slot struct {
	ID         string
	Hour       int
	StartLabel string
	EndLabel   string
	TimeRange  string
	Price      int
	Status     SlotStatus
	Date       string
	Group      SlotGroupName
}

// IsAvailable returns true if the slot can be selected
func (s Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// SortKey returns the chronological sort key: hour 0 sorts after 23
func (s Slot) SortKey() int {
	return ChronologicalKey(s.Hour)
}

// ChronologicalKey maps hour 0 to 24 so the midnight slot sorts last
func ChronologicalKey(hour int) int {
	if hour == 0 {
		return 24
	}
	return hour
}

// SlotID builds a stable identifier for (date, hour)
func SlotID(date string, hour int) string {
	return fmt.Sprintf("%s-%02d", date, hour)
}

// EndHour returns the hour the slot ends at
func EndHour(hour int) int {
	return (hour + 1) % 24
}

// HourLabel formats an hour on the 12-hour clock, e.g. "7:00 AM", "12:00 PM", "12:00 AM"
func HourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}

// TimeRangeLabel formats the slot interval, e.g. "11:00 PM - 12:00 AM"
func TimeRangeLabel(hour int) string {
	return HourLabel(hour) + " - " + HourLabel(EndHour(hour))
}

// IsValidHour reports whether hour belongs to the fixed cycle
func IsValidHour(hour int) bool {
	return hour == 0 || (hour >= 7 && hour <= 23)
}
