package domain

// HourCycle fixed daily order of slot start hours.
// Hour 0 is the 12 AM - 1 AM slot, the last one of the day.
var HourCycle = []int{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 0}

// SlotsPerDay number of slots generated for every date
const SlotsPerDay = 18

// Default price tiers (rupees)
const (
	EarlyMorningPrice = 800  // 7-9
	DayPrice          = 1000 // 10-16
	PeakPrice         = 1200 // 17-21
	LateNightPrice    = 1000 // 22, 23, 0
)

// Business validation constants
const (
	MinSlotPrice        = 1
	MaxSlotPrice        = 100000
	AdvancePercent      = 30
	MaxCustomerNameLen  = 100
	MaxCustomerEmailLen = 254
	MaxCustomerPhoneLen = 20
	MaxSlotsPerBooking  = SlotsPerDay
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// UpcomingStatuses статусы бронирований, которые ещё предстоят
var UpcomingStatuses = []BookingStatus{
	StatusAdvancePaid,
	StatusFullyPaid,
}

// PastStatuses статусы завершенных или отмененных бронирований
var PastStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses статусы, занимающие слоты (используются при подсчёте занятых часов)
var ActiveStatuses = []BookingStatus{
	StatusAdvancePaid,
	StatusFullyPaid,
	StatusCompleted,
}
