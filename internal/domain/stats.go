package domain

// BookingStats сводка для администратора
type BookingStats struct {
	TotalBookings     int
	ActiveBookings    int
	CancelledBookings int
	BookedSlots       int
	RevenueCollected  int // сумма внесенных платежей по неотмененным бронированиям
	PendingBalance    int // остаток к оплате на месте
}

// ComputeStats aggregates bookings
func ComputeStats(bookings []*Booking) BookingStats {
	var st BookingStats
	for _, b := range bookings {
		st.TotalBookings++
		if !b.IsActive() {
			st.CancelledBookings++
			continue
		}
		st.ActiveBookings++
		st.BookedSlots += b.SlotCount
		st.RevenueCollected += b.AdvancePaid
		if b.Status == StatusAdvancePaid {
			st.PendingBalance += b.BalanceDue
		}
	}
	return st
}
