package domain

// BookingDraft booking payload composed from a selection, before the store assigns an id
type BookingDraft struct {
	Date               string
	Slots              []BookingSlot
	SlotCount          int
	TotalPrice         int
	AdvancePaid        int
	BalanceDue         int
	Status             BookingStatus
	PaymentMode        PaymentMode
	PaymentReferenceID *string
}

// ChargeAmount returns the amount charged at booking time.
// Advance is 30% rounded half up in integer arithmetic, full is the whole total.
func ChargeAmount(total int, mode PaymentMode) int {
	if mode == PaymentModeFull {
		return total
	}
	return (total*AdvancePercent + 50) / 100
}

// ComposeBooking derives the booking payload from a non-empty selection.
// The caller checks IsEmpty first; an empty selection is a programming error.
func ComposeBooking(selection *Selection, mode PaymentMode, paymentReferenceID *string) BookingDraft {
	if selection == nil || selection.IsEmpty() {
		panic("domain: ComposeBooking called with empty selection")
	}

	slots := selection.Slots()
	lines := make([]BookingSlot, 0, len(slots))
	total := 0
	for _, s := range slots {
		total += s.Price
		lines = append(lines, BookingSlot{
			StartHour:      s.Hour,
			EndHour:        EndHour(s.Hour),
			TimeRangeLabel: s.TimeRange,
			Price:          s.Price,
		})
	}

	status := StatusAdvancePaid
	if mode == PaymentModeFull {
		status = StatusFullyPaid
	}
	advance := ChargeAmount(total, mode)

	var ref *string
	if paymentReferenceID != nil {
		v := *paymentReferenceID
		ref = &v
	}

	return BookingDraft{
		Date:               selection.Date(),
		Slots:              lines,
		SlotCount:          len(lines),
		TotalPrice:         total,
		AdvancePaid:        advance,
		BalanceDue:         total - advance,
		Status:             status,
		PaymentMode:        mode,
		PaymentReferenceID: ref,
	}
}

// ToBooking attaches the owner and contact details
func (d BookingDraft) ToBooking(userID int64, contact CustomerContact) *Booking {
	return &Booking{
		UserID:             userID,
		Date:               d.Date,
		Slots:              d.Slots,
		SlotCount:          d.SlotCount,
		TotalPrice:         d.TotalPrice,
		AdvancePaid:        d.AdvancePaid,
		BalanceDue:         d.BalanceDue,
		Status:             d.Status,
		PaymentMode:        d.PaymentMode,
		PaymentReferenceID: d.PaymentReferenceID,
		CustomerName:       contact.Name,
		CustomerPhone:      contact.Phone,
		CustomerEmail:      contact.Email,
	}
}
