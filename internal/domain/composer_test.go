package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionOf(t *testing.T, date string, hours ...int) *Selection {
	t.Helper()
	slots := catalogFor(t, date)
	sel := NewSelection(date)
	for _, h := range hours {
		require.True(t, sel.Toggle(slots[h]))
	}
	return sel
}

func TestComposeBooking_Advance(t *testing.T) {
	sel := selectionOf(t, "2025-03-10", 7, 8, 9) // 3 x 800

	draft := ComposeBooking(sel, PaymentModeAdvance, nil)

	assert.Equal(t, 2400, draft.TotalPrice)
	assert.Equal(t, 720, draft.AdvancePaid)
	assert.Equal(t, 1680, draft.BalanceDue)
	assert.Equal(t, StatusAdvancePaid, draft.Status)
	assert.Equal(t, "Advance Paid", StatusToDisplay(string(draft.Status)))
	assert.Nil(t, draft.PaymentReferenceID)
	assert.Equal(t, 3, draft.SlotCount)
	assert.Equal(t, "2025-03-10", draft.Date)
}

func TestComposeBooking_Full(t *testing.T) {
	sel := selectionOf(t, "2025-03-10", 7, 8, 9)
	ref := "pi_123"

	draft := ComposeBooking(sel, PaymentModeFull, &ref)

	assert.Equal(t, 2400, draft.AdvancePaid)
	assert.Equal(t, 0, draft.BalanceDue)
	assert.Equal(t, StatusFullyPaid, draft.Status)
	assert.Equal(t, "Fully Paid", StatusToDisplay(string(draft.Status)))
	require.NotNil(t, draft.PaymentReferenceID)
	assert.Equal(t, "pi_123", *draft.PaymentReferenceID)
}

func TestComposeBooking_LinesKeepOwnPrices(t *testing.T) {
	sel := selectionOf(t, "2025-03-10", 0, 17, 9)

	draft := ComposeBooking(sel, PaymentModeAdvance, nil)

	require.Len(t, draft.Slots, 3)
	assert.Equal(t, BookingSlot{StartHour: 9, EndHour: 10, TimeRangeLabel: "9:00 AM - 10:00 AM", Price: 800}, draft.Slots[0])
	assert.Equal(t, BookingSlot{StartHour: 17, EndHour: 18, TimeRangeLabel: "5:00 PM - 6:00 PM", Price: 1200}, draft.Slots[1])
	assert.Equal(t, BookingSlot{StartHour: 0, EndHour: 1, TimeRangeLabel: "12:00 AM - 1:00 AM", Price: 1000}, draft.Slots[2])
	assert.Equal(t, 3000, draft.TotalPrice)
}

func TestComposeBooking_AdvanceMatchesCharge(t *testing.T) {
	for _, hours := range [][]int{{7}, {10, 11}, {17, 18, 19}, {22, 23, 0, 7}} {
		sel := selectionOf(t, "2025-03-10", hours...)
		draft := ComposeBooking(sel, PaymentModeAdvance, nil)
		assert.Equal(t, ChargeAmount(sel.TotalPrice(), PaymentModeAdvance), draft.AdvancePaid)
		assert.Equal(t, draft.TotalPrice, draft.AdvancePaid+draft.BalanceDue)
	}
}

func TestComposeBooking_PanicsOnEmptySelection(t *testing.T) {
	assert.Panics(t, func() {
		ComposeBooking(NewSelection("2025-03-10"), PaymentModeAdvance, nil)
	})
}

func TestChargeAmount_Rounding(t *testing.T) {
	tests := []struct {
		total int
		mode  PaymentMode
		want  int
	}{
		{2400, PaymentModeAdvance, 720},
		{1001, PaymentModeAdvance, 300},
		{1005, PaymentModeAdvance, 302}, // 301.5 -> 302
		{800, PaymentModeAdvance, 240},
		{0, PaymentModeAdvance, 0},
		{2400, PaymentModeFull, 2400},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChargeAmount(tt.total, tt.mode), "total=%d mode=%s", tt.total, tt.mode)
	}
}

func TestBookingDraft_ToBooking(t *testing.T) {
	name := "Arjun"
	draft := ComposeBooking(selectionOf(t, "2025-03-10", 20), PaymentModeAdvance, nil)

	b := draft.ToBooking(42, CustomerContact{Name: &name})

	assert.Equal(t, int64(42), b.UserID)
	assert.Equal(t, &name, b.CustomerName)
	assert.Nil(t, b.CustomerEmail)
	assert.Equal(t, []int{20}, b.Hours())
}
