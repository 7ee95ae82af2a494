package domain

// GenerateCatalog produces the 18 slots of a date in presentation order [7..23, 0].
// Hours in bookedHours are marked booked; hours outside the cycle are ignored.
func GenerateCatalog(date string, bookedHours []int, prices PriceTable) []Slot {
	booked := make(map[int]struct{}, len(bookedHours))
	for _, h := range bookedHours {
		booked[h] = struct{}{}
	}

	slots := make([]Slot, 0, SlotsPerDay)
	for _, hour := range HourCycle {
		status := SlotAvailable
		if _, ok := booked[hour]; ok {
			status = SlotBooked
		}

		slots = append(slots, Slot{
			ID:         SlotID(date, hour),
			Hour:       hour,
			StartLabel: HourLabel(hour),
			EndLabel:   HourLabel(EndHour(hour)),
			TimeRange:  TimeRangeLabel(hour),
			Price:      prices.Price(hour),
			Status:     status,
			Date:       date,
			Group:      GroupForHour(hour),
		})
	}

	return slots
}

// FindSlot returns the slot with the given hour
func FindSlot(slots []Slot, hour int) (Slot, bool) {
	for _, s := range slots {
		if s.Hour == hour {
			return s, true
		}
	}
	return Slot{}, false
}
