package get_slot_catalog

import "github.com/m04kA/SMC-TurfBookingService/internal/domain"

// Request модель запроса каталога слотов
type Request struct {
	Date string // YYYY-MM-DD
}

// Response каталог слотов на дату
type Response struct {
	Date   string
	Slots  []domain.Slot      // 18 слотов в порядке показа [7..23, 0]
	Groups []domain.SlotGroup // Morning, Afternoon, Evening, Night

	AvailableCount int

	// AvailabilityConfirmed false, если занятые часы не удалось прочитать
	// и все слоты показаны свободными
	AvailabilityConfirmed bool
}
