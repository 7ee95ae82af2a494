package create_booking

import "github.com/m04kA/SMC-TurfBookingService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	UserID             int64              // ID пользователя
	SessionID          string             // Сессия выбора слотов
	Mode               domain.PaymentMode // advance | full
	PaymentReferenceID *string            // ID платежа в шлюзе (nil для мок-шлюза)

	CustomerName  *string // Контактные данные (опционально)
	CustomerPhone *string
	CustomerEmail *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking       *domain.Booking
	ChargedAmount int    // Сумма, подтвержденная шлюзом
	Provider      string // Платежный шлюз
}
