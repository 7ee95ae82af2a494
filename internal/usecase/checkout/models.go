package checkout

import "github.com/m04kA/SMC-TurfBookingService/internal/domain"

// Request модель запроса на оформление оплаты
type Request struct {
	SessionID string             // сессия выбора слотов
	Mode      domain.PaymentMode // advance | full
}

// Response сумма к оплате и данные платежа
type Response struct {
	SessionID    string
	Date         string
	Slots        []domain.Slot
	Mode         domain.PaymentMode
	TotalPrice   int
	ChargeAmount int // списывается сейчас
	BalanceDue   int // оплачивается на месте

	Provider     string
	ReferenceID  *string // nil для мок-шлюза
	ClientSecret string
	Currency     string
}
