package payment

const (
	ProviderStripe = "stripe"
	ProviderMock   = "mock"
)

// Intent намерение оплаты, созданное до бронирования
type Intent struct {
	Provider     string
	ReferenceID  *string // nil для мок-шлюза
	ClientSecret string
	Amount       int // рубли/рупии, без копеек
	Currency     string
}
