package payment

import "context"

// MockGateway шлюз без реального списания: идентификатор платежа не выдается,
// бронирование сохраняется с пустой ссылкой на платеж
type MockGateway struct {
	log Logger
}

func NewMockGateway(log Logger) *MockGateway {
	return &MockGateway{log: log}
}

func (g *MockGateway) Provider() string {
	return ProviderMock
}

func (g *MockGateway) CreateIntent(_ context.Context, amount int, _ string, _ map[string]string) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	g.log.Info("MockGateway: accepted intent amount=%d", amount)
	return &Intent{Provider: ProviderMock, Amount: amount}, nil
}

// Verify всегда успешен: мок-шлюз не проверяет оплату
func (g *MockGateway) Verify(_ context.Context, _ *string, _ int, _ string) error {
	return nil
}

func (g *MockGateway) Refund(_ context.Context, referenceID string) error {
	g.log.Warn("MockGateway: refund requested for reference=%q, nothing to refund", referenceID)
	return nil
}
