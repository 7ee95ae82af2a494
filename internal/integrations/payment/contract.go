package payment

import (
	"context"

	"github.com/stripe/stripe-go/v82"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StripeAPI методы Stripe, которые использует шлюз
type StripeAPI interface {
	CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error)
	// RetrievePaymentIntent возвращает intent вместе с развернутым latest_charge
	RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	CreateRefund(ctx context.Context, params *stripe.RefundCreateParams) (*stripe.Refund, error)
}

// stripeClient адаптер *stripe.Client к StripeAPI
type stripeClient struct {
	sc *stripe.Client
}

// NewStripeAPI оборачивает клиента stripe-go
func NewStripeAPI(secretKey string) StripeAPI {
	return &stripeClient{sc: stripe.NewClient(secretKey)}
}

func (c *stripeClient) CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error) {
	return c.sc.V1PaymentIntents.Create(ctx, params)
}

func (c *stripeClient) RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentRetrieveParams{}
	params.AddExpand("latest_charge")
	return c.sc.V1PaymentIntents.Retrieve(ctx, id, params)
}

func (c *stripeClient) CreateRefund(ctx context.Context, params *stripe.RefundCreateParams) (*stripe.Refund, error) {
	return c.sc.V1Refunds.Create(ctx, params)
}
