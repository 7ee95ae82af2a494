package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
)

// minorUnits количество минимальных единиц в рупии (paise)
const minorUnits = 100

// StripeGateway шлюз на Stripe PaymentIntents
type StripeGateway struct {
	api      StripeAPI
	currency string
	log      Logger
}

// NewStripeGateway создает шлюз; currency в нижнем регистре, например "inr"
func NewStripeGateway(api StripeAPI, currency string, log Logger) *StripeGateway {
	if currency == "" {
		currency = string(stripe.CurrencyINR)
	}
	return &StripeGateway{api: api, currency: strings.ToLower(currency), log: log}
}

func (g *StripeGateway) Provider() string {
	return ProviderStripe
}

// CreateIntent создает PaymentIntent ровно на amount
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int, description string, metadata map[string]string) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentCreateParams{
		Amount:      stripe.Int64(int64(amount) * minorUnits),
		Currency:    stripe.String(g.currency),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.CreatePaymentIntent(ctx, params)
	if err != nil {
		g.log.Error("StripeGateway: failed to create payment intent amount=%d: %v", amount, err)
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrGateway, err)
	}

	g.log.Info("StripeGateway: created payment intent id=%s amount=%d", pi.ID, amount)

	id := pi.ID
	return &Intent{
		Provider:     ProviderStripe,
		ReferenceID:  &id,
		ClientSecret: pi.ClientSecret,
		Amount:       amount,
		Currency:     g.currency,
	}, nil
}

// MetadataSessionID ключ метаданных intent, в котором checkout сохраняет сессию выбора
const MetadataSessionID = "session_id"

// Verify проверяет, что PaymentIntent оплачен, не возвращен, создан для сессии sessionID
// и сумма совпадает с amount
func (g *StripeGateway) Verify(ctx context.Context, referenceID *string, amount int, sessionID string) error {
	if referenceID == nil || *referenceID == "" {
		return ErrReferenceRequired
	}

	pi, err := g.api.RetrievePaymentIntent(ctx, *referenceID)
	if err != nil {
		g.log.Error("StripeGateway: failed to retrieve payment intent id=%s: %v", *referenceID, err)
		return fmt.Errorf("%w: retrieve payment intent: %v", ErrGateway, err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		g.log.Warn("StripeGateway: payment intent id=%s has status=%s", *referenceID, pi.Status)
		return fmt.Errorf("%w: status %s", ErrNotVerified, pi.Status)
	}

	if charge := pi.LatestCharge; charge != nil && (charge.Refunded || charge.AmountRefunded > 0) {
		g.log.Warn("StripeGateway: payment intent id=%s is refunded amount_refunded=%d", *referenceID, charge.AmountRefunded)
		return fmt.Errorf("%w: refunded %d", ErrNotVerified, charge.AmountRefunded)
	}

	if got := pi.Metadata[MetadataSessionID]; got != sessionID {
		g.log.Warn("StripeGateway: payment intent id=%s belongs to session=%q, expected=%q", *referenceID, got, sessionID)
		return fmt.Errorf("%w: session mismatch", ErrNotVerified)
	}

	expected := int64(amount) * minorUnits
	if pi.AmountReceived != expected || !strings.EqualFold(string(pi.Currency), g.currency) {
		g.log.Warn("StripeGateway: payment intent id=%s received=%d %s, expected=%d %s",
			*referenceID, pi.AmountReceived, pi.Currency, expected, g.currency)
		return fmt.Errorf("%w: received %d, expected %d", ErrAmountMismatch, pi.AmountReceived, expected)
	}

	return nil
}

// Refund возвращает платеж полностью
func (g *StripeGateway) Refund(ctx context.Context, referenceID string) error {
	_, err := g.api.CreateRefund(ctx, &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(referenceID),
	})
	if err != nil {
		g.log.Error("StripeGateway: failed to refund payment intent id=%s: %v", referenceID, err)
		return fmt.Errorf("%w: create refund: %v", ErrGateway, err)
	}

	g.log.Info("StripeGateway: refunded payment intent id=%s", referenceID)
	return nil
}
