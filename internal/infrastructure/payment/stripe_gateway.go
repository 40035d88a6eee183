package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/pkg/logger"
)

// StripeGateway opens and inspects PaymentIntents
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a gateway against the live Stripe API
func NewStripeGateway(secretKey string) *StripeGateway {
	return NewStripeGatewayWithBackend(secretKey, nil)
}

// NewStripeGatewayWithBackend creates a gateway using backend for every call.
// A nil backend falls back to the default Stripe endpoints.
func NewStripeGatewayWithBackend(secretKey string, backend stripe.Backend) *StripeGateway {
	var backends *stripe.Backends
	if backend != nil {
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}
	return &StripeGateway{api: client.New(secretKey, backends)}
}

// CreatePaymentIntent opens a card checkout for amount minor units
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (*entities.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		logger.Error(ctx, "Failed to create payment intent", zap.Int64("amount", req.Amount), zap.Error(err))
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return toPaymentIntent(pi), nil
}

// GetPaymentIntent fetches an intent by id
func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (*entities.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		logger.Warn(ctx, "Failed to fetch payment intent", zap.String("payment_intent_id", id), zap.Error(err))
		return nil, fmt.Errorf("get payment intent: %w", err)
	}
	return toPaymentIntent(pi), nil
}

func toPaymentIntent(pi *stripe.PaymentIntent) *entities.PaymentIntent {
	return &entities.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}
