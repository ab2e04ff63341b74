package payments

import (
	"context"
	"errors"
	"log"
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

type StripeGateway struct {
	api *client.API
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

// NewStripeGateway builds a gateway on the default Stripe backends. Pass
// backends to point the client somewhere else (tests, stripe-mock).
func NewStripeGateway(secretKey string, backends *stripe.Backends) (*StripeGateway, error) {
	if strings.TrimSpace(secretKey) == "" {
		log.Printf("[payment][gateway] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	log.Printf("[payment][gateway] Stripe client initialized")
	return &StripeGateway{api: client.New(secretKey, backends)}, nil
}

func (g *StripeGateway) Name() string {
	return "stripe"
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		log.Printf("[payment][gateway] stripe create failed amount=%d currency=%s err=%v", req.AmountMinor, req.Currency, err)
		return entities.PaymentIntent{}, err
	}
	log.Printf("[payment][gateway] stripe create success intent_id=%s status=%s", pi.ID, pi.Status)
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) RetrievePaymentIntent(ctx context.Context, id string) (entities.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("payment_method")

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		log.Printf("[payment][gateway] stripe retrieve failed intent_id=%s err=%v", id, err)
		return entities.PaymentIntent{}, err
	}
	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) entities.PaymentIntent {
	return entities.PaymentIntent{
		ID:                 pi.ID,
		ClientSecret:       pi.ClientSecret,
		Status:             entities.IntentStatus(pi.Status),
		AmountMinor:        pi.Amount,
		Currency:           string(pi.Currency),
		Metadata:           pi.Metadata,
		PaymentMethodLabel: stripeMethodLabel(pi.PaymentMethod),
	}
}

// stripeMethodLabel renders "Visa ending in 4242" for cards and the method
// type otherwise.
func stripeMethodLabel(pm *stripe.PaymentMethod) string {
	if pm == nil {
		return ""
	}
	if pm.Card != nil && pm.Card.Last4 != "" {
		return cardLabel(string(pm.Card.Brand), pm.Card.Last4)
	}
	return strings.ReplaceAll(string(pm.Type), "_", " ")
}

// isStripeClientError reports 4xx responses other than rate limiting. They say
// nothing about the health of Stripe itself.
func isStripeClientError(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 && stripeErr.HTTPStatusCode != 429
}
