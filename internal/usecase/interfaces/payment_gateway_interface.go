package interfaces

import (
	"context"

	"buildquote/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (Stripe, Mercado Pago).
//
// The gateway is the source of truth for intent status. Implementations must
// bound every call with a timeout and must not retry CreatePaymentIntent on
// their own unless an idempotency key is sent along.
type IPaymentGateway interface {
	Name() string
	CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (entities.PaymentIntent, error)
}
