package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"maps"
	"sync"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"
)

var ErrMockIntentNotFound = errors.New("mock payment intent not found")

// MockGateway keeps intents in memory. It is used when PAYMENT_GATEWAY_MOCK is
// set and in local development. New intents are created with
// InitialStatus; SetStatus simulates the customer paying on the client side.
type MockGateway struct {
	InitialStatus entities.IntentStatus

	mu            sync.Mutex
	seq           int
	intents       map[string]entities.PaymentIntent
	byIdempotency map[string]string
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	log.Printf("[payment][gateway] mock mode enabled")
	return &MockGateway{
		InitialStatus: entities.IntentStatusSucceeded,
		intents:       map[string]entities.PaymentIntent{},
		byIdempotency: map[string]string{},
	}
}

func (g *MockGateway) Name() string {
	return "mock"
}

func (g *MockGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentIntent{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if req.IdempotencyKey != "" {
		if id, ok := g.byIdempotency[req.IdempotencyKey]; ok {
			log.Printf("[payment][gateway] mock create replay intent_id=%s", id)
			return g.intents[id], nil
		}
	}

	g.seq++
	id := fmt.Sprintf("pi_mock_%d", g.seq)
	pi := entities.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_mock",
		Status:       g.InitialStatus,
		AmountMinor:  req.AmountMinor,
		Currency:     req.Currency,
		Metadata:     maps.Clone(req.Metadata),
	}
	if pi.Status == entities.IntentStatusSucceeded {
		pi.PaymentMethodLabel = cardLabel("visa", "4242")
	}
	g.intents[id] = pi
	if req.IdempotencyKey != "" {
		g.byIdempotency[req.IdempotencyKey] = id
	}

	log.Printf("[payment][gateway] mock create success intent_id=%s status=%s", id, pi.Status)
	return pi, nil
}

func (g *MockGateway) RetrievePaymentIntent(ctx context.Context, id string) (entities.PaymentIntent, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentIntent{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	pi, ok := g.intents[id]
	if !ok {
		return entities.PaymentIntent{}, fmt.Errorf("%w: %s", ErrMockIntentNotFound, id)
	}
	return pi, nil
}

// SetStatus moves an existing intent to status.
func (g *MockGateway) SetStatus(id string, status entities.IntentStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	pi, ok := g.intents[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMockIntentNotFound, id)
	}
	pi.Status = status
	if status == entities.IntentStatusSucceeded && pi.PaymentMethodLabel == "" {
		pi.PaymentMethodLabel = cardLabel("visa", "4242")
	}
	g.intents[id] = pi
	return nil
}
