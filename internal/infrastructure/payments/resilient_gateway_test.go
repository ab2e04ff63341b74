package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildquote/internal/domain/entities"

	"github.com/sony/gobreaker/v2"
)

type flakyGateway struct {
	calls int
	err   error
	delay time.Duration
}

func (f *flakyGateway) Name() string { return "flaky" }

func (f *flakyGateway) CreatePaymentIntent(ctx context.Context, _ entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	return f.RetrievePaymentIntent(ctx, "pi_1")
}

func (f *flakyGateway) RetrievePaymentIntent(ctx context.Context, id string) (entities.PaymentIntent, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return entities.PaymentIntent{}, ctx.Err()
		}
	}
	if f.err != nil {
		return entities.PaymentIntent{}, f.err
	}
	return entities.PaymentIntent{ID: id, Status: entities.IntentStatusSucceeded}, nil
}

func TestResilientGateway_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &flakyGateway{err: errors.New("connection reset")}
	g := NewResilientGateway(next, ResilienceSettings{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		if _, err := g.RetrievePaymentIntent(context.Background(), "pi_1"); err == nil {
			t.Fatalf("expected error")
		}
	}
	_, err := g.RetrievePaymentIntent(context.Background(), "pi_1")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("expected 2 provider calls, got %d", next.calls)
	}
}

func TestResilientGateway_NotFoundDoesNotTrip(t *testing.T) {
	next := &flakyGateway{err: ErrMockIntentNotFound}
	g := NewResilientGateway(next, ResilienceSettings{MaxFailures: 1})

	for i := 0; i < 3; i++ {
		if _, err := g.RetrievePaymentIntent(context.Background(), "pi_1"); !errors.Is(err, ErrMockIntentNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if next.calls != 3 {
		t.Fatalf("expected 3 provider calls, got %d", next.calls)
	}
}

func TestResilientGateway_Timeout(t *testing.T) {
	next := &flakyGateway{delay: time.Second}
	g := NewResilientGateway(next, ResilienceSettings{Timeout: 20 * time.Millisecond})

	_, err := g.CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestResilientGateway_PassThrough(t *testing.T) {
	g := NewResilientGateway(&flakyGateway{}, ResilienceSettings{})

	pi, err := g.RetrievePaymentIntent(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pi.ID != "pi_123" || g.Name() != "flaky" {
		t.Fatalf("unexpected intent: %+v", pi)
	}
}
