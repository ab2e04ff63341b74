package payments

import (
	"context"
	"errors"
	"log"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultCallTimeout  = 10 * time.Second
	defaultMaxFailures  = 5
	defaultOpenInterval = 30 * time.Second
)

type ResilienceSettings struct {
	// Timeout bounds each gateway call.
	Timeout time.Duration
	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// ResilientGateway bounds every call with a timeout and stops calling a
// provider that keeps failing. Declined payments and other client errors do
// not count as failures.
type ResilientGateway struct {
	next    interfaces.IPaymentGateway
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[entities.PaymentIntent]
}

var _ interfaces.IPaymentGateway = (*ResilientGateway)(nil)

func NewResilientGateway(next interfaces.IPaymentGateway, s ResilienceSettings) *ResilientGateway {
	if s.Timeout <= 0 {
		s.Timeout = defaultCallTimeout
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = defaultMaxFailures
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = defaultOpenInterval
	}
	maxFailures := s.MaxFailures

	breaker := gobreaker.NewCircuitBreaker[entities.PaymentIntent](gobreaker.Settings{
		Name:    next.Name(),
		Timeout: s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isStripeClientError(err) || errors.Is(err, ErrInvalidMercadoPagoPaymentID) || errors.Is(err, ErrMockIntentNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[payment][gateway] breaker state change provider=%s from=%s to=%s", name, from, to)
		},
	})

	return &ResilientGateway{next: next, timeout: s.Timeout, breaker: breaker}
}

func (g *ResilientGateway) Name() string {
	return g.next.Name()
}

func (g *ResilientGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	return g.call(ctx, func(ctx context.Context) (entities.PaymentIntent, error) {
		return g.next.CreatePaymentIntent(ctx, req)
	})
}

func (g *ResilientGateway) RetrievePaymentIntent(ctx context.Context, id string) (entities.PaymentIntent, error) {
	return g.call(ctx, func(ctx context.Context) (entities.PaymentIntent, error) {
		return g.next.RetrievePaymentIntent(ctx, id)
	})
}

func (g *ResilientGateway) call(ctx context.Context, fn func(context.Context) (entities.PaymentIntent, error)) (entities.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	pi, err := g.breaker.Execute(func() (entities.PaymentIntent, error) {
		pi, err := fn(ctx)
		if err != nil && ctx.Err() != nil {
			return pi, errors.Join(ctx.Err(), err)
		}
		return pi, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Printf("[payment][gateway] breaker rejected call provider=%s state=%s", g.next.Name(), g.breaker.State())
	}
	return pi, err
}
