package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"
	mock_interfaces "buildquote/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type paymentMocks struct {
	quotes  *mock_interfaces.MockIQuoteRepository
	records *mock_interfaces.MockIPaymentRecordRepository
	gateway *mock_interfaces.MockIPaymentGateway
	alerter *mock_interfaces.MockIAlerter
}

func newPaymentUseCaseWithMocks(t *testing.T) (*PaymentUseCase, paymentMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		quotes:  mock_interfaces.NewMockIQuoteRepository(ctrl),
		records: mock_interfaces.NewMockIPaymentRecordRepository(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
		alerter: mock_interfaces.NewMockIAlerter(ctrl),
	}
	m.gateway.EXPECT().Name().Return("stripe").AnyTimes()
	uc := NewPaymentUseCase(m.quotes, m.records, m.gateway, m.alerter, "USD")
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func validIntentInput() CreateIntentInput {
	return CreateIntentInput{
		QuoteID: "q-1",
		Amount:  decimal.RequireFromString("500.00"),
		Email:   "ana@example.com",
		Name:    "Ana Silva",
	}
}

func TestPaymentUseCase_CreateIntent_Validations(t *testing.T) {
	cases := []struct {
		name string
		in   CreateIntentInput
	}{
		{name: "empty quote id", in: CreateIntentInput{QuoteID: " ", Amount: decimal.NewFromInt(1), Email: "a@b.c", Name: "A"}},
		{name: "empty email", in: CreateIntentInput{QuoteID: "q-1", Amount: decimal.NewFromInt(1), Name: "A"}},
		{name: "empty name", in: CreateIntentInput{QuoteID: "q-1", Amount: decimal.NewFromInt(1), Email: "a@b.c"}},
		{name: "zero amount", in: CreateIntentInput{QuoteID: "q-1", Email: "a@b.c", Name: "A"}},
		{name: "negative amount", in: CreateIntentInput{QuoteID: "q-1", Amount: decimal.NewFromInt(-5), Email: "a@b.c", Name: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewPaymentUseCase(nil, nil, nil, nil, "usd")
			_, err := uc.CreateIntent(context.Background(), tc.in)
			if !errors.Is(err, ErrInvalidPaymentRequest) {
				t.Fatalf("expected ErrInvalidPaymentRequest, got %v", err)
			}
		})
	}

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, "usd")
		_, err := uc.CreateIntent(context.Background(), validIntentInput())
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})
}

func TestPaymentUseCase_CreateIntent_GateRejections(t *testing.T) {
	t.Run("quote not found", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{}, nil)

		_, err := uc.CreateIntent(context.Background(), validIntentInput())
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("amount mismatch never reaches gateway", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{ID: "q-1", EstimatedPrice: price("500.00")}, nil)

		in := validIntentInput()
		in.Amount = decimal.NewFromInt(499)
		_, err := uc.CreateIntent(context.Background(), in)
		if !errors.Is(err, ErrAmountMismatch) {
			t.Fatalf("expected ErrAmountMismatch, got %v", err)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{
			ID:                 "q-1",
			EstimatedPrice:     price("500.00"),
			FinalPaymentStatus: entities.FinalPaymentStatusPaid,
		}, nil)

		_, err := uc.CreateIntent(context.Background(), validIntentInput())
		if !errors.Is(err, ErrQuoteAlreadyPaid) {
			t.Fatalf("expected ErrQuoteAlreadyPaid, got %v", err)
		}
	})
}

func TestPaymentUseCase_CreateIntent_Success(t *testing.T) {
	uc, m := newPaymentUseCaseWithMocks(t)
	m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{
		ID:                 "q-1",
		EstimatedPrice:     price("500.00"),
		ProjectDescription: "Deck build",
		FinalPaymentStatus: entities.FinalPaymentStatusUnpaid,
	}, nil)
	m.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
			if req.AmountMinor != 50000 || req.Currency != "usd" {
				t.Fatalf("unexpected amount: %d %s", req.AmountMinor, req.Currency)
			}
			if req.Metadata[entities.MetadataQuoteID] != "q-1" || req.Metadata[entities.MetadataCustomerName] != "Ana Silva" {
				t.Fatalf("unexpected metadata: %v", req.Metadata)
			}
			if req.ReceiptEmail != "ana@example.com" {
				t.Fatalf("unexpected receipt email: %s", req.ReceiptEmail)
			}
			if req.IdempotencyKey != intentIdempotencyKey("q-1", 50000, "usd") {
				t.Fatalf("unexpected idempotency key: %s", req.IdempotencyKey)
			}
			return entities.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret_abc", Status: entities.IntentStatusRequiresPaymentMethod, AmountMinor: 50000}, nil
		},
	)
	m.records.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
			if p.ID != "pi_123" || p.QuoteID != "q-1" || p.AmountMinor != 50000 || p.Provider != "stripe" {
				t.Fatalf("unexpected record: %+v", p)
			}
			if p.ReconciliationState != entities.ReconciliationStateNone {
				t.Fatalf("fresh intent must not be queued for reconciliation")
			}
			return p, nil
		},
	)

	res, err := uc.CreateIntent(context.Background(), validIntentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentIntentID != "pi_123" || res.ClientSecret != "pi_123_secret_abc" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPaymentUseCase_CreateIntent_GatewayAndRecordFailures(t *testing.T) {
	unpaid := entities.QuoteRequest{ID: "q-1", EstimatedPrice: price("500.00")}

	t.Run("gateway error", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(unpaid, nil)
		m.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentIntent{}, errors.New("card_declined"))

		_, err := uc.CreateIntent(context.Background(), validIntentInput())
		if !errors.Is(err, ErrGateway) || errors.Is(err, ErrGatewayTimeout) {
			t.Fatalf("expected ErrGateway, got %v", err)
		}
	})

	t.Run("gateway timeout", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(unpaid, nil)
		m.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentIntent{}, fmt.Errorf("stripe: %w", context.DeadlineExceeded))

		_, err := uc.CreateIntent(context.Background(), validIntentInput())
		if !errors.Is(err, ErrGatewayTimeout) || !errors.Is(err, ErrGateway) {
			t.Fatalf("expected ErrGatewayTimeout, got %v", err)
		}
	})

	t.Run("record already exists on retried create", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(unpaid, nil)
		m.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentIntent{ID: "pi_123", ClientSecret: "s"}, nil)
		m.records.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, interfaces.ErrAlreadyExists)

		res, err := uc.CreateIntent(context.Background(), validIntentInput())
		if err != nil || res.PaymentIntentID != "pi_123" {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}
	})

	t.Run("record write failure does not fail the request", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(unpaid, nil)
		m.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentIntent{ID: "pi_123", ClientSecret: "s"}, nil)
		m.records.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("throttled"))

		if _, err := uc.CreateIntent(context.Background(), validIntentInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestIntentIdempotencyKey(t *testing.T) {
	a := intentIdempotencyKey("q-1", 50000, "usd")
	if a != intentIdempotencyKey("q-1", 50000, "usd") {
		t.Fatalf("key must be stable")
	}
	if a == intentIdempotencyKey("q-1", 49900, "usd") || a == intentIdempotencyKey("q-2", 50000, "usd") {
		t.Fatalf("key must change with quote or amount")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("ááá", 2); got != "áá" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
	if got := truncateRunes("abc", 10); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
