package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// CreateIntentInput is what the checkout page asserts about a quote.
type CreateIntentInput struct {
	QuoteID string
	Amount  decimal.Decimal
	Email   string
	Name    string
}

type CreateIntentResult struct {
	ClientSecret    string
	PaymentIntentID string
}

type ConfirmPaymentResult struct {
	Success         bool
	PaymentIntentID string
	QuoteID         string
	Amount          decimal.Decimal
	Currency        string
	PaidAt          time.Time
	PaymentMethod   string
	AlreadyPaid     bool
}

// IPaymentUseCase drives the quote-to-payment workflow.
//
//   - CreateIntent: verify the asserted amount and open a gateway intent
//   - ConfirmPayment: check the intent with the gateway and mark the quote paid
//   - ListByQuoteID: audit trail of intents opened for a quote
type IPaymentUseCase interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (CreateIntentResult, error)
	ConfirmPayment(ctx context.Context, paymentIntentID, quoteID string) (ConfirmPaymentResult, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.PaymentRecord, error)
}

type PaymentUseCase struct {
	quotes   interfaces.IQuoteRepository
	records  interfaces.IPaymentRecordRepository
	gateway  interfaces.IPaymentGateway
	alerter  interfaces.IAlerter
	gate     *AmountGate
	currency string
	now      func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	quotes interfaces.IQuoteRepository,
	records interfaces.IPaymentRecordRepository,
	gateway interfaces.IPaymentGateway,
	alerter interfaces.IAlerter,
	currency string,
) *PaymentUseCase {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = "usd"
	}
	return &PaymentUseCase{
		quotes:   quotes,
		records:  records,
		gateway:  gateway,
		alerter:  alerter,
		gate:     NewAmountGate(quotes),
		currency: currency,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.PaymentRecord, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	records, err := u.records.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrPaymentRecordsNotFound
	}
	return records, nil
}

// gatewayError keeps the provider error in the chain for logs while callers
// only ever match ErrGateway or ErrGatewayTimeout.
func gatewayError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrGatewayTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrGateway, err)
}

// markQuotePaid flips the quote to paid. A failed write condition is fine when
// the quote is already paid, which makes confirmation idempotent.
func markQuotePaid(ctx context.Context, quotes interfaces.IQuoteRepository, quoteID string, now time.Time) error {
	updated, err := quotes.MarkPaid(ctx, quoteID, now)
	if err != nil {
		return err
	}
	if updated.ID != "" {
		return nil
	}
	current, err := quotes.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if current.IsPaid() {
		return nil
	}
	return ErrQuoteNotFound
}
