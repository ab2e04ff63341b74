package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const maxMetadataValueRunes = 500

var intentKeyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:buildquote:payment-intent"))

func (u *PaymentUseCase) CreateIntent(ctx context.Context, in CreateIntentInput) (CreateIntentResult, error) {
	quoteID := strings.TrimSpace(in.QuoteID)
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	log.Printf("[payment][intent] create start quote_id=%q asserted=%s", quoteID, in.Amount.String())

	if quoteID == "" || email == "" || name == "" {
		log.Printf("[payment][intent] invalid request quote_id=%q", quoteID)
		return CreateIntentResult{}, ErrInvalidPaymentRequest
	}
	if !in.Amount.IsPositive() {
		log.Printf("[payment][intent] invalid amount quote_id=%s amount=%s", quoteID, in.Amount.String())
		return CreateIntentResult{}, ErrInvalidPaymentRequest
	}
	if u.gateway == nil {
		log.Printf("[payment][intent] gateway not configured quote_id=%s", quoteID)
		return CreateIntentResult{}, errors.New("payment gateway not configured")
	}

	q, err := u.gate.Verify(ctx, quoteID, in.Amount)
	if err != nil {
		return CreateIntentResult{}, err
	}
	if q.IsPaid() {
		log.Printf("[payment][intent] quote already paid quote_id=%s", quoteID)
		return CreateIntentResult{}, ErrQuoteAlreadyPaid
	}

	amountMinor := money.ToMinorUnits(*q.EstimatedPrice)
	req := entities.PaymentIntentRequest{
		AmountMinor:    amountMinor,
		Currency:       u.currency,
		ReceiptEmail:   email,
		Description:    fmt.Sprintf("Quote %s", quoteID),
		IdempotencyKey: intentIdempotencyKey(quoteID, amountMinor, u.currency),
		Metadata: map[string]string{
			entities.MetadataQuoteID:            quoteID,
			entities.MetadataCustomerName:       name,
			entities.MetadataCustomerEmail:      email,
			entities.MetadataProjectDescription: truncateRunes(q.ProjectDescription, maxMetadataValueRunes),
		},
	}

	log.Printf("[payment][intent] calling gateway provider=%s quote_id=%s amount_minor=%d currency=%s", u.gateway.Name(), quoteID, amountMinor, u.currency)
	intent, err := u.gateway.CreatePaymentIntent(ctx, req)
	if err != nil {
		log.Printf("[payment][intent] gateway failed provider=%s quote_id=%s err=%v", u.gateway.Name(), quoteID, err)
		return CreateIntentResult{}, gatewayError(err)
	}
	log.Printf("[payment][intent] gateway success quote_id=%s intent_id=%s status=%s", quoteID, intent.ID, intent.Status)

	u.recordIntent(ctx, q.ID, amountMinor, intent)

	return CreateIntentResult{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

// recordIntent writes the audit copy of a freshly opened intent. The gateway
// already holds the intent, so a failed write is logged and not returned.
func (u *PaymentUseCase) recordIntent(ctx context.Context, quoteID string, amountMinor int64, intent entities.PaymentIntent) {
	if u.records == nil {
		return
	}
	now := u.now()
	rec := entities.PaymentRecord{
		ID:          intent.ID,
		QuoteID:     quoteID,
		Provider:    u.gateway.Name(),
		AmountMinor: amountMinor,
		Currency:    u.currency,
		Status:      intent.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := u.records.Create(context.WithoutCancel(ctx), rec); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			log.Printf("[payment][intent] intent already recorded intent_id=%s", intent.ID)
			return
		}
		log.Printf("[payment][intent] record write failed intent_id=%s quote_id=%s err=%v", intent.ID, quoteID, err)
	}
}

// intentIdempotencyKey is stable for a quote, amount and currency so a
// retried create returns the same gateway intent.
func intentIdempotencyKey(quoteID string, amountMinor int64, currency string) string {
	name := fmt.Sprintf("%s:%d:%s", quoteID, amountMinor, currency)
	return "quote-intent-" + uuid.NewSHA1(intentKeyNamespace, []byte(name)).String()
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
