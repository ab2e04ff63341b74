package usecase

import (
	"context"
	"log"
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
)

func (u *PaymentUseCase) ConfirmPayment(ctx context.Context, paymentIntentID, quoteID string) (ConfirmPaymentResult, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	quoteID = strings.TrimSpace(quoteID)
	log.Printf("[payment][confirm] start quote_id=%q intent_id=%q", quoteID, paymentIntentID)

	if paymentIntentID == "" || quoteID == "" {
		return ConfirmPaymentResult{}, ErrInvalidConfirmRequest
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		log.Printf("[payment][confirm] failed loading quote quote_id=%s err=%v", quoteID, err)
		return ConfirmPaymentResult{}, err
	}
	if q.ID == "" {
		return ConfirmPaymentResult{}, ErrQuoteNotFound
	}
	if q.IsPaid() {
		log.Printf("[payment][confirm] quote already paid, skipping gateway quote_id=%s intent_id=%s", quoteID, paymentIntentID)
		return u.alreadyPaidResult(ctx, q, paymentIntentID), nil
	}
	if u.gateway == nil {
		return ConfirmPaymentResult{}, ErrGateway
	}

	intent, err := u.gateway.RetrievePaymentIntent(ctx, paymentIntentID)
	if err != nil {
		log.Printf("[payment][confirm] gateway retrieve failed intent_id=%s err=%v", paymentIntentID, err)
		return ConfirmPaymentResult{}, gatewayError(err)
	}
	if intent.QuoteID() != quoteID {
		log.Printf("[payment][confirm] intent belongs to another quote intent_id=%s quote_id=%s intent_quote_id=%q", paymentIntentID, quoteID, intent.QuoteID())
		return ConfirmPaymentResult{}, ErrIntentQuoteMismatch
	}
	if intent.Status != entities.IntentStatusSucceeded {
		log.Printf("[payment][confirm] payment not completed intent_id=%s status=%s", paymentIntentID, intent.Status)
		return ConfirmPaymentResult{}, &PaymentNotCompletedError{IntentID: paymentIntentID, Status: intent.Status}
	}
	if err := u.verifyCapturedAmount(ctx, q, intent); err != nil {
		return ConfirmPaymentResult{}, err
	}

	now := u.now()
	currency := intent.Currency
	if currency == "" {
		currency = u.currency
	}
	rec := entities.PaymentRecord{
		ID:                 intent.ID,
		QuoteID:            quoteID,
		Provider:           u.gateway.Name(),
		AmountMinor:        intent.AmountMinor,
		Currency:           currency,
		Status:             intent.Status,
		PaymentMethodLabel: intent.PaymentMethodLabel,
		PaidAt:             &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if u.records != nil {
		if existing, err := u.records.GetByID(ctx, intent.ID); err == nil && existing.ID != "" {
			rec.CreatedAt = existing.CreatedAt
		}
	}

	if err := markQuotePaid(ctx, u.quotes, quoteID, now); err != nil {
		return ConfirmPaymentResult{}, u.reconciliationFailed(ctx, rec, err)
	}

	rec.ReconciliationState = entities.ReconciliationStateReconciled
	u.saveRecord(ctx, rec)
	log.Printf("[payment][confirm] quote marked paid quote_id=%s intent_id=%s amount_minor=%d", quoteID, intent.ID, intent.AmountMinor)

	return ConfirmPaymentResult{
		Success:         true,
		PaymentIntentID: intent.ID,
		QuoteID:         quoteID,
		Amount:          money.FromMinorUnits(intent.AmountMinor),
		Currency:        currency,
		PaidAt:          now,
		PaymentMethod:   intent.PaymentMethodLabel,
	}, nil
}

// alreadyPaidResult answers a repeated confirmation from local state only. The
// intent id echoed back is always one stored as succeeded for this quote.
func (u *PaymentUseCase) alreadyPaidResult(ctx context.Context, q entities.QuoteRequest, paymentIntentID string) ConfirmPaymentResult {
	res := ConfirmPaymentResult{
		Success:     true,
		QuoteID:     q.ID,
		Currency:    u.currency,
		PaidAt:      q.UpdatedAt,
		AlreadyPaid: true,
	}
	if q.EstimatedPrice != nil {
		res.Amount = *q.EstimatedPrice
	}
	if u.records == nil {
		return res
	}

	rec, err := u.records.GetByID(ctx, paymentIntentID)
	if err != nil || rec.ID == "" || rec.QuoteID != q.ID || !rec.Succeeded() {
		var ok bool
		if rec, ok = latestSucceededRecord(ctx, u.records, q.ID); !ok {
			log.Printf("[payment][confirm] no succeeded record for paid quote quote_id=%s", q.ID)
			return res
		}
	}
	res.PaymentIntentID = rec.ID
	res.Amount = money.FromMinorUnits(rec.AmountMinor)
	if rec.Currency != "" {
		res.Currency = rec.Currency
	}
	if rec.PaidAt != nil {
		res.PaidAt = *rec.PaidAt
	}
	res.PaymentMethod = rec.PaymentMethodLabel
	return res
}

// verifyCapturedAmount rejects a succeeded intent whose amount or currency no
// longer matches the quote, e.g. one opened before staff repriced it. The quote
// is left untouched; money has moved, so operators are alerted.
func (u *PaymentUseCase) verifyCapturedAmount(ctx context.Context, q entities.QuoteRequest, intent entities.PaymentIntent) error {
	var expectedMinor int64
	priced := q.EstimatedPrice != nil
	if priced {
		expectedMinor = money.ToMinorUnits(*q.EstimatedPrice)
	}
	sameCurrency := intent.Currency == "" || strings.EqualFold(intent.Currency, u.currency)
	if priced && intent.AmountMinor == expectedMinor && sameCurrency {
		return nil
	}

	ctx = context.WithoutCancel(ctx)
	log.Printf("[payment][confirm][ALERT] captured amount mismatch quote_id=%s intent_id=%s amount_minor=%d currency=%s expected_minor=%d expected_currency=%s priced=%t",
		q.ID, intent.ID, intent.AmountMinor, intent.Currency, expectedMinor, u.currency, priced)
	if u.alerter != nil {
		incident := entities.ReconciliationIncident{
			QuoteID:     q.ID,
			IntentID:    intent.ID,
			AmountMinor: intent.AmountMinor,
			Currency:    intent.Currency,
			Err:         ErrCapturedAmountMismatch,
			OccurredAt:  u.now(),
		}
		if err := u.alerter.ReconciliationFailed(ctx, incident); err != nil {
			log.Printf("[payment][confirm][ALERT] alert delivery failed intent_id=%s err=%v", intent.ID, err)
		}
	}
	return ErrCapturedAmountMismatch
}

// reconciliationFailed handles money captured at the gateway that could not be
// recorded on the quote. The record goes to the outbox for the retry job and
// operators are alerted.
func (u *PaymentUseCase) reconciliationFailed(ctx context.Context, rec entities.PaymentRecord, cause error) error {
	ctx = context.WithoutCancel(ctx)
	log.Printf("[payment][confirm][ALERT] reconciliation failed quote_id=%s intent_id=%s amount_minor=%d currency=%s err=%v",
		rec.QuoteID, rec.ID, rec.AmountMinor, rec.Currency, cause)

	rec.ReconciliationState = entities.ReconciliationStatePending
	rec.ReconciliationAttempts = 1
	rec.LastError = cause.Error()
	u.saveRecord(ctx, rec)

	if u.alerter != nil {
		incident := entities.ReconciliationIncident{
			QuoteID:     rec.QuoteID,
			IntentID:    rec.ID,
			AmountMinor: rec.AmountMinor,
			Currency:    rec.Currency,
			Attempts:    rec.ReconciliationAttempts,
			Err:         cause,
			OccurredAt:  rec.UpdatedAt,
		}
		if err := u.alerter.ReconciliationFailed(ctx, incident); err != nil {
			log.Printf("[payment][confirm][ALERT] alert delivery failed intent_id=%s err=%v", rec.ID, err)
		}
	}

	return &ReconciliationFailedError{
		QuoteID:     rec.QuoteID,
		IntentID:    rec.ID,
		AmountMinor: rec.AmountMinor,
		Err:         cause,
	}
}

func (u *PaymentUseCase) saveRecord(ctx context.Context, rec entities.PaymentRecord) {
	if u.records == nil {
		return
	}
	if _, err := u.records.Save(context.WithoutCancel(ctx), rec); err != nil {
		log.Printf("[payment][confirm] record save failed intent_id=%s state=%s err=%v", rec.ID, rec.ReconciliationState, err)
	}
}

// ReceiptDataFromConfirmation builds receipt input for a confirmed payment.
func ReceiptDataFromConfirmation(res ConfirmPaymentResult, q entities.QuoteRequest) entities.ReceiptData {
	return entities.ReceiptData{
		InvoiceNumber:      res.PaymentIntentID,
		CustomerName:       q.CustomerName(),
		CustomerEmail:      q.Email,
		Amount:             res.Amount,
		Currency:           res.Currency,
		ProjectDescription: q.ProjectDescription,
		PaidAt:             res.PaidAt,
		PaymentMethod:      res.PaymentMethod,
	}
}
