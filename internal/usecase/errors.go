package usecase

import (
	"errors"
	"fmt"

	"buildquote/internal/domain/entities"
)

// Validation errors: user-fixable, rejected before any side effect.
var (
	ErrInvalidQuoteID         = errors.New("invalid quote id")
	ErrInvalidQuoteInput      = errors.New("invalid quote input")
	ErrInvalidQuoteStatus     = errors.New("invalid quote status")
	ErrInvalidEstimatedPrice  = errors.New("invalid estimated price")
	ErrInvalidPaymentRequest  = errors.New("invalid payment request")
	ErrInvalidConfirmRequest  = errors.New("invalid payment confirmation request")
	ErrEmptyReview            = errors.New("review has no fields to update")
	ErrPaymentRecordsNotFound = errors.New("no payment records for quote")
)

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteAlreadyPaid    = errors.New("quote already paid")
	ErrQuoteNotPaid        = errors.New("quote not paid")
	ErrAmountMismatch      = errors.New("payment amount does not match quote estimate")
	ErrIntentQuoteMismatch = errors.New("payment intent does not belong to quote")

	// ErrCapturedAmountMismatch: the gateway took a different amount than the
	// quote's current estimate.
	ErrCapturedAmountMismatch = fmt.Errorf("%w: captured amount differs", ErrAmountMismatch)

	ErrGateway        = errors.New("payment gateway error")
	ErrGatewayTimeout = fmt.Errorf("%w: timeout", ErrGateway)

	ErrPaymentNotCompleted  = errors.New("payment not completed")
	ErrReconciliationFailed = errors.New("payment reconciliation failed")
)

// PaymentNotCompletedError reports a gateway intent that has not reached the
// terminal success state. Callers may poll and retry.
type PaymentNotCompletedError struct {
	IntentID string
	Status   entities.IntentStatus
}

func (e *PaymentNotCompletedError) Error() string {
	return fmt.Sprintf("%s: intent %s status %s", ErrPaymentNotCompleted, e.IntentID, e.Status)
}

func (e *PaymentNotCompletedError) Is(target error) bool {
	return target == ErrPaymentNotCompleted
}

// ReconciliationFailedError means the gateway captured the money but the quote
// request could not be marked paid. It is never retryable by the end user.
type ReconciliationFailedError struct {
	QuoteID     string
	IntentID    string
	AmountMinor int64
	Err         error
}

func (e *ReconciliationFailedError) Error() string {
	return fmt.Sprintf("%s: quote %s intent %s: %v", ErrReconciliationFailed, e.QuoteID, e.IntentID, e.Err)
}

func (e *ReconciliationFailedError) Is(target error) bool {
	return target == ErrReconciliationFailed
}

func (e *ReconciliationFailedError) Unwrap() error {
	return e.Err
}
