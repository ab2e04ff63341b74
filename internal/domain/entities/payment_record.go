package entities

import "time"

// ReconciliationState tracks whether a succeeded payment has been reflected on
// its quote request.
//
//   - "" (none): nothing to reconcile yet (intent created, not confirmed).
//   - pending: the gateway reports success but the quote write failed.
//   - reconciled: the quote is marked paid.
//   - manual_review: retries were exhausted; an operator has to step in.
type ReconciliationState string

const (
	ReconciliationStateNone         ReconciliationState = ""
	ReconciliationStatePending      ReconciliationState = "pending"
	ReconciliationStateReconciled   ReconciliationState = "reconciled"
	ReconciliationStateManualReview ReconciliationState = "manual_review"
)

// PaymentRecord is the local audit copy of a gateway payment intent.
//
// Storage model (DynamoDB):
//   - PK: id (gateway intent id)
//   - GSI1 (quote_id-index): quote_id
//   - GSI2 (reconciliation_state-index): reconciliation_state
//
// The gateway stays authoritative for the payment status; Status here is the
// last value this service observed.
type PaymentRecord struct {
	ID                     string              `json:"id"`
	QuoteID                string              `json:"quote_id"`
	Provider               string              `json:"provider"`
	AmountMinor            int64               `json:"amount_minor"`
	Currency               string              `json:"currency"`
	Status                 IntentStatus        `json:"status"`
	PaymentMethodLabel     string              `json:"payment_method_label,omitempty"`
	ReconciliationState    ReconciliationState `json:"reconciliation_state,omitempty"`
	ReconciliationAttempts int                 `json:"reconciliation_attempts"`
	LastError              string              `json:"last_error,omitempty"`
	PaidAt                 *time.Time          `json:"paid_at,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

func (p PaymentRecord) Succeeded() bool {
	return p.Status == IntentStatusSucceeded
}

// ReconciliationIncident describes a payment that succeeded at the gateway
// while the quote request could not be updated.
type ReconciliationIncident struct {
	QuoteID     string
	IntentID    string
	AmountMinor int64
	Currency    string
	Attempts    int
	Err         error
	OccurredAt  time.Time
}
