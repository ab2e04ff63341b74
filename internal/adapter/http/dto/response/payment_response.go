package response

import (
	"encoding/json"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase"

	"github.com/shopspring/decimal"
)

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func FromCreateIntentResult(r usecase.CreateIntentResult) CreatePaymentIntentResponse {
	return CreatePaymentIntentResponse{ClientSecret: r.ClientSecret, PaymentIntentID: r.PaymentIntentID}
}

// ConfirmPaymentResponse reports the amount in major units as a JSON number.
type ConfirmPaymentResponse struct {
	Success         bool        `json:"success"`
	PaymentIntentID string      `json:"paymentIntentId,omitempty"`
	Amount          json.Number `json:"amount"`
	QuoteID         string      `json:"quoteId"`
	Currency        string      `json:"currency"`
	PaidAt          *time.Time  `json:"paidAt,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	AlreadyPaid     bool        `json:"alreadyPaid"`
}

func FromConfirmPaymentResult(r usecase.ConfirmPaymentResult) ConfirmPaymentResponse {
	resp := ConfirmPaymentResponse{
		Success:         r.Success,
		PaymentIntentID: r.PaymentIntentID,
		Amount:          amountNumber(r.Amount),
		QuoteID:         r.QuoteID,
		Currency:        r.Currency,
		PaymentMethod:   r.PaymentMethod,
		AlreadyPaid:     r.AlreadyPaid,
	}
	if !r.PaidAt.IsZero() {
		paidAt := r.PaidAt
		resp.PaidAt = &paidAt
	}
	return resp
}

type PaymentRecordResponse struct {
	ID                  string      `json:"id"`
	QuoteID             string      `json:"quoteId"`
	Provider            string      `json:"provider"`
	Amount              json.Number `json:"amount"`
	AmountMinor         int64       `json:"amountMinor"`
	Currency            string      `json:"currency"`
	Status              string      `json:"status"`
	PaymentMethod       string      `json:"paymentMethod,omitempty"`
	ReconciliationState string      `json:"reconciliationState,omitempty"`
	PaidAt              *time.Time  `json:"paidAt,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

func FromPaymentRecords(records []entities.PaymentRecord) []PaymentRecordResponse {
	out := make([]PaymentRecordResponse, 0, len(records))
	for _, p := range records {
		out = append(out, PaymentRecordResponse{
			ID:                  p.ID,
			QuoteID:             p.QuoteID,
			Provider:            p.Provider,
			Amount:              amountNumber(money.FromMinorUnits(p.AmountMinor)),
			AmountMinor:         p.AmountMinor,
			Currency:            p.Currency,
			Status:              string(p.Status),
			PaymentMethod:       p.PaymentMethodLabel,
			ReconciliationState: string(p.ReconciliationState),
			PaidAt:              p.PaidAt,
			CreatedAt:           p.CreatedAt,
			UpdatedAt:           p.UpdatedAt,
		})
	}
	return out
}

func amountNumber(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
