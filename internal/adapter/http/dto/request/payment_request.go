package request

import (
	"strings"

	"buildquote/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreatePaymentIntentRequest is sent by the checkout page. Amount is the
// price the client displayed, in major units; it is checked against the
// stored estimate before anything is charged.
type CreatePaymentIntentRequest struct {
	QuoteID string           `json:"quoteId" binding:"required"`
	Amount  *decimal.Decimal `json:"amount" binding:"required"`
	Email   string           `json:"email" binding:"required"`
	Name    string           `json:"name" binding:"required"`
}

func (r CreatePaymentIntentRequest) ToInput() usecase.CreateIntentInput {
	in := usecase.CreateIntentInput{
		QuoteID: strings.TrimSpace(r.QuoteID),
		Email:   strings.TrimSpace(r.Email),
		Name:    strings.TrimSpace(r.Name),
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	return in
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	QuoteID         string `json:"quoteId" binding:"required"`
}
