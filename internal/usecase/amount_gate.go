package usecase

import (
	"context"
	"log"
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// AmountGate checks a client-asserted amount against the estimate stored on
// the quote. The stored estimate is the only amount ever charged.
type AmountGate struct {
	quotes interfaces.IQuoteRepository
}

func NewAmountGate(quotes interfaces.IQuoteRepository) *AmountGate {
	return &AmountGate{quotes: quotes}
}

// Verify returns the stored quote when asserted equals its estimated price
// exactly. A quote without an estimate never matches.
func (g *AmountGate) Verify(ctx context.Context, quoteID string, asserted decimal.Decimal) (entities.QuoteRequest, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteID
	}

	q, err := g.quotes.GetByID(ctx, quoteID)
	if err != nil {
		log.Printf("[payment][gate] failed loading quote quote_id=%s err=%v", quoteID, err)
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		log.Printf("[payment][gate] quote not found quote_id=%s", quoteID)
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	if q.EstimatedPrice == nil {
		log.Printf("[payment][gate] amount mismatch quote_id=%s asserted=%s estimated=<unset>", quoteID, asserted.String())
		return entities.QuoteRequest{}, ErrAmountMismatch
	}
	if !asserted.Equal(*q.EstimatedPrice) {
		log.Printf("[payment][gate] amount mismatch quote_id=%s asserted=%s estimated=%s", quoteID, asserted.String(), q.EstimatedPrice.String())
		return entities.QuoteRequest{}, ErrAmountMismatch
	}
	return q, nil
}
