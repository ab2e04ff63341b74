package usecase

import (
	"context"
	"log"
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase/interfaces"
)

// IReceiptUseCase renders the receipt of a paid quote on demand.
type IReceiptUseCase interface {
	GenerateForQuote(ctx context.Context, quoteID string) (entities.ReceiptDocument, error)
}

type ReceiptUseCase struct {
	quotes    interfaces.IQuoteRepository
	records   interfaces.IPaymentRecordRepository
	generator interfaces.IReceiptGenerator
	currency  string
}

var _ IReceiptUseCase = (*ReceiptUseCase)(nil)

func NewReceiptUseCase(quotes interfaces.IQuoteRepository, records interfaces.IPaymentRecordRepository, generator interfaces.IReceiptGenerator, currency string) *ReceiptUseCase {
	return &ReceiptUseCase{quotes: quotes, records: records, generator: generator, currency: strings.ToLower(strings.TrimSpace(currency))}
}

func (u *ReceiptUseCase) GenerateForQuote(ctx context.Context, quoteID string) (entities.ReceiptDocument, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.ReceiptDocument{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.ReceiptDocument{}, err
	}
	if q.ID == "" {
		return entities.ReceiptDocument{}, ErrQuoteNotFound
	}
	if !q.IsPaid() {
		return entities.ReceiptDocument{}, ErrQuoteNotPaid
	}

	data := entities.ReceiptData{
		InvoiceNumber:      q.ID,
		CustomerName:       q.CustomerName(),
		CustomerEmail:      q.Email,
		Currency:           u.currency,
		ProjectDescription: q.ProjectDescription,
		PaidAt:             q.UpdatedAt,
	}
	if q.EstimatedPrice != nil {
		data.Amount = *q.EstimatedPrice
	}

	if rec, ok := latestSucceededRecord(ctx, u.records, quoteID); ok {
		data.InvoiceNumber = rec.ID
		data.Amount = money.FromMinorUnits(rec.AmountMinor)
		data.PaymentMethod = rec.PaymentMethodLabel
		if rec.Currency != "" {
			data.Currency = rec.Currency
		}
		if rec.PaidAt != nil {
			data.PaidAt = *rec.PaidAt
		}
	}

	doc, err := u.generator.Generate(data)
	if err != nil {
		log.Printf("[receipt][usecase] render failed quote_id=%s err=%v", quoteID, err)
		return entities.ReceiptDocument{}, err
	}
	log.Printf("[receipt][usecase] rendered quote_id=%s invoice=%s bytes=%d", quoteID, data.InvoiceNumber, len(doc.Content))
	return doc, nil
}

// latestSucceededRecord picks the most recently paid succeeded record of a
// quote.
func latestSucceededRecord(ctx context.Context, records interfaces.IPaymentRecordRepository, quoteID string) (entities.PaymentRecord, bool) {
	if records == nil {
		return entities.PaymentRecord{}, false
	}
	list, err := records.ListByQuoteID(ctx, quoteID)
	if err != nil {
		log.Printf("[payment][records] lookup failed quote_id=%s err=%v", quoteID, err)
		return entities.PaymentRecord{}, false
	}
	var latest entities.PaymentRecord
	found := false
	for _, rec := range list {
		if !rec.Succeeded() || rec.PaidAt == nil {
			continue
		}
		if !found || rec.PaidAt.After(*latest.PaidAt) {
			latest = rec
			found = true
		}
	}
	return latest, found
}
