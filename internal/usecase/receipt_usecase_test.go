package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildquote/internal/domain/entities"
	mock_interfaces "buildquote/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestReceiptUseCase_GenerateForQuote(t *testing.T) {
	paidQuote := unpaidQuote()
	paidQuote.FinalPaymentStatus = entities.FinalPaymentStatusPaid
	paidQuote.ProjectDescription = "Deck build"
	paidQuote.UpdatedAt = fixedNow

	t.Run("invalid id", func(t *testing.T) {
		uc := NewReceiptUseCase(nil, nil, nil, "usd")
		_, err := uc.GenerateForQuote(context.Background(), " ")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("unpaid quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewReceiptUseCase(quotes, nil, nil, "usd")

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(unpaidQuote(), nil)

		_, err := uc.GenerateForQuote(context.Background(), "q-1")
		if !errors.Is(err, ErrQuoteNotPaid) {
			t.Fatalf("expected ErrQuoteNotPaid, got %v", err)
		}
	})

	t.Run("uses latest succeeded payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		gen := mock_interfaces.NewMockIReceiptGenerator(ctrl)
		uc := NewReceiptUseCase(quotes, records, gen, "usd")

		older := fixedNow.Add(-48 * time.Hour)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(paidQuote, nil)
		records.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.PaymentRecord{
			{ID: "pi_old", Status: entities.IntentStatusSucceeded, AmountMinor: 50000, PaidAt: &older},
			{ID: "pi_open", Status: entities.IntentStatusRequiresPaymentMethod, AmountMinor: 50000},
			{ID: "pi_new", Status: entities.IntentStatusSucceeded, AmountMinor: 50000, Currency: "usd", PaidAt: &fixedNow, PaymentMethodLabel: "Card"},
		}, nil)
		gen.EXPECT().Generate(gomock.Any()).DoAndReturn(
			func(data entities.ReceiptData) (entities.ReceiptDocument, error) {
				if data.InvoiceNumber != "pi_new" || data.PaymentMethod != "Card" || !data.PaidAt.Equal(fixedNow) {
					t.Fatalf("unexpected receipt data: %+v", data)
				}
				if data.Amount.String() != "500" || data.CustomerName != "Ana Silva" {
					t.Fatalf("unexpected receipt data: %+v", data)
				}
				return entities.ReceiptDocument{FileName: "Receipt_pi_new_2024-05-17.pdf", Content: []byte("%PDF")}, nil
			},
		)

		doc, err := uc.GenerateForQuote(context.Background(), "q-1")
		if err != nil || doc.FileName != "Receipt_pi_new_2024-05-17.pdf" {
			t.Fatalf("unexpected result: %+v %v", doc, err)
		}
	})

	t.Run("falls back to quote when no record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		gen := mock_interfaces.NewMockIReceiptGenerator(ctrl)
		uc := NewReceiptUseCase(quotes, records, gen, "USD")

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(paidQuote, nil)
		records.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, errors.New("db"))
		gen.EXPECT().Generate(gomock.Any()).DoAndReturn(
			func(data entities.ReceiptData) (entities.ReceiptDocument, error) {
				if data.InvoiceNumber != "q-1" || data.Currency != "usd" || !data.PaidAt.Equal(fixedNow) {
					t.Fatalf("unexpected receipt data: %+v", data)
				}
				return entities.ReceiptDocument{}, nil
			},
		)

		if _, err := uc.GenerateForQuote(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
