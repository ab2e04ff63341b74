package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromConfirmPaymentResult_AmountIsNumber(t *testing.T) {
	resp := FromConfirmPaymentResult(usecase.ConfirmPaymentResult{
		Success:         true,
		PaymentIntentID: "pi_123",
		QuoteID:         "q-1",
		Amount:          decimal.NewFromInt(500),
		Currency:        "usd",
	})

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(b)
	if !strings.Contains(body, `"amount":500.00`) {
		t.Fatalf("expected numeric amount, got %s", body)
	}
	if !strings.Contains(body, `"success":true`) || !strings.Contains(body, `"paymentIntentId":"pi_123"`) {
		t.Fatalf("unexpected body %s", body)
	}
	if strings.Contains(body, "paidAt") {
		t.Fatalf("expected paidAt to be omitted, got %s", body)
	}
}

func TestFromQuote(t *testing.T) {
	price := decimal.RequireFromString("1234.5")
	resp := FromQuote(entities.QuoteRequest{
		ID:                 "q-1",
		EstimatedPrice:     &price,
		Status:             entities.QuoteStatusReviewed,
		FinalPaymentStatus: entities.FinalPaymentStatusUnpaid,
	})

	if resp.EstimatedPrice == nil || *resp.EstimatedPrice != "1234.50" {
		t.Fatalf("unexpected price %v", resp.EstimatedPrice)
	}
	if resp.FileURLs == nil {
		t.Fatalf("expected empty file list instead of null")
	}
	if FromQuote(entities.QuoteRequest{}).EstimatedPrice != nil {
		t.Fatalf("expected nil price for unpriced quote")
	}
}

func TestFromPaymentRecords(t *testing.T) {
	now := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
	out := FromPaymentRecords([]entities.PaymentRecord{{
		ID: "pi_123", QuoteID: "q-1", AmountMinor: 50000, Currency: "usd",
		Status: entities.IntentStatusSucceeded, CreatedAt: now, UpdatedAt: now,
	}})

	if len(out) != 1 || out[0].Amount != "500.00" || out[0].Status != "succeeded" {
		t.Fatalf("unexpected records: %+v", out)
	}
	if got := FromPaymentRecords(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}
