package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		e := NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
		if e.Error() != "QUOTE_NOT_FOUND: Quote not found" {
			t.Fatalf("unexpected message: %s", e.Error())
		}
		body := e.ToHTTPError()
		if body.Code != "QUOTE_NOT_FOUND" || body.Message != "Quote not found" || body.Details != nil {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("db down")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected cause to be unwrapped")
		}
	})

	t.Run("with detail does not mutate original", func(t *testing.T) {
		base := NewDomainErrorSimple("PAYMENT_NOT_COMPLETED", "Payment not completed", http.StatusBadRequest)
		withStatus := base.WithDetail("status", "processing")
		if base.Details != nil {
			t.Fatalf("original mutated: %+v", base.Details)
		}
		if withStatus.ToHTTPError().Details["status"] != "processing" {
			t.Fatalf("unexpected details: %+v", withStatus.Details)
		}
	})
}
