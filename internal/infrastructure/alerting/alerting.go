// Package alerting tells operators about payments that were captured by the
// gateway but could not be reflected on the quote request.
package alerting

import (
	"context"
	"errors"
	"fmt"
	"log"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase/interfaces"
)

// Multi fans an incident out to every sink. All sinks are tried; their
// errors are joined.
type Multi []interfaces.IAlerter

var _ interfaces.IAlerter = Multi(nil)

func (m Multi) ReconciliationFailed(ctx context.Context, incident entities.ReconciliationIncident) error {
	var errs []error
	for _, a := range m {
		if err := a.ReconciliationFailed(ctx, incident); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogAlerter writes the incident to the process log. It is always part of the
// chain so an incident is never lost when the remote sinks are down.
type LogAlerter struct{}

var _ interfaces.IAlerter = LogAlerter{}

func (LogAlerter) ReconciliationFailed(_ context.Context, incident entities.ReconciliationIncident) error {
	log.Printf("[payment][reconciliation] ALERT quote_id=%s intent_id=%s amount=%d currency=%s attempts=%d err=%v",
		incident.QuoteID, incident.IntentID, incident.AmountMinor, incident.Currency, incident.Attempts, incident.Err)
	return nil
}

func summary(incident entities.ReconciliationIncident) string {
	return fmt.Sprintf("payment %s for quote %s (%s) succeeded but the quote could not be marked paid after %d attempt(s)",
		incident.IntentID, incident.QuoteID, formatAmount(incident), incident.Attempts)
}

func formatAmount(incident entities.ReconciliationIncident) string {
	return money.Format(money.FromMinorUnits(incident.AmountMinor), money.Symbol(incident.Currency))
}
