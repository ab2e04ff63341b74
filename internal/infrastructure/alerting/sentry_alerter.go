package alerting

import (
	"context"
	"errors"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/getsentry/sentry-go"
)

var ErrSentryNotConfigured = errors.New("sentry hub not configured")

const sentryFlushTimeout = 2 * time.Second

type SentryAlerter struct {
	hub *sentry.Hub
}

var _ interfaces.IAlerter = (*SentryAlerter)(nil)

func NewSentryAlerter(hub *sentry.Hub) *SentryAlerter {
	return &SentryAlerter{hub: hub}
}

// ReconciliationFailed captures a fatal event tagged with the quote and intent
// ids so it can be grouped per payment.
func (a *SentryAlerter) ReconciliationFailed(ctx context.Context, incident entities.ReconciliationIncident) error {
	hub := a.hub
	if hub == nil {
		hub = sentry.GetHubFromContext(ctx)
	}
	if hub == nil || hub.Client() == nil {
		return ErrSentryNotConfigured
	}
	hub = hub.Clone()

	cause := incident.Err
	if cause == nil {
		cause = errors.New(summary(incident))
	}

	var eventID *sentry.EventID
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelFatal)
		scope.SetTag("alert", "payment_reconciliation_failed")
		scope.SetTag("quote_id", incident.QuoteID)
		scope.SetTag("intent_id", incident.IntentID)
		scope.SetContext("payment", sentry.Context{
			"amount_minor": incident.AmountMinor,
			"currency":     incident.Currency,
			"attempts":     incident.Attempts,
			"summary":      summary(incident),
		})
		eventID = hub.CaptureException(cause)
	})
	hub.Flush(sentryFlushTimeout)

	if eventID == nil {
		return errors.New("sentry dropped reconciliation alert")
	}
	return nil
}
