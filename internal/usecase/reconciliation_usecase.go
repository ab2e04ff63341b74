package usecase

import (
	"context"
	"log"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"
)

const (
	defaultReconciliationBatchSize   = 25
	defaultReconciliationMaxAttempts = 10
)

// ReconciliationReport summarizes one pass over the reconciliation outbox.
type ReconciliationReport struct {
	Scanned    int
	Reconciled int
	Failed     int
	Escalated  int
}

// IReconciliationUseCase retries payments that were captured at the gateway
// but could not be recorded on their quote.
type IReconciliationUseCase interface {
	RetryPending(ctx context.Context) (ReconciliationReport, error)
}

type ReconciliationUseCase struct {
	quotes      interfaces.IQuoteRepository
	records     interfaces.IPaymentRecordRepository
	alerter     interfaces.IAlerter
	batchSize   int
	maxAttempts int
	now         func() time.Time
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(
	quotes interfaces.IQuoteRepository,
	records interfaces.IPaymentRecordRepository,
	alerter interfaces.IAlerter,
	batchSize, maxAttempts int,
) *ReconciliationUseCase {
	if batchSize <= 0 {
		batchSize = defaultReconciliationBatchSize
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultReconciliationMaxAttempts
	}
	return &ReconciliationUseCase{
		quotes:      quotes,
		records:     records,
		alerter:     alerter,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *ReconciliationUseCase) RetryPending(ctx context.Context) (ReconciliationReport, error) {
	var report ReconciliationReport

	pending, err := u.records.ListByReconciliationState(ctx, entities.ReconciliationStatePending, u.batchSize)
	if err != nil {
		log.Printf("[payment][reconcile] list pending failed err=%v", err)
		return report, err
	}

	for _, rec := range pending {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Scanned++
		if !rec.Succeeded() {
			log.Printf("[payment][reconcile] skipping non-succeeded record intent_id=%s status=%s", rec.ID, rec.Status)
			continue
		}

		now := u.now()
		rec.UpdatedAt = now
		if err := markQuotePaid(ctx, u.quotes, rec.QuoteID, now); err != nil {
			rec.ReconciliationAttempts++
			rec.LastError = err.Error()
			if rec.ReconciliationAttempts >= u.maxAttempts {
				rec.ReconciliationState = entities.ReconciliationStateManualReview
				report.Escalated++
				log.Printf("[payment][reconcile][ALERT] giving up quote_id=%s intent_id=%s attempts=%d err=%v", rec.QuoteID, rec.ID, rec.ReconciliationAttempts, err)
				u.alert(ctx, rec, err)
			} else {
				report.Failed++
				log.Printf("[payment][reconcile] retry failed quote_id=%s intent_id=%s attempts=%d err=%v", rec.QuoteID, rec.ID, rec.ReconciliationAttempts, err)
			}
			u.save(ctx, rec)
			continue
		}

		rec.ReconciliationState = entities.ReconciliationStateReconciled
		rec.LastError = ""
		u.save(ctx, rec)
		report.Reconciled++
		log.Printf("[payment][reconcile] reconciled quote_id=%s intent_id=%s", rec.QuoteID, rec.ID)
	}

	if report.Scanned > 0 {
		log.Printf("[payment][reconcile] pass done scanned=%d reconciled=%d failed=%d escalated=%d", report.Scanned, report.Reconciled, report.Failed, report.Escalated)
	}
	return report, nil
}

func (u *ReconciliationUseCase) save(ctx context.Context, rec entities.PaymentRecord) {
	if _, err := u.records.Save(ctx, rec); err != nil {
		log.Printf("[payment][reconcile] record save failed intent_id=%s err=%v", rec.ID, err)
	}
}

func (u *ReconciliationUseCase) alert(ctx context.Context, rec entities.PaymentRecord, cause error) {
	if u.alerter == nil {
		return
	}
	incident := entities.ReconciliationIncident{
		QuoteID:     rec.QuoteID,
		IntentID:    rec.ID,
		AmountMinor: rec.AmountMinor,
		Currency:    rec.Currency,
		Attempts:    rec.ReconciliationAttempts,
		Err:         cause,
		OccurredAt:  rec.UpdatedAt,
	}
	if err := u.alerter.ReconciliationFailed(ctx, incident); err != nil {
		log.Printf("[payment][reconcile] alert delivery failed intent_id=%s err=%v", rec.ID, err)
	}
}
