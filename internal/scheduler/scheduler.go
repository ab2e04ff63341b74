// Package scheduler runs the background reconciliation job.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"buildquote/internal/usecase"

	"github.com/robfig/cron/v3"
)

const jobTimeout = time.Minute

// Scheduler periodically retries payments whose quote could not be marked
// paid at confirmation time.
type Scheduler struct {
	cron           *cron.Cron
	reconciliation usecase.IReconciliationUseCase
}

// NewScheduler registers the reconciliation job on spec, a standard five
// field cron expression or a descriptor such as "@every 1m".
func NewScheduler(spec string, reconciliation usecase.IReconciliationUseCase) (*Scheduler, error) {
	logger := cron.PrintfLogger(log.Default())
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{cron: c, reconciliation: reconciliation}
	if _, err := c.AddFunc(spec, s.runReconciliation); err != nil {
		return nil, fmt.Errorf("register reconciliation job %q: %w", spec, err)
	}
	log.Printf("[scheduler] reconciliation job registered schedule=%q", spec)
	return s, nil
}

func (s *Scheduler) Start() {
	log.Printf("[scheduler] starting")
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	log.Printf("[scheduler] stopping")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	log.Printf("[scheduler] stopped")
}

func (s *Scheduler) runReconciliation() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	RunReconciliation(ctx, s.reconciliation)
}

// RunReconciliation performs one pass and logs its outcome.
func RunReconciliation(ctx context.Context, reconciliation usecase.IReconciliationUseCase) usecase.ReconciliationReport {
	report, err := reconciliation.RetryPending(ctx)
	if err != nil {
		log.Printf("[scheduler] reconciliation failed err=%v", err)
		return report
	}
	if report.Scanned > 0 {
		log.Printf("[scheduler] reconciliation done scanned=%d reconciled=%d failed=%d escalated=%d",
			report.Scanned, report.Reconciled, report.Failed, report.Escalated)
	}
	return report
}
