package interfaces

import (
	"context"

	"buildquote/internal/domain/entities"
)

// IAlerter notifies operators about payments that need manual reconciliation.
type IAlerter interface {
	ReconciliationFailed(ctx context.Context, incident entities.ReconciliationIncident) error
}
