package interfaces

import (
	"context"
	"errors"

	"buildquote/internal/domain/entities"
)

// ErrAlreadyExists is returned by conditional inserts when the key is taken.
var ErrAlreadyExists = errors.New("record already exists")

// IPaymentRecordRepository abstracts persistence for PaymentRecord, the local
// audit copy of gateway intents and the reconciliation outbox.
type IPaymentRecordRepository interface {
	Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	Save(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.PaymentRecord, error)
	ListByReconciliationState(ctx context.Context, state entities.ReconciliationState, limit int) ([]entities.PaymentRecord, error)
}
