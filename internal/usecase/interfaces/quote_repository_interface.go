package interfaces

import (
	"context"
	"time"

	"buildquote/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for QuoteRequest.
//
// Lookups and conditional writes return a zero QuoteRequest (ID == "") when
// the record does not exist or the write condition did not hold; callers
// re-read to tell the two apart.
//
// The service must be able to:
//   - insert a quote from the quick or detailed intake form
//   - apply staff review fields (status, estimated price, reply) without
//     touching payment fields
//   - flip final_payment_status unpaid -> paid exactly once
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	List(ctx context.Context, status entities.QuoteStatus) ([]entities.QuoteRequest, error)
	UpdateReview(ctx context.Context, id string, review entities.QuoteReview) (entities.QuoteRequest, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.QuoteRequest, error)
}
