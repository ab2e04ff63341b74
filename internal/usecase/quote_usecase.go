package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// QuickQuoteInput is the short intake form; every field is required.
type QuickQuoteInput struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	ProjectDescription string
}

// DetailedQuoteInput is the long intake form. Only name and email are
// required; the remaining fields are optional.
type DetailedQuoteInput struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	ProjectType        string
	ProjectSize        string
	Location           string
	Timeline           string
	Budget             string
	ProjectDescription string
	FileURLs           []string
}

// IQuoteUseCase exposes quote intake and staff review operations.
//
//   - intake forms => SubmitQuickQuote(), SubmitDetailedQuote()
//   - dashboard => GetByID(), List(), Review()
type IQuoteUseCase interface {
	SubmitQuickQuote(ctx context.Context, in QuickQuoteInput) (entities.QuoteRequest, error)
	SubmitDetailedQuote(ctx context.Context, in DetailedQuoteInput) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	List(ctx context.Context, status string) ([]entities.QuoteRequest, error)
	Review(ctx context.Context, id string, review entities.QuoteReview) (entities.QuoteRequest, error)
}

type QuoteUseCase struct {
	repo interfaces.IQuoteRepository
	now  func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, now: time.Now}
}

func (u *QuoteUseCase) SubmitQuickQuote(ctx context.Context, in QuickQuoteInput) (entities.QuoteRequest, error) {
	q := entities.QuoteRequest{
		Source:             entities.QuoteSourceQuick,
		FirstName:          strings.TrimSpace(in.FirstName),
		LastName:           strings.TrimSpace(in.LastName),
		Email:              strings.TrimSpace(in.Email),
		Phone:              strings.TrimSpace(in.Phone),
		ProjectDescription: strings.TrimSpace(in.ProjectDescription),
	}
	if q.FirstName == "" || q.LastName == "" || q.Email == "" || q.Phone == "" || q.ProjectDescription == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteInput
	}
	return u.create(ctx, q)
}

func (u *QuoteUseCase) SubmitDetailedQuote(ctx context.Context, in DetailedQuoteInput) (entities.QuoteRequest, error) {
	q := entities.QuoteRequest{
		Source:             entities.QuoteSourceDetailed,
		FirstName:          strings.TrimSpace(in.FirstName),
		LastName:           strings.TrimSpace(in.LastName),
		Email:              strings.TrimSpace(in.Email),
		Phone:              strings.TrimSpace(in.Phone),
		ProjectType:        strings.TrimSpace(in.ProjectType),
		ProjectSize:        strings.TrimSpace(in.ProjectSize),
		Location:           strings.TrimSpace(in.Location),
		Timeline:           strings.TrimSpace(in.Timeline),
		Budget:             strings.TrimSpace(in.Budget),
		ProjectDescription: strings.TrimSpace(in.ProjectDescription),
		FileURLs:           compactStrings(in.FileURLs),
	}
	if q.FirstName == "" || q.Email == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteInput
	}
	return u.create(ctx, q)
}

func (u *QuoteUseCase) create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	now := u.now().UTC()
	q.ID = uuid.NewString()
	q.Status = entities.QuoteStatusPending
	q.FinalPaymentStatus = entities.FinalPaymentStatusUnpaid
	q.CreatedAt = now
	q.UpdatedAt = now

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		log.Printf("[quote][usecase] create failed source=%s err=%v", q.Source, err)
		return entities.QuoteRequest{}, err
	}
	log.Printf("[quote][usecase] created quote_id=%s source=%s", created.ID, created.Source)
	return created, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, status string) ([]entities.QuoteRequest, error) {
	st := entities.QuoteStatus(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, ErrInvalidQuoteStatus
	}
	return u.repo.List(ctx, st)
}

// Review applies staff edits. Only the fields present in review are written,
// so a concurrent payment confirmation is never overwritten.
func (u *QuoteUseCase) Review(ctx context.Context, id string, review entities.QuoteReview) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteID
	}
	if review.IsEmpty() {
		return entities.QuoteRequest{}, ErrEmptyReview
	}
	if review.Status != nil && !review.Status.Valid() {
		return entities.QuoteRequest{}, ErrInvalidQuoteStatus
	}
	if review.EstimatedPrice != nil {
		if !review.EstimatedPrice.IsPositive() || !money.HasCentPrecision(*review.EstimatedPrice) {
			return entities.QuoteRequest{}, ErrInvalidEstimatedPrice
		}
		current, err := u.GetByID(ctx, id)
		if err != nil {
			return entities.QuoteRequest{}, err
		}
		if current.IsPaid() {
			return entities.QuoteRequest{}, ErrQuoteAlreadyPaid
		}
	}

	updated, err := u.repo.UpdateReview(ctx, id, review)
	if err != nil {
		log.Printf("[quote][usecase] review failed quote_id=%s err=%v", id, err)
		return entities.QuoteRequest{}, err
	}
	if updated.ID == "" {
		current, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return entities.QuoteRequest{}, err
		}
		if current.ID != "" && current.IsPaid() {
			return entities.QuoteRequest{}, ErrQuoteAlreadyPaid
		}
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	log.Printf("[quote][usecase] reviewed quote_id=%s status=%s", updated.ID, updated.Status)
	return updated, nil
}

func compactStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
