package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const quoteColumns = `id, source, first_name, last_name, email, phone, project_type, project_size,
	location, timeline, budget, project_description, file_urls, estimated_price, status,
	final_payment_status, reply, created_at, updated_at`

type QuoteRepository struct {
	db *sql.DB
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	query := `INSERT INTO quote_requests (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		q.ID, string(q.Source), q.FirstName, q.LastName, q.Email, q.Phone, q.ProjectType, q.ProjectSize,
		q.Location, q.Timeline, q.Budget, q.ProjectDescription, pq.Array(nonNil(q.FileURLs)), nullDecimal(q.EstimatedPrice),
		string(q.Status), string(q.FinalPaymentStatus), q.Reply, q.CreatedAt.UTC(), q.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.QuoteRequest{}, interfaces.ErrAlreadyExists
		}
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	query := `SELECT ` + quoteColumns + ` FROM quote_requests WHERE id = $1`
	return scanQuoteOrZero(r.db.QueryRowContext(ctx, query, id))
}

func (r *QuoteRepository) List(ctx context.Context, status entities.QuoteStatus) ([]entities.QuoteRequest, error) {
	query := `SELECT ` + quoteColumns + ` FROM quote_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]entities.QuoteRequest, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *QuoteRepository) UpdateReview(ctx context.Context, id string, review entities.QuoteReview) (entities.QuoteRequest, error) {
	sets := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if review.Status != nil {
		add("status", string(*review.Status))
	}
	if review.EstimatedPrice != nil {
		add("estimated_price", nullDecimal(review.EstimatedPrice))
	}
	if review.Reply != nil {
		add("reply", *review.Reply)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE quote_requests SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	if review.EstimatedPrice != nil {
		query += ` AND final_payment_status <> 'paid'`
	}
	query += ` RETURNING ` + quoteColumns

	return scanQuoteOrZero(r.db.QueryRowContext(ctx, query, args...))
}

// MarkPaid flips final_payment_status to paid only when it is not paid yet.
func (r *QuoteRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.QuoteRequest, error) {
	query := `UPDATE quote_requests SET final_payment_status = 'paid', updated_at = $2
		WHERE id = $1 AND final_payment_status <> 'paid'
		RETURNING ` + quoteColumns
	return scanQuoteOrZero(r.db.QueryRowContext(ctx, query, id, paidAt.UTC()))
}

func scanQuoteOrZero(row rowScanner) (entities.QuoteRequest, error) {
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.QuoteRequest{}, nil
	}
	return q, err
}

func scanQuote(row rowScanner) (entities.QuoteRequest, error) {
	var (
		q                   entities.QuoteRequest
		source, status, fps string
		fileURLs            pq.StringArray
		price               decimal.NullDecimal
	)
	err := row.Scan(
		&q.ID, &source, &q.FirstName, &q.LastName, &q.Email, &q.Phone, &q.ProjectType, &q.ProjectSize,
		&q.Location, &q.Timeline, &q.Budget, &q.ProjectDescription, &fileURLs, &price, &status,
		&fps, &q.Reply, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	q.Source = entities.QuoteSource(source)
	q.Status = entities.QuoteStatus(status)
	q.FinalPaymentStatus = entities.FinalPaymentStatus(fps)
	if len(fileURLs) > 0 {
		q.FileURLs = []string(fileURLs)
	}
	if price.Valid {
		p := price.Decimal
		q.EstimatedPrice = &p
	}
	return q, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
