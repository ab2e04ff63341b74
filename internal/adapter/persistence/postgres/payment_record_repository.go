package postgres

import (
	"context"
	"database/sql"
	"errors"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"
)

const paymentColumns = `id, quote_id, provider, amount_minor, currency, status, payment_method_label,
	reconciliation_state, reconciliation_attempts, last_error, paid_at, created_at, updated_at`

type PaymentRecordRepository struct {
	db *sql.DB
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordRepository)(nil)

func NewPaymentRecordRepository(db *sql.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

func (r *PaymentRecordRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	query := `INSERT INTO payment_records (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.db.ExecContext(ctx, query, paymentArgs(p)...); err != nil {
		if isUniqueViolation(err) {
			return entities.PaymentRecord{}, interfaces.ErrAlreadyExists
		}
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

// Save upserts the record; created_at of an existing row is kept.
func (r *PaymentRecordRepository) Save(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	query := `INSERT INTO payment_records (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			amount_minor = EXCLUDED.amount_minor,
			currency = EXCLUDED.currency,
			payment_method_label = EXCLUDED.payment_method_label,
			reconciliation_state = EXCLUDED.reconciliation_state,
			reconciliation_attempts = EXCLUDED.reconciliation_attempts,
			last_error = EXCLUDED.last_error,
			paid_at = EXCLUDED.paid_at,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, paymentArgs(p)...); err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentRecordRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE id = $1`
	p, err := scanPaymentRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.PaymentRecord{}, nil
	}
	return p, err
}

func (r *PaymentRecordRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE quote_id = $1 ORDER BY created_at`
	return r.list(ctx, query, quoteID)
}

func (r *PaymentRecordRepository) ListByReconciliationState(ctx context.Context, state entities.ReconciliationState, limit int) ([]entities.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records
		WHERE reconciliation_state = $1 ORDER BY updated_at LIMIT $2`
	if limit <= 0 {
		limit = 100
	}
	return r.list(ctx, query, string(state), limit)
}

func (r *PaymentRecordRepository) list(ctx context.Context, query string, args ...any) ([]entities.PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entities.PaymentRecord, 0)
	for rows.Next() {
		p, err := scanPaymentRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func paymentArgs(p entities.PaymentRecord) []any {
	var paidAt sql.NullTime
	if p.PaidAt != nil {
		paidAt = sql.NullTime{Time: p.PaidAt.UTC(), Valid: true}
	}
	return []any{
		p.ID, p.QuoteID, p.Provider, p.AmountMinor, p.Currency, string(p.Status), p.PaymentMethodLabel,
		string(p.ReconciliationState), p.ReconciliationAttempts, p.LastError, paidAt, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	}
}

func scanPaymentRecord(row rowScanner) (entities.PaymentRecord, error) {
	var (
		p             entities.PaymentRecord
		status, state string
		paidAt        sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.QuoteID, &p.Provider, &p.AmountMinor, &p.Currency, &status, &p.PaymentMethodLabel,
		&state, &p.ReconciliationAttempts, &p.LastError, &paidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	p.Status = entities.IntentStatus(status)
	p.ReconciliationState = entities.ReconciliationState(state)
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return p, nil
}
