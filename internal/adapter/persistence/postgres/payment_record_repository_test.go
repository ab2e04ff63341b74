package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentColumnNames = []string{
	"id", "quote_id", "provider", "amount_minor", "currency", "status", "payment_method_label",
	"reconciliation_state", "reconciliation_attempts", "last_error", "paid_at", "created_at", "updated_at",
}

func TestPaymentRecordRepository_CreateAndSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRecordRepository(db)
	paidAt := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
	rec := entities.PaymentRecord{
		ID: "pi_123", QuoteID: "q-1", Provider: "stripe", AmountMinor: 50000, Currency: "usd",
		Status: entities.IntentStatusSucceeded, ReconciliationState: entities.ReconciliationStatePending,
		ReconciliationAttempts: 1, LastError: "boom", PaidAt: &paidAt, CreatedAt: paidAt, UpdatedAt: paidAt,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_records")).
		WithArgs("pi_123", "q-1", "stripe", int64(50000), "usd", "succeeded", "", "pending", 1, "boom", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = repo.Create(context.Background(), rec)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = repo.Save(context.Background(), rec)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO payment_records").WillReturnError(&pq.Error{Code: "23505"})
	_, err = repo.Create(context.Background(), rec)
	assert.True(t, errors.Is(err, interfaces.ErrAlreadyExists))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRecordRepository_Reads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRecordRepository(db)
	ts := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payment_records WHERE id = $1")).
		WithArgs("pi_123").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames).
			AddRow("pi_123", "q-1", "stripe", 50000, "usd", "succeeded", "Visa 4242", "reconciled", 0, "", ts, ts, ts))

	rec, err := repo.GetByID(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), rec.AmountMinor)
	require.NotNil(t, rec.PaidAt)
	assert.True(t, rec.PaidAt.Equal(ts))
	assert.Equal(t, entities.ReconciliationStateReconciled, rec.ReconciliationState)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE reconciliation_state = $1 ORDER BY updated_at LIMIT $2")).
		WithArgs("pending", 25).
		WillReturnRows(sqlmock.NewRows(paymentColumnNames).
			AddRow("pi_1", "q-1", "stripe", 50000, "usd", "succeeded", "", "pending", 2, "timeout", nil, ts, ts))

	recs, err := repo.ListByReconciliationState(context.Background(), entities.ReconciliationStatePending, 25)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].PaidAt)
	assert.Equal(t, 2, recs[0].ReconciliationAttempts)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE quote_id = $1 ORDER BY created_at")).
		WithArgs("q-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))
	recs, err = repo.ListByQuoteID(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Empty(t, recs)

	mock.ExpectQuery("FROM payment_records WHERE id").WithArgs("missing").WillReturnRows(sqlmock.NewRows(paymentColumnNames))
	rec, err = repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, rec.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
