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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quoteColumnNames = []string{
	"id", "source", "first_name", "last_name", "email", "phone", "project_type", "project_size",
	"location", "timeline", "budget", "project_description", "file_urls", "estimated_price", "status",
	"final_payment_status", "reply", "created_at", "updated_at",
}

var createdAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func quoteRow(id, price, fps string) *sqlmock.Rows {
	var p any
	if price != "" {
		p = price
	}
	return sqlmock.NewRows(quoteColumnNames).AddRow(
		id, "detailed", "Ana", "Silva", "ana@example.com", "555", "deck", "", "", "", "", "Build a deck",
		"{https://files.example.com/a.pdf}", p, "reviewed", fps, "", createdAt, createdAt,
	)
}

func TestQuoteRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewQuoteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quote_requests")).
		WithArgs("q-1", "quick", "Ana", "", "ana@example.com", "", "", "", "", "", "", "", sqlmock.AnyArg(), sqlmock.AnyArg(),
			"pending", "unpaid", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = repo.Create(context.Background(), entities.QuoteRequest{
		ID: "q-1", Source: entities.QuoteSourceQuick, FirstName: "Ana", Email: "ana@example.com",
		Status: entities.QuoteStatusPending, FinalPaymentStatus: entities.FinalPaymentStatusUnpaid,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_CreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewQuoteRepository(db)

	mock.ExpectExec("INSERT INTO quote_requests").WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.Create(context.Background(), entities.QuoteRequest{ID: "q-1"})
	assert.True(t, errors.Is(err, interfaces.ErrAlreadyExists))
}

func TestQuoteRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewQuoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM quote_requests WHERE id = $1")).
		WithArgs("q-1").
		WillReturnRows(quoteRow("q-1", "500.00", "unpaid"))

	q, err := repo.GetByID(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)
	require.NotNil(t, q.EstimatedPrice)
	assert.True(t, q.EstimatedPrice.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, []string{"https://files.example.com/a.pdf"}, q.FileURLs)
	assert.Equal(t, entities.QuoteStatusReviewed, q.Status)
	assert.False(t, q.IsPaid())

	mock.ExpectQuery("FROM quote_requests WHERE id").WithArgs("missing").WillReturnRows(sqlmock.NewRows(quoteColumnNames))
	q, err = repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewQuoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM quote_requests WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs("reviewed").
		WillReturnRows(quoteRow("q-1", "", "unpaid"))

	quotes, err := repo.List(context.Background(), entities.QuoteStatusReviewed)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Nil(t, quotes[0].EstimatedPrice)

	mock.ExpectQuery(regexp.QuoteMeta("FROM quote_requests ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(quoteColumnNames))
	quotes, err = repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_MarkPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewQuoteRepository(db)
	paidAt := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND final_payment_status <> 'paid'")).
		WithArgs("q-1", paidAt).
		WillReturnRows(quoteRow("q-1", "500.00", "paid"))

	q, err := repo.MarkPaid(context.Background(), "q-1", paidAt)
	require.NoError(t, err)
	assert.True(t, q.IsPaid())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND final_payment_status <> 'paid'")).
		WithArgs("q-1", paidAt).
		WillReturnRows(sqlmock.NewRows(quoteColumnNames))

	q, err = repo.MarkPaid(context.Background(), "q-1", paidAt)
	require.NoError(t, err)
	assert.Empty(t, q.ID, "already paid quote yields zero value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_UpdateReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewQuoteRepository(db)

	status := entities.QuoteStatusReviewed
	price := decimal.RequireFromString("500")
	reply := "See you Monday"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE quote_requests SET updated_at = $1, status = $2, estimated_price = $3, reply = $4 WHERE id = $5 AND final_payment_status <> 'paid' RETURNING")).
		WithArgs(sqlmock.AnyArg(), "reviewed", sqlmock.AnyArg(), reply, "q-1").
		WillReturnRows(quoteRow("q-1", "500.00", "unpaid"))

	q, err := repo.UpdateReview(context.Background(), "q-1", entities.QuoteReview{Status: &status, EstimatedPrice: &price, Reply: &reply})
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE quote_requests SET updated_at = $1, reply = $2 WHERE id = $3 RETURNING")).
		WithArgs(sqlmock.AnyArg(), reply, "q-1").
		WillReturnRows(quoteRow("q-1", "500.00", "paid"))

	_, err = repo.UpdateReview(context.Background(), "q-1", entities.QuoteReview{Reply: &reply})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
