package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the staff-facing review state of a quote request.
//
// Archival is a status value; quote requests are never deleted by the
// payment workflow.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusReviewed QuoteStatus = "reviewed"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusArchived QuoteStatus = "archived"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusReviewed, QuoteStatusApproved, QuoteStatusArchived:
		return true
	}
	return false
}

// FinalPaymentStatus only moves unpaid -> paid.
type FinalPaymentStatus string

const (
	FinalPaymentStatusUnpaid FinalPaymentStatus = "unpaid"
	FinalPaymentStatusPaid   FinalPaymentStatus = "paid"
)

// QuoteSource tells which intake form created the record.
type QuoteSource string

const (
	QuoteSourceQuick    QuoteSource = "quick"
	QuoteSourceDetailed QuoteSource = "detailed"
)

// QuoteRequest is one customer's project inquiry and its commercial lifecycle.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - EstimatedPrice is nil until staff prices the request.
//   - FileURLs only hold locators; the files live in external blob storage.
type QuoteRequest struct {
	ID        string      `json:"id"`
	Source    QuoteSource `json:"source"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`

	ProjectType        string   `json:"project_type,omitempty"`
	ProjectSize        string   `json:"project_size,omitempty"`
	Location           string   `json:"location,omitempty"`
	Timeline           string   `json:"timeline,omitempty"`
	Budget             string   `json:"budget,omitempty"`
	ProjectDescription string   `json:"project_description"`
	FileURLs           []string `json:"file_urls,omitempty"`

	EstimatedPrice     *decimal.Decimal   `json:"estimated_price"`
	Status             QuoteStatus        `json:"status"`
	FinalPaymentStatus FinalPaymentStatus `json:"final_payment_status"`
	Reply              string             `json:"reply,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q QuoteRequest) IsPaid() bool {
	return q.FinalPaymentStatus == FinalPaymentStatusPaid
}

func (q QuoteRequest) CustomerName() string {
	return strings.TrimSpace(q.FirstName + " " + q.LastName)
}

// QuoteReview carries the staff-editable fields. Nil fields are left as stored.
type QuoteReview struct {
	Status         *QuoteStatus
	EstimatedPrice *decimal.Decimal
	Reply          *string
}

func (r QuoteReview) IsEmpty() bool {
	return r.Status == nil && r.EstimatedPrice == nil && r.Reply == nil
}
