package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData is a point-in-time snapshot of a completed payment. It is not
// persisted; it only lives while a receipt document is produced.
type ReceiptData struct {
	InvoiceNumber      string
	CustomerName       string
	CustomerEmail      string
	Amount             decimal.Decimal
	Currency           string
	ProjectDescription string
	PaidAt             time.Time
	PaymentMethod      string
}

// ReceiptDocument is a rendered receipt ready to be sent to the customer.
type ReceiptDocument struct {
	FileName    string
	ContentType string
	Content     []byte
}
