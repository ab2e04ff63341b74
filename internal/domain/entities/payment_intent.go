package entities

// IntentStatus is the gateway-reported state of a payment intent. Only
// IntentStatusSucceeded authorizes marking a quote as paid.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusCanceled              IntentStatus = "canceled"
	IntentStatusSucceeded             IntentStatus = "succeeded"
)

// Metadata keys attached to every intent.
const (
	MetadataQuoteID            = "quoteId"
	MetadataCustomerName       = "customerName"
	MetadataCustomerEmail      = "customerEmail"
	MetadataProjectDescription = "projectDescription"
)

// PaymentIntentRequest is what the service asks a gateway to authorize.
type PaymentIntentRequest struct {
	AmountMinor    int64
	Currency       string
	ReceiptEmail   string
	Description    string
	IdempotencyKey string
	Metadata       map[string]string
}

// PaymentIntent is the gateway-side authorization object as last observed.
type PaymentIntent struct {
	ID                 string
	ClientSecret       string
	Status             IntentStatus
	AmountMinor        int64
	Currency           string
	Metadata           map[string]string
	PaymentMethodLabel string
}

func (pi PaymentIntent) QuoteID() string {
	return pi.Metadata[MetadataQuoteID]
}
