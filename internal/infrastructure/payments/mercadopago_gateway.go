package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrInvalidMercadoPagoPaymentID = errors.New("invalid mercado pago payment id")

// mercadoPagoPayments is the subset of payment.Client the gateway needs.
type mercadoPagoPayments interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// maxRememberedKeys bounds the idempotency key cache.
const maxRememberedKeys = 1024

// MercadoPagoGateway maps Mercado Pago payments onto payment intents. A
// payment has no client secret, so the payment id is handed to the checkout
// page in its place.
//
// The SDK payment client takes no per-call idempotency header, so keys are
// honoured in process: a create retried with a known key returns the payment
// opened the first time.
type MercadoPagoGateway struct {
	client        mercadoPagoPayments
	paymentMethod string

	mu      sync.Mutex
	created map[string]int
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if strings.TrimSpace(accessToken) == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return newMercadoPagoGateway(payment.NewClient(cfg)), nil
}

func newMercadoPagoGateway(client mercadoPagoPayments) *MercadoPagoGateway {
	return &MercadoPagoGateway{client: client, paymentMethod: "pix", created: make(map[string]int)}
}

func (g *MercadoPagoGateway) Name() string {
	return "mercadopago"
}

func (g *MercadoPagoGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	if id, ok := g.lookupKey(req.IdempotencyKey); ok {
		log.Printf("[payment][gateway] mercadopago create replayed provider_payment_id=%d", id)
		resp, err := g.client.Get(ctx, id)
		if err != nil {
			log.Printf("[payment][gateway] sdk get failed provider_payment_id=%d err=%v", id, err)
			return entities.PaymentIntent{}, err
		}
		return fromMercadoPagoPayment(resp, req.Currency), nil
	}

	metadata := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	amount, _ := money.FromMinorUnits(req.AmountMinor).Float64()
	mpReq := payment.Request{
		TransactionAmount: amount,
		Description:       req.Description,
		PaymentMethodID:   g.paymentMethod,
		ExternalReference: req.Metadata[entities.MetadataQuoteID],
		Metadata:          metadata,
		Payer: &payment.PayerRequest{
			Email: req.ReceiptEmail,
		},
	}
	log.Printf("[payment][gateway] mercadopago create start amount=%d currency=%s", req.AmountMinor, req.Currency)

	resp, err := g.client.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return entities.PaymentIntent{}, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)
	g.rememberKey(req.IdempotencyKey, resp.ID)

	return fromMercadoPagoPayment(resp, req.Currency), nil
}

func (g *MercadoPagoGateway) lookupKey(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.created[key]
	return id, ok
}

func (g *MercadoPagoGateway) rememberKey(key string, id int) {
	if key == "" || id == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.created) >= maxRememberedKeys {
		clear(g.created)
	}
	g.created[key] = id
}

func (g *MercadoPagoGateway) RetrievePaymentIntent(ctx context.Context, id string) (entities.PaymentIntent, error) {
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("%w: %q", ErrInvalidMercadoPagoPaymentID, id)
	}

	resp, err := g.client.Get(ctx, paymentID)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed provider_payment_id=%d err=%v", paymentID, err)
		return entities.PaymentIntent{}, err
	}
	return fromMercadoPagoPayment(resp, resp.CurrencyID), nil
}

// fromMercadoPagoPayment converts a payment response. Mercado Pago rewrites
// metadata keys in snake case, so the quote id is read back from the external
// reference.
func fromMercadoPagoPayment(resp *payment.Response, currency string) entities.PaymentIntent {
	id := strconv.Itoa(resp.ID)
	if resp.CurrencyID != "" {
		currency = resp.CurrencyID
	}
	currency = strings.ToLower(currency)

	metadata := map[string]string{}
	if resp.ExternalReference != "" {
		metadata[entities.MetadataQuoteID] = resp.ExternalReference
	}

	var amountMinor int64
	if amount, err := money.FromFloat(resp.TransactionAmount); err == nil {
		amountMinor = money.ToMinorUnits(amount)
	}

	return entities.PaymentIntent{
		ID:                 id,
		ClientSecret:       id,
		Status:             mercadoPagoStatus(resp.Status),
		AmountMinor:        amountMinor,
		Currency:           currency,
		Metadata:           metadata,
		PaymentMethodLabel: mercadoPagoMethodLabel(resp.PaymentMethodID, resp.PaymentTypeID),
	}
}

func mercadoPagoStatus(status string) entities.IntentStatus {
	switch status {
	case "approved":
		return entities.IntentStatusSucceeded
	case "pending", "in_process", "authorized", "in_mediation":
		return entities.IntentStatusProcessing
	case "rejected":
		return entities.IntentStatusRequiresPaymentMethod
	case "cancelled", "refunded", "charged_back":
		return entities.IntentStatusCanceled
	default:
		return entities.IntentStatusRequiresConfirmation
	}
}

func mercadoPagoMethodLabel(methodID, typeID string) string {
	switch typeID {
	case "credit_card", "debit_card", "prepaid_card":
		return brandName(methodID)
	}
	switch methodID {
	case "":
		return ""
	case "pix":
		return "Pix"
	}
	return strings.ReplaceAll(methodID, "_", " ")
}
