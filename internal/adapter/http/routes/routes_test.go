package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildquote/internal/adapter/http/handlers"
	"buildquote/internal/config"
	"buildquote/internal/infrastructure/alerting"
	"buildquote/internal/infrastructure/payments"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Handlers{
		Quotes:   handlers.NewQuoteHandler(nil, nil),
		Payments: handlers.NewPaymentHandler(nil),
	}, false)
}

func TestNewRouter_Ping(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewRouter_RoutesRegistered(t *testing.T) {
	want := map[string]bool{
		"POST /v1/quotes":                         false,
		"POST /v1/quotes/detailed":                false,
		"GET /v1/quotes":                          false,
		"GET /v1/quotes/:id":                      false,
		"PATCH /v1/quotes/:id":                    false,
		"GET /v1/quotes/:id/receipt":              false,
		"POST /v1/payments/create-payment-intent": false,
		"POST /v1/payments/confirm-payment":       false,
		"GET /v1/payments/quote/:quote_id":        false,
		"GET /swagger/*any":                       false,
	}
	for _, route := range testRouter().Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Fatalf("route %s not registered", key)
		}
	}
}

func TestNewGateway(t *testing.T) {
	cfg := config.Default().Payments
	cfg.Provider = config.ProviderMock

	gw, err := newGateway(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gw.(*payments.ResilientGateway); !ok {
		t.Fatalf("expected gateway to be wrapped, got %T", gw)
	}
	if gw.Name() != "mock" {
		t.Fatalf("unexpected provider %s", gw.Name())
	}

	cfg.Provider = "paypal"
	if _, err := newGateway(cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewAlerter(t *testing.T) {
	multi, ok := newAlerter(config.AlertsConfig{}).(alerting.Multi)
	if !ok || len(multi) != 1 {
		t.Fatalf("expected only the log sink, got %#v", multi)
	}

	multi, _ = newAlerter(config.AlertsConfig{
		SendGridAPIKey: "SG.key",
		FromEmail:      "no-reply@example.com",
		OperatorEmail:  "ops@example.com",
	}).(alerting.Multi)
	if len(multi) != 2 {
		t.Fatalf("expected log and e-mail sinks, got %d", len(multi))
	}
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	if _, err := openStores(context.Background(), config.StoreConfig{Driver: "sqlite"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
