package handlers

import (
	"log"
	"net/http"

	request "buildquote/internal/adapter/http/dto/request"
	response "buildquote/internal/adapter/http/dto/response"
	"buildquote/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the checkout page.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePaymentIntent godoc
// @Summary Open a payment intent for a quote
// @Description The asserted amount must equal the stored estimate exactly.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body request.CreatePaymentIntentRequest true "Quote and asserted amount"
// @Success 200 {object} response.CreatePaymentIntentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Failure 500 {object} pkg.HTTPError
// @Router /payments/create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var payload request.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid create-intent payload err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}
	log.Printf("[payment][handler] create-intent start quote_id=%s", payload.QuoteID)

	res, err := h.usecase.CreateIntent(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[payment][handler] create-intent failed quote_id=%s err=%v", payload.QuoteID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] create-intent success quote_id=%s intent_id=%s", payload.QuoteID, res.PaymentIntentID)

	c.JSON(http.StatusOK, response.FromCreateIntentResult(res))
}

// ConfirmPayment godoc
// @Summary Confirm a payment with the gateway and mark the quote paid
// @Description Safe to call more than once for the same intent.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body request.ConfirmPaymentRequest true "Intent and quote ids"
// @Success 200 {object} response.ConfirmPaymentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 500 {object} pkg.HTTPError
// @Router /payments/confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var payload request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid confirm payload err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}
	log.Printf("[payment][handler] confirm start quote_id=%s intent_id=%s", payload.QuoteID, payload.PaymentIntentID)

	res, err := h.usecase.ConfirmPayment(c.Request.Context(), payload.PaymentIntentID, payload.QuoteID)
	if err != nil {
		log.Printf("[payment][handler] confirm failed quote_id=%s intent_id=%s err=%v", payload.QuoteID, payload.PaymentIntentID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] confirm success quote_id=%s intent_id=%s already_paid=%t", res.QuoteID, res.PaymentIntentID, res.AlreadyPaid)

	c.JSON(http.StatusOK, response.FromConfirmPaymentResult(res))
}

// ListPaymentsByQuote godoc
// @Summary List payment records of a quote
// @Tags payments
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Success 200 {array} response.PaymentRecordResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /payments/quote/{quote_id} [get]
func (h *PaymentHandler) ListPaymentsByQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")
	records, err := h.usecase.ListByQuoteID(c.Request.Context(), quoteID)
	if err != nil {
		log.Printf("[payment][handler] list failed quote_id=%s err=%v", quoteID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecords(records))
}
