package handlers

import (
	"errors"
	"net/http"

	"buildquote/internal/usecase"
	"buildquote/pkg"

	"github.com/gin-gonic/gin"
)

const errPaymentFailed = "Payment could not be completed, please try again"

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput),
		errors.Is(err, usecase.ErrInvalidQuoteStatus), errors.Is(err, usecase.ErrInvalidEstimatedPrice),
		errors.Is(err, usecase.ErrEmptyReview):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteAlreadyPaid):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_PAID", "Quote is already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotPaid):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PAID", "Quote has not been paid", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// mapPaymentError keeps amount mismatches and gateway failures generic so the
// caller learns nothing about the stored price or the provider.
func mapPaymentError(err error) *pkg.AppError {
	var notCompleted *usecase.PaymentNotCompletedError
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentRequest), errors.Is(err, usecase.ErrInvalidConfirmRequest):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAmountMismatch), errors.Is(err, usecase.ErrIntentQuoteMismatch):
		return pkg.NewDomainError("PAYMENT_REJECTED", errPaymentFailed, err, http.StatusBadRequest)
	case errors.As(err, &notCompleted):
		return pkg.NewDomainError("PAYMENT_NOT_COMPLETED", "Payment has not been completed yet", err, http.StatusBadRequest).
			WithDetail("status", string(notCompleted.Status))
	case errors.Is(err, usecase.ErrPaymentRecordsNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReconciliationFailed):
		return pkg.NewDomainError("RECONCILIATION_FAILED",
			"Your payment was received but could not be recorded yet. Our team has been notified.", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrGateway):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", errPaymentFailed, err, http.StatusInternalServerError)
	default:
		return mapQuoteError(err)
	}
}
