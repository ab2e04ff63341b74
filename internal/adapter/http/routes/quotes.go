package routes

import (
	"buildquote/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathPayments = "/payments"
)

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		// Public intake forms.
		quotes.POST("", h.SubmitQuickQuote)
		quotes.POST("/detailed", h.SubmitDetailedQuote)

		// Staff dashboard.
		quotes.GET("", h.ListQuotes)
		quotes.GET("/:id", h.GetQuote)
		quotes.PATCH("/:id", h.ReviewQuote)

		quotes.GET("/:id/receipt", h.DownloadReceipt)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/create-payment-intent", h.CreatePaymentIntent)
		payments.POST("/confirm-payment", h.ConfirmPayment)
		payments.GET("/quote/:quote_id", h.ListPaymentsByQuote)
	}
}
