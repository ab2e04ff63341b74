package handlers

import (
	"log"
	"net/http"

	request "buildquote/internal/adapter/http/dto/request"
	response "buildquote/internal/adapter/http/dto/response"
	"buildquote/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves the intake forms and the staff dashboard.
type QuoteHandler struct {
	quotes   usecase.IQuoteUseCase
	receipts usecase.IReceiptUseCase
}

func NewQuoteHandler(quotes usecase.IQuoteUseCase, receipts usecase.IReceiptUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, receipts: receipts}
}

// SubmitQuickQuote godoc
// @Summary Submit a quick quote request
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body request.QuickQuoteRequest true "Quick quote form"
// @Success 201 {object} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /quotes [post]
func (h *QuoteHandler) SubmitQuickQuote(c *gin.Context) {
	var payload request.QuickQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[quote][handler] invalid quick quote payload err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}

	q, err := h.quotes.SubmitQuickQuote(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// SubmitDetailedQuote godoc
// @Summary Submit a detailed quote request
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body request.DetailedQuoteRequest true "Detailed quote form"
// @Success 201 {object} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /quotes/detailed [post]
func (h *QuoteHandler) SubmitDetailedQuote(c *gin.Context) {
	var payload request.DetailedQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[quote][handler] invalid detailed quote payload err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}

	q, err := h.quotes.SubmitDetailedQuote(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// GetQuote godoc
// @Summary Get a quote request
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.QuoteResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.quotes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ListQuotes godoc
// @Summary List quote requests, newest first
// @Tags quotes
// @Produce json
// @Param status query string false "pending, reviewed, approved or archived"
// @Success 200 {array} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.quotes.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// ReviewQuote godoc
// @Summary Update status, estimated price or reply of a quote request
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param body body request.ReviewQuoteRequest true "Fields to change"
// @Success 200 {object} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /quotes/{id} [patch]
func (h *QuoteHandler) ReviewQuote(c *gin.Context) {
	var payload request.ReviewQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	id := c.Param("id")
	q, err := h.quotes.Review(c.Request.Context(), id, payload.ToReview())
	if err != nil {
		log.Printf("[quote][handler] review failed quote_id=%s err=%v", id, err)
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// DownloadReceipt godoc
// @Summary Download the PDF receipt of a paid quote
// @Tags quotes
// @Produce application/pdf
// @Param id path string true "Quote ID"
// @Success 200 {file} file
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /quotes/{id}/receipt [get]
func (h *QuoteHandler) DownloadReceipt(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.receipts.GenerateForQuote(c.Request.Context(), id)
	if err != nil {
		log.Printf("[receipt][handler] generate failed quote_id=%s err=%v", id, err)
		writeError(c, mapQuoteError(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
