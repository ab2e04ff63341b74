package request

import (
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase"

	"github.com/shopspring/decimal"
)

// QuickQuoteRequest is the homepage quick quote form.
type QuickQuoteRequest struct {
	FirstName          string `json:"firstName" binding:"required"`
	LastName           string `json:"lastName" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required"`
	ProjectDescription string `json:"projectDescription" binding:"required"`
}

func (r QuickQuoteRequest) ToInput() usecase.QuickQuoteInput {
	return usecase.QuickQuoteInput{
		FirstName:          strings.TrimSpace(r.FirstName),
		LastName:           strings.TrimSpace(r.LastName),
		Email:              strings.TrimSpace(r.Email),
		Phone:              strings.TrimSpace(r.Phone),
		ProjectDescription: strings.TrimSpace(r.ProjectDescription),
	}
}

// DetailedQuoteRequest is the full project form. Files are uploaded to blob
// storage by the frontend; only their URLs are sent here.
type DetailedQuoteRequest struct {
	FirstName          string   `json:"firstName" binding:"required"`
	LastName           string   `json:"lastName"`
	Email              string   `json:"email" binding:"required,email"`
	Phone              string   `json:"phone"`
	ProjectType        string   `json:"projectType"`
	ProjectSize        string   `json:"projectSize"`
	Location           string   `json:"location"`
	Timeline           string   `json:"timeline"`
	Budget             string   `json:"budget"`
	ProjectDescription string   `json:"projectDescription"`
	FileURLs           []string `json:"fileUrls" binding:"omitempty,dive,url"`
}

func (r DetailedQuoteRequest) ToInput() usecase.DetailedQuoteInput {
	return usecase.DetailedQuoteInput{
		FirstName:          strings.TrimSpace(r.FirstName),
		LastName:           strings.TrimSpace(r.LastName),
		Email:              strings.TrimSpace(r.Email),
		Phone:              strings.TrimSpace(r.Phone),
		ProjectType:        strings.TrimSpace(r.ProjectType),
		ProjectSize:        strings.TrimSpace(r.ProjectSize),
		Location:           strings.TrimSpace(r.Location),
		Timeline:           strings.TrimSpace(r.Timeline),
		Budget:             strings.TrimSpace(r.Budget),
		ProjectDescription: strings.TrimSpace(r.ProjectDescription),
		FileURLs:           r.FileURLs,
	}
}

// ReviewQuoteRequest carries staff edits from the dashboard. Omitted fields
// are left untouched.
type ReviewQuoteRequest struct {
	Status         *string          `json:"status"`
	EstimatedPrice *decimal.Decimal `json:"estimatedPrice"`
	Reply          *string          `json:"reply"`
}

func (r ReviewQuoteRequest) ToReview() entities.QuoteReview {
	var review entities.QuoteReview
	if r.Status != nil {
		st := entities.QuoteStatus(strings.ToLower(strings.TrimSpace(*r.Status)))
		review.Status = &st
	}
	review.EstimatedPrice = r.EstimatedPrice
	review.Reply = r.Reply
	return review
}
