package response

import (
	"time"

	"buildquote/internal/domain/entities"
)

type QuoteResponse struct {
	ID                 string    `json:"id"`
	Source             string    `json:"source"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	ProjectType        string    `json:"projectType,omitempty"`
	ProjectSize        string    `json:"projectSize,omitempty"`
	Location           string    `json:"location,omitempty"`
	Timeline           string    `json:"timeline,omitempty"`
	Budget             string    `json:"budget,omitempty"`
	ProjectDescription string    `json:"projectDescription"`
	FileURLs           []string  `json:"fileUrls"`
	EstimatedPrice     *string   `json:"estimatedPrice"`
	Status             string    `json:"status"`
	FinalPaymentStatus string    `json:"finalPaymentStatus"`
	Reply              string    `json:"reply,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func FromQuote(q entities.QuoteRequest) QuoteResponse {
	resp := QuoteResponse{
		ID:                 q.ID,
		Source:             string(q.Source),
		FirstName:          q.FirstName,
		LastName:           q.LastName,
		Email:              q.Email,
		Phone:              q.Phone,
		ProjectType:        q.ProjectType,
		ProjectSize:        q.ProjectSize,
		Location:           q.Location,
		Timeline:           q.Timeline,
		Budget:             q.Budget,
		ProjectDescription: q.ProjectDescription,
		FileURLs:           q.FileURLs,
		Status:             string(q.Status),
		FinalPaymentStatus: string(q.FinalPaymentStatus),
		Reply:              q.Reply,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
	if resp.FileURLs == nil {
		resp.FileURLs = []string{}
	}
	if q.EstimatedPrice != nil {
		price := q.EstimatedPrice.StringFixed(2)
		resp.EstimatedPrice = &price
	}
	return resp
}

func FromQuotes(quotes []entities.QuoteRequest) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}
