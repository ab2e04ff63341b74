package alerting

import (
	"context"
	"errors"
	"fmt"
	"html"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrMissingOperatorEmail = errors.New("missing OPERATOR_EMAIL")

// MailSender is satisfied by *sendgrid.Client.
type MailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailAlerter mails the operator inbox.
type EmailAlerter struct {
	sender MailSender
	from   *mail.Email
	to     *mail.Email
}

var _ interfaces.IAlerter = (*EmailAlerter)(nil)

func NewSendGridAlerter(apiKey, fromEmail, operatorEmail string) (*EmailAlerter, error) {
	return NewEmailAlerter(sendgrid.NewSendClient(apiKey), fromEmail, operatorEmail)
}

func NewEmailAlerter(sender MailSender, fromEmail, operatorEmail string) (*EmailAlerter, error) {
	if operatorEmail == "" {
		return nil, ErrMissingOperatorEmail
	}
	return &EmailAlerter{
		sender: sender,
		from:   mail.NewEmail("Payments", fromEmail),
		to:     mail.NewEmail("Operations", operatorEmail),
	}, nil
}

func (a *EmailAlerter) ReconciliationFailed(ctx context.Context, incident entities.ReconciliationIncident) error {
	subject := fmt.Sprintf("[ACTION REQUIRED] Payment %s needs manual reconciliation", incident.IntentID)
	text := fmt.Sprintf("%s.\n\nQuote: %s\nPayment intent: %s\nAmount: %s\nAttempts: %d\nLast error: %v\n",
		summary(incident), incident.QuoteID, incident.IntentID, formatAmount(incident), incident.Attempts, incident.Err)
	body := "<pre>" + html.EscapeString(text) + "</pre>"

	resp, err := a.sender.SendWithContext(ctx, mail.NewSingleEmail(a.from, subject, a.to, text, body))
	if err != nil {
		return fmt.Errorf("send reconciliation alert: %w", err)
	}
	if resp != nil && resp.StatusCode >= 300 {
		return fmt.Errorf("send reconciliation alert: sendgrid status %d", resp.StatusCode)
	}
	return nil
}
