package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGrid delivers account emails through the SendGrid API.
type SendGrid struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendGrid creates a SendGrid mailer with the given API key and sender.
func NewSendGrid(apiKey, fromName, fromAddr string) *SendGrid {
	return &SendGrid{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

// Send implements Mailer.
func (s *SendGrid) Send(_ context.Context, m Mail) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail("", m.To)
	htmlContent := fmt.Sprintf("<p>%s</p>", m.Body)
	message := mail.NewSingleEmail(from, m.Subject, to, m.Body, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send email", "to", m.To, "error", err)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid rejected email", "to", m.To, "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid: unexpected status %d", response.StatusCode)
	}
	zap.S().Infow("email sent", "to", m.To, "subject", m.Subject)
	return nil
}
