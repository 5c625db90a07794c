// Package mailer sends account emails. Production uses SendGrid; local
// development records emails into an in-memory outbox the UI can read.
package mailer

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cla-bangladesh/cla-portal/models"
)

// Action types carried on account emails.
const (
	ActionVerifyEmail   = "VERIFY_EMAIL"
	ActionResetPassword = "RESET_PASSWORD"
)

// Mail is a single outbound email.
type Mail struct {
	To      string
	Subject string
	Body    string

	// ActionType and Token are set on verification and reset mails so a
	// simulated inbox can complete the flow without a real mail provider.
	ActionType string
	Token      string
}

// Mailer delivers account emails.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// Outbox is a Mailer that records every mail as a SimulatedEmail instead of
// delivering it. Safe for concurrent use.
type Outbox struct {
	mu     sync.Mutex
	from   string
	emails []models.SimulatedEmail
}

// NewOutbox creates an empty outbox; from is the recorded sender address.
func NewOutbox(from string) *Outbox {
	return &Outbox{from: from}
}

// Send implements Mailer.
func (o *Outbox) Send(_ context.Context, m Mail) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.emails = append(o.emails, models.SimulatedEmail{
		ID:         primitive.NewObjectID().Hex(),
		To:         m.To,
		From:       o.from,
		Subject:    m.Subject,
		Body:       m.Body,
		Timestamp:  time.Now().UnixMilli(),
		ActionType: m.ActionType,
		Token:      m.Token,
	})
	return nil
}

// Emails returns a snapshot of the recorded mails, newest first.
func (o *Outbox) Emails() []models.SimulatedEmail {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.SimulatedEmail, len(o.emails))
	for i, e := range o.emails {
		out[len(o.emails)-1-i] = e
	}
	return out
}

// MarkRead flips the read flag on a recorded mail. Unknown ids are ignored.
func (o *Outbox) MarkRead(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.emails {
		if o.emails[i].ID == id {
			o.emails[i].Read = true
			return
		}
	}
}
