package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	log "github.com/sirupsen/logrus"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Configured() bool { return true }

// Send delivers a single email.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.WithFields(log.Fields{"to": msg.To, "message_id": sent.Id}).Debug("email sent")
	return nil
}

// NoopSender is used when no API key is configured. Sends succeed without
// delivering anything so the rest of the system keeps working in dev.
type NoopSender struct{}

func (NoopSender) Configured() bool { return false }

func (NoopSender) Send(_ context.Context, msg Message) error {
	log.WithField("to", msg.To).Warn("email service not configured, dropping email")
	return nil
}
