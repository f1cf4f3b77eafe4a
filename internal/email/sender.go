// Package email sends transactional mail through the Resend API.
package email

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single email. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	// Configured reports whether the sender can actually deliver mail.
	Configured() bool
}
