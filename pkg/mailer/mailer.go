// Package mailer sends a single HTML email through one of the supported
// transports. Transport selection happens at a higher level; each Sender
// here only knows its own protocol.
package mailer

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_mailer.go -package mocks github.com/ansolutions0125/nexmailer/pkg/mailer Sender

// Message is one outbound email, fully rendered.
type Message struct {
	FromEmail string
	FromName  string
	To        string
	Subject   string
	HTML      string
}

// Sender delivers one message and returns the provider's message id,
// when the transport exposes one.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}
