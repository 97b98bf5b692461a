package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the SMTP relay settings for one send.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

// SMTPSender delivers through an SMTP relay using go-mail.
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

func (s *SMTPSender) Send(ctx context.Context, message *Message) (string, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(message.FromName, message.FromEmail); err != nil {
		return "", fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return "", fmt.Errorf("invalid recipient email: %w", err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextHTML, message.HTML)

	// SMTP has no provider id; generate one so the caller always gets a
	// stable message identity.
	messageID := uuid.New().String()
	msg.SetMessageIDWithValue(messageID)

	timeout := s.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	tlsPolicy := mail.TLSOpportunistic
	if s.config.UseTLS {
		tlsPolicy = mail.TLSMandatory
	}

	clientOptions := []mail.Option{
		mail.WithPort(s.config.Port),
		mail.WithTLSPolicy(tlsPolicy),
		mail.WithTimeout(timeout),
	}
	if s.config.Username != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(s.config.Username),
			mail.WithPassword(s.config.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(s.config.Host, clientOptions...)
	if err != nil {
		return "", fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return messageID, nil
}
