package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// SESConfig holds the Amazon SES credentials for one send.
type SESConfig struct {
	Region    string
	AccessKey string
	SecretKey string
}

// SESSender delivers through Amazon SES.
type SESSender struct {
	client sesSendAPI
}

type sesSendAPI interface {
	SendEmailWithContext(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type sesClientAdapter struct {
	svc *ses.SES
}

func (a *sesClientAdapter) SendEmailWithContext(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return a.svc.SendEmailWithContext(ctx, input)
}

// NewSESSender creates a new SES sender with static credentials
func NewSESSender(config SESConfig) (*SESSender, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &SESSender{client: &sesClientAdapter{svc: ses.New(sess)}}, nil
}

func (s *SESSender) Send(ctx context.Context, message *Message) (string, error) {
	fromHeader := message.FromEmail
	if message.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", message.FromName, message.FromEmail)
	}

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(message.To)},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(message.HTML),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(message.Subject),
			},
		},
		Source: aws.String(fromHeader),
	}

	output, err := s.client.SendEmailWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to send email via SES: %w", err)
	}
	return aws.StringValue(output.MessageId), nil
}
