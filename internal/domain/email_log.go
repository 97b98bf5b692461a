package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_log_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain EmailLogRepository

type EmailLogStatus string

const (
	EmailLogStatusProcessing EmailLogStatus = "processing"
	EmailLogStatusSent       EmailLogStatus = "sent"
	EmailLogStatusFailed     EmailLogStatus = "failed"
	EmailLogStatusOpened     EmailLogStatus = "opened"
)

// EmailLog is the durable record of one send attempt. It is created
// before the transport is called so a tracking identity exists even
// when delivery fails; once created it is authoritative for tracking.
type EmailLog struct {
	ID                string         `json:"id"`
	CustomerID        string         `json:"customer_id"`
	QueueID           string         `json:"queue_id,omitempty"`
	ContactEmail      string         `json:"contact_email"`
	FlowID            string         `json:"flow_id,omitempty"`
	TemplateID        string         `json:"template_id,omitempty"`
	ServerID          string         `json:"server_id,omitempty"`
	Subject           string         `json:"subject"`
	Status            EmailLogStatus `json:"status"`
	ProviderMessageID *string        `json:"provider_message_id,omitempty"`
	Error             *string        `json:"error,omitempty"`

	OpenCount      int        `json:"open_count"`
	MaxOpens       int        `json:"max_opens"`
	FirstOpenedAt  *time.Time `json:"first_opened_at,omitempty"`
	LastOpenedAt   *time.Time `json:"last_opened_at,omitempty"`
	ClickCount     int        `json:"click_count"`
	FirstClickedAt *time.Time `json:"first_clicked_at,omitempty"`

	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OpenResult reports the outcome of one tracked open.
type OpenResult struct {
	// Counted is false once the open cap is reached.
	Counted bool
	// FirstOpen is true only for the very first counted open, the one
	// that feeds engagement and server aggregates.
	FirstOpen bool
	Log       *EmailLog
}

// ClickResult reports the outcome of one tracked click.
type ClickResult struct {
	FirstClick bool
	Log        *EmailLog
}

type EmailLogRepository interface {
	// Create inserts the log row in processing status.
	Create(ctx context.Context, log *EmailLog) error

	// GetByID returns the log, or *ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*EmailLog, error)

	// MarkSent records a successful delivery with the provider's
	// message id.
	MarkSent(ctx context.Context, id string, providerMessageID string, sentAt time.Time) error

	// MarkFailed records a failed delivery attempt.
	MarkFailed(ctx context.Context, id string, errMsg string) error

	// RecordOpen counts one open atomically, refusing increments past
	// the log's open cap. Counted is false (with the current log state)
	// when the cap was already reached.
	RecordOpen(ctx context.Context, id string, at time.Time) (*OpenResult, error)

	// RecordClick counts one click atomically.
	RecordClick(ctx context.Context, id string, at time.Time) (*ClickResult, error)
}
