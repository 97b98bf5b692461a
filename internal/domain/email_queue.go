package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_queue_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain EmailQueueRepository

type EmailQueueStatus string

const (
	EmailQueueStatusPending    EmailQueueStatus = "pending"
	EmailQueueStatusProcessing EmailQueueStatus = "processing"
	EmailQueueStatusSent       EmailQueueStatus = "sent"
	EmailQueueStatusFailed     EmailQueueStatus = "failed"
)

// TemplateVariables is the entry's substitution map, stored as JSONB.
type TemplateVariables map[string]string

func (v TemplateVariables) Value() (driver.Value, error) {
	if v == nil {
		return json.Marshal(map[string]string{})
	}
	return json.Marshal(v)
}

func (v *TemplateVariables) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for TemplateVariables: %T", value)
	}
	return json.Unmarshal(b, v)
}

// EmailQueueEntry is one outbound email job. Created by the sendMail
// step, consumed and deleted by the delivery worker on success, retried
// in place with backoff on failure.
type EmailQueueEntry struct {
	ID           string            `json:"id"`
	CustomerID   string            `json:"customer_id"`
	ContactEmail string            `json:"contact_email"`
	FlowID       string            `json:"flow_id"`
	ListID       string            `json:"list_id,omitempty"`
	StepCount    int               `json:"step_count"`
	TemplateID   string            `json:"template_id"`
	Subject      string            `json:"subject"`
	Variables    TemplateVariables `json:"variables,omitempty"`
	Status       EmailQueueStatus  `json:"status"`
	Attempts     int               `json:"attempts"`
	MaxAttempts  int               `json:"max_attempts"`
	NextAttempt  *time.Time        `json:"next_attempt,omitempty"`
	LastAttempt  *time.Time        `json:"last_attempt,omitempty"`
	LastError    *string           `json:"last_error,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// RetryDelay returns the backoff before the next delivery attempt:
// base doubled per attempt already made, capped at max.
func RetryDelay(base, max time.Duration, attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	delay := base
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// Validate checks that the entry can be enqueued.
func (e *EmailQueueEntry) Validate() error {
	if e.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if e.ContactEmail == "" {
		return NewValidationError("contact email is required")
	}
	if e.FlowID == "" {
		return NewValidationError("flow id is required")
	}
	if e.TemplateID == "" {
		return NewValidationError("template id is required")
	}
	if e.MaxAttempts < 1 {
		return NewValidationError("max attempts must be at least 1")
	}
	return nil
}

type EmailQueueRepository interface {
	// Enqueue inserts a pending entry.
	Enqueue(ctx context.Context, entry *EmailQueueEntry) error

	// GetByID returns the entry, or *ErrNotFound when missing. Used by
	// the tracker's fallback for jobs that never produced a log row.
	GetByID(ctx context.Context, id string) (*EmailQueueEntry, error)

	// FetchDue returns up to limit entries ready for an attempt, oldest
	// first: pending or failed, attempts below max, next_attempt unset
	// or past. Entries stuck in processing longer than staleAfter are
	// picked up again.
	FetchDue(ctx context.Context, now time.Time, staleAfter time.Duration, limit int) ([]*EmailQueueEntry, error)

	// MarkProcessing transitions the entry to processing and records
	// the attempt time, conditioned on it still being fetchable under
	// the same staleAfter window FetchDue used. Returns false when
	// another worker claimed it first.
	MarkProcessing(ctx context.Context, id string, now time.Time, staleAfter time.Duration) (bool, error)

	// Delete removes the entry after a successful send.
	Delete(ctx context.Context, id string) error

	// MarkFailed records a failed attempt: increments attempts, stores
	// the error and schedules the next one.
	MarkFailed(ctx context.Context, id string, errMsg string, nextAttempt time.Time) error
}
