package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_flow_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain FlowRepository

type StepType string

const (
	StepTypeWaitSubscriber   StepType = "waitSubscriber"
	StepTypeSendWebhook      StepType = "sendWebhook"
	StepTypeSendMail         StepType = "sendMail"
	StepTypeMoveSubscriber   StepType = "moveSubscriber"
	StepTypeRemoveSubscriber StepType = "removeSubscriber"
	StepTypeDeleteSubscriber StepType = "deleteSubscriber"
)

// Step is one typed unit of work in a flow. Config carries the
// type-specific fields; the executor parses it into the matching
// typed config before running.
type Step struct {
	StepCount int                    `json:"stepCount"`
	Type      StepType               `json:"stepType"`
	Title     string                 `json:"title,omitempty"`
	Config    map[string]interface{} `json:"config,omitempty"`
}

// Steps is the ordered step array, stored as a JSONB column.
type Steps []*Step

func (s Steps) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Steps) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for Steps: %T", value)
	}
	return json.Unmarshal(b, s)
}

// WaitStepConfig delays the association before the next step.
type WaitStepConfig struct {
	WaitDuration int    `json:"waitDuration"`
	WaitUnit     string `json:"waitUnit"`
}

func (c *WaitStepConfig) Validate() error {
	if c.WaitDuration <= 0 {
		return NewValidationError("wait duration must be positive")
	}
	if c.WaitUnit == "" {
		return NewValidationError("wait unit is required")
	}
	return nil
}

// WebhookStepConfig posts the contact and flow context to an external URL.
type WebhookStepConfig struct {
	WebhookURL  string            `json:"webhookUrl"`
	Method      string            `json:"method"`
	QueryParams map[string]string `json:"queryParams,omitempty"`
	BodyParams  map[string]string `json:"bodyParams,omitempty"`
	Secret      string            `json:"secret,omitempty"`
}

func (c *WebhookStepConfig) Validate() error {
	if c.WebhookURL == "" {
		return NewValidationError("webhook url is required")
	}
	if !govalidator.IsURL(c.WebhookURL) {
		return NewValidationError("invalid webhook url")
	}
	switch c.Method {
	case "", "GET", "POST", "PUT", "PATCH", "DELETE":
	default:
		return NewValidationError(fmt.Sprintf("invalid webhook method: %s", c.Method))
	}
	return nil
}

// MailStepConfig enqueues an email built from a stored template.
type MailStepConfig struct {
	TemplateID string `json:"templateId"`
	Subject    string `json:"subject,omitempty"`
}

func (c *MailStepConfig) Validate() error {
	if c.TemplateID == "" {
		return NewValidationError("template id is required")
	}
	return nil
}

// MoveStepConfig moves the contact from the flow's list to another one.
type MoveStepConfig struct {
	TargetListID string `json:"targetListId"`
}

func (c *MoveStepConfig) Validate() error {
	if c.TargetListID == "" {
		return NewValidationError("target list id is required")
	}
	return nil
}

// RemoveStepConfig removes the contact from one list.
type RemoveStepConfig struct {
	ListToRemoveFrom string `json:"listToRemoveFrom"`
}

func (c *RemoveStepConfig) Validate() error {
	if c.ListToRemoveFrom == "" {
		return NewValidationError("list to remove from is required")
	}
	return nil
}

// FlowStats are the flow's incrementally maintained counters. Never
// recomputed from scratch; every sweep applies a delta.
type FlowStats struct {
	EmailsSent      int64      `json:"emails_sent"`
	WebhooksSent    int64      `json:"webhooks_sent"`
	UsersProcessed  int64      `json:"users_processed"`
	LastProcessedAt *time.Time `json:"last_processed_at,omitempty"`
}

// FlowStatsDelta is one sweep's contribution to a flow's counters.
type FlowStatsDelta struct {
	EmailsSent     int64
	WebhooksSent   int64
	UsersProcessed int64
}

func (d FlowStatsDelta) IsZero() bool {
	return d.EmailsSent == 0 && d.WebhooksSent == 0 && d.UsersProcessed == 0
}

// Add merges another delta into this one.
func (d *FlowStatsDelta) Add(other FlowStatsDelta) {
	d.EmailsSent += other.EmailsSent
	d.WebhooksSent += other.WebhooksSent
	d.UsersProcessed += other.UsersProcessed
}

// Flow is a tenant-owned ordered list of steps applied to the contacts
// of a list. IsActive gates scheduling: associations of an inactive
// flow are cancelled on their next due sweep.
type Flow struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	ListID     string    `json:"list_id,omitempty"`
	WebsiteID  string    `json:"website_id"`
	IsActive   bool      `json:"is_active"`
	Steps      Steps     `json:"steps"`
	Stats      FlowStats `json:"stats"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetStep returns the step with the given 1-based number, or nil when
// the number is past the end of the flow.
func (f *Flow) GetStep(stepCount int) *Step {
	for _, step := range f.Steps {
		if step.StepCount == stepCount {
			return step
		}
	}
	return nil
}

// Validate checks the flow and each of its steps.
func (f *Flow) Validate() error {
	if f.ID == "" {
		return NewValidationError("id is required")
	}
	if f.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if f.Name == "" {
		return NewValidationError("name is required")
	}
	for i, step := range f.Steps {
		if step.StepCount != i+1 {
			return NewValidationError(fmt.Sprintf("step %d has step count %d, expected %d", i+1, step.StepCount, i+1))
		}
		if err := step.ValidateConfig(); err != nil {
			return fmt.Errorf("step %d: %w", step.StepCount, err)
		}
	}
	return nil
}

// ValidateConfig parses and validates the step's typed configuration.
func (s *Step) ValidateConfig() error {
	switch s.Type {
	case StepTypeWaitSubscriber:
		cfg, err := ParseStepConfig[WaitStepConfig](s)
		if err != nil {
			return err
		}
		return cfg.Validate()
	case StepTypeSendWebhook:
		cfg, err := ParseStepConfig[WebhookStepConfig](s)
		if err != nil {
			return err
		}
		return cfg.Validate()
	case StepTypeSendMail:
		cfg, err := ParseStepConfig[MailStepConfig](s)
		if err != nil {
			return err
		}
		return cfg.Validate()
	case StepTypeMoveSubscriber:
		cfg, err := ParseStepConfig[MoveStepConfig](s)
		if err != nil {
			return err
		}
		return cfg.Validate()
	case StepTypeRemoveSubscriber:
		cfg, err := ParseStepConfig[RemoveStepConfig](s)
		if err != nil {
			return err
		}
		return cfg.Validate()
	case StepTypeDeleteSubscriber:
		return nil
	default:
		return NewValidationError(fmt.Sprintf("unknown step type: %s", s.Type))
	}
}

// ParseStepConfig decodes the step's loosely typed config map into the
// typed config for its step type.
func ParseStepConfig[T any](s *Step) (*T, error) {
	raw, err := json.Marshal(s.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal step config: %w", err)
	}
	var cfg T
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", s.Type, err)
	}
	return &cfg, nil
}

type FlowRepository interface {
	// GetByID returns the flow, or *ErrNotFound when missing.
	GetByID(ctx context.Context, customerID, id string) (*Flow, error)

	// IncrementStats applies the delta to the flow's counters and
	// bumps its last-processed timestamp, as a single atomic update.
	IncrementStats(ctx context.Context, customerID, id string, delta FlowStatsDelta) error
}
