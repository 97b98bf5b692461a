package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
	"github.com/ansolutions0125/nexmailer/pkg/render"
)

// StepResult contains the outcome of executing one step.
type StepResult struct {
	// NextRunAt is when the association becomes due again. Nil means
	// the next step runs on the next sweep.
	NextRunAt *time.Time
	// Terminal marks the association finished; Status carries the
	// terminal status.
	Terminal bool
	Status   domain.AssociationStatus

	FlowStats   domain.FlowStatsDelta
	GlobalStats domain.GlobalStatsDelta
}

// StepExecutionParams contains all data needed to execute a step.
type StepExecutionParams struct {
	Association *domain.FlowAssociation
	Flow        *domain.Flow
	Step        *domain.Step
	Contact     *domain.Contact
}

// StepExecutor executes a specific step type. Executors never write to
// the association or the flow's counters; they report deltas and the
// scheduler applies them.
type StepExecutor interface {
	Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error)
	StepType() domain.StepType
}

// WaitStepExecutor executes waitSubscriber steps
type WaitStepExecutor struct{}

// NewWaitStepExecutor creates a new wait step executor
func NewWaitStepExecutor() *WaitStepExecutor {
	return &WaitStepExecutor{}
}

func (e *WaitStepExecutor) StepType() domain.StepType {
	return domain.StepTypeWaitSubscriber
}

func (e *WaitStepExecutor) Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error) {
	config, err := domain.ParseStepConfig[domain.WaitStepConfig](params.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid wait step config: %w", err)
	}

	delay, err := StepDelay(config.WaitDuration, config.WaitUnit)
	if err != nil {
		return nil, err
	}

	nextRunAt := time.Now().UTC().Add(delay)
	return &StepResult{NextRunAt: &nextRunAt}, nil
}

// WebhookStepExecutor executes sendWebhook steps
type WebhookStepExecutor struct {
	httpClient *http.Client
	logger     logger.Logger
}

// NewWebhookStepExecutor creates a new webhook step executor
func NewWebhookStepExecutor(timeout time.Duration, logger logger.Logger) *WebhookStepExecutor {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WebhookStepExecutor{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (e *WebhookStepExecutor) StepType() domain.StepType {
	return domain.StepTypeSendWebhook
}

func (e *WebhookStepExecutor) Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error) {
	config, err := domain.ParseStepConfig[domain.WebhookStepConfig](params.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook step config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	vars := render.ContactVars(params.Contact.Email, params.Contact.FullName)

	payload := map[string]interface{}{
		"email":       params.Contact.Email,
		"fullName":    params.Contact.FullName,
		"customerId":  params.Association.CustomerID,
		"flowId":      params.Flow.ID,
		"flowName":    params.Flow.Name,
		"listId":      params.Association.ListID,
		"stepCount":   params.Step.StepCount,
		"triggeredAt": time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range config.BodyParams {
		payload[key] = render.Substitute(value, vars)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	webhookURL := config.WebhookURL
	if len(config.QueryParams) > 0 {
		parsed, err := url.Parse(webhookURL)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook url: %w", err)
		}
		query := parsed.Query()
		for key, value := range config.QueryParams {
			query.Set(key, render.Substitute(value, vars))
		}
		parsed.RawQuery = query.Encode()
		webhookURL = parsed.String()
	}

	method := config.Method
	if method == "" {
		method = http.MethodPost
	}

	// GET sends no body, so the signature must cover the empty payload
	// the receiver actually sees.
	var body io.Reader
	signedPayload := []byte{}
	if method != http.MethodGet {
		body = bytes.NewReader(payloadBytes)
		signedPayload = payloadBytes
	}

	req, err := http.NewRequestWithContext(ctx, method, webhookURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	webhookID := uuid.New().String()
	if config.Secret != "" {
		timestamp := time.Now().UTC().Unix()
		req.Header.Set("webhook-id", webhookID)
		req.Header.Set("webhook-timestamp", fmt.Sprintf("%d", timestamp))
		req.Header.Set("webhook-signature", signWebhookPayload(webhookID, timestamp, signedPayload, []byte(config.Secret)))
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	e.logger.WithFields(map[string]interface{}{
		"flow_id": params.Flow.ID,
		"step":    params.Step.StepCount,
		"status":  resp.StatusCode,
	}).Debug("Webhook delivered")

	return &StepResult{
		FlowStats:   domain.FlowStatsDelta{WebhooksSent: 1},
		GlobalStats: domain.GlobalStatsDelta{WebhooksSent: 1},
	}, nil
}

// signWebhookPayload signs the payload using the Standard Webhooks spec.
// Format: v1,{base64-encoded-signature}
func signWebhookPayload(msgID string, timestamp int64, payload []byte, secret []byte) string {
	signedContent := fmt.Sprintf("%s.%d.%s", msgID, timestamp, string(payload))
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(signedContent))
	return fmt.Sprintf("v1,%s", base64.StdEncoding.EncodeToString(h.Sum(nil)))
}

// MailStepExecutor executes sendMail steps
type MailStepExecutor struct {
	templateRepo domain.TemplateRepository
	queueRepo    domain.EmailQueueRepository
	maxAttempts  int
}

// NewMailStepExecutor creates a new mail step executor
func NewMailStepExecutor(templateRepo domain.TemplateRepository, queueRepo domain.EmailQueueRepository, maxAttempts int) *MailStepExecutor {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &MailStepExecutor{
		templateRepo: templateRepo,
		queueRepo:    queueRepo,
		maxAttempts:  maxAttempts,
	}
}

func (e *MailStepExecutor) StepType() domain.StepType {
	return domain.StepTypeSendMail
}

func (e *MailStepExecutor) Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error) {
	config, err := domain.ParseStepConfig[domain.MailStepConfig](params.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid mail step config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// The template may have been deleted since the step was configured.
	template, err := e.templateRepo.GetByID(ctx, params.Association.CustomerID, config.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template lookup failed: %w", err)
	}

	subject := config.Subject
	if subject == "" {
		subject = template.Subject
	}
	vars := render.ContactVars(params.Contact.Email, params.Contact.FullName)

	entry := &domain.EmailQueueEntry{
		CustomerID:   params.Association.CustomerID,
		ContactEmail: params.Contact.Email,
		FlowID:       params.Flow.ID,
		ListID:       params.Association.ListID,
		StepCount:    params.Step.StepCount,
		TemplateID:   template.ID,
		Subject:      render.Substitute(subject, vars),
		Variables:    vars,
		Status:       domain.EmailQueueStatusPending,
		MaxAttempts:  e.maxAttempts,
	}
	if err := e.queueRepo.Enqueue(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to enqueue email: %w", err)
	}

	return &StepResult{
		FlowStats: domain.FlowStatsDelta{EmailsSent: 1},
	}, nil
}

// MoveStepExecutor executes moveSubscriber steps
type MoveStepExecutor struct {
	listRepo        domain.ListRepository
	contactListRepo domain.ContactListRepository
}

// NewMoveStepExecutor creates a new move step executor
func NewMoveStepExecutor(listRepo domain.ListRepository, contactListRepo domain.ContactListRepository) *MoveStepExecutor {
	return &MoveStepExecutor{
		listRepo:        listRepo,
		contactListRepo: contactListRepo,
	}
}

func (e *MoveStepExecutor) StepType() domain.StepType {
	return domain.StepTypeMoveSubscriber
}

func (e *MoveStepExecutor) Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error) {
	config, err := domain.ParseStepConfig[domain.MoveStepConfig](params.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid move step config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// The target list may have been deleted since the step was configured.
	if _, err := e.listRepo.GetByID(ctx, params.Association.CustomerID, config.TargetListID); err != nil {
		return nil, fmt.Errorf("target list lookup failed: %w", err)
	}

	if params.Association.ListID != "" {
		err := e.contactListRepo.RemoveContactFromList(ctx, params.Association.CustomerID, params.Contact.Email, params.Association.ListID)
		if err != nil {
			return nil, fmt.Errorf("failed to remove old membership: %w", err)
		}
	}

	err = e.contactListRepo.AddContactToList(ctx, &domain.ContactList{
		CustomerID: params.Association.CustomerID,
		Email:      params.Contact.Email,
		ListID:     config.TargetListID,
		Status:     domain.ContactListStatusAdded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add new membership: %w", err)
	}

	return &StepResult{
		Terminal:    true,
		Status:      domain.AssociationStatusCompleted,
		GlobalStats: domain.GlobalStatsDelta{SubscribersMoved: 1},
	}, nil
}

// RemoveStepExecutor executes removeSubscriber steps
type RemoveStepExecutor struct {
	contactListRepo domain.ContactListRepository
}

// NewRemoveStepExecutor creates a new remove step executor
func NewRemoveStepExecutor(contactListRepo domain.ContactListRepository) *RemoveStepExecutor {
	return &RemoveStepExecutor{contactListRepo: contactListRepo}
}

func (e *RemoveStepExecutor) StepType() domain.StepType {
	return domain.StepTypeRemoveSubscriber
}

func (e *RemoveStepExecutor) Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error) {
	config, err := domain.ParseStepConfig[domain.RemoveStepConfig](params.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid remove step config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	err = e.contactListRepo.RemoveContactFromList(ctx, params.Association.CustomerID, params.Contact.Email, config.ListToRemoveFrom)
	if err != nil {
		return nil, fmt.Errorf("failed to remove membership: %w", err)
	}

	return &StepResult{
		Terminal:    true,
		Status:      domain.AssociationStatusCompleted,
		GlobalStats: domain.GlobalStatsDelta{SubscribersRemoved: 1},
	}, nil
}

// DeleteStepExecutor executes deleteSubscriber steps
type DeleteStepExecutor struct {
	contactRepo     domain.ContactRepository
	contactListRepo domain.ContactListRepository
}

// NewDeleteStepExecutor creates a new delete step executor
func NewDeleteStepExecutor(contactRepo domain.ContactRepository, contactListRepo domain.ContactListRepository) *DeleteStepExecutor {
	return &DeleteStepExecutor{
		contactRepo:     contactRepo,
		contactListRepo: contactListRepo,
	}
}

func (e *DeleteStepExecutor) StepType() domain.StepType {
	return domain.StepTypeDeleteSubscriber
}

func (e *DeleteStepExecutor) Execute(ctx context.Context, params StepExecutionParams) (*StepResult, error) {
	customerID := params.Association.CustomerID

	if err := e.contactRepo.SoftDelete(ctx, customerID, params.Contact.Email); err != nil {
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}
	if err := e.contactListRepo.RemoveContactFromAllLists(ctx, customerID, params.Contact.Email); err != nil {
		return nil, fmt.Errorf("failed to remove memberships: %w", err)
	}

	return &StepResult{
		Terminal:    true,
		Status:      domain.AssociationStatusCompleted,
		GlobalStats: domain.GlobalStatsDelta{SubscribersDeleted: 1},
	}, nil
}
