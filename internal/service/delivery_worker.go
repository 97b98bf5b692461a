package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
	"github.com/ansolutions0125/nexmailer/pkg/mailer"
	"github.com/ansolutions0125/nexmailer/pkg/render"
	"github.com/ansolutions0125/nexmailer/pkg/tracking"
)

// SenderFactory builds the transport for a server's preset. The
// server's secrets are expected to be decrypted already.
type SenderFactory func(server *domain.Server, timeout time.Duration) (mailer.Sender, error)

// NewSenderForServer is the default SenderFactory.
func NewSenderForServer(server *domain.Server, timeout time.Duration) (mailer.Sender, error) {
	switch server.Preset {
	case domain.ServerPresetSMTP:
		smtp := server.Settings.SMTP
		if smtp == nil {
			return nil, fmt.Errorf("smtp settings missing on server %s", server.ID)
		}
		return mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     smtp.Host,
			Port:     smtp.Port,
			Username: smtp.Username,
			Password: smtp.Password,
			UseTLS:   smtp.UseTLS,
			Timeout:  timeout,
		}), nil
	case domain.ServerPresetSES:
		ses := server.Settings.SES
		if ses == nil {
			return nil, fmt.Errorf("ses settings missing on server %s", server.ID)
		}
		return mailer.NewSESSender(mailer.SESConfig{
			Region:    ses.Region,
			AccessKey: ses.AccessKey,
			SecretKey: ses.SecretKey,
		})
	case domain.ServerPresetAPI:
		api := server.Settings.API
		if api == nil {
			return nil, fmt.Errorf("api settings missing on server %s", server.ID)
		}
		return mailer.NewAPISender(mailer.APIConfig{
			Endpoint:      api.Endpoint,
			APIKey:        api.APIKey,
			MessageIDPath: api.MessageIDPath,
			Timeout:       timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown server preset: %s", server.Preset)
	}
}

// DeliveryConfig tunes one worker instance.
type DeliveryConfig struct {
	BackoffBase      time.Duration
	BackoffMax       time.Duration
	StaleAfter       time.Duration
	TransportTimeout time.Duration
	MaxOpens         int
	TrackingEndpoint string
	SecretKey        string
}

// DeliveryResult summarizes one worker batch.
type DeliveryResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// DeliveryWorker drains the email queue: renders, tracks, sends and
// retries with capped exponential backoff.
type DeliveryWorker struct {
	queueRepo     domain.EmailQueueRepository
	logRepo       domain.EmailLogRepository
	templateRepo  domain.TemplateRepository
	flowRepo      domain.FlowRepository
	serverRepo    domain.ServerRepository
	statsRepo     domain.StatsRepository
	engagement    *EngagementService
	senderFactory SenderFactory
	config        DeliveryConfig
	logger        logger.Logger
}

// NewDeliveryWorker creates a new delivery worker
func NewDeliveryWorker(
	queueRepo domain.EmailQueueRepository,
	logRepo domain.EmailLogRepository,
	templateRepo domain.TemplateRepository,
	flowRepo domain.FlowRepository,
	serverRepo domain.ServerRepository,
	statsRepo domain.StatsRepository,
	engagement *EngagementService,
	senderFactory SenderFactory,
	config DeliveryConfig,
	logger logger.Logger,
) *DeliveryWorker {
	if config.BackoffBase == 0 {
		config.BackoffBase = 5 * time.Minute
	}
	if config.BackoffMax == 0 {
		config.BackoffMax = 24 * time.Hour
	}
	if config.StaleAfter == 0 {
		config.StaleAfter = 2 * time.Minute
	}
	if config.MaxOpens == 0 {
		config.MaxOpens = 5
	}
	if senderFactory == nil {
		senderFactory = NewSenderForServer
	}
	return &DeliveryWorker{
		queueRepo:     queueRepo,
		logRepo:       logRepo,
		templateRepo:  templateRepo,
		flowRepo:      flowRepo,
		serverRepo:    serverRepo,
		statsRepo:     statsRepo,
		engagement:    engagement,
		senderFactory: senderFactory,
		config:        config,
		logger:        logger,
	}
}

type serverKey struct {
	customerID string
	serverID   string
}

// ProcessBatch sends up to batchSize due queue entries. Per-entry
// failures are contained; only infrastructure errors abort the batch.
func (w *DeliveryWorker) ProcessBatch(ctx context.Context, batchSize int) (*DeliveryResult, error) {
	now := time.Now().UTC()
	result := &DeliveryResult{}
	serverStats := make(map[serverKey]*domain.ServerStatsDelta)
	globalStats := &domain.GlobalStatsDelta{}

	entries, err := w.queueRepo.FetchDue(ctx, now, w.config.StaleAfter, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due emails: %w", err)
	}

	for _, entry := range entries {
		claimed, err := w.queueRepo.MarkProcessing(ctx, entry.ID, time.Now().UTC(), w.config.StaleAfter)
		if err != nil {
			w.logger.WithFields(map[string]interface{}{
				"queue_id": entry.ID,
				"error":    err.Error(),
			}).Error("Failed to claim queue entry")
			result.Skipped++
			continue
		}
		if !claimed {
			result.Skipped++
			continue
		}

		result.Processed++
		if w.processEntry(ctx, entry, serverStats, globalStats) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	w.flushStats(ctx, serverStats, globalStats)

	w.logger.WithFields(map[string]interface{}{
		"processed": result.Processed,
		"sent":      result.Sent,
		"failed":    result.Failed,
	}).Info("Delivery batch finished")

	return result, nil
}

// processEntry runs one delivery attempt end to end. The returned bool
// reports send success.
func (w *DeliveryWorker) processEntry(
	ctx context.Context,
	entry *domain.EmailQueueEntry,
	serverStats map[serverKey]*domain.ServerStatsDelta,
	globalStats *domain.GlobalStatsDelta,
) bool {
	// MarkProcessing already burned the attempt.
	attempts := entry.Attempts + 1

	template, err := w.templateRepo.GetByID(ctx, entry.CustomerID, entry.TemplateID)
	if err != nil {
		w.failEntry(ctx, entry, attempts, nil, fmt.Errorf("template lookup failed: %w", err), serverStats, globalStats)
		return false
	}

	server, err := w.resolveServer(ctx, entry)
	if err != nil {
		w.failEntry(ctx, entry, attempts, nil, err, serverStats, globalStats)
		return false
	}

	html := render.Substitute(template.HTMLBody, entry.Variables)

	// The log row exists before the send so a tracking identity
	// survives even a failed delivery.
	emailLog := &domain.EmailLog{
		CustomerID:   entry.CustomerID,
		QueueID:      entry.ID,
		ContactEmail: entry.ContactEmail,
		FlowID:       entry.FlowID,
		TemplateID:   entry.TemplateID,
		ServerID:     server.ID,
		Subject:      entry.Subject,
		Status:       domain.EmailLogStatusProcessing,
		MaxOpens:     w.config.MaxOpens,
	}
	if err := w.logRepo.Create(ctx, emailLog); err != nil {
		w.failEntry(ctx, entry, attempts, nil, fmt.Errorf("failed to create email log: %w", err), serverStats, globalStats)
		return false
	}

	if w.config.TrackingEndpoint != "" {
		html = tracking.RewriteLinks(html, w.config.TrackingEndpoint, emailLog.ID)
		html = tracking.InjectPixel(html, w.config.TrackingEndpoint, emailLog.ID)
	}

	sender, err := w.senderFactory(server, w.config.TransportTimeout)
	if err != nil {
		w.failEntry(ctx, entry, attempts, emailLog, err, serverStats, globalStats)
		return false
	}

	providerMessageID, err := sender.Send(ctx, &mailer.Message{
		FromEmail: server.FromEmail,
		FromName:  server.FromName,
		To:        entry.ContactEmail,
		Subject:   entry.Subject,
		HTML:      html,
	})
	if err != nil {
		w.failEntry(ctx, entry, attempts, emailLog, fmt.Errorf("transport failed: %w", err), serverStats, globalStats)
		w.bumpServer(serverStats, serverKey{entry.CustomerID, server.ID}, domain.ServerStatsDelta{EmailsFailed: 1})
		return false
	}

	now := time.Now().UTC()
	if err := w.logRepo.MarkSent(ctx, emailLog.ID, providerMessageID, now); err != nil {
		w.logger.WithFields(map[string]interface{}{
			"log_id": emailLog.ID,
			"error":  err.Error(),
		}).Error("Failed to mark log as sent")
	}
	// The queue entry is redundant once the log is authoritative.
	if err := w.queueRepo.Delete(ctx, entry.ID); err != nil {
		w.logger.WithFields(map[string]interface{}{
			"queue_id": entry.ID,
			"error":    err.Error(),
		}).Error("Failed to delete queue entry")
	}

	w.bumpServer(serverStats, serverKey{entry.CustomerID, server.ID}, domain.ServerStatsDelta{EmailsSent: 1})
	globalStats.EmailsSent++

	if _, err := w.engagement.UpdateEngagement(ctx, entry.CustomerID, entry.ContactEmail, domain.EngagementDelta{
		Sent:      true,
		Delivered: true,
	}); err != nil {
		w.logger.WithFields(map[string]interface{}{
			"email": entry.ContactEmail,
			"error": err.Error(),
		}).Error("Failed to update engagement")
	}

	return true
}

// resolveServer walks the flow -> website -> server chain and decrypts
// the transport credentials.
func (w *DeliveryWorker) resolveServer(ctx context.Context, entry *domain.EmailQueueEntry) (*domain.Server, error) {
	flow, err := w.flowRepo.GetByID(ctx, entry.CustomerID, entry.FlowID)
	if err != nil {
		return nil, fmt.Errorf("flow lookup failed: %w", err)
	}
	website, err := w.serverRepo.GetWebsiteByID(ctx, entry.CustomerID, flow.WebsiteID)
	if err != nil {
		return nil, fmt.Errorf("website lookup failed: %w", err)
	}
	server, err := w.serverRepo.GetServerByID(ctx, entry.CustomerID, website.ServerID)
	if err != nil {
		return nil, fmt.Errorf("server lookup failed: %w", err)
	}
	if err := server.DecryptSecrets(w.config.SecretKey); err != nil {
		return nil, fmt.Errorf("failed to decrypt server credentials: %w", err)
	}
	return server, nil
}

func (w *DeliveryWorker) failEntry(
	ctx context.Context,
	entry *domain.EmailQueueEntry,
	attempts int,
	emailLog *domain.EmailLog,
	cause error,
	serverStats map[serverKey]*domain.ServerStatsDelta,
	globalStats *domain.GlobalStatsDelta,
) {
	now := time.Now().UTC()
	delay := domain.RetryDelay(w.config.BackoffBase, w.config.BackoffMax, attempts)
	nextAttempt := now.Add(delay)

	w.logger.WithFields(map[string]interface{}{
		"queue_id": entry.ID,
		"attempts": attempts,
		"retry_in": delay.String(),
		"error":    cause.Error(),
	}).Warn("Delivery attempt failed")

	if err := w.queueRepo.MarkFailed(ctx, entry.ID, cause.Error(), nextAttempt); err != nil {
		w.logger.WithFields(map[string]interface{}{
			"queue_id": entry.ID,
			"error":    err.Error(),
		}).Error("Failed to mark queue entry as failed")
	}

	if emailLog != nil {
		if err := w.logRepo.MarkFailed(ctx, emailLog.ID, cause.Error()); err != nil {
			w.logger.WithFields(map[string]interface{}{
				"log_id": emailLog.ID,
				"error":  err.Error(),
			}).Error("Failed to mark log as failed")
		}
	}

	globalStats.EmailsFailed++

	// Exhausted entries will never be retried; the contact's counters
	// record the permanent failure.
	if attempts >= entry.MaxAttempts {
		if _, err := w.engagement.UpdateEngagement(ctx, entry.CustomerID, entry.ContactEmail, domain.EngagementDelta{
			Sent:   true,
			Failed: true,
		}); err != nil {
			var notFound *domain.ErrNotFound
			if !errors.As(err, &notFound) {
				w.logger.WithFields(map[string]interface{}{
					"email": entry.ContactEmail,
					"error": err.Error(),
				}).Error("Failed to update engagement")
			}
		}
	}
}

func (w *DeliveryWorker) bumpServer(serverStats map[serverKey]*domain.ServerStatsDelta, key serverKey, delta domain.ServerStatsDelta) {
	agg, ok := serverStats[key]
	if !ok {
		agg = &domain.ServerStatsDelta{}
		serverStats[key] = agg
	}
	agg.EmailsSent += delta.EmailsSent
	agg.EmailsFailed += delta.EmailsFailed
	agg.EmailsOpened += delta.EmailsOpened
}

func (w *DeliveryWorker) flushStats(ctx context.Context, serverStats map[serverKey]*domain.ServerStatsDelta, globalStats *domain.GlobalStatsDelta) {
	for key, delta := range serverStats {
		if err := w.serverRepo.IncrementStats(ctx, key.customerID, key.serverID, *delta); err != nil {
			w.logger.WithFields(map[string]interface{}{
				"server_id": key.serverID,
				"error":     err.Error(),
			}).Error("Failed to flush server stats")
		}
	}
	if !globalStats.IsZero() {
		if err := w.statsRepo.IncrementGlobal(ctx, *globalStats); err != nil {
			w.logger.WithField("error", err.Error()).Error("Failed to flush global stats")
		}
	}
}
