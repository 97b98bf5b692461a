package service

import (
	"context"
	"errors"
	"time"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

// TrackingService counts pixel opens and link clicks. It never returns
// an error to the HTTP layer: a broken pixel must not break email
// rendering for the recipient, so every failure is swallowed into a
// log line.
type TrackingService struct {
	logRepo    domain.EmailLogRepository
	queueRepo  domain.EmailQueueRepository
	serverRepo domain.ServerRepository
	statsRepo  domain.StatsRepository
	engagement *EngagementService
	logger     logger.Logger
}

// NewTrackingService creates a new tracking service
func NewTrackingService(
	logRepo domain.EmailLogRepository,
	queueRepo domain.EmailQueueRepository,
	serverRepo domain.ServerRepository,
	statsRepo domain.StatsRepository,
	engagement *EngagementService,
	logger logger.Logger,
) *TrackingService {
	return &TrackingService{
		logRepo:    logRepo,
		queueRepo:  queueRepo,
		serverRepo: serverRepo,
		statsRepo:  statsRepo,
		engagement: engagement,
		logger:     logger,
	}
}

// TrackOpen counts one open for the log id. The returned flag is true
// once the open cap is exceeded, which the handler maps to a gone
// status while still serving pixel bytes.
func (s *TrackingService) TrackOpen(ctx context.Context, logID string) (gone bool) {
	result, err := s.logRepo.RecordOpen(ctx, logID, time.Now().UTC())
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			// Jobs that failed before a log row existed are still in
			// the queue; seeing one is not an error, just nothing to
			// count yet.
			if _, qErr := s.queueRepo.GetByID(ctx, logID); qErr != nil {
				s.logger.WithField("log_id", logID).Debug("Open for unknown id")
			}
			return false
		}
		s.logger.WithFields(map[string]interface{}{
			"log_id": logID,
			"error":  err.Error(),
		}).Error("Failed to record open")
		return false
	}

	if !result.Counted {
		return true
	}

	if result.FirstOpen {
		s.recordFirstOpen(ctx, result.Log)
	}
	return false
}

// recordFirstOpen feeds the one-per-message aggregates: contact
// engagement, the sending server's open counter and the global one.
func (s *TrackingService) recordFirstOpen(ctx context.Context, log *domain.EmailLog) {
	if _, err := s.engagement.UpdateEngagement(ctx, log.CustomerID, log.ContactEmail, domain.EngagementDelta{
		Opened: true,
	}); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"email": log.ContactEmail,
			"error": err.Error(),
		}).Error("Failed to update engagement on open")
	}

	if log.ServerID != "" {
		err := s.serverRepo.IncrementStats(ctx, log.CustomerID, log.ServerID, domain.ServerStatsDelta{EmailsOpened: 1})
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"server_id": log.ServerID,
				"error":     err.Error(),
			}).Error("Failed to increment server open counter")
		}
	}

	if err := s.statsRepo.IncrementGlobal(ctx, domain.GlobalStatsDelta{EmailsOpened: 1}); err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to increment global open counter")
	}
}

// TrackClick counts one click and returns whether the id was known.
func (s *TrackingService) TrackClick(ctx context.Context, logID string) bool {
	result, err := s.logRepo.RecordClick(ctx, logID, time.Now().UTC())
	if err != nil {
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			s.logger.WithFields(map[string]interface{}{
				"log_id": logID,
				"error":  err.Error(),
			}).Error("Failed to record click")
		}
		return false
	}

	if result.FirstClick {
		if _, err := s.engagement.UpdateEngagement(ctx, result.Log.CustomerID, result.Log.ContactEmail, domain.EngagementDelta{
			Clicked: true,
		}); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"email": result.Log.ContactEmail,
				"error": err.Error(),
			}).Error("Failed to update engagement on click")
		}
	}
	return true
}
