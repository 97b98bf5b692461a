package service

import (
	"context"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

// EngagementService maintains per-contact delivery counters and the
// rates derived from them.
type EngagementService struct {
	contactRepo domain.ContactRepository
	logger      logger.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(contactRepo domain.ContactRepository, logger logger.Logger) *EngagementService {
	return &EngagementService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// UpdateEngagement applies one delivery event to the contact's counters
// and recomputes the derived rates and score. Open and click events are
// expected pre-gated to first occurrences by the caller.
func (s *EngagementService) UpdateEngagement(ctx context.Context, customerID, email string, delta domain.EngagementDelta) (*domain.Engagement, error) {
	if delta.IsZero() {
		return nil, nil
	}

	engagement, err := s.contactRepo.ApplyEngagement(ctx, customerID, email, delta)
	if err != nil {
		return nil, err
	}

	engagement.ComputeRates()

	if err := s.contactRepo.UpdateEngagementRates(ctx, customerID, email, engagement); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"email": email,
		"score": engagement.Score,
	}).Debug("Engagement updated")

	return engagement, nil
}
