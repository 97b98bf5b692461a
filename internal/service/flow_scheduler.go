package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

// SweepResult summarizes one scheduler sweep.
type SweepResult struct {
	Contacts  int `json:"contacts"`
	Processed int `json:"processed"`
	Advanced  int `json:"advanced"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// FlowScheduler advances due flow associations through their steps.
// All side effects go through the step executors; the scheduler owns
// the association lifecycle and the batched counter flush.
type FlowScheduler struct {
	assocRepo   domain.AssociationRepository
	flowRepo    domain.FlowRepository
	contactRepo domain.ContactRepository
	statsRepo   domain.StatsRepository
	executors   map[domain.StepType]StepExecutor
	logger      logger.Logger
}

// NewFlowScheduler creates a new flow scheduler
func NewFlowScheduler(
	assocRepo domain.AssociationRepository,
	flowRepo domain.FlowRepository,
	contactRepo domain.ContactRepository,
	statsRepo domain.StatsRepository,
	executors []StepExecutor,
	logger logger.Logger,
) *FlowScheduler {
	byType := make(map[domain.StepType]StepExecutor, len(executors))
	for _, executor := range executors {
		byType[executor.StepType()] = executor
	}
	return &FlowScheduler{
		assocRepo:   assocRepo,
		flowRepo:    flowRepo,
		contactRepo: contactRepo,
		statsRepo:   statsRepo,
		executors:   byType,
		logger:      logger,
	}
}

// flowKey identifies a flow within the per-sweep stats aggregation.
type flowKey struct {
	customerID string
	flowID     string
}

// RunSweep processes every due association of up to batchSize contacts.
// Per-item failures are contained; only infrastructure errors abort the
// sweep.
func (s *FlowScheduler) RunSweep(ctx context.Context, batchSize int) (*SweepResult, error) {
	now := time.Now().UTC()
	result := &SweepResult{}
	flowStats := make(map[flowKey]*domain.FlowStatsDelta)
	globalStats := &domain.GlobalStatsDelta{}

	contacts, err := s.assocRepo.GetDueContacts(ctx, now, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due contacts: %w", err)
	}
	result.Contacts = len(contacts)

	for _, ref := range contacts {
		if err := s.processContact(ctx, ref, now, result, flowStats, globalStats); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"customer_id": ref.CustomerID,
				"email":       ref.Email,
				"error":       err.Error(),
			}).Error("Failed to process contact")
		}
	}

	s.flushStats(ctx, flowStats, globalStats)

	s.logger.WithFields(map[string]interface{}{
		"contacts":  result.Contacts,
		"processed": result.Processed,
		"advanced":  result.Advanced,
		"completed": result.Completed,
		"cancelled": result.Cancelled,
		"failed":    result.Failed,
	}).Info("Automation sweep finished")

	return result, nil
}

func (s *FlowScheduler) processContact(
	ctx context.Context,
	ref domain.ContactRef,
	now time.Time,
	result *SweepResult,
	flowStats map[flowKey]*domain.FlowStatsDelta,
	globalStats *domain.GlobalStatsDelta,
) error {
	associations, err := s.assocRepo.GetDueForContact(ctx, ref.CustomerID, ref.Email, now)
	if err != nil {
		return fmt.Errorf("failed to fetch due associations: %w", err)
	}

	contact, err := s.contactRepo.GetByEmail(ctx, ref.CustomerID, ref.Email)
	if err != nil {
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to fetch contact: %w", err)
		}
		// Deleted contact: its remaining associations end here.
		for _, assoc := range associations {
			if terminated, _ := s.assocRepo.Terminate(ctx, assoc, domain.AssociationStatusCancelled, nil); terminated {
				result.Cancelled++
				globalStats.AutomationsFinished++
			}
			result.Processed++
		}
		return nil
	}

	for _, assoc := range associations {
		result.Processed++
		s.processAssociation(ctx, contact, assoc, result, flowStats, globalStats)
	}
	return nil
}

func (s *FlowScheduler) processAssociation(
	ctx context.Context,
	contact *domain.Contact,
	assoc *domain.FlowAssociation,
	result *SweepResult,
	flowStats map[flowKey]*domain.FlowStatsDelta,
	globalStats *domain.GlobalStatsDelta,
) {
	flow, err := s.flowRepo.GetByID(ctx, assoc.CustomerID, assoc.FlowID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			s.terminate(ctx, assoc, domain.AssociationStatusCancelled, nil, result, globalStats)
			return
		}
		s.logger.WithFields(map[string]interface{}{
			"flow_id": assoc.FlowID,
			"error":   err.Error(),
		}).Error("Failed to fetch flow")
		result.Skipped++
		return
	}

	if !flow.IsActive {
		s.terminate(ctx, assoc, domain.AssociationStatusCancelled, nil, result, globalStats)
		return
	}

	step := flow.GetStep(assoc.CurrentStep)
	if step == nil {
		// Past the end of the step array.
		s.terminate(ctx, assoc, domain.AssociationStatusCompleted, nil, result, globalStats)
		return
	}

	executor, ok := s.executors[step.Type]
	if !ok {
		// Unknown step types advance the pointer without effect.
		s.logger.WithFields(map[string]interface{}{
			"flow_id":   flow.ID,
			"step":      step.StepCount,
			"step_type": string(step.Type),
		}).Warn("Unknown step type, skipping")
		if advanced, err := s.assocRepo.Advance(ctx, assoc, time.Now().UTC()); err == nil && advanced {
			result.Advanced++
		}
		return
	}

	stepResult, err := executor.Execute(ctx, StepExecutionParams{
		Association: assoc,
		Flow:        flow,
		Step:        step,
		Contact:     contact,
	})
	if err != nil {
		execErr := &domain.ErrStepExecution{
			FlowID: flow.ID,
			Step:   step.StepCount,
			Reason: "step dispatch failed",
			Err:    err,
		}
		s.logger.WithFields(map[string]interface{}{
			"flow_id": flow.ID,
			"step":    step.StepCount,
			"email":   contact.Email,
			"error":   err.Error(),
		}).Error("Step execution failed")
		errMsg := execErr.Error()
		s.terminate(ctx, assoc, domain.AssociationStatusFailed, &errMsg, result, globalStats)
		return
	}

	key := flowKey{customerID: assoc.CustomerID, flowID: flow.ID}

	if stepResult.Terminal {
		terminated, err := s.assocRepo.Terminate(ctx, assoc, stepResult.Status, nil)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"flow_id": flow.ID,
				"error":   err.Error(),
			}).Error("Failed to terminate association")
			return
		}
		if !terminated {
			return
		}
		result.Completed++
		s.addFlowDelta(flowStats, key, stepResult.FlowStats)
		globalStats.Add(stepResult.GlobalStats)
		globalStats.AutomationsFinished++
		return
	}

	nextStepAt := time.Now().UTC()
	if stepResult.NextRunAt != nil {
		nextStepAt = *stepResult.NextRunAt
	}
	advanced, err := s.assocRepo.Advance(ctx, assoc, nextStepAt)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"flow_id": flow.ID,
			"error":   err.Error(),
		}).Error("Failed to advance association")
		return
	}
	if !advanced {
		// Another sweep got there first.
		return
	}
	result.Advanced++
	s.addFlowDelta(flowStats, key, stepResult.FlowStats)
	globalStats.Add(stepResult.GlobalStats)
	globalStats.AutomationsAdvanced++
}

func (s *FlowScheduler) terminate(
	ctx context.Context,
	assoc *domain.FlowAssociation,
	status domain.AssociationStatus,
	errMsg *string,
	result *SweepResult,
	globalStats *domain.GlobalStatsDelta,
) {
	terminated, err := s.assocRepo.Terminate(ctx, assoc, status, errMsg)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"flow_id": assoc.FlowID,
			"email":   assoc.ContactEmail,
			"error":   err.Error(),
		}).Error("Failed to terminate association")
		return
	}
	if !terminated {
		return
	}
	globalStats.AutomationsFinished++
	switch status {
	case domain.AssociationStatusCompleted:
		result.Completed++
	case domain.AssociationStatusFailed:
		result.Failed++
	case domain.AssociationStatusCancelled:
		result.Cancelled++
	}
}

func (s *FlowScheduler) addFlowDelta(flowStats map[flowKey]*domain.FlowStatsDelta, key flowKey, delta domain.FlowStatsDelta) {
	agg, ok := flowStats[key]
	if !ok {
		agg = &domain.FlowStatsDelta{}
		flowStats[key] = agg
	}
	agg.Add(delta)
	agg.UsersProcessed++
}

// flushStats applies the sweep's aggregated counters as single
// incremental updates. Flush failures are logged, not fatal: counters
// are best-effort aggregates.
func (s *FlowScheduler) flushStats(ctx context.Context, flowStats map[flowKey]*domain.FlowStatsDelta, globalStats *domain.GlobalStatsDelta) {
	for key, delta := range flowStats {
		if err := s.flowRepo.IncrementStats(ctx, key.customerID, key.flowID, *delta); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"flow_id": key.flowID,
				"error":   err.Error(),
			}).Error("Failed to flush flow stats")
		}
	}
	if !globalStats.IsZero() {
		if err := s.statsRepo.IncrementGlobal(ctx, *globalStats); err != nil {
			s.logger.WithField("error", err.Error()).Error("Failed to flush global stats")
		}
	}
}
