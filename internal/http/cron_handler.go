package http

import (
	"net/http"
	"time"

	"github.com/ansolutions0125/nexmailer/internal/service"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

// CronHandler exposes the trigger endpoints an external scheduler hits
// to run one automation sweep or one delivery batch.
type CronHandler struct {
	scheduler           *service.FlowScheduler
	worker              *service.DeliveryWorker
	automationBatchSize int
	deliveryBatchSize   int
	logger              logger.Logger
}

// NewCronHandler creates a new cron handler
func NewCronHandler(
	scheduler *service.FlowScheduler,
	worker *service.DeliveryWorker,
	automationBatchSize int,
	deliveryBatchSize int,
	logger logger.Logger,
) *CronHandler {
	return &CronHandler{
		scheduler:           scheduler,
		worker:              worker,
		automationBatchSize: automationBatchSize,
		deliveryBatchSize:   deliveryBatchSize,
		logger:              logger,
	}
}

// RegisterRoutes registers the cron trigger routes
func (h *CronHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/crons/processingCron", http.HandlerFunc(h.ProcessingCron))
	mux.Handle("/crons/emailProcessor", http.HandlerFunc(h.EmailProcessor))
}

type cronResponse struct {
	Processed int         `json:"processed"`
	Stats     interface{} `json:"stats"`
	Timestamp string      `json:"timestamp"`
}

// ProcessingCron runs one automation scheduler sweep. POST is accepted
// as an alias for manual triggering.
func (h *CronHandler) ProcessingCron(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.scheduler.RunSweep(r.Context(), h.automationBatchSize)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Automation sweep failed")
		WriteJSONError(w, "Automation sweep failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cronResponse{
		Processed: result.Processed,
		Stats:     result,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// EmailProcessor runs one delivery queue batch. POST is accepted as an
// alias for manual triggering.
func (h *CronHandler) EmailProcessor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.worker.ProcessBatch(r.Context(), h.deliveryBatchSize)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Delivery batch failed")
		WriteJSONError(w, "Delivery batch failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cronResponse{
		Processed: result.Processed,
		Stats:     result,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
