package http

import (
	"net/http"
	"strings"

	"github.com/ansolutions0125/nexmailer/internal/service"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
	"github.com/ansolutions0125/nexmailer/pkg/tracking"
)

// TrackHandler serves the open pixel and click redirects.
type TrackHandler struct {
	tracker *service.TrackingService
	logger  logger.Logger
}

// NewTrackHandler creates a new tracking handler
func NewTrackHandler(tracker *service.TrackingService, logger logger.Logger) *TrackHandler {
	return &TrackHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// RegisterRoutes registers the tracking routes
func (h *TrackHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/track/open/", http.HandlerFunc(h.TrackOpen))
	mux.Handle("/track/click/", http.HandlerFunc(h.TrackClick))
}

// TrackOpen counts an email open and always serves the pixel: a mail
// client must never see a broken image. Past the open cap the status
// flips to 410 but the body stays a valid GIF.
func (h *TrackHandler) TrackOpen(w http.ResponseWriter, r *http.Request) {
	logID := strings.TrimPrefix(r.URL.Path, "/track/open/")

	status := http.StatusOK
	if logID != "" && h.tracker.TrackOpen(r.Context(), logID) {
		status = http.StatusGone
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(tracking.PixelGIF)
}

// TrackClick counts a click and redirects to the original target
// carried in the url query parameter.
func (h *TrackHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	logID := strings.TrimPrefix(r.URL.Path, "/track/click/")
	target := r.URL.Query().Get("url")

	if logID != "" {
		h.tracker.TrackClick(r.Context(), logID)
	}

	if target == "" || !strings.HasPrefix(target, "http") {
		WriteJSONError(w, "Missing redirect target", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
