package api

import (
	"context"
	"net/http"

	"github.com/okian/dexkeeper/internal/domain/analytics"
)

// AnalyticsProvider computes collection analytics.
type AnalyticsProvider interface {
	Analytics(ctx context.Context) (analytics.Snapshot, error)
}

// AnalyticsHandler handles analytics requests.
type AnalyticsHandler struct {
	deps AnalyticsProvider
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsProvider) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

// HandleAnalytics handles GET /api/v1/analytics.
func (h *AnalyticsHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	snap, err := h.deps.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, "api.get_analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
