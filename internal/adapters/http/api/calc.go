package api

import (
	"context"
	"net/http"

	service "github.com/okian/dexkeeper/internal/app"
)

// Calculator computes stat lines for arbitrary builds.
type Calculator interface {
	CalculateStats(ctx context.Context, in service.CalcInput) (service.StatReport, error)
}

// CalcHandler handles stat calculator requests.
type CalcHandler struct {
	calc Calculator
}

// NewCalcHandler creates a new calculator handler.
func NewCalcHandler(calc Calculator) *CalcHandler {
	return &CalcHandler{calc: calc}
}

// HandleCalcStats handles POST /api/v1/calc/stats.
func (h *CalcHandler) HandleCalcStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.calc_stats"
	var in service.CalcInput
	if !decodeJSON(w, r, op, &in) {
		return
	}
	report, err := h.calc.CalculateStats(r.Context(), in)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
