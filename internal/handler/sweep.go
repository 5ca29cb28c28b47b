package handler

import (
	"log/slog"
	"net/http"

	wsSvc "loft/internal/domain/services/workspace"
	"loft/internal/httputil"
)

// SweepHandler exposes the tree reconciliation pass. Mounted in development
// environments only.
type SweepHandler struct {
	sweepService wsSvc.SweepService
	logger       *slog.Logger
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(sweepService wsSvc.SweepService, logger *slog.Logger) *SweepHandler {
	return &SweepHandler{
		sweepService: sweepService,
		logger:       logger,
	}
}

// Sweep repairs the caller's tree and reports what changed
// POST /api/admin/sweep
func (h *SweepHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	report, err := h.sweepService.Reconcile(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
