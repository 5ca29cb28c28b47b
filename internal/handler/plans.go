package handler

import (
	"net/http"

	"loft/internal/httputil"
	"loft/internal/plans"
)

// PlansHandler serves the plan-tier catalog
type PlansHandler struct {
	registry *plans.Registry
}

// NewPlansHandler creates a new plans handler
func NewPlansHandler(registry *plans.Registry) *PlansHandler {
	return &PlansHandler{registry: registry}
}

// ListPlans returns all plan tiers in catalog order
// GET /api/plans
func (h *PlansHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}
