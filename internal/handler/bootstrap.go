package handler

import (
	"log/slog"
	"net/http"

	wsSvc "loft/internal/domain/services/workspace"
	"loft/internal/httputil"
)

// BootstrapHandler handles first-visit setup and profile reads
type BootstrapHandler struct {
	bootstrapService wsSvc.BootstrapService
	logger           *slog.Logger
}

// NewBootstrapHandler creates a new bootstrap handler
func NewBootstrapHandler(bootstrapService wsSvc.BootstrapService, logger *slog.Logger) *BootstrapHandler {
	return &BootstrapHandler{
		bootstrapService: bootstrapService,
		logger:           logger,
	}
}

// Bootstrap ensures the caller has a profile and a workspace, creating
// whichever is missing. Idempotent; the client calls it on every sign-in.
// POST /api/bootstrap
func (h *BootstrapHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	result, err := h.bootstrapService.EnsureWorkspaceAndProfile(r.Context(), userID, httputil.GetClaims(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetProfile retrieves the caller's profile
// GET /api/profile
func (h *BootstrapHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.bootstrapService.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// SearchProfiles finds other users by display name, for picking collaborator
// invite targets. The caller never appears in the results.
// GET /api/profiles/search?name=
func (h *BootstrapHandler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	profiles, err := h.bootstrapService.SearchProfiles(r.Context(), userID, r.URL.Query().Get("name"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profiles)
}
