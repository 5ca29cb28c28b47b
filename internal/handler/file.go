package handler

import (
	"log/slog"
	"net/http"

	wsSvc "loft/internal/domain/services/workspace"
	"loft/internal/httputil"
)

// FileHandler handles uploaded-file HTTP requests
type FileHandler struct {
	fileService   wsSvc.FileService
	searchService wsSvc.SearchService
	logger        *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService wsSvc.FileService, searchService wsSvc.SearchService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService:   fileService,
		searchService: searchService,
		logger:        logger,
	}
}

// SaveFile records an already-uploaded file under a parent
// POST /api/files
func (h *FileHandler) SaveFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req wsSvc.SaveFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	file, err := h.fileService.SaveFile(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file reference by ID
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.GetFile(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile hard-deletes a file reference
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchFiles lists the caller's non-archived files, newest first
// GET /api/files/search
func (h *FileHandler) SearchFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	files, err := h.searchService.SearchableFiles(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// StandaloneFiles lists non-archived files hanging directly off the
// workspace root
// GET /api/files/standalone
func (h *FileHandler) StandaloneFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	files, err := h.searchService.StandaloneFiles(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}
