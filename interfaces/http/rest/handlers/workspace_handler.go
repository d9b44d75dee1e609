package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/services"
	"github.com/walidMaaninou/lexi-build/infrastructure/config"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
	"github.com/walidMaaninou/lexi-build/pkg/utils"
)

// maxImportSize bounds uploaded workbooks to 20 MiB.
const maxImportSize = 20 << 20

// WorkspaceHandler handles workspace-level HTTP requests: bootstrap, import,
// export and the tree view.
type WorkspaceHandler struct {
	workspaces *services.WorkspaceService
	cfg        *config.Config
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(
	workspaces *services.WorkspaceService,
	cfg *config.Config,
	errors *apperrors.ErrorHandler,
	logger *zap.Logger,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces: workspaces,
		cfg:        cfg,
		errors:     errors,
		logger:     logger,
	}
}

// CreateWorkspaceRequest represents the request body for bootstrapping a
// workspace around a single root node
type CreateWorkspaceRequest struct {
	RootName string `json:"root_name" validate:"required,min=1,max=200"`
}

// Create handles POST /workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	info, err := h.workspaces.Create(req.RootName)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, info)
}

// List handles GET /workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.workspaces.List())
}

// Get handles GET /workspaces/{workspaceID}
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.workspaces.Get(chi.URLParam(r, "workspaceID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, info)
}

// Import handles POST /workspaces/import. The workbook arrives as the "file"
// part of a multipart form; the relational parser is tried first and the
// outline parser is the fallback for sheets without the expected headers.
func (h *WorkspaceHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "A workbook file is required")
		return
	}
	defer file.Close()

	info, err := h.workspaces.Import(r.Context(), header.Filename, file)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, info)
}

// Export handles GET /workspaces/{workspaceID}/export, serving the store as
// an xlsx attachment.
func (h *WorkspaceHandler) Export(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	if _, err := h.workspaces.Get(workspaceID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.cfg.ExportFilename))

	if err := h.workspaces.Export(r.Context(), workspaceID, w); err != nil {
		// Headers are already out; all that is left is logging.
		h.logger.Error("Failed to stream export",
			zap.String("workspaceID", workspaceID),
			zap.Error(err),
		)
	}
}

// Tree handles GET /workspaces/{workspaceID}/tree
func (h *WorkspaceHandler) Tree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.workspaces.Tree(chi.URLParam(r, "workspaceID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"roots": roots})
}
