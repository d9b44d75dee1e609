package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/services"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
	"github.com/walidMaaninou/lexi-build/pkg/utils"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	workspaces *services.WorkspaceService
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	workspaces *services.WorkspaceService,
	errors *apperrors.ErrorHandler,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		workspaces: workspaces,
		errors:     errors,
		logger:     logger,
	}
}

// AddNodeRequest represents the request body for adding a node
type AddNodeRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Relation   string `json:"relation,omitempty" validate:"omitempty,oneof=child sibling parent"`
	AnchorID   string `json:"anchor_id,omitempty"`
	Kind       string `json:"kind,omitempty" validate:"omitempty,max=50"`
	Definition string `json:"definition,omitempty"`
}

// AddBatchRequest represents the request body for adding several entries at
// once, one per line
type AddBatchRequest struct {
	AnchorID string   `json:"anchor_id,omitempty"`
	Lines    []string `json:"lines" validate:"required,min=1,max=500"`
}

// EditNodeRequest represents the request body for editing a node
type EditNodeRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Definition string `json:"definition,omitempty"`
}

// Add handles POST /workspaces/{workspaceID}/nodes
func (h *NodeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sum, err := h.workspaces.AddNode(chi.URLParam(r, "workspaceID"), services.AddNodeInput{
		Name:       req.Name,
		Relation:   req.Relation,
		AnchorID:   req.AnchorID,
		Kind:       req.Kind,
		Definition: req.Definition,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, sum)
}

// AddBatch handles POST /workspaces/{workspaceID}/nodes/batch
func (h *NodeHandler) AddBatch(w http.ResponseWriter, r *http.Request) {
	var req AddBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	added, err := h.workspaces.AddEntries(chi.URLParam(r, "workspaceID"), req.AnchorID, req.Lines)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{"added": added})
}

// Get handles GET /workspaces/{workspaceID}/nodes/{nodeID}. Fetching a node
// is how the client navigates, so the workspace focus follows the read.
func (h *NodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.workspaces.Detail(
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "nodeID"),
		true,
	)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, detail)
}

// Edit handles PUT /workspaces/{workspaceID}/nodes/{nodeID}
func (h *NodeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	if err := h.workspaces.EditNode(chi.URLParam(r, "workspaceID"), nodeID, req.Name, req.Definition); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Node updated successfully",
		"id":      nodeID,
	})
}

// Delete handles DELETE /workspaces/{workspaceID}/nodes/{nodeID}. The
// response carries the new focus: the deleted node's former parent, or empty
// when a root was removed.
func (h *NodeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	focus, err := h.workspaces.DeleteNode(
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "nodeID"),
	)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"focus": focus})
}

// Siblings handles GET /workspaces/{workspaceID}/nodes/{nodeID}/siblings
func (h *NodeHandler) Siblings(w http.ResponseWriter, r *http.Request) {
	sibs, err := h.workspaces.Siblings(
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "nodeID"),
	)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"siblings": sibs})
}

// respondJSON writes a JSON response body
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
