package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"careerpath/internal/domain"
	"careerpath/internal/sqlinline"
)

type progressUpdateRequest struct {
	Status string `json:"status"`
}

type progressDTO struct {
	NodeID      string     `json:"node_id"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ProgressUpdate sets the caller's status for one node. The node must belong
// to the caller's own roadmap. Completion stamps completed_at; moving back
// out of completed clears it.
func (a *App) ProgressUpdate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	nodeID := chi.URLParam(r, "nodeID")
	if !isUUID(nodeID) {
		a.error(w, http.StatusNotFound, "not_found", "node not found")
		return
	}

	var req progressUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if !domain.ValidProgressStatus(req.Status) {
		a.error(w, http.StatusBadRequest, "bad_request", "status must be not_started, in_progress or completed")
		return
	}

	var ownedNodeID string
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectNodeForUser, nodeID, userID).Scan(&ownedNodeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "node not found")
			return
		}
		a.Logger.Error().Err(err).Msg("check node ownership")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update progress")
		return
	}

	var completedAt *time.Time
	if req.Status == string(domain.ProgressCompleted) {
		now := time.Now().UTC()
		completedAt = &now
	}

	var out progressDTO
	out.NodeID = nodeID
	var id string
	err = a.SQL.QueryRow(r.Context(), sqlinline.QUpsertProgress, userID, nodeID, req.Status, completedAt).
		Scan(&id, &out.Status, &out.CompletedAt)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert node progress")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update progress")
		return
	}
	a.json(w, http.StatusOK, out)
}
