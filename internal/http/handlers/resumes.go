package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"careerpath/internal/domain"
	"careerpath/internal/sqlinline"
)

type resumeDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ATSScore  *int      `json:"ats_score,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func scanResume(row pgx.Row) (*resumeDTO, error) {
	var d resumeDTO
	err := row.Scan(&d.ID, &d.Content, &d.ATSScore, &d.Feedback, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ResumeGet returns the caller's stored resume.
func (a *App) ResumeGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	d, err := scanResume(a.SQL.QueryRow(r.Context(), sqlinline.QSelectResumeByUser, userID))
	if err != nil {
		if isNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "no resume saved yet")
			return
		}
		a.Logger.Error().Err(err).Msg("select resume")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load resume")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"resume": d})
}

type resumeSaveRequest struct {
	Content string `json:"content"`
}

// ResumeSave creates or replaces the caller's single resume document.
func (a *App) ResumeSave(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req resumeSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content is required")
		return
	}
	d, err := scanResume(a.SQL.QueryRow(r.Context(), sqlinline.QUpsertResume, userID, req.Content))
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert resume")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save resume")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"resume": d})
}

type improveRequest struct {
	Text string `json:"text"`
}

// ResumeImprove rewrites a resume fragment through the text generator
// without persisting anything.
func (a *App) ResumeImprove(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "text is required")
		return
	}
	improved, err := a.Generator.ImproveText(r.Context(), req.Text)
	if err != nil {
		a.Logger.Error().Err(err).Msg("improve resume text")
		if errors.Is(err, domain.ErrMalformedResponse) {
			a.error(w, http.StatusInternalServerError, "malformed_response", "generator returned an unusable rewrite")
			return
		}
		a.error(w, http.StatusInternalServerError, "generation_failed", "text improvement failed")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"improved": improved})
}
