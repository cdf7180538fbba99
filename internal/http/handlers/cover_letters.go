package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"careerpath/internal/domain"
	"careerpath/internal/sqlinline"
)

type coverLetterDTO struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	JobDescription string    `json:"job_description,omitempty"`
	CompanyName    string    `json:"company_name"`
	JobTitle       string    `json:"job_title"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type coverLetterCreateRequest struct {
	Content        string `json:"content"`
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	Status         string `json:"status"`
}

// CoverLetterCreate stores a new letter. Status defaults to draft.
func (a *App) CoverLetterCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req coverLetterCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if req.Content == "" || req.CompanyName == "" || req.JobTitle == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content, company_name and job_title are required")
		return
	}
	if req.Status == "" {
		req.Status = string(domain.CoverLetterDraft)
	}
	if !domain.ValidCoverLetterStatus(req.Status) {
		a.error(w, http.StatusBadRequest, "bad_request", "status must be draft or completed")
		return
	}

	var id string
	var createdAt time.Time
	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertCoverLetter,
		userID, req.Content, req.JobDescription, req.CompanyName, req.JobTitle, req.Status).
		Scan(&id, &createdAt)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert cover letter")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save cover letter")
		return
	}
	a.json(w, http.StatusCreated, coverLetterDTO{
		ID:             id,
		Content:        req.Content,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Status:         req.Status,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	})
}

// CoverLetterList returns the caller's letters, newest first.
func (a *App) CoverLetterList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListCoverLetters, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list cover letters")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list cover letters")
		return
	}
	defer rows.Close()
	letters := make([]coverLetterDTO, 0, 8)
	for rows.Next() {
		var d coverLetterDTO
		if err := rows.Scan(&d.ID, &d.Content, &d.JobDescription, &d.CompanyName,
			&d.JobTitle, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("scan cover letter row")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list cover letters")
			return
		}
		letters = append(letters, d)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("iterate cover letter rows")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list cover letters")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"cover_letters": letters})
}

// CoverLetterGet returns one letter owned by the caller.
func (a *App) CoverLetterGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	letterID := chi.URLParam(r, "letterID")
	if !isUUID(letterID) {
		a.error(w, http.StatusNotFound, "not_found", "cover letter not found")
		return
	}
	var d coverLetterDTO
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectCoverLetter, letterID, userID).
		Scan(&d.ID, &d.Content, &d.JobDescription, &d.CompanyName,
			&d.JobTitle, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "cover letter not found")
			return
		}
		a.Logger.Error().Err(err).Msg("select cover letter")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load cover letter")
		return
	}
	a.json(w, http.StatusOK, d)
}

// CoverLetterDelete removes one letter owned by the caller.
func (a *App) CoverLetterDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	letterID := chi.URLParam(r, "letterID")
	if !isUUID(letterID) {
		a.error(w, http.StatusNotFound, "not_found", "cover letter not found")
		return
	}
	tag, err := a.SQL.Exec(r.Context(), sqlinline.QDeleteCoverLetter, letterID, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("delete cover letter")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete cover letter")
		return
	}
	if tag.RowsAffected() == 0 {
		a.error(w, http.StatusNotFound, "not_found", "cover letter not found")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}
