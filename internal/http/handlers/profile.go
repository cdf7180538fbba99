package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"careerpath/internal/domain"
	"careerpath/internal/sqlinline"
)

type profileUpdateRequest struct {
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	Image      string   `json:"image"`
	Industry   string   `json:"industry"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	LinkedIn   string   `json:"linkedin"`
	GitHub     string   `json:"github"`
}

// ProfileUpdate replaces the mutable profile fields for the current user.
func (a *App) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	if !domain.ValidExperience(req.Experience) {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown experience range")
		return
	}
	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateUserProfile,
		userID, req.Name, req.Bio, req.Image, req.Industry, req.Experience,
		skills, req.LinkedIn, req.GitHub)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "account no longer exists")
			return
		}
		a.Logger.Error().Err(err).Msg("update user profile")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update profile")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": userToDTO(u)})
}

// CreditsDebit spends one credit. The update is conditional on a positive
// balance, so a concurrent double-spend can never push credits below zero.
func (a *App) CreditsDebit(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var remaining int
	err := a.SQL.QueryRow(r.Context(), sqlinline.QDebitCredit, userID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusPaymentRequired, "insufficient_credits", "no credits remaining")
			return
		}
		a.Logger.Error().Err(err).Msg("debit credit")
		a.error(w, http.StatusInternalServerError, "internal", "failed to debit credit")
		return
	}
	a.json(w, http.StatusOK, map[string]int{"credits": remaining})
}
