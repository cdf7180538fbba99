package handlers

import (
	"errors"
	"net/http"

	"careerpath/internal/domain"
	"careerpath/internal/providers/prompt"
)

// JobSuggestions returns generated job matches based on the user's profile.
func (a *App) JobSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	u, err := a.loadUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "account no longer exists")
			return
		}
		a.Logger.Error().Err(err).Msg("select user by id")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}

	suggestions, err := a.Generator.SuggestJobs(r.Context(), prompt.Profile{
		Bio:        u.Bio,
		Skills:     u.Skills,
		Industry:   u.Industry,
		Experience: u.Experience,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("suggest jobs")
		if errors.Is(err, domain.ErrMalformedResponse) {
			a.error(w, http.StatusInternalServerError, "malformed_response", "generator returned unusable suggestions")
			return
		}
		a.error(w, http.StatusInternalServerError, "generation_failed", "job suggestions failed")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
