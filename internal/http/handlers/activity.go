package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"careerpath/internal/middleware"
	"careerpath/internal/sqlinline"
)

type activityCreateRequest struct {
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

type activityDTO struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int       `json:"duration_seconds"`
	Country         string    `json:"country,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActivityCreate records one study session reported by the client. The
// country is resolved from the caller's IP when a GeoIP database is loaded.
func (a *App) ActivityCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req activityCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.StartedAt.IsZero() || req.EndedAt.IsZero() || !req.EndedAt.After(req.StartedAt) {
		a.error(w, http.StatusBadRequest, "bad_request", "ended_at must be after started_at")
		return
	}
	duration := int(req.EndedAt.Sub(req.StartedAt).Seconds())
	country := a.resolveCountry(r)

	var d activityDTO
	d.StartedAt = req.StartedAt
	d.EndedAt = req.EndedAt
	d.DurationSeconds = duration
	d.Country = country
	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertActivity,
		userID, req.StartedAt, req.EndedAt, duration, country).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert activity log")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record activity")
		return
	}
	a.json(w, http.StatusCreated, d)
}

// ActivityList returns the caller's most recent study sessions.
func (a *App) ActivityList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListActivity, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list activity logs")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list activity")
		return
	}
	defer rows.Close()
	out := make([]activityDTO, 0, 16)
	for rows.Next() {
		var d activityDTO
		if err := rows.Scan(&d.ID, &d.StartedAt, &d.EndedAt, &d.DurationSeconds, &d.Country, &d.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("scan activity row")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list activity")
			return
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("iterate activity rows")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list activity")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"activity": out})
}

func (a *App) resolveCountry(r *http.Request) string {
	if hint := r.Header.Get("X-Country-Code"); hint != "" {
		return hint
	}
	if a.GeoIP == nil {
		return ""
	}
	code, err := a.GeoIP.CountryCode(middleware.ClientIP(r))
	if err != nil {
		a.Logger.Debug().Err(err).Msg("geoip lookup")
		return ""
	}
	return code
}
