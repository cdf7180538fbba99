package handlers

import (
	"net/http"

	"careerpath/internal/sqlinline"
)

type statsDTO struct {
	NodesTotal       int     `json:"nodes_total"`
	NodesCompleted   int     `json:"nodes_completed"`
	AssessmentsTaken int     `json:"assessments_taken"`
	AverageScore     float64 `json:"average_score"`
	CoverLetters     int     `json:"cover_letters"`
	Credits          int     `json:"credits"`
}

// StatsSummary aggregates dashboard counters for the caller in one query.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var d statsDTO
	err := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary, userID).
		Scan(&d.NodesTotal, &d.NodesCompleted, &d.AssessmentsTaken, &d.AverageScore, &d.CoverLetters, &d.Credits)
	if err != nil {
		if isNoRows(err) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "account no longer exists")
			return
		}
		a.Logger.Error().Err(err).Msg("select stats summary")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, d)
}
