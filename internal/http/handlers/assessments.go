package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/domain"
	"careerpath/internal/sqlinline"
)

type assessmentDTO struct {
	ID             string                      `json:"id"`
	QuizScore      float64                     `json:"quiz_score"`
	Questions      []domain.AssessmentQuestion `json:"questions"`
	Category       string                      `json:"category"`
	ImprovementTip string                      `json:"improvement_tip,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
}

type assessmentCreateRequest struct {
	QuizScore      float64                     `json:"quiz_score"`
	Questions      []domain.AssessmentQuestion `json:"questions"`
	Category       string                      `json:"category"`
	ImprovementTip string                      `json:"improvement_tip"`
}

// AssessmentCreate records one finished quiz run.
func (a *App) AssessmentCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req assessmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "category is required")
		return
	}
	if req.QuizScore < 0 || req.QuizScore > 100 {
		a.error(w, http.StatusBadRequest, "bad_request", "quiz_score must be between 0 and 100")
		return
	}
	questions := req.Questions
	if questions == nil {
		questions = []domain.AssessmentQuestion{}
	}
	encoded, err := json.Marshal(questions)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid questions payload")
		return
	}

	var id string
	var createdAt time.Time
	err = a.SQL.QueryRow(r.Context(), sqlinline.QInsertAssessment,
		userID, req.QuizScore, encoded, req.Category, req.ImprovementTip).
		Scan(&id, &createdAt)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert assessment")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save assessment")
		return
	}
	a.json(w, http.StatusCreated, assessmentDTO{
		ID:             id,
		QuizScore:      req.QuizScore,
		Questions:      questions,
		Category:       req.Category,
		ImprovementTip: req.ImprovementTip,
		CreatedAt:      createdAt,
	})
}

// AssessmentList returns the caller's quiz history, newest first.
func (a *App) AssessmentList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAssessments, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list assessments")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list assessments")
		return
	}
	defer rows.Close()
	out := make([]assessmentDTO, 0, 8)
	for rows.Next() {
		var d assessmentDTO
		var encoded []byte
		if err := rows.Scan(&d.ID, &d.QuizScore, &encoded, &d.Category, &d.ImprovementTip, &d.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("scan assessment row")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list assessments")
			return
		}
		if err := json.Unmarshal(encoded, &d.Questions); err != nil {
			a.Logger.Error().Err(err).Str("assessment_id", d.ID).Msg("decode assessment questions")
			d.Questions = []domain.AssessmentQuestion{}
		}
		if d.Questions == nil {
			d.Questions = []domain.AssessmentQuestion{}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("iterate assessment rows")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list assessments")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"assessments": out})
}
