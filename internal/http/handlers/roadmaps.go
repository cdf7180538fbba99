package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"careerpath/internal/domain"
	"careerpath/internal/domain/jsoncfg"
	"careerpath/internal/infra"
	"careerpath/internal/providers/prompt"
	"careerpath/internal/sqlinline"
)

type generateRequest struct {
	TargetRole string `json:"targetRole"`
}

type roadmapDTO struct {
	ID          string    `json:"id"`
	TargetRole  string    `json:"targetRole"`
	GeneratedAt time.Time `json:"generatedAt"`
	Version     int       `json:"version"`
}

type roadmapNodeDTO struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Details   string            `json:"details"`
	Resources []domain.Resource `json:"resources"`
	Position  int               `json:"position"`
	Progress  string            `json:"progress"`
}

type roadmapEdgeDTO struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// RoadmapGenerate builds a personalized roadmap from the user's profile and
// the requested target role, then persists the whole graph atomically.
// Each user gets exactly one roadmap; a second generation attempt conflicts.
func (a *App) RoadmapGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.TargetRole = strings.TrimSpace(req.TargetRole)
	if req.TargetRole == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "targetRole is required")
		return
	}

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

	payload, err := a.Generator.GenerateRoadmap(r.Context(), prompt.Profile{
		Bio:        u.Bio,
		Skills:     u.Skills,
		Industry:   u.Industry,
		Experience: u.Experience,
	}, req.TargetRole)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("generate roadmap")
		if errors.Is(err, domain.ErrMalformedResponse) {
			a.error(w, http.StatusInternalServerError, "malformed_response", "generator returned an unusable roadmap")
			return
		}
		a.error(w, http.StatusInternalServerError, "generation_failed", "roadmap generation failed")
		return
	}

	var roadmapID string
	err = a.SQL.WithTx(r.Context(), func(tx infra.SQLExecutor) error {
		var generatedAt time.Time
		var version int
		row := tx.QueryRow(r.Context(), sqlinline.QInsertRoadmap, userID, req.TargetRole)
		if err := row.Scan(&roadmapID, &generatedAt, &version); err != nil {
			return err
		}

		// The generator numbers nodes itself; remember which database row
		// each generated id landed in so edges can be rewritten.
		idMap := make(map[int]string, len(payload.Nodes))
		for i, n := range payload.Nodes {
			resources := n.Resources
			if resources == nil {
				resources = []jsoncfg.ResourceEntry{}
			}
			encoded, err := json.Marshal(resources)
			if err != nil {
				return err
			}
			var nodeID string
			if err := tx.QueryRow(r.Context(), sqlinline.QInsertNode,
				roadmapID, n.Title, n.Details, encoded, i).Scan(&nodeID); err != nil {
				return err
			}
			idMap[n.ID] = nodeID
		}

		skipped := 0
		for _, dep := range payload.Dependencies {
			sourceID, okSource := idMap[dep.Source]
			targetID, okTarget := idMap[dep.Target]
			if !okSource || !okTarget {
				skipped++
				continue
			}
			if _, err := tx.Exec(r.Context(), sqlinline.QInsertNodeDependency, targetID, sourceID); err != nil {
				return err
			}
		}
		if skipped > 0 {
			a.Logger.Warn().Int("skipped", skipped).Str("user_id", userID).
				Msg("dropped dependencies referencing unknown node ids")
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			a.error(w, http.StatusConflict, "already_exists", "a roadmap already exists for this user")
			return
		}
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("persist roadmap")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save roadmap")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{"roadmapId": roadmapID})
}

// RoadmapStatus reports whether the user's roadmap exists yet. The client
// polls this after kicking off generation.
func (a *App) RoadmapStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var rm domain.Roadmap
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectRoadmapByUser, userID).
		Scan(&rm.ID, &rm.TargetRole, &rm.GeneratedAt, &rm.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.json(w, http.StatusOK, map[string]any{"exists": false})
			return
		}
		a.Logger.Error().Err(err).Msg("select roadmap by user")
		a.error(w, http.StatusInternalServerError, "internal", "failed to check roadmap status")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"exists": true, "roadmapId": rm.ID})
}

// RoadmapFetch returns the full graph with each node annotated by the
// caller's progress. Nodes without a progress row read as not_started.
func (a *App) RoadmapFetch(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	ctx := r.Context()

	var rm domain.Roadmap
	err := a.SQL.QueryRow(ctx, sqlinline.QSelectRoadmapByUser, userID).
		Scan(&rm.ID, &rm.TargetRole, &rm.GeneratedAt, &rm.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "no roadmap generated yet")
			return
		}
		a.Logger.Error().Err(err).Msg("select roadmap by user")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load roadmap")
		return
	}

	progress, err := a.progressByNode(ctx, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("select progress by user")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load roadmap")
		return
	}

	rows, err := a.SQL.Query(ctx, sqlinline.QSelectNodesByRoadmap, rm.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("select nodes by roadmap")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load roadmap")
		return
	}
	defer rows.Close()
	nodes := make([]roadmapNodeDTO, 0, 16)
	for rows.Next() {
		var n roadmapNodeDTO
		var encoded []byte
		if err := rows.Scan(&n.ID, &n.Title, &n.Details, &encoded, &n.Position); err != nil {
			a.Logger.Error().Err(err).Msg("scan node row")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load roadmap")
			return
		}
		if err := json.Unmarshal(encoded, &n.Resources); err != nil {
			a.Logger.Error().Err(err).Str("node_id", n.ID).Msg("decode node resources")
			n.Resources = []domain.Resource{}
		}
		if n.Resources == nil {
			n.Resources = []domain.Resource{}
		}
		n.Progress = string(domain.ProgressNotStarted)
		if st, ok := progress[n.ID]; ok {
			n.Progress = st
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("iterate node rows")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load roadmap")
		return
	}

	edges, err := a.roadmapEdges(ctx, rm.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("select dependencies by roadmap")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load roadmap")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"roadmap":      roadmapDTO{ID: rm.ID, TargetRole: rm.TargetRole, GeneratedAt: rm.GeneratedAt, Version: rm.Version},
		"nodes":        nodes,
		"dependencies": edges,
	})
}

func (a *App) progressByNode(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := a.SQL.Query(ctx, sqlinline.QSelectProgressByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var nodeID, status string
		if err := rows.Scan(&nodeID, &status); err != nil {
			return nil, err
		}
		out[nodeID] = status
	}
	return out, rows.Err()
}

func (a *App) roadmapEdges(ctx context.Context, roadmapID string) ([]roadmapEdgeDTO, error) {
	rows, err := a.SQL.Query(ctx, sqlinline.QSelectDependenciesByRoadmap, roadmapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	edges := make([]roadmapEdgeDTO, 0, 16)
	for rows.Next() {
		var nodeID, dependencyID string
		if err := rows.Scan(&nodeID, &dependencyID); err != nil {
			return nil, err
		}
		// dependency_id must be completed before node_id: the edge points
		// from prerequisite to dependent.
		edges = append(edges, roadmapEdgeDTO{Source: dependencyID, Target: nodeID})
	}
	return edges, rows.Err()
}
