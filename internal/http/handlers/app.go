package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"careerpath/internal/domain"
	"careerpath/internal/infra"
	"careerpath/internal/infra/geoip"
	"careerpath/internal/middleware"
	"careerpath/internal/providers/prompt"
	"careerpath/internal/sqlinline"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	SQL       infra.SQLExecutor
	Logger    infra.Logger
	Cfg       *infra.Config
	Generator prompt.Generator
	GeoIP     geoip.CountryResolver
}

func NewApp(sql infra.SQLExecutor, logger infra.Logger, cfg *infra.Config, generator prompt.Generator, geo geoip.CountryResolver) *App {
	return &App{SQL: sql, Logger: logger, Cfg: cfg, Generator: generator, GeoIP: geo}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) secureCookies() bool {
	return a.Cfg == nil || !a.Cfg.IsDevelopment()
}

// loadUser fetches the full account row for prompt building and profile reads.
func (a *App) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	return scanUser(a.SQL.QueryRow(ctx, sqlinline.QSelectUserByID, userID))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, &u.Bio,
		&u.Industry, &u.Experience, &u.Skills, &u.LinkedIn, &u.GitHub,
		&u.Plan, &u.Credits, &u.RoadmapCompleted, &u.CurrentStreak,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// isUUID guards path parameters before they reach a ::uuid cast, so a
// malformed id reads as a missing row rather than a database error.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
