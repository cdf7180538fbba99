package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"careerpath/internal/domain"
	"careerpath/internal/domain/jsoncfg"
	"careerpath/internal/infra"
	"careerpath/internal/middleware"
	"careerpath/internal/providers/prompt"
)

// stubSQL scripts SQL behavior per query text. Unscripted reads answer with
// pgx.ErrNoRows, unscripted writes succeed.
type stubSQL struct {
	queryRow func(query string, args []any) pgx.Row
	query    func(query string, args []any) (pgx.Rows, error)
	exec     func(query string, args []any) (pgconn.CommandTag, error)
}

func (s *stubSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRow == nil {
		return stubRow{err: pgx.ErrNoRows}
	}
	return s.queryRow(query, args)
}

func (s *stubSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.query == nil {
		return &stubRows{}, nil
	}
	return s.query(query, args)
}

func (s *stubSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.exec == nil {
		return pgconn.CommandTag{}, nil
	}
	return s.exec(query, args)
}

func (s *stubSQL) WithTx(ctx context.Context, fn func(infra.SQLExecutor) error) error {
	return fn(s)
}

// stubRow yields one scripted row, assigning values positionally.
type stubRow struct {
	vals []any
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("stub row has %d values, scan wants %d", len(r.vals), len(dest))
	}
	for i := range dest {
		if err := assignValue(dest[i], r.vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// stubRows yields scripted rows through the pgx.Rows interface.
type stubRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	return stubRow{vals: r.rows[r.idx-1]}.Scan(dest...)
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, errors.New("not implemented") }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func assignValue(dest, val any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("scan destination must be a non-nil pointer, got %T", dest)
	}
	elem := dv.Elem()
	if val == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}
	v := reflect.ValueOf(val)
	switch {
	case v.Type().AssignableTo(elem.Type()):
		elem.Set(v)
	case v.Type().ConvertibleTo(elem.Type()) && elem.Kind() != reflect.Pointer:
		elem.Set(v.Convert(elem.Type()))
	case elem.Kind() == reflect.Pointer && v.Type().AssignableTo(elem.Type().Elem()):
		p := reflect.New(elem.Type().Elem())
		p.Elem().Set(v)
		elem.Set(p)
	default:
		return fmt.Errorf("cannot assign %T to %s", val, elem.Type())
	}
	return nil
}

func newTestApp(sql infra.SQLExecutor, gen prompt.Generator) *App {
	return &App{
		SQL:    sql,
		Logger: zerolog.Nop(),
		Cfg: &infra.Config{
			AppEnv:     "development",
			JWTSecret:  "test-secret",
			SessionTTL: time.Hour,
		},
		Generator: gen,
	}
}

func authedRequest(method, target string, body io.Reader, userID string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

// userRowVals builds a scripted row in the column order the account
// queries select.
func userRowVals(id string, overrides func(u *domain.User)) []any {
	u := domain.User{
		ID:           id,
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "x",
		Industry:     "tech",
		Experience:   "2-5 years",
		Skills:       []string{"Go"},
		Plan:         domain.UserPlanBasic,
		Credits:      20,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if overrides != nil {
		overrides(&u)
	}
	var lastLogin any
	if u.LastLogin != nil {
		lastLogin = *u.LastLogin
	}
	return []any{
		u.ID, u.Name, u.Email, u.PasswordHash, u.Image, u.Bio,
		u.Industry, u.Experience, u.Skills, u.LinkedIn, u.GitHub,
		string(u.Plan), u.Credits, u.RoadmapCompleted, u.CurrentStreak,
		lastLogin, u.CreatedAt, u.UpdatedAt,
	}
}

// fakeGenerator scripts the text-generation boundary.
type fakeGenerator struct {
	roadmap func(profile prompt.Profile, targetRole string) (*jsoncfg.RoadmapPayload, error)
	jobs    func(profile prompt.Profile) ([]jsoncfg.JobSuggestion, error)
	chat    func(history []prompt.ChatTurn, message, locale string) (string, error)
	improve func(text string) (string, error)
}

func (f *fakeGenerator) GenerateRoadmap(ctx context.Context, profile prompt.Profile, targetRole string) (*jsoncfg.RoadmapPayload, error) {
	if f.roadmap == nil {
		return nil, errors.New("roadmap not scripted")
	}
	return f.roadmap(profile, targetRole)
}

func (f *fakeGenerator) SuggestJobs(ctx context.Context, profile prompt.Profile) ([]jsoncfg.JobSuggestion, error) {
	if f.jobs == nil {
		return nil, errors.New("jobs not scripted")
	}
	return f.jobs(profile)
}

func (f *fakeGenerator) Chat(ctx context.Context, history []prompt.ChatTurn, message, locale string) (string, error) {
	if f.chat == nil {
		return "", errors.New("chat not scripted")
	}
	return f.chat(history, message, locale)
}

func (f *fakeGenerator) ImproveText(ctx context.Context, text string) (string, error) {
	if f.improve == nil {
		return "", errors.New("improve not scripted")
	}
	return f.improve(text)
}
