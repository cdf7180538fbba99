package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"careerpath/internal/domain"
	"careerpath/internal/sqlinline"
)

func TestProfileUpdate(t *testing.T) {
	var gotSkills []string
	sql := &stubSQL{
		queryRow: func(query string, args []any) pgx.Row {
			if query != sqlinline.QUpdateUserProfile {
				return stubRow{err: pgx.ErrNoRows}
			}
			gotSkills = args[6].([]string)
			return stubRow{vals: userRowVals("u1", func(u *domain.User) {
				u.Name = args[1].(string)
				u.Skills = gotSkills
				u.Experience = args[5].(string)
			})}
		},
	}
	app := newTestApp(sql, nil)
	rec := httptest.NewRecorder()
	app.ProfileUpdate(rec, authedRequest(http.MethodPut, "/v1/profile",
		strings.NewReader(`{"name":"Ada Lovelace","experience":"5-10 years","skills":["Go","  ","SQL "]}`), "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(gotSkills) != 2 || gotSkills[0] != "Go" || gotSkills[1] != "SQL" {
		t.Fatalf("skills = %v, want blank entries dropped and values trimmed", gotSkills)
	}
	var resp struct {
		User userDTO `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.User.Name != "Ada Lovelace" || resp.User.Experience != "5-10 years" {
		t.Fatalf("user = %+v", resp.User)
	}
}

func TestProfileUpdateValidation(t *testing.T) {
	app := newTestApp(&stubSQL{}, nil)
	for _, body := range []string{
		`{"name":""}`,
		`{"name":"Ada","experience":"veteran"}`,
	} {
		rec := httptest.NewRecorder()
		app.ProfileUpdate(rec, authedRequest(http.MethodPut, "/v1/profile", strings.NewReader(body), "u1"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d", body, rec.Code)
		}
	}
}

func TestCreditsDebit(t *testing.T) {
	t.Run("spends one credit", func(t *testing.T) {
		sql := &stubSQL{
			queryRow: func(query string, args []any) pgx.Row {
				return stubRow{vals: []any{4}}
			},
		}
		app := newTestApp(sql, nil)
		rec := httptest.NewRecorder()
		app.CreditsDebit(rec, authedRequest(http.MethodPost, "/v1/user/credits", nil, "u1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp map[string]int
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp["credits"] != 4 {
			t.Fatalf("credits = %d", resp["credits"])
		}
	})

	t.Run("empty balance", func(t *testing.T) {
		app := newTestApp(&stubSQL{}, nil)
		rec := httptest.NewRecorder()
		app.CreditsDebit(rec, authedRequest(http.MethodPost, "/v1/user/credits", nil, "u1"))
		if rec.Code != http.StatusPaymentRequired {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "insufficient_credits") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})
}
