package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSignAndVerifySession(t *testing.T) {
	token, err := SignSession(testSecret, "u1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	userID, err := VerifySession(testSecret, token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != "u1" {
		t.Fatalf("subject = %q, want u1", userID)
	}
}

func TestVerifySessionRejectsWrongSecret(t *testing.T) {
	token, err := SignSession(testSecret, "u1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifySession("other-secret", token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestVerifySessionRejectsExpiredToken(t *testing.T) {
	token, err := SignSession(testSecret, "u1", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifySession(testSecret, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAuthSessionMiddleware(t *testing.T) {
	var gotUserID string
	handler := AuthSession(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	token, err := SignSession(testSecret, "u1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("cookie", func(t *testing.T) {
		gotUserID = ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent || gotUserID != "u1" {
			t.Fatalf("status = %d, user = %q", rec.Code, gotUserID)
		}
	})

	t.Run("bearer fallback", func(t *testing.T) {
		gotUserID = ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent || gotUserID != "u1" {
			t.Fatalf("status = %d, user = %q", rec.Code, gotUserID)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestSessionCookieAttributes(t *testing.T) {
	c := SessionCookie("tok", "", time.Hour, true)
	if c.Name != SessionCookieName || !c.HttpOnly || !c.Secure {
		t.Fatalf("cookie = %+v", c)
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Fatalf("SameSite = %v", c.SameSite)
	}
	if c.MaxAge != 3600 {
		t.Fatalf("MaxAge = %d", c.MaxAge)
	}

	cleared := ExpiredSessionCookie("", true)
	if cleared.MaxAge != -1 || cleared.Value != "" {
		t.Fatalf("cleared cookie = %+v", cleared)
	}
}
