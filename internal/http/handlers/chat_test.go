package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"careerpath/internal/domain"
	"careerpath/internal/providers/prompt"
	"careerpath/internal/sqlinline"
)

func transcript(n int) []byte {
	msgs := make([]domain.ChatMessage, 0, n)
	for i := 0; i < n; i++ {
		role := domain.ChatRoleUser
		if i%2 == 1 {
			role = domain.ChatRoleAssistant
		}
		msgs = append(msgs, domain.ChatMessage{
			Role:      role,
			Content:   fmt.Sprintf("turn %d", i),
			Timestamp: time.Date(2026, 2, 1, 0, i, 0, 0, time.UTC),
		})
	}
	encoded, _ := json.Marshal(msgs)
	return encoded
}

func TestChatSendCapsTranscript(t *testing.T) {
	var saved []domain.ChatMessage
	var gotHistory []prompt.ChatTurn
	sql := &stubSQL{
		queryRow: func(query string, args []any) pgx.Row {
			switch query {
			case sqlinline.QSelectChatByUser:
				return stubRow{vals: []any{"c1", transcript(14)}}
			case sqlinline.QUpsertChat:
				if err := json.Unmarshal(args[1].([]byte), &saved); err != nil {
					t.Fatal(err)
				}
				return stubRow{vals: []any{"c1"}}
			}
			return stubRow{err: pgx.ErrNoRows}
		},
	}
	gen := &fakeGenerator{
		chat: func(history []prompt.ChatTurn, message, locale string) (string, error) {
			gotHistory = history
			if message != "What should I learn next?" {
				t.Fatalf("message = %q", message)
			}
			if locale != "en" {
				t.Fatalf("locale = %q", locale)
			}
			return "Keep going with SQL.", nil
		},
	}

	app := newTestApp(sql, gen)
	rec := httptest.NewRecorder()
	app.ChatSend(rec, authedRequest(http.MethodPost, "/v1/chat",
		strings.NewReader(`{"message":"What should I learn next?"}`), "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(gotHistory) != 14 {
		t.Fatalf("history length = %d, want 14", len(gotHistory))
	}
	// 14 stored + 2 new turns, capped at 15: the oldest turn falls off.
	if len(saved) != domain.MaxChatMessages {
		t.Fatalf("saved transcript length = %d, want %d", len(saved), domain.MaxChatMessages)
	}
	if saved[0].Content != "turn 1" {
		t.Fatalf("oldest kept turn = %q", saved[0].Content)
	}
	last := saved[len(saved)-1]
	if last.Role != domain.ChatRoleAssistant || last.Content != "Keep going with SQL." {
		t.Fatalf("last turn = %+v", last)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["reply"] != "Keep going with SQL." {
		t.Fatalf("reply = %q", resp["reply"])
	}
}

func TestChatSendFirstMessage(t *testing.T) {
	var saved []domain.ChatMessage
	sql := &stubSQL{
		queryRow: func(query string, args []any) pgx.Row {
			if query == sqlinline.QUpsertChat {
				if err := json.Unmarshal(args[1].([]byte), &saved); err != nil {
					t.Fatal(err)
				}
				return stubRow{vals: []any{"c1"}}
			}
			return stubRow{err: pgx.ErrNoRows}
		},
	}
	gen := &fakeGenerator{
		chat: func(history []prompt.ChatTurn, message, locale string) (string, error) {
			if len(history) != 0 {
				t.Fatalf("history length = %d, want 0", len(history))
			}
			return "Hello!", nil
		},
	}

	app := newTestApp(sql, gen)
	rec := httptest.NewRecorder()
	app.ChatSend(rec, authedRequest(http.MethodPost, "/v1/chat",
		strings.NewReader(`{"message":"Hi"}`), "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(saved) != 2 || saved[0].Role != domain.ChatRoleUser || saved[1].Role != domain.ChatRoleAssistant {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestChatSendGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{
		chat: func([]prompt.ChatTurn, string, string) (string, error) {
			return "", fmt.Errorf("openai: %w", domain.ErrGenerationFailed)
		},
	}
	app := newTestApp(&stubSQL{}, gen)
	rec := httptest.NewRecorder()
	app.ChatSend(rec, authedRequest(http.MethodPost, "/v1/chat",
		strings.NewReader(`{"message":"Hi"}`), "u1"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestChatTranscriptEmpty(t *testing.T) {
	app := newTestApp(&stubSQL{}, nil)
	rec := httptest.NewRecorder()
	app.ChatTranscript(rec, authedRequest(http.MethodGet, "/v1/chat", nil, "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"messages":[]}` {
		t.Fatalf("body = %s", body)
	}
}
