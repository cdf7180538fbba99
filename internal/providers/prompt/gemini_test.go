package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerpath/internal/domain"
)

func geminiTestServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.WriteHeader(status)
		if status >= 300 {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
			}},
		})
	}))
}

func newTestGemini(t *testing.T, baseURL string) *GeminiGenerator {
	t.Helper()
	g, err := NewGeminiGenerator(GeminiOptions{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewGeminiGenerator: %v", err)
	}
	return g
}

func TestGeminiGenerateRoadmapParsesFencedJSON(t *testing.T) {
	body := "```json\n" + `{
		"nodes": [
			{"id": 1, "title": "Fundamentals of JavaScript", "details": "Start here.", "resources": [{"title": "MDN", "url": "https://developer.mozilla.org"}]},
			{"id": 2, "title": "Introduction to React", "details": "Components and props.", "resources": []}
		],
		"dependencies": [{"source": 1, "target": 2}]
	}` + "\n```"
	srv := geminiTestServer(t, http.StatusOK, body)
	defer srv.Close()

	g := newTestGemini(t, srv.URL)
	payload, err := g.GenerateRoadmap(context.Background(), Profile{Skills: []string{"React"}}, "Frontend Developer")
	if err != nil {
		t.Fatalf("GenerateRoadmap: %v", err)
	}
	if len(payload.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(payload.Nodes))
	}
	if len(payload.Dependencies) != 1 {
		t.Fatalf("dependencies = %d, want 1", len(payload.Dependencies))
	}
	if payload.Nodes[0].Resources[0].URL != "https://developer.mozilla.org" {
		t.Fatalf("resource url = %q", payload.Nodes[0].Resources[0].URL)
	}
}

func TestGeminiGenerateRoadmapUpstreamFailure(t *testing.T) {
	srv := geminiTestServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	g := newTestGemini(t, srv.URL)
	_, err := g.GenerateRoadmap(context.Background(), Profile{}, "Frontend Developer")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGeminiGenerateRoadmapMalformedText(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, "sorry, I cannot help with that")
	defer srv.Close()

	g := newTestGemini(t, srv.URL)
	_, err := g.GenerateRoadmap(context.Background(), Profile{}, "Frontend Developer")
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestGeminiGenerateRoadmapEmptyNodes(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, `{"nodes":[],"dependencies":[]}`)
	defer srv.Close()

	g := newTestGemini(t, srv.URL)
	_, err := g.GenerateRoadmap(context.Background(), Profile{}, "Frontend Developer")
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestGeminiSuggestJobs(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, `[{"title":"Frontend Developer","description":"Builds UIs."},{"title":"UX Engineer","description":"Bridges design and code."}]`)
	defer srv.Close()

	g := newTestGemini(t, srv.URL)
	suggestions, err := g.SuggestJobs(context.Background(), Profile{Industry: "Technology"})
	if err != nil {
		t.Fatalf("SuggestJobs: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(suggestions))
	}
	if suggestions[0].Title != "Frontend Developer" {
		t.Fatalf("title = %q", suggestions[0].Title)
	}
}

func TestGeminiChatReturnsPlainText(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, "Start by strengthening your portfolio.")
	defer srv.Close()

	g := newTestGemini(t, srv.URL)
	reply, err := g.Chat(context.Background(), []ChatTurn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}, "What next?", "en")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Start by strengthening your portfolio." {
		t.Fatalf("reply = %q", reply)
	}
}
