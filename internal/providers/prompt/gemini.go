package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careerpath/internal/domain"
	"careerpath/internal/domain/jsoncfg"
)

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type GeminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

const geminiDefaultTimeout = 60 * time.Second

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiGenerator(opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiGenerator{
		apiKey:  opts.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

func (g *GeminiGenerator) GenerateRoadmap(ctx context.Context, profile Profile, targetRole string) (*jsoncfg.RoadmapPayload, error) {
	text, err := g.generate(ctx, userTurn(buildRoadmapPrompt(profile, targetRole)), &geminiGenerationConfig{
		Temperature:      0.5,
		CandidateCount:   1,
		ResponseMimeType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	payload, err := parseModelPayload[jsoncfg.RoadmapPayload](text)
	if err != nil {
		return nil, err
	}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return &payload, nil
}

func (g *GeminiGenerator) SuggestJobs(ctx context.Context, profile Profile) ([]jsoncfg.JobSuggestion, error) {
	text, err := g.generate(ctx, userTurn(buildJobSuggestionsPrompt(profile)), &geminiGenerationConfig{
		Temperature:      0.7,
		CandidateCount:   1,
		ResponseMimeType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	suggestions, err := parseModelPayload[[]jsoncfg.JobSuggestion](text)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (g *GeminiGenerator) Chat(ctx context.Context, history []ChatTurn, message, locale string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: turn.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: buildChatPrompt(message, locale)}}})
	return g.generate(ctx, contents, &geminiGenerationConfig{
		Temperature:     0.9,
		CandidateCount:  1,
		MaxOutputTokens: 2048,
	})
}

func (g *GeminiGenerator) ImproveText(ctx context.Context, text string) (string, error) {
	out, err := g.generate(ctx, userTurn(buildImproveTextPrompt(text)), &geminiGenerationConfig{
		Temperature:    0.4,
		CandidateCount: 1,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *GeminiGenerator) generate(ctx context.Context, contents []geminiContent, cfg *geminiGenerationConfig) (string, error) {
	payload := geminiRequest{Contents: contents, GenerationConfig: cfg}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", generationError(geminiProviderName, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), &buf)
	if err != nil {
		return "", generationError(geminiProviderName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", generationError(geminiProviderName, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", generationError(geminiProviderName, fmt.Errorf("status %d", resp.StatusCode))
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", generationError(geminiProviderName, err)
	}
	text := extractGeminiText(out)
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned no text", domain.ErrMalformedResponse)
	}
	return text, nil
}

func (g *GeminiGenerator) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
}

func userTurn(text string) []geminiContent {
	return []geminiContent{{Role: "user", Parts: []geminiPart{{Text: text}}}}
}

func extractGeminiText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

var _ Generator = (*GeminiGenerator)(nil)
