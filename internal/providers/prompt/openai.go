package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/domain"
	"careerpath/internal/domain/jsoncfg"
)

type OpenAIOptions struct {
	APIKey       string
	Model        string
	BaseURL      string
	Organization string
	HTTPClient   *http.Client
}

type OpenAIGenerator struct {
	apiKey       string
	model        string
	baseURL      string
	organization string
	client       *http.Client
}

const openAIDefaultTimeout = 60 * time.Second

const chatSystemPrompt = "You are a helpful career coach assistant."

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIGenerator(opts OpenAIOptions) (*OpenAIGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAIGenerator{
		apiKey:       strings.TrimSpace(opts.APIKey),
		model:        model,
		baseURL:      baseURL,
		organization: strings.TrimSpace(opts.Organization),
		client:       client,
	}, nil
}

func (o *OpenAIGenerator) GenerateRoadmap(ctx context.Context, profile Profile, targetRole string) (*jsoncfg.RoadmapPayload, error) {
	text, err := o.complete(ctx, []openAIMessage{
		{Role: "system", Content: "You are an expert career coach that only responds with valid JSON."},
		{Role: "user", Content: buildRoadmapPrompt(profile, targetRole)},
	}, 0.5, true)
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

func (o *OpenAIGenerator) SuggestJobs(ctx context.Context, profile Profile) ([]jsoncfg.JobSuggestion, error) {
	text, err := o.complete(ctx, []openAIMessage{
		{Role: "system", Content: "You are an expert career coach that only responds with valid JSON."},
		{Role: "user", Content: buildJobSuggestionsPrompt(profile)},
	}, 0.7, false)
	if err != nil {
		return nil, err
	}
	suggestions, err := parseModelPayload[[]jsoncfg.JobSuggestion](text)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (o *OpenAIGenerator) Chat(ctx context.Context, history []ChatTurn, message, locale string) (string, error) {
	messages := make([]openAIMessage, 0, len(history)+2)
	messages = append(messages, openAIMessage{Role: "system", Content: chatSystemPrompt})
	for _, turn := range history {
		messages = append(messages, openAIMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: buildChatPrompt(message, locale)})
	return o.complete(ctx, messages, 0.9, false)
}

func (o *OpenAIGenerator) ImproveText(ctx context.Context, text string) (string, error) {
	out, err := o.complete(ctx, []openAIMessage{
		{Role: "user", Content: buildImproveTextPrompt(text)},
	}, 0.4, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIGenerator) complete(ctx context.Context, messages []openAIMessage, temperature float64, jsonMode bool) (string, error) {
	payload := openAIChatRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: temperature,
	}
	if jsonMode {
		payload.ResponseFormat = &openAIFormat{Type: "json_object"}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", generationError(openAIProviderName, err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", generationError(openAIProviderName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", o.organization)
	}
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", generationError(openAIProviderName, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", generationError(openAIProviderName, fmt.Errorf("status %d", resp.StatusCode))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", generationError(openAIProviderName, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", domain.ErrMalformedResponse)
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: openai returned empty content", domain.ErrMalformedResponse)
	}
	return text, nil
}

var _ Generator = (*OpenAIGenerator)(nil)
