package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"careerpath/internal/domain"
)

const (
	geminiProviderName = "gemini"
	openAIProviderName = "openai"
)

func parseModelPayload[T any](raw string) (T, error) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, fmt.Errorf("%w: empty payload", domain.ErrMalformedResponse)
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return decoded, nil
}

// extractJSONFragment strips markdown code fences and any prose around the
// outermost JSON value. Providers regularly wrap JSON answers in ```json
// fences even when asked not to.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

func generationError(provider string, err error) error {
	if errors.Is(err, domain.ErrMalformedResponse) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrGenerationFailed, provider, err)
}
