package prompt

import (
	"context"
	"fmt"

	"careerpath/internal/domain/jsoncfg"
	"careerpath/internal/infra"
)

// Profile carries the user attributes generation prompts are built from.
type Profile struct {
	Bio        string
	Skills     []string
	Industry   string
	Experience string
}

// ChatTurn is one prior transcript message sent as conversation history.
type ChatTurn struct {
	Role    string
	Content string
}

// Generator is the boundary to the external text-generation collaborator.
// Implementations return errors wrapped around domain.ErrGenerationFailed
// for transport/API failures and domain.ErrMalformedResponse when the
// completion text does not parse into the expected shape.
type Generator interface {
	GenerateRoadmap(ctx context.Context, profile Profile, targetRole string) (*jsoncfg.RoadmapPayload, error)
	SuggestJobs(ctx context.Context, profile Profile) ([]jsoncfg.JobSuggestion, error)
	Chat(ctx context.Context, history []ChatTurn, message, locale string) (string, error)
	ImproveText(ctx context.Context, text string) (string, error)
}

// New selects the configured provider.
func New(cfg *infra.Config) (Generator, error) {
	switch cfg.PromptProvider {
	case "gemini":
		return NewGeminiGenerator(GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	case "openai":
		return NewOpenAIGenerator(OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
		})
	}
	return nil, fmt.Errorf("unsupported prompt provider %q", cfg.PromptProvider)
}
