// Package assistant provides the code-suggestion provider, the archive
// summarizer and the stylesheet generator consumed by studio sessions.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrSuggestionFailure is returned when the provider call fails or its
// output cannot be used
var ErrSuggestionFailure = errors.New("suggestion failure")

// FallbackSummary is shown after an import when no summary is available
const FallbackSummary = "I've loaded your project from the zip file."

// Provider turns a prompt and/or an uploaded file into a suggestion
type Provider interface {
	Suggest(ctx context.Context, req types.SuggestionRequest) (*types.Suggestion, error)
}

// Summarizer describes an imported project from its file paths
type Summarizer interface {
	Summarize(ctx context.Context, paths []string) (string, error)
}

// StyleGenerator produces a stylesheet for a theme and layout description
type StyleGenerator interface {
	GenerateStyles(ctx context.Context, req StyleRequest) (string, error)
}

// Assistant bundles every collaborator a session talks to
type Assistant interface {
	Provider
	Summarizer
	StyleGenerator
}

// StyleRequest describes the theme to generate CSS for
type StyleRequest struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	AccentColor     string `json:"accentColor"`
	HeadlineFont    string `json:"headlineFont"`
	BodyFont        string `json:"bodyFont"`
	Layout          string `json:"layout"`
	Elements        string `json:"elements"`
}

// DefaultStyleRequest returns the studio theme with the given layout
// preferences
func DefaultStyleRequest(layout string) StyleRequest {
	return StyleRequest{
		PrimaryColor:    "#6699CC",
		BackgroundColor: "#F0F8FF",
		AccentColor:     "#FFB347",
		HeadlineFont:    "Poppins, sans-serif",
		BodyFont:        "PT Sans, sans-serif",
		Layout:          layout,
		Elements:        "buttons, forms, titles, containers, text",
	}
}

// Provider names accepted in configuration
const (
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
)

// New builds the assistant selected by the configuration
func New(cfg types.AssistantConfig) (Assistant, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderStatic:
		return NewStatic(), nil
	case ProviderOpenAI:
		opts := []openai.Option{}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if key := APIKey(cfg); key != "" {
			opts = append(opts, openai.WithToken(key))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewLLM(model, WithTemperature(cfg.Temperature)), nil
	default:
		return nil, fmt.Errorf("unknown assistant provider: %s", cfg.Provider)
	}
}

// APIKey resolves the key from the configuration, falling back to the
// configured environment variable
func APIKey(cfg types.AssistantConfig) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	if cfg.APIKeyEnv != "" {
		return os.Getenv(cfg.APIKeyEnv)
	}
	return ""
}
