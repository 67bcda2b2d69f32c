package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/utils"
	"github.com/goccy/go-json"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// historyLimit bounds how many transcript messages are replayed to the model
const historyLimit = 20

// LLM is an Assistant backed by a langchaingo model
type LLM struct {
	model       llms.Model
	temperature float64
}

// Option configures an LLM assistant
type Option func(*LLM)

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) Option {
	return func(a *LLM) {
		a.temperature = t
	}
}

// NewLLM wraps a model
func NewLLM(model llms.Model, opts ...Option) *LLM {
	a := &LLM{model: model, temperature: 0.2}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Suggest asks the model for a suggestion. The request's history is replayed
// so that a confirmation can regenerate the previously proposed files.
func (a *LLM) Suggest(ctx context.Context, req types.SuggestionRequest) (*types.Suggestion, error) {
	if req.FileDataURI == "" && strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: request has neither file nor prompt", ErrSuggestionFailure)
	}

	msgs := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, suggestionSystemPrompt),
	}
	msgs = append(msgs, historyMessages(req.History)...)

	parts, err := inputParts(req)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, llms.MessageContent{Role: schema.ChatMessageTypeHuman, Parts: parts})

	resp, err := a.model.GenerateContent(ctx, msgs,
		llms.WithTemperature(a.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailure, err)
	}

	return parseSuggestion(firstChoice(resp))
}

// Summarize describes a project from its file paths
func (a *LLM) Summarize(ctx context.Context, paths []string) (string, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, summarySystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, "File paths:\n"+strings.Join(paths, "\n")),
	}
	resp, err := a.model.GenerateContent(ctx, msgs, llms.WithTemperature(a.temperature))
	if err != nil {
		return "", fmt.Errorf("failed to summarize project: %w", err)
	}
	return strings.TrimSpace(firstChoice(resp)), nil
}

// GenerateStyles asks the model for a stylesheet
func (a *LLM) GenerateStyles(ctx context.Context, req StyleRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Primary color: %s\n", req.PrimaryColor)
	fmt.Fprintf(&b, "Background color: %s\n", req.BackgroundColor)
	fmt.Fprintf(&b, "Accent color: %s\n", req.AccentColor)
	fmt.Fprintf(&b, "Headline font: %s\n", req.HeadlineFont)
	fmt.Fprintf(&b, "Body font: %s\n", req.BodyFont)
	fmt.Fprintf(&b, "Layout preferences: %s\n", req.Layout)
	fmt.Fprintf(&b, "Elements to style: %s\n", req.Elements)

	msgs := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, styleSystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, b.String()),
	}
	resp, err := a.model.GenerateContent(ctx, msgs, llms.WithTemperature(a.temperature))
	if err != nil {
		return "", fmt.Errorf("failed to generate styles: %w", err)
	}
	return stripFences(firstChoice(resp)), nil
}

func inputParts(req types.SuggestionRequest) ([]llms.ContentPart, error) {
	var parts []llms.ContentPart

	if req.FileDataURI != "" {
		mime, data, err := utils.DecodeDataURI(req.FileDataURI)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSuggestionFailure, err)
		}
		if strings.HasPrefix(mime, "image/") {
			parts = append(parts, llms.TextPart("Input file:"), llms.BinaryPart(mime, data))
		} else {
			parts = append(parts, llms.TextPart(fmt.Sprintf("Input file (%s):\n%s", mime, data)))
		}
	}
	if p := strings.TrimSpace(req.Prompt); p != "" {
		parts = append(parts, llms.TextPart("User prompt: "+p))
	}
	return parts, nil
}

func historyMessages(history []types.ChatMessage) []llms.MessageContent {
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	msgs := make([]llms.MessageContent, 0, len(history))
	for _, m := range history {
		role := schema.ChatMessageTypeHuman
		text := m.Content
		if m.Sender == types.SenderBot {
			role = schema.ChatMessageTypeAI
			if len(m.Files) > 0 {
				if raw, err := json.Marshal(m.Files); err == nil {
					text += "\nFiles: " + string(raw)
				}
			}
		}
		msgs = append(msgs, llms.TextParts(role, text))
	}
	return msgs
}

func firstChoice(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}

// parseSuggestion extracts the JSON object between the first '{' and the
// last '}' of the model output
func parseSuggestion(out string) (*types.Suggestion, error) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrSuggestionFailure)
	}

	var s types.Suggestion
	if err := json.Unmarshal([]byte(out[start:end+1]), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailure, err)
	}
	if s.Message == "" {
		return nil, fmt.Errorf("%w: empty message", ErrSuggestionFailure)
	}
	for _, f := range s.Files {
		if strings.TrimSpace(f.Path) == "" {
			return nil, fmt.Errorf("%w: file without path", ErrSuggestionFailure)
		}
	}
	return &s, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
