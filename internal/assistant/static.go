package assistant

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/utils"
)

const offlineMessage = "I'm running without a language model right now, so I can't write code for you. " +
	"You can still browse and edit files, upload a zip and download the project."

// Static is an offline assistant. It never proposes files.
type Static struct{}

// NewStatic creates an offline assistant
func NewStatic() *Static {
	return &Static{}
}

// Suggest answers conversationally
func (s *Static) Suggest(_ context.Context, req types.SuggestionRequest) (*types.Suggestion, error) {
	if req.FileDataURI == "" && strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: request has neither file nor prompt", ErrSuggestionFailure)
	}
	if req.FileDataURI != "" {
		mime, data, err := utils.DecodeDataURI(req.FileDataURI)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSuggestionFailure, err)
		}
		return &types.Suggestion{
			Success: true,
			Message: fmt.Sprintf("I received a %s file (%d bytes). %s", mime, len(data), offlineMessage),
		}, nil
	}
	return &types.Suggestion{Success: true, Message: offlineMessage}, nil
}

// Summarize counts files per extension
func (s *Static) Summarize(_ context.Context, paths []string) (string, error) {
	if len(paths) == 0 {
		return FallbackSummary, nil
	}

	counts := make(map[string]int)
	for _, p := range paths {
		ext := path.Ext(p)
		if ext == "" {
			ext = "no extension"
		}
		counts[ext]++
	}
	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		parts = append(parts, fmt.Sprintf("%d %s", counts[ext], ext))
	}
	return fmt.Sprintf("I've loaded your project. Here's what I see: %d files (%s).",
		len(paths), strings.Join(parts, ", ")), nil
}

// GenerateStyles renders a fixed stylesheet from the theme
func (s *Static) GenerateStyles(_ context.Context, req StyleRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, ".portlet-container {\n  background-color: %s;\n  font-family: %s;\n  padding: 1rem;\n}\n\n", req.BackgroundColor, req.BodyFont)
	fmt.Fprintf(&b, ".portlet-title {\n  color: %s;\n  font-family: %s;\n}\n\n", req.PrimaryColor, req.HeadlineFont)
	fmt.Fprintf(&b, ".portlet-button {\n  background-color: %s;\n  color: #fff;\n  border: none;\n  border-radius: 4px;\n  padding: 0.5rem 1rem;\n}\n\n", req.PrimaryColor)
	fmt.Fprintf(&b, ".portlet-button:hover {\n  background-color: %s;\n}\n", req.AccentColor)
	return b.String(), nil
}
