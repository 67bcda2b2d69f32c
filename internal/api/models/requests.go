package models

import "github.com/Project-Sylos/Studio/internal/types"

// CreateSessionRequest represents the request to open a session. ID is
// optional and resumes a known session's transcript.
type CreateSessionRequest struct {
	ID      string `json:"id,omitempty"`
	Variant string `json:"variant,omitempty"`
}

// SendMessageRequest represents a chat message to the assistant
type SendMessageRequest struct {
	Prompt string `json:"prompt"`
}

// UpdateFileRequest represents new content for a file
type UpdateFileRequest struct {
	Content string `json:"content"`
}

// SelectFileRequest represents the request to focus a file
type SelectFileRequest struct {
	ID string `json:"id"`
}

// GenerateStylesRequest represents the request to generate a stylesheet
type GenerateStylesRequest struct {
	Layout string `json:"layout"`
}

// FileDataResponse carries a file with its size and checksum
type FileDataResponse struct {
	File     *types.Node `json:"file"`
	Size     int         `json:"size"`
	Checksum string      `json:"checksum"`
}

// StylesResponse carries generated CSS
type StylesResponse struct {
	CSS string `json:"css"`
}
