package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Project-Sylos/Studio/internal/api/models"
	"github.com/Project-Sylos/Studio/sdk"
)

// multipartMemory is the part of a multipart upload kept in memory
const multipartMemory = 8 << 20

// ChatHandler handles transcript, prompt and upload endpoints
type ChatHandler struct {
	sessionHandler
}

// NewChatHandler creates a new chat handler
func NewChatHandler(studio *sdk.Studio) *ChatHandler {
	return &ChatHandler{sessionHandler{studio: studio}}
}

// GetMessages returns the transcript
func (h *ChatHandler) GetMessages(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	h.sendSuccess(w, "Messages retrieved successfully", s.Messages())
}

// SendMessage sends a prompt to the assistant
func (h *ChatHandler) SendMessage(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	var request models.SendMessageRequest
	if !h.decode(w, req, &request) {
		return
	}

	out, err := s.SendPrompt(req.Context(), request.Prompt)
	if err != nil {
		h.sendFailure(w, req, err)
		return
	}
	sendOutcome(&h.BaseHandler, w, out)
}

// ClearMessages resets the transcript to the greeting
func (h *ChatHandler) ClearMessages(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	if err := s.ClearChat(); err != nil {
		h.sendFailure(w, req, err)
		return
	}
	h.sendSuccess(w, "Chat history cleared", s.Messages())
}

// Upload accepts a multipart "file" field and routes it by type
func (h *ChatHandler) Upload(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		h.readFailure(w, req, s, "", err)
		return
	}
	file, header, err := req.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		h.sendError(w, http.StatusBadRequest, "file field is required")
		return
	}
	if err != nil {
		h.readFailure(w, req, s, "", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.readFailure(w, req, s, header.Filename, err)
		return
	}

	out, err := s.Upload(req.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.sendFailure(w, req, err)
		return
	}
	sendOutcome(&h.BaseHandler, w, out)
}

// GenerateStyles returns CSS for the studio theme and a layout description
func (h *ChatHandler) GenerateStyles(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	var request models.GenerateStylesRequest
	if !h.decode(w, req, &request) {
		return
	}
	if len(request.Layout) < 10 {
		h.sendError(w, http.StatusBadRequest, "layout must be at least 10 characters long")
		return
	}

	css, err := s.GenerateStyles(req.Context(), request.Layout)
	if err != nil {
		h.sendError(w, http.StatusBadGateway, "I had some trouble with that request. Could you try rephrasing?")
		return
	}
	h.sendSuccess(w, "Styles generated successfully", models.StylesResponse{CSS: css})
}
