package handlers

import (
	"net/http"

	"github.com/Project-Sylos/Studio/internal/api/models"
	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/sdk"
	"github.com/go-chi/chi/v5"
)

// FileHandler handles single-file endpoints. File ids are project paths and
// are taken from the route wildcard.
type FileHandler struct {
	sessionHandler
}

// NewFileHandler creates a new file handler
func NewFileHandler(studio *sdk.Studio) *FileHandler {
	return &FileHandler{sessionHandler{studio: studio}}
}

// GetFileData returns a file with its size and checksum
func (h *FileHandler) GetFileData(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	id := chi.URLParam(req, "*")
	if id == "" {
		h.sendError(w, http.StatusBadRequest, "file id is required")
		return
	}

	file, err := s.File(id)
	if err != nil {
		h.sendFailure(w, req, err)
		return
	}

	h.sendSuccess(w, "File data retrieved successfully", models.FileDataResponse{
		File:     file,
		Size:     len(file.Content),
		Checksum: tree.ComputeChecksum(file.Content),
	})
}

// UpdateFile replaces a file's content
func (h *FileHandler) UpdateFile(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	var request models.UpdateFileRequest
	if !h.decode(w, req, &request) {
		return
	}

	id := chi.URLParam(req, "*")
	if err := s.EditFile(id, request.Content); err != nil {
		h.sendFailure(w, req, err)
		return
	}
	h.sendSuccess(w, "File updated successfully", nil)
}

// GetActiveFile returns the focused file
func (h *FileHandler) GetActiveFile(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	file, found := s.ActiveFile()
	if !found {
		h.sendSuccess(w, "No active file", nil)
		return
	}
	h.sendSuccess(w, "Active file retrieved successfully", file)
}

// SelectFile focuses a file
func (h *FileHandler) SelectFile(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	var request models.SelectFileRequest
	if !h.decode(w, req, &request) {
		return
	}
	if err := s.SelectFile(request.ID); err != nil {
		h.sendFailure(w, req, err)
		return
	}
	h.sendSuccess(w, "File selected successfully", nil)
}

// UpdateActiveFile replaces the focused file's content
func (h *FileHandler) UpdateActiveFile(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	var request models.UpdateFileRequest
	if !h.decode(w, req, &request) {
		return
	}
	if err := s.EditActive(request.Content); err != nil {
		h.sendFailure(w, req, err)
		return
	}
	h.sendSuccess(w, "File updated successfully", nil)
}
