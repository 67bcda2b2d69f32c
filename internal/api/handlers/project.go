package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Project-Sylos/Studio/sdk"
)

// ProjectHandler handles whole-project endpoints
type ProjectHandler struct {
	sessionHandler
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(studio *sdk.Studio) *ProjectHandler {
	return &ProjectHandler{sessionHandler{studio: studio}}
}

// GetProject returns the project tree
func (h *ProjectHandler) GetProject(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	h.sendSuccess(w, "Project retrieved successfully", s.Root())
}

// ExportProject streams the project as <root>.zip
func (h *ProjectHandler) ExportProject(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	name, data, err := s.Export()
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "There was an error while creating the zip file.")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportProject replaces the project with a zip sent as the request body
func (h *ProjectHandler) ImportProject(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		h.readFailure(w, req, s, "", err)
		return
	}

	out, err := s.ImportArchive(req.Context(), data)
	if err != nil {
		h.sendFailure(w, req, err)
		return
	}
	sendOutcome(&h.BaseHandler, w, out)
}

// ResetProject restores the variant's starting project
func (h *ProjectHandler) ResetProject(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	if err := s.ResetProject(); err != nil {
		h.sendFailure(w, req, err)
		return
	}
	h.sendSuccess(w, "Project reset successfully", s.Root())
}

// sendOutcome reports a chat or upload outcome. Failures that were turned
// into a bot reply still answer 200 with success=false.
func sendOutcome(h *BaseHandler, w http.ResponseWriter, out *sdk.Outcome) {
	message := ""
	if out.Notice != nil {
		message = out.Notice.Description
	}
	h.sendSuccessWith(w, !out.Failed(), message, out)
}
