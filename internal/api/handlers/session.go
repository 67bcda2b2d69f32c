package handlers

import (
	"net/http"

	"github.com/Project-Sylos/Studio/internal/api/models"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/sdk"
	"github.com/go-chi/chi/v5"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionHandler
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(studio *sdk.Studio) *SessionHandler {
	return &SessionHandler{sessionHandler{studio: studio}}
}

// CreateSession opens a new session, or resumes one when an id is given
func (h *SessionHandler) CreateSession(w http.ResponseWriter, req *http.Request) {
	var request models.CreateSessionRequest
	if req.ContentLength != 0 && !h.decode(w, req, &request) {
		return
	}

	var (
		s   *sdk.Session
		err error
	)
	if request.ID != "" {
		s, err = h.studio.OpenSession(request.ID, request.Variant)
	} else {
		s, err = h.studio.CreateSession(request.Variant)
	}
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.sendJSON(w, http.StatusCreated, types.APIResponse{
		Success: true,
		Message: "Session opened successfully",
		Data:    s.View(),
	})
}

// ListSessions handles the list sessions endpoint
func (h *SessionHandler) ListSessions(w http.ResponseWriter, req *http.Request) {
	h.sendSuccess(w, "Sessions retrieved successfully", h.studio.Sessions())
}

// GetSession returns a full snapshot of a session
func (h *SessionHandler) GetSession(w http.ResponseWriter, req *http.Request) {
	s, ok := h.session(w, req)
	if !ok {
		return
	}
	h.sendSuccess(w, "Session retrieved successfully", s.View())
}

// CloseSession handles the close session endpoint
func (h *SessionHandler) CloseSession(w http.ResponseWriter, req *http.Request) {
	if err := h.studio.CloseSession(chi.URLParam(req, "sessionID")); err != nil {
		h.sendFailure(w, req, err)
		return
	}
	h.sendSuccess(w, "Session closed successfully", nil)
}
