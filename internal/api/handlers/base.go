package handlers

import (
	"errors"
	"net/http"

	"github.com/Project-Sylos/Studio/internal/logging"
	"github.com/Project-Sylos/Studio/internal/session"
	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/workflow"
	"github.com/Project-Sylos/Studio/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// BaseHandler provides common functionality for all API handlers
type BaseHandler struct{}

// sendJSON sends a JSON response with the given status code and data
func (h *BaseHandler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response with the given status code and message
func (h *BaseHandler) sendError(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, types.APIResponse{
		Success: false,
		Message: message,
	})
}

// sendSuccess sends a success response with the given data
func (h *BaseHandler) sendSuccess(w http.ResponseWriter, message string, data any) {
	h.sendJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// sendSuccessWith sends a 200 response with an explicit success flag
func (h *BaseHandler) sendSuccessWith(w http.ResponseWriter, success bool, message string, data any) {
	h.sendJSON(w, http.StatusOK, types.APIResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// sendFailure maps a domain error to a status code
func (h *BaseHandler) sendFailure(w http.ResponseWriter, req *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(req.Context()).Error("request failed", zap.Error(err))
	}
	h.sendError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, tree.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrBusy), errors.Is(err, session.ErrNoActiveFile):
		return http.StatusConflict
	case errors.Is(err, tree.ErrNotAFile), errors.Is(err, tree.ErrInvalidPath),
		errors.Is(err, session.ErrEmptyPrompt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON request body
func (h *BaseHandler) decode(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// sessionHandler resolves the {sessionID} URL parameter
type sessionHandler struct {
	BaseHandler
	studio *sdk.Studio
}

func (h *sessionHandler) session(w http.ResponseWriter, req *http.Request) (*sdk.Session, bool) {
	s, err := h.studio.Session(chi.URLParam(req, "sessionID"))
	if err != nil {
		h.sendFailure(w, req, err)
		return nil, false
	}
	return s, true
}

// readFailure reports an upload body that could not be read the same way
// the session reports one it refused: a bot reply plus a notice
func (h *sessionHandler) readFailure(w http.ResponseWriter, req *http.Request, s *sdk.Session, name string, cause error) {
	out, err := s.ReadFailure(name, cause)
	if err != nil {
		h.sendFailure(w, req, err)
		return
	}
	sendOutcome(&h.BaseHandler, w, out)
}
