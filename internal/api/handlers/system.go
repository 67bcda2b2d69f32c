package handlers

import (
	"net/http"

	"github.com/Project-Sylos/Studio/sdk"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	BaseHandler
	studio *sdk.Studio
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(studio *sdk.Studio) *SystemHandler {
	return &SystemHandler{
		studio: studio,
	}
}

// GetConfig returns the configuration with secrets removed
func (h *SystemHandler) GetConfig(w http.ResponseWriter, req *http.Request) {
	cfg := *h.studio.GetConfig()
	if cfg.Assistant.APIKey != "" {
		cfg.Assistant.APIKey = "********"
	}
	h.sendSuccess(w, "Config retrieved successfully", cfg)
}

// GetVariants lists the studio variants
func (h *SystemHandler) GetVariants(w http.ResponseWriter, req *http.Request) {
	h.sendSuccess(w, "Variants retrieved successfully", h.studio.Variants())
}
