package server

import (
	"errors"
	"net/http"

	"gatedesk/internal/ai"
)

// handleChat forwards one prompt to the text-generation service and
// relays the answer verbatim.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt            string `json:"prompt"`
		SystemInstruction string `json:"systemInstruction"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	text, err := s.aic.Generate(r.Context(), req.Prompt, req.SystemInstruction)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			respondError(w, http.StatusInternalServerError, "API key not configured")
			return
		}
		s.logger.Error("chat", "error", err)
		respondError(w, http.StatusBadGateway, "AI request failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"response": text})
}
