package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/sowgen/internal/pipeline"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"provider": s.cfg.LLMProvider,
		"model":    pipeline.LLMSettings(s.cfg).Model,
		"stats":    s.stats.Snapshot(),
	})
}
