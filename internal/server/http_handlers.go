package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"time"

	"resumescore/internal/ai"
)

// healthHandler reports service health. With AI enabled an unreachable
// model degrades the status; the deterministic fallback keeps the
// pipeline itself functional either way.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumescore",
		"version": s.Version,
		"storage": map[string]any{"enabled": s.Store != nil},
	}

	degraded := false
	if s.AIService == nil {
		response["ai_model"] = map[string]any{
			"enabled": false,
			"message": "AI suggestions disabled, deterministic fallback in use",
		}
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		modelInfo := s.AIService.GetModelInfo(ctx)
		cancel()

		response["ai_model"] = modelInfo
		if info, ok := modelInfo.(*ai.ModelInfo); ok && !info.Available {
			degraded = true
		}
	}

	if degraded {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, response)
}

// statsHandler exposes server statistics and the rate limit configuration
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rateLimiting := map[string]any{"enabled": false}
	if s.RateLimiter != nil {
		rateLimiting = s.RateLimiter.GetStats()
	}

	writeJSON(w, map[string]any{
		"service": "resumescore",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"rate_limiting": rateLimiting,
		"rate_limit_config": map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMinute,
			"burst_capacity":   s.RateLimit.Burst,
		},
	})
}

// parseJSONRequest decodes the request body into v, enforcing the JSON
// content type and surfacing body-size violations clearly.
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// writeErrorResponse sends a standardized JSON error body
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: error, Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
