package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resumescore/internal/observability"
	"resumescore/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the resume analysis handler with observability
func (s *Server) createAnalyzeHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("resumescore.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large",
				fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2),
				http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Bool("request.has_resume_id", req.ResumeID != ""),
		)

		input := types.AnalysisInput{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
			FileType:       req.FileType,
			FileName:       req.FileName,
			ResumeID:       req.ResumeID,
		}

		metrics := om.GetMetrics()
		start := time.Now()
		result, err := s.Engine.Analyze(ctx, input)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.TrackAnalysis(ctx, "", 0, time.Since(start), false)
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.TrackAnalysis(ctx, result.Industry, result.TotalScore, time.Since(start), true)
		if result.AIFallbackUsed {
			metrics.RecordAIFallback(ctx)
		}

		// Persistence is best effort: a storage failure must not fail
		// the request that already produced a result.
		if s.Store != nil {
			if err := s.Store.SaveAnalysis(ctx, result); err != nil {
				s.Logger.Warn("Failed to persist analysis",
					"resume_id", result.ResumeID,
					"error", err.Error())
			}
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("resume.industry", result.Industry),
			attribute.Int("resume.total_score", result.TotalScore),
			attribute.Int("resume.issues", len(result.Issues)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.Manager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := originalMiddleware(next)

		return func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			limited(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.GetMetrics().RecordRateLimitHit(r.Context(), getClientIP(r))
			}
		}
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
