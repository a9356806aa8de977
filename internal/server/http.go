package server

import (
	"time"

	"resumescore/internal/ai"
	"resumescore/internal/config"
	scoreErrors "resumescore/internal/errors"
	"resumescore/internal/scoring"
	"resumescore/internal/storage"
)

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
	FileType       string `json:"fileType,omitempty"`
	FileName       string `json:"fileName,omitempty"`
	ResumeID       string `json:"resumeId,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    int
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Scoring pipeline
	Engine *scoring.Engine

	// Optional collaborators; nil disables the concern
	Store     storage.Store
	AIService *ai.Service

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   config.RateLimit
	RateLimiter *RateLimiter

	// Logger
	Logger *scoreErrors.Logger
}

// Dependencies bundles the collaborators the server needs beyond configuration
type Dependencies struct {
	Engine    *scoring.Engine
	Store     storage.Store
	AIService *ai.Service
	Version   string
}

// NewServer creates a new Server instance
func NewServer(appCfg *config.Config, deps Dependencies, logger *scoreErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range appCfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if appCfg.Server.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			appCfg.Server.RateLimit.RequestsPerMinute,
			appCfg.Server.RateLimit.Burst,
			logger,
		)
	}

	return &Server{
		Host:           appCfg.Server.Host,
		Port:           appCfg.Server.Port,
		Version:        deps.Version,
		AppConfig:      appCfg,
		Engine:         deps.Engine,
		Store:          deps.Store,
		AIService:      deps.AIService,
		APIKeys:        apiKeyMap,
		ReadTimeout:    appCfg.Server.ReadTimeout,
		WriteTimeout:   appCfg.Server.WriteTimeout,
		IdleTimeout:    appCfg.Server.WriteTimeout + appCfg.Server.ReadTimeout,
		MaxRequestSize: appCfg.Server.MaxRequestSize,
		RateLimit:      appCfg.Server.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
