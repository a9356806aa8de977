package server

import (
	"fmt"
	"os"
	"strings"

	"resumescore/internal/utils"
)

// displayServerInfo prints the endpoint list and the effective security
// settings to stdout when the server starts.
func (s *Server) displayServerInfo() {
	var b strings.Builder

	b.WriteString("Available endpoints:\n")
	b.WriteString("  GET  /health          - Health check\n")
	b.WriteString("  GET  /stats           - Server statistics\n")
	b.WriteString("  POST /api/v1/analyze  - Score a resume (requires API key)\n")

	if n := len(s.APIKeys); n > 0 {
		fmt.Fprintf(&b, "API authentication: ENABLED (%d keys configured)\n", n)
		b.WriteString("Include 'X-API-Key: <your-key>' header in requests to /api/v1/analyze\n")
	} else {
		b.WriteString("API authentication: DISABLED (no API keys configured)\n")
		b.WriteString("WARNING: API endpoints are publicly accessible!\n")
	}

	if s.MaxRequestSize > 0 {
		fmt.Fprintf(&b, "Request size limit: %d bytes (%s)\n",
			s.MaxRequestSize, utils.FormatFileSize(s.MaxRequestSize))
	} else {
		b.WriteString("Request size limit: DISABLED\n")
		b.WriteString("WARNING: No request size limits configured!\n")
	}

	if s.RateLimit.Enabled {
		fmt.Fprintf(&b, "Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMinute, s.RateLimit.Burst)
	} else {
		b.WriteString("Rate limiting: DISABLED\n")
		b.WriteString("WARNING: No rate limiting configured!\n")
	}

	fmt.Fprint(os.Stdout, b.String())
}
