// Package middleware provides reusable HTTP middleware for the Fixture Desk API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS is the cross-origin policy of the API. The same origin list governs
// browser requests and websocket upgrades on the live feed, which browsers
// do not preflight.
type CORS struct {
	c *cors.Cors
}

// NewCORS builds the policy for allowedOrigins. Each entry is a full origin
// (scheme + host, no trailing slash) and may hold one "*" wildcard, e.g.
// "https://*.hockey.org.na".
// There is no DELETE: fixtures and teams are never removed.
func NewCORS(allowedOrigins []string) *CORS {
	return &CORS{c: cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
	})}
}

// Handler applies CORS headers and answers preflights.
func (p *CORS) Handler(next http.Handler) http.Handler {
	return p.c.Handler(next)
}

// CheckOrigin reports whether a websocket upgrade may proceed. Requests with
// no Origin header come from non-browser clients and are allowed.
func (p *CORS) CheckOrigin(r *http.Request) bool {
	if r.Header.Get("Origin") == "" {
		return true
	}
	return p.c.OriginAllowed(r)
}
