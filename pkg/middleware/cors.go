package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS creates a CORS middleware for the read-only dashboard API.
// Only safe methods are allowed and no credentials are shared.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler
}
