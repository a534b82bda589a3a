package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler lets the driver dashboard call the API from the origins in
// allowedOrigins (scheme and host, no trailing slash). Bearer tokens travel in
// the Authorization header, so no cookies are involved. Retry-After is exposed
// for clients backing off an import 429, Content-Disposition for exports.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Retry-After", "Content-Disposition"},
		MaxAge:         600,
	})
	return c.Handler
}
