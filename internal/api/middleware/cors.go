package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/rs/cors"
)

// CORSMiddleware adds CORS headers. Allowed origins come from the
// ALLOWED_ORIGINS env variable (comma-separated); the default is a wildcard,
// which is only appropriate in development.
func CORSMiddleware(next http.Handler) http.Handler {
	allowedOrigins := []string{"*"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
	})

	return c.Handler(next)
}
