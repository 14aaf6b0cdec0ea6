package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin. The service sits behind token auth and is consumed
// by browser clients served from multiple hosts.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		MaxAge:         300,
	})
}
