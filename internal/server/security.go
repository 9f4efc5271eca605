package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig controls response hardening headers and CORS.
type SecurityConfig struct {
	EnableCORS bool
	// AllowedOrigins may contain "*".
	AllowedOrigins []string
	AllowedMethods []string
}

func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}
}

// SecurityMiddleware sets hardening headers, CORS headers for allowed
// origins, and answers preflight requests with 204 when CORS is enabled.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if cfg.EnableCORS {
			origin := r.Header.Get("Origin")
			allowed := ""
			if slices.Contains(cfg.AllowedOrigins, "*") {
				allowed = "*"
			} else if origin != "" && slices.Contains(cfg.AllowedOrigins, origin) {
				allowed = origin
			}
			if allowed != "" {
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}
