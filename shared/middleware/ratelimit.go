package middleware

import (
	"net/http"

	"github.com/go-chi/httprate"

	"github.com/nontawatz/mini-commerce-api/internal/config"
)

// RateLimitByCallerClass returns middleware applying a fixed-window limit per
// client IP, with a looser cap for requests carrying an Authorization header
// than for anonymous ones.
func RateLimitByCallerClass(cfg config.RateLimit) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authenticated := httprate.Limit(
			cfg.AuthLimit,
			cfg.Window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		)(next)

		public := httprate.Limit(
			cfg.PublicLimit,
			cfg.Window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		)(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				authenticated.ServeHTTP(w, r)
				return
			}

			public.ServeHTTP(w, r)
		})
	}
}
