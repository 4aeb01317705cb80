package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nontawatz/mini-commerce-api/shared/auth"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

var (
	errMissingToken   = errors.New("missing authorization header")
	errMalformedToken = errors.New("invalid authorization header format")
)

// Authenticate returns middleware that verifies the bearer token on each
// request. Valid claims are attached to the request context; anything else
// short-circuits with 401.
func Authenticate(jwtAuth auth.JWTAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := extractAndValidateToken(r, jwtAuth)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserClaimsFromContext returns the verified claims attached by Authenticate.
func UserClaimsFromContext(ctx context.Context) (*auth.UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.UserClaims)
	return claims, ok
}

func extractAndValidateToken(r *http.Request, jwtAuth auth.JWTAuthenticator) (*auth.UserClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errMalformedToken
	}

	claims, err := jwtAuth.VerifyToken(parts[1])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	return claims, nil
}
