package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// TokenVerifier is implemented by Service. It lets the middleware be tested
// without a store.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*Claims, error)
}

// TokenExtractor reads a bearer token from the Authorization header and
// stores the outcome in the request context. It never rejects a request:
// public routes must keep working with a bad token, and protected handlers
// decide through RequireIdentity.
func TokenExtractor(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected bearer token")
				next.ServeHTTP(w, r.WithContext(newContextWithTokenError(r.Context(), err)))
				return
			}

			ctx := NewContextWithIdentity(r.Context(), Identity{UserID: claims.UserID, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from a "Bearer {token}" header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}
