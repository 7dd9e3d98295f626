package httpx

import (
	"net/http"
	"strings"

	"bookreview/internal/auth"
	"bookreview/internal/usecase"
)

// RequireAuth rejects requests without a verifiable bearer token before any
// handler (and therefore any store access) runs. A missing token and a token
// that fails verification are reported as distinct errors.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				JSONError(w, http.StatusUnauthorized, CodeAuthMissing, "Authorization header is missing", nil)
				return
			}
			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, CodeAuthInvalid, "Invalid or expired token", nil)
				return
			}
			ctx := ContextWithViewer(r.Context(), usecase.IdentifiedViewer(claims.Sub))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the viewer on endpoints that also serve anonymous
// requests. No token means anonymous; a token that is present but fails
// verification is still rejected rather than silently downgraded.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, CodeAuthInvalid, "Invalid or expired token", nil)
				return
			}
			ctx := ContextWithViewer(r.Context(), usecase.IdentifiedViewer(claims.Sub))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}
