package middleware

import (
	"net/http"
	"strings"

	"github.com/pkmncore/seriedex/pkg/auth"
	"github.com/pkmncore/seriedex/pkg/handlers"
)

// Auth returns middleware that requires a valid bearer token on every request.
// Returns the identity middleware when tokens is nil (auth disabled).
func Auth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokens == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{
					Error: auth.ErrMissingToken.Error(),
				})
				return
			}

			if _, err := tokens.Verify(raw); err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer error=\"invalid_token\"")
				handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{
					Error: auth.ErrInvalidToken.Error(),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
