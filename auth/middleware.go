package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/auratask-go/apperror"
)

// ContextKey is a dedicated type for context keys to avoid collisions with
// other packages.
type ContextKey string

// UserIDKey is the key under which the authenticated user's id is stored
// in the request context.
const UserIDKey ContextKey = "userID"

// Middleware gates protected routes on a valid bearer token. The
// Authorization header carries the raw token value; a "Bearer " prefix is
// tolerated and stripped. A missing header short-circuits with 401, an
// invalid token with 400, and the downstream handler never runs on failure.
func Middleware(tokens TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("access denied", nil))
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			userID, err := tokens.Verify(tokenString)
			if err != nil {
				WriteError(w, r, apperror.NewBadRequestError("invalid token", err))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user id set by
// Middleware. The second return value is false when the request did not
// pass through it.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
