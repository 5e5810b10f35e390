package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"emend/pkg/requestcontext"
)

// TokenDecoder resolves an identity token to the caller's unique id.
type TokenDecoder interface {
	ExtractUniqueID(tokenString string) (string, error)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"success":false,"code":"%s","message":"%s"}`, errCode, errDesc))
}

// RequireAuth validates the bearer token and injects the resolved unique id
// into the request context. Requests without a decodable token are rejected
// with 401 before reaching any handler.
func RequireAuth(decoder TokenDecoder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			ctx := r.Context()
			uniqueID, err := decoder.ExtractUniqueID(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithUniqueID(ctx, uniqueID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
