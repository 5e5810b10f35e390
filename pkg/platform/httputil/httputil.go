package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "emend/pkg/domain-errors"
	"emend/pkg/requestcontext"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and error responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		response := Response{Code: string(domainErr.Code)}
		// Internal details stay out of responses.
		if domainErr.Message != "" && status < http.StatusInternalServerError {
			response.Message = domainErr.Message
		}
		WriteJSON(w, status, response)
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, Response{
		Code: string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeUnauthorized, dErrors.CodeAccountBlocked:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidReference, dErrors.CodeOnboardingStep:
		return http.StatusBadRequest
	case dErrors.CodeHighRiskActivity:
		return http.StatusForbidden
	case dErrors.CodeInconsistentData, dErrors.CodeUpdateFailed, dErrors.CodeDownstream, dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// RequireUniqueID extracts the authenticated unique id from context.
// Returns a domain error suitable for HTTP response on failure.
// This centralizes auth context extraction for handlers.
func RequireUniqueID(ctx context.Context, logger *slog.Logger, requestID string) (string, error) {
	uniqueID := requestcontext.UniqueID(ctx)
	if uniqueID == "" {
		if logger != nil {
			logger.ErrorContext(ctx, "unique id missing from context despite auth middleware",
				"request_id", requestID)
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "failed to resolve unique id")
	}
	return uniqueID, nil
}
