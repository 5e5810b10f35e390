package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "emend/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeDownstream, "audit sink unreachable"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body Response
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Success {
			t.Fatalf("expected success=false")
		}
		if body.Code != "downstream_error" {
			t.Fatalf("expected code downstream_error, got %q", body.Code)
		}
		if body.Message != "" {
			t.Fatalf("expected message to be omitted for internal errors, got %q", body.Message)
		}
	})

	t.Run("validation error includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeValidation, "at least one update is required"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body Response
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Message != "at least one update is required" {
			t.Fatalf("expected message to be returned for validation errors")
		}
	})

	t.Run("non-domain error maps to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, http.ErrBodyNotAllowed)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}

func TestDomainCodeToHTTPStatus(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeUnauthorized:     http.StatusUnauthorized,
		dErrors.CodeAccountBlocked:   http.StatusUnauthorized,
		dErrors.CodeNotFound:         http.StatusNotFound,
		dErrors.CodeBadRequest:       http.StatusBadRequest,
		dErrors.CodeValidation:       http.StatusBadRequest,
		dErrors.CodeInvalidReference: http.StatusBadRequest,
		dErrors.CodeOnboardingStep:   http.StatusBadRequest,
		dErrors.CodeHighRiskActivity: http.StatusForbidden,
		dErrors.CodeInconsistentData: http.StatusInternalServerError,
		dErrors.CodeUpdateFailed:     http.StatusInternalServerError,
		dErrors.CodeDownstream:       http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := DomainCodeToHTTPStatus(code); got != want {
			t.Errorf("code %s: expected %d, got %d", code, want, got)
		}
	}
}
