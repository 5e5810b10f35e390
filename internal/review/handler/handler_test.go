package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend/internal/review/service"
	dErrors "emend/pkg/domain-errors"
	"emend/pkg/platform/httputil"
	"emend/pkg/requestcontext"
)

type stubService struct {
	err   error
	calls []service.UpdateInput
}

func (s *stubService) Update(_ context.Context, input service.UpdateInput) error {
	s.calls = append(s.calls, input)
	return s.err
}

func newRouter(svc UpdateService) http.Handler {
	h := New(svc, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func doRequest(t *testing.T, router http.Handler, body string, authed bool, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/registration", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok-1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if authed {
		req = req.WithContext(requestcontext.WithUniqueID(req.Context(), "u-1"))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

const emailUpdate = `{"personal":{"email":{"value":"new@example.com","source":"app"}}}`

func TestUpdateRegistration(t *testing.T) {
	t.Run("success returns the envelope and forwards the input", func(t *testing.T) {
		svc := &stubService{}
		w := doRequest(t, newRouter(svc), emailUpdate, true, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "updated", resp.Code)

		require.Len(t, svc.calls, 1)
		assert.Equal(t, "u-1", svc.calls[0].UniqueID)
		assert.Equal(t, "tok-1", svc.calls[0].Token)
		require.NotNil(t, svc.calls[0].Request.Personal)
		assert.Equal(t, "new@example.com", svc.calls[0].Request.Personal.Email.Value)
	})

	t.Run("missing identity yields 401", func(t *testing.T) {
		svc := &stubService{}
		w := doRequest(t, newRouter(svc), emailUpdate, false, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, svc.calls)
	})

	t.Run("malformed body yields 400 before the pipeline runs", func(t *testing.T) {
		svc := &stubService{}
		w := doRequest(t, newRouter(svc), `{not json`, true, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(dErrors.CodeBadRequest), decodeResponse(t, w).Code)
		assert.Empty(t, svc.calls)
	})

	t.Run("empty update is rejected at validation", func(t *testing.T) {
		svc := &stubService{}
		w := doRequest(t, newRouter(svc), `{}`, true, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(dErrors.CodeValidation), decodeResponse(t, w).Code)
		assert.Empty(t, svc.calls)
	})

	t.Run("malformed device token yields 400", func(t *testing.T) {
		svc := &stubService{}
		w := doRequest(t, newRouter(svc), emailUpdate, true, map[string]string{
			"X-Device-Token": "%%%not-base64%%%",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, svc.calls)
	})

	t.Run("device token rides into the pipeline input", func(t *testing.T) {
		svc := &stubService{}
		token := base64.StdEncoding.EncodeToString([]byte(`{"device_id":"dev-7"}`))
		w := doRequest(t, newRouter(svc), emailUpdate, true, map[string]string{
			"X-Device-Token": token,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, svc.calls, 1)
		assert.Equal(t, "dev-7", svc.calls[0].Device.DeviceID)
	})

	t.Run("pipeline errors map to their status codes", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"blocked account", dErrors.New(dErrors.CodeAccountBlocked, "account blocked for registration updates"), http.StatusUnauthorized},
			{"high risk activity", dErrors.New(dErrors.CodeHighRiskActivity, "high risk occupation not allowed"), http.StatusForbidden},
			{"unknown record", dErrors.New(dErrors.CodeNotFound, "user record not found"), http.StatusNotFound},
			{"onboarding step", dErrors.New(dErrors.CodeOnboardingStep, "br onboarding step does not allow registration update"), http.StatusBadRequest},
			{"update failed", dErrors.New(dErrors.CodeUpdateFailed, "user record update matched no documents"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := doRequest(t, newRouter(&stubService{err: tc.err}), emailUpdate, true, nil)
				assert.Equal(t, tc.status, w.Code)
				resp := decodeResponse(t, w)
				assert.False(t, resp.Success)
				if tc.status >= http.StatusInternalServerError {
					assert.Empty(t, resp.Message)
				}
			})
		}
	})
}
