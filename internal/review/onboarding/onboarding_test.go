package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "emend/pkg/domain-errors"
)

type stubClient struct {
	steps map[Jurisdiction]Step
	err   error
	calls []Jurisdiction
}

func (s *stubClient) CurrentStep(_ context.Context, _ string, j Jurisdiction) (Step, error) {
	s.calls = append(s.calls, j)
	if s.err != nil {
		return "", s.err
	}
	return s.steps[j], nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestGateCheck(t *testing.T) {
	t.Run("finished domestic step passes", func(t *testing.T) {
		client := &stubClient{steps: map[Jurisdiction]Step{JurisdictionDomestic: StepFinished}}
		gate := NewGate(client, discard())

		require.NoError(t, gate.Check(context.Background(), "token", false))
		assert.Equal(t, []Jurisdiction{JurisdictionDomestic}, client.calls)
	})

	t.Run("cross-border flow checked only when requested", func(t *testing.T) {
		client := &stubClient{steps: map[Jurisdiction]Step{
			JurisdictionDomestic:    StepFinished,
			JurisdictionCrossBorder: StepFinished,
		}}
		gate := NewGate(client, discard())

		require.NoError(t, gate.Check(context.Background(), "token", true))
		assert.Equal(t, []Jurisdiction{JurisdictionDomestic, JurisdictionCrossBorder}, client.calls)
	})

	t.Run("unfinished step is a state rejection naming the jurisdiction", func(t *testing.T) {
		client := &stubClient{steps: map[Jurisdiction]Step{
			JurisdictionDomestic:    StepFinished,
			JurisdictionCrossBorder: Step("document_upload"),
		}}
		gate := NewGate(client, discard())

		err := gate.Check(context.Background(), "token", true)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOnboardingStep))
		assert.Contains(t, err.Error(), "us")
	})

	t.Run("client failure is a downstream error", func(t *testing.T) {
		client := &stubClient{err: errors.New("timeout")}
		gate := NewGate(client, discard())

		err := gate.Check(context.Background(), "token", false)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDownstream))
	})
}

func TestHTTPClientCurrentStep(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/onboarding/steps/br", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_step":"finished"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	step, err := client.CurrentStep(context.Background(), "tok", JurisdictionDomestic)
	require.NoError(t, err)
	assert.Equal(t, StepFinished, step)
}

func TestHTTPClientCurrentStepNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	_, err := client.CurrentStep(context.Background(), "tok", JurisdictionDomestic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
