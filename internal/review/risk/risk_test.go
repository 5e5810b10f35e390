package risk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend/internal/review/models"
)

func TestHTTPClientScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/risk/score", r.URL.Path)

		var input Input
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, int64(355), input.Occupation)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"score": 0.82,
			"rating": "D",
			"approval": false,
			"validations": {"has_big_patrimony": true, "is_pep": false}
		}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	verdict, err := client.Score(context.Background(), Input{
		Patrimony:  5_000_000,
		CityCode:   3550308,
		Occupation: 355,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RiskRatingCritical, verdict.Rating)
	assert.False(t, verdict.Approval)
	assert.True(t, verdict.Validations.HasBigPatrimony)
}

func TestHTTPClientScoreFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	_, err := client.Score(context.Background(), Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
