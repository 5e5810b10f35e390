// Package risk re-scores a registration against the risk engine after every
// accepted amendment.
package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"emend/internal/review/models"
)

// Input is what the risk engine scores on: the merged values that move risk.
type Input struct {
	Patrimony    float64 `json:"patrimony"`
	CityCode     int64   `json:"city_code"`
	Occupation   int64   `json:"occupation"`
	IsPEP        bool    `json:"is_pep"`
	IsPEPRelated bool    `json:"is_pep_related"`
}

// Validations are the named checks the engine evaluated, echoed back so the
// audit trail records which ones fired.
type Validations struct {
	HasBigPatrimony     bool `json:"has_big_patrimony"`
	LivesInFrontierCity bool `json:"lives_in_frontier_city"`
	HasRiskyProfession  bool `json:"has_risky_profession"`
	IsPEP               bool `json:"is_pep"`
	IsPEPRelated        bool `json:"is_pep_related"`
}

// Verdict is the engine's answer. Approval false does not abort the update;
// it is recorded and flagged for the compliance desk.
type Verdict struct {
	Score       float64           `json:"score"`
	Rating      models.RiskRating `json:"rating"`
	Approval    bool              `json:"approval"`
	Validations Validations       `json:"validations"`
}

// Scorer obtains a risk verdict for the merged registration values.
type Scorer interface {
	Score(ctx context.Context, input Input) (*Verdict, error)
}

// HTTPClient calls the risk engine over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Scorer = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score calls POST /risk/score and decodes the verdict.
func (c *HTTPClient) Score(ctx context.Context, input Input) (*Verdict, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal risk input: %w", err)
	}

	url := c.baseURL + "/risk/score"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build risk request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score registration: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read risk response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("risk engine returned status %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("parse risk response: %w", err)
	}
	return &verdict, nil
}
