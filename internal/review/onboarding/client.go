package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient fetches onboarding steps from the onboarding service.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ StepClient = (*HTTPClient)(nil)

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

type stepResponse struct {
	CurrentStep string `json:"current_step"`
}

// CurrentStep calls GET /onboarding/steps/{jurisdiction} with the caller's
// bearer token.
func (c *HTTPClient) CurrentStep(ctx context.Context, token string, jurisdiction Jurisdiction) (Step, error) {
	url := fmt.Sprintf("%s/onboarding/steps/%s", c.baseURL, jurisdiction)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build onboarding request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch onboarding step: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read onboarding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("onboarding service returned status %d", resp.StatusCode)
	}

	var parsed stepResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse onboarding response: %w", err)
	}
	return Step(parsed.CurrentStep), nil
}
