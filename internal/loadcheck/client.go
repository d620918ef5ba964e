package loadcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// requestIDHeader matches the service's correlation header.
const requestIDHeader = "X-Request-ID"

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// response is the decoded body of /calculate for either outcome.
type response struct {
	Status  int
	Num1    float64 `json:"num1"`
	Num2    float64 `json:"num2"`
	Result  float64 `json:"result"`
	Message string  `json:"message"`
}

// Calculate sends one case and decodes the answer.
func (c *HTTPClient) Calculate(ctx context.Context, tc Case) (response, error) {
	q := url.Values{"num1": {tc.Num1}, "num2": {tc.Num2}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/calculate?"+q.Encode(), http.NoBody)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(requestIDHeader, tc.RequestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return response{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("failed to read body: %w", err)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return response{}, fmt.Errorf("failed to decode body %q: %w", body, err)
	}
	out.Status = resp.StatusCode
	return out, nil
}

// Healthy reports whether /healthz answers 200.
func (c *HTTPClient) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}
