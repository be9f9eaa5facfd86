// Package upstream talks to the public medicine sources: the openFDA drug
// label API, NLM RxNav and the Gemini generative language API. Clients never
// surface errors to callers; a failed call is logged, counted and reported
// as an empty result.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/metrics"
)

const userAgent = "medic-api/1.0"

// StatusError reports a non-2xx upstream response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// newHTTPClient leaves Transport nil so http.DefaultTransport is used
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes a 2xx JSON body into out
func getJSON(ctx context.Context, hc *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// observe counts the call and logs failures
func observe(source, operation, outcome string, err error) {
	metrics.UpstreamRequests.WithLabelValues(source, operation, outcome).Inc()
	if err != nil {
		logging.Warn("Upstream request failed", "source", source, "operation", operation, "error", err)
	}
}
