// Package providers holds the HTTP plumbing shared by the upstream API clients.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every upstream request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// StatusError is returned when an upstream API answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// NewHTTPClient returns an http.Client with the given timeout, falling back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// WithUserAgent makes every request of client identify itself as userAgent.
// Some public APIs reject anonymous clients.
func WithUserAgent(client *http.Client, userAgent string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client.Transport = userAgentTransport{base: base, userAgent: userAgent}
	return client
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// Endpoint strips the query string, which may carry API keys, from u.
func Endpoint(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// GetJSON performs a GET request against u and decodes the JSON body into out.
func GetJSON(ctx context.Context, httpClient *http.Client, u *url.URL, out any, logger *slog.Logger) error {
	endpoint := Endpoint(u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("fetching", "endpoint", endpoint)

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Error("failed to fetch", "endpoint", endpoint, "error", err)
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("upstream API returned error",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("failed to decode response", "endpoint", endpoint, "error", err)
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	return nil
}
