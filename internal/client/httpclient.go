// Package client holds the plumbing shared by the collaborator clients.
package client

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"docreview/internal/domain"
	"docreview/internal/logger"
)

// maxBodyEcho caps how much of a failed collaborator response is echoed back.
const maxBodyEcho = 2048

// New returns an http.Client bounded by timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Decorate sets the headers every collaborator call carries.
func Decorate(req *http.Request, apiKey string) {
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	if id := logger.RequestIDFromContext(req.Context()); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
}

// Do executes req and returns the response body for 2xx statuses. Any other
// outcome is reported as a *domain.UpstreamError of the given kind.
func Do(c *http.Client, req *http.Request, service string, kind error) ([]byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Service: service, Kind: kind, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{
			Service: service, Kind: kind, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("reading response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamError{
			Service:    service,
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Body:       Truncate(string(body), maxBodyEcho),
		}
	}
	return body, nil
}

// Truncate shortens s to maxLen bytes, marking the cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
