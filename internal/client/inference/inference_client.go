package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docreview/internal/client"
	"docreview/internal/config"
	"docreview/internal/domain"
)

const (
	serviceName    = "inference"
	analyzePath    = "/ai"
	defaultTimeout = 120 * time.Second
)

// Request is the wire body sent to the model collaborator.
type Request struct {
	Pages  domain.PageSet `json:"pages"`
	Prompt string         `json:"prompt"`
}

// Client implements port.Inferencer against the model collaborator.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an inference client from collaborator config.
func NewClient(cfg *config.CollaboratorConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    client.New(cfg.Timeout(defaultTimeout)),
	}
}

// Infer sends every page slot and the prompt in a single request and returns
// the model's JSON object untouched.
func (c *Client) Infer(ctx context.Context, pages domain.PageSet, prompt string) (domain.InferenceResult, error) {
	payload, err := json.Marshal(Request{Pages: pages, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	client.Decorate(req, c.apiKey)

	body, err := client.Do(c.http, req, serviceName, domain.ErrInferenceFailed)
	if err != nil {
		return nil, err
	}

	var result domain.InferenceResult
	if err := json.Unmarshal(body, &result); err != nil || result == nil {
		return nil, &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.ErrInvalidInferenceResponse,
			Body:    client.Truncate(string(body), 500),
			Err:     fmt.Errorf("decoding response: %w", errOrNull(err)),
		}
	}
	return result, nil
}

func errOrNull(err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("response was null")
}
