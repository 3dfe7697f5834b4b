package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docreview/internal/config"
	"docreview/internal/llm"
	"docreview/internal/port"
)

const (
	openAIURL     = "https://api.openai.com/v1/chat/completions"
	openRouterURL = "https://openrouter.ai/api/v1/chat/completions"
)

// Client implements port.ChatModel against an OpenAI-compatible Chat
// Completions API. OpenRouter speaks the same protocol.
type Client struct {
	provider string
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a client for api.openai.com.
func NewClient(cfg *config.LLMProviderConfig) *Client {
	return newClient(cfg, "openai", openAIURL, "gpt-4o")
}

// NewOpenRouterClient creates a client for openrouter.ai.
func NewOpenRouterClient(cfg *config.LLMProviderConfig) *Client {
	return newClient(cfg, "openrouter", openRouterURL, "openrouter/auto")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.LLMProviderConfig, endpoint string) *Client {
	return newClient(cfg, cfg.Provider, endpoint, "gpt-4o")
}

func newClient(cfg *config.LLMProviderConfig, provider, endpoint, defaultModel string) *Client {
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		provider: provider,
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string             `json:"model"`
	Messages []port.ChatMessage `json:"messages"`
}

// apiResponse models the Chat Completions API response.
type apiResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, in port.ChatRequest) (*port.ChatResponse, error) {
	messages := make([]port.ChatMessage, 0, len(in.Messages)+1)
	if in.System != "" {
		messages = append(messages, port.ChatMessage{Role: "system", Content: in.System})
	}
	messages = append(messages, in.Messages...)

	bodyBytes, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s API: %w", c.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := &llm.ProviderError{Provider: c.provider, StatusCode: resp.StatusCode, Body: string(respBody)}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := llm.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, llm.NewRateLimitError(c.provider, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, c.model)
}

func parseResponse(body []byte, model string) (*port.ChatResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}
	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}
	if resp.Model != "" {
		model = resp.Model
	}
	return &port.ChatResponse{Text: resp.Choices[0].Message.Content, Model: model}, nil
}
