package port

import "context"

// ChatMessage is a single message in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries a system prompt and the user messages to send.
type ChatRequest struct {
	System   string
	Messages []ChatMessage
}

// ChatResponse contains the assistant text returned by a provider.
type ChatResponse struct {
	Text  string
	Model string
}

// ChatModel abstracts an LLM chat completion provider.
type ChatModel interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
