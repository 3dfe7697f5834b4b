package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"docreview/internal/domain"
	"docreview/internal/llm"
	"docreview/internal/logger"
	"docreview/internal/port"
)

// AnalyzeInput is the DTO for a model gateway request. Pages is either a
// slot→pages object or an array of page strings, page objects or slot maps.
type AnalyzeInput struct {
	Pages  json.RawMessage
	Prompt string
}

// ModelService defines the model gateway contract.
type ModelService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (domain.InferenceResult, error)
}

type modelService struct {
	model port.ChatModel
}

// NewModelService creates a new ModelService implementation. A nil model
// makes every call fail with domain.ErrModelNotConfigured.
func NewModelService(model port.ChatModel) ModelService {
	return &modelService{model: model}
}

func (s *modelService) Analyze(ctx context.Context, input AnalyzeInput) (domain.InferenceResult, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(input.Prompt) == "" {
		return nil, domain.NewValidationError("Missing or invalid 'prompt' - must be a non-empty string")
	}
	messages, err := RenderPages(input.Pages)
	if err != nil {
		return nil, err
	}
	if s.model == nil {
		return nil, domain.ErrModelNotConfigured
	}

	log.Info().Int("messages", len(messages)).Int("prompt_len", len(input.Prompt)).Msg("modelService.Analyze: calling provider")
	resp, err := s.model.Complete(ctx, port.ChatRequest{System: input.Prompt, Messages: messages})
	if err != nil {
		log.Error().Err(err).Msg("modelService.Analyze: provider call failed")
		upErr := &domain.UpstreamError{Service: "llm", Kind: domain.ErrInferenceFailed, Err: err}
		var provErr *llm.ProviderError
		if errors.As(err, &provErr) {
			upErr.StatusCode = provErr.StatusCode
			upErr.Body = provErr.Body
		}
		return nil, upErr
	}

	log.Info().Str("model", resp.Model).Msg("modelService.Analyze: provider call succeeded")
	return ParseModelOutput(resp.Text), nil
}

// RenderPages turns the pages field into one user message per page.
func RenderPages(raw json.RawMessage) ([]port.ChatMessage, error) {
	raw = bytes.TrimSpace(raw)
	invalid := domain.NewValidationError("Missing or invalid 'pages' - must be a non-empty list or mapping")
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, invalid
	}

	var messages []port.ChatMessage
	switch raw[0] {
	case '{':
		var set domain.PageSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, invalid
		}
		messages = renderSet(set)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, invalid
		}
		for i, item := range items {
			rendered, err := renderItem(i+1, item)
			if err != nil {
				return nil, domain.NewValidationError("invalid page %d: %v", i+1, err)
			}
			messages = append(messages, rendered...)
		}
	default:
		return nil, invalid
	}

	if len(messages) == 0 {
		return nil, invalid
	}
	return messages, nil
}

func renderItem(position int, item json.RawMessage) ([]port.ChatMessage, error) {
	var text string
	if err := json.Unmarshal(item, &text); err == nil {
		return []port.ChatMessage{pageMessage("Page", position, text)}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return nil, err
	}
	if _, ok := fields["content"]; ok {
		var entry domain.PageEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, err
		}
		if entry.Page == 0 {
			entry.Page = position
		}
		return []port.ChatMessage{pageMessage("Page", entry.Page, entry.Content)}, nil
	}

	var set domain.PageSet
	if err := json.Unmarshal(item, &set); err != nil {
		return nil, err
	}
	return renderSet(set), nil
}

func renderSet(set domain.PageSet) []port.ChatMessage {
	slots := make([]string, 0, len(set))
	for slot := range set {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	var out []port.ChatMessage
	for _, slot := range slots {
		for _, p := range set[slot] {
			out = append(out, pageMessage(slot+" page", p.Page, p.Content))
		}
	}
	return out
}

func pageMessage(label string, n int, content string) port.ChatMessage {
	return port.ChatMessage{
		Role:    "user",
		Content: fmt.Sprintf("--- %s %d ---\n%s", label, n, content),
	}
}

// ParseModelOutput decodes the assistant text as a JSON object, tolerating a
// surrounding markdown code fence. Anything else is wrapped as
// {"analysis": text}.
func ParseModelOutput(text string) domain.InferenceResult {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var result domain.InferenceResult
	if err := json.Unmarshal([]byte(trimmed), &result); err == nil && result != nil {
		return result
	}
	return domain.InferenceResult{"analysis": text}
}
