package llm

import (
	"fmt"
	"sync"

	"docreview/internal/config"
	"docreview/internal/domain"
	"docreview/internal/port"
)

// ProviderFactory creates a ChatModel from a provider config.
type ProviderFactory func(cfg *config.LLMProviderConfig) (port.ChatModel, error)

var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// NewChatModel creates a ChatModel using the factory registered for cfg.Provider.
func NewChatModel(cfg *config.LLMProviderConfig) (port.ChatModel, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q: %w", cfg.Provider, domain.ErrModelNotConfigured)
	}
	return factory(cfg)
}

// NewChain builds the configured provider chain: the primary provider, then
// the secondary if one is set. A single provider is returned as is.
func NewChain(cfg *config.LLMConfig) (port.ChatModel, error) {
	if cfg.Primary.APIKey == "" {
		return nil, fmt.Errorf("primary llm provider %q has no api key: %w", cfg.Primary.Provider, domain.ErrModelNotConfigured)
	}
	primary, err := NewChatModel(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := NewChatModel(secondaryCfg)
	if err != nil {
		return nil, err
	}
	return NewFallbackModel(
		[]port.ChatModel{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
