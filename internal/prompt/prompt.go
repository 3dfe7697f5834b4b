// Package prompt loads the fixed task prompts used by the orchestrators.
package prompt

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"docreview/internal/config"
)

//go:embed templates/*.json
var templates embed.FS

// Set holds the prompt text for each orchestrated operation.
type Set struct {
	Review  string
	Compare string
}

type promptFile struct {
	Prompt string `json:"prompt"`
}

// Load returns the built-in prompts, replaced by the files named in cfg where set.
// Every prompt must be non-empty.
func Load(cfg config.PromptsConfig) (*Set, error) {
	review, err := load("review", cfg.ReviewPath)
	if err != nil {
		return nil, err
	}
	compare, err := load("compare", cfg.ComparePath)
	if err != nil {
		return nil, err
	}
	return &Set{Review: review, Compare: compare}, nil
}

func load(name, overridePath string) (string, error) {
	var (
		data []byte
		err  error
	)
	if overridePath != "" {
		data, err = os.ReadFile(overridePath)
	} else {
		data, err = templates.ReadFile("templates/" + name + ".json")
	}
	if err != nil {
		return "", fmt.Errorf("reading %s prompt: %w", name, err)
	}
	return Parse(name, data)
}

// Parse decodes a {"prompt": "..."} document.
func Parse(name string, data []byte) (string, error) {
	var f promptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("parsing %s prompt: %w", name, err)
	}
	if strings.TrimSpace(f.Prompt) == "" {
		return "", fmt.Errorf("%s prompt is empty", name)
	}
	return f.Prompt, nil
}
