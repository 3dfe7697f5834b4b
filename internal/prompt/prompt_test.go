package prompt_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreview/internal/config"
	"docreview/internal/prompt"
)

func TestLoad_BuiltIn(t *testing.T) {
	set, err := prompt.Load(config.PromptsConfig{})

	require.NoError(t, err)
	assert.Contains(t, set.Review, "review")
	assert.Contains(t, set.Compare, "contractA")
	assert.Contains(t, set.Compare, "differences")
}

func TestLoad_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "review.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prompt":"custom review"}`), 0o600))

	set, err := prompt.Load(config.PromptsConfig{ReviewPath: path})

	require.NoError(t, err)
	assert.Equal(t, "custom review", set.Review)
	assert.NotEmpty(t, set.Compare)
}

func TestLoad_MissingOverride(t *testing.T) {
	_, err := prompt.Load(config.PromptsConfig{ComparePath: "/nonexistent/compare.json"})
	assert.Error(t, err)
}

func TestParse_EmptyPrompt(t *testing.T) {
	_, err := prompt.Parse("review", []byte(`{"prompt":"   "}`))
	assert.EqualError(t, err, "review prompt is empty")

	_, err = prompt.Parse("review", []byte(`not json`))
	assert.Error(t, err)
}
