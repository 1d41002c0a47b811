package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[llm]
provider = "claude"
model = "claude-sonnet-4-5"
api_key = "test-key"

[extraction]
mode = "generate"
max_entities = 10
language = "de"

[relations]
enabled = true
kgc_rounds = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "generate", cfg.Extraction.Mode)
	assert.Equal(t, 10, cfg.Extraction.MaxEntities)
	assert.Equal(t, "de", cfg.Extraction.Language)
	assert.Equal(t, 5, cfg.Relations.KGCRounds)
	// Untouched sections keep defaults.
	assert.Equal(t, 2000, cfg.Chunking.Size)
	assert.Equal(t, 15, cfg.Relations.MaxRelations)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.toml")
	assert.Error(t, err)
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.LLM.Provider = "ollama"
	assert.NoError(t, cfg.Validate())
}

func TestValidateChunking(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "k"
	cfg.Chunking.Enabled = true
	cfg.Chunking.Size = 100
	cfg.Chunking.Overlap = 100
	assert.Error(t, cfg.Validate())

	cfg.Chunking.Overlap = 99
	assert.NoError(t, cfg.Validate())
}

func TestValidateMode(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "k"
	cfg.Extraction.Mode = "summarize"
	assert.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_API_KEY", "from-env")

	cfg := Default().ApplyEnv()
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
}
