package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"IONET_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "SLIDEGEN_DB", "SLIDEGEN_OUTPUT_DIR", "SLIDEGEN_DEBUG"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "ionet", cfg.LLM.Provider)
	assert.Equal(t, "meta-llama/Llama-3.3-70B-Instruct", cfg.LLM.Model)
	assert.Equal(t, 800, cfg.LLM.MaxTokens)
	assert.Equal(t, 3, cfg.Generation.Sections)
	assert.Equal(t, 4, cfg.Generation.Slides)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "gemini"
	cfg.LLM.APIKey = "test-key"
	cfg.Generation.Language = "russian"
	cfg.Logging.Categories = map[string]bool{"search": false}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", loaded.LLM.Provider)
	assert.Equal(t, "test-key", loaded.LLM.APIKey)
	assert.Equal(t, "russian", loaded.Generation.Language)
	assert.False(t, loaded.Logging.Categories["search"])
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().LLM, cfg.LLM)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  sections: 5\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Generation.Sections)
	assert.Equal(t, 4, cfg.Generation.Slides)
	assert.Equal(t, "ionet", cfg.LLM.Provider)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Error(t, cfg.RequireAPIKey())

	cfg.LLM.APIKey = "k"
	assert.NoError(t, cfg.RequireAPIKey())

	cfg.LLM.Provider = "invalid-provider"
	assert.ErrorContains(t, cfg.Validate(), "invalid LLM provider")

	cfg = DefaultConfig()
	cfg.Generation.Sections = 0
	cfg.Search.Fetcher = "carrier-pigeon"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Generation.Sections must be at least 1")
	assert.Contains(t, err.Error(), "Config.Search.Fetcher must be one of: http browser")
}

func TestConfig_DurationGetters(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.GetLLMTimeout())
	assert.Equal(t, time.Second, cfg.GetRetryDelay())
	assert.Equal(t, time.Hour, cfg.GetSearchCacheTTL())

	cfg.LLM.Timeout = "not-a-duration"
	assert.Equal(t, 30*time.Second, cfg.GetLLMTimeout())

	cfg.Breaker.Timeout = "5s"
	assert.Equal(t, 5*time.Second, cfg.GetBreakerTimeout())
}
