package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_LLM(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantProvider string
		wantKey      string
	}{
		{"none", nil, "ionet", ""},
		{"ionet", map[string]string{"IONET_API_KEY": "io"}, "ionet", "io"},
		{"openai", map[string]string{"OPENAI_API_KEY": "oa"}, "openai", "oa"},
		{"gemini wins", map[string]string{"IONET_API_KEY": "io", "GEMINI_API_KEY": "gm"}, "gemini", "gm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			cfg.applyEnvOverrides()
			assert.Equal(t, tt.wantProvider, cfg.LLM.Provider)
			assert.Equal(t, tt.wantKey, cfg.LLM.APIKey)
		})
	}
}

func TestEnvOverrides_PathsAndDebug(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLIDEGEN_DB", "/tmp/x.db")
	t.Setenv("SLIDEGEN_OUTPUT_DIR", "/tmp/decks")
	t.Setenv("SLIDEGEN_DEBUG", "true")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, "/tmp/x.db", cfg.Store.Path)
	assert.Equal(t, "/tmp/decks", cfg.Render.OutputDir)
	assert.True(t, cfg.Logging.DebugMode)

	t.Setenv("SLIDEGEN_DEBUG", "maybe")
	cfg = DefaultConfig()
	cfg.applyEnvOverrides()
	assert.False(t, cfg.Logging.DebugMode)
}

func TestEnvOverrides_AppliedWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
}
