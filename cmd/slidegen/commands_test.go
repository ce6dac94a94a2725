package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"slidegen/internal/config"
	"slidegen/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every pipeline step reads its own key, so one object answers them all.
const universalReply = `{
	"summary": "Cloud computing delivers on-demand resources over the network.",
	"title": "Cloud Computing Today",
	"titles": ["Foundations of the cloud", "Service models", "Security practices", "Cost control"],
	"content": "Cloud platforms deliver computing resources on demand across many regions.",
	"filename": "cloud_deck",
	"sections": ["Basics", "Operations"],
	"success": true
}`

func universal() llm.ClientFunc {
	return func(context.Context, llm.Request) (string, error) { return universalReply, nil }
}

func (e *testEnv) generate(t *testing.T, extra ...string) string {
	t.Helper()
	args := append([]string{"generate", "--api-key", "test-key", "--sections", "2", "--slides", "2", "--plain"}, extra...)
	args = append(args, "cloud", "computing")
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestGenerateListShowRender(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())

	out := env.generate(t)
	assert.Contains(t, out, "Generating section titles")
	assert.Contains(t, out, "Presentation ready")
	assert.Contains(t, out, "Stored as presentation #1")
	deck := filepath.Join(env.outputDir, "cloud_deck.pdf")
	assert.FileExists(t, deck)
	require.Len(t, env.opened, 1)
	assert.Equal(t, deck, env.opened[0])

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved presentations")
	assert.Contains(t, out, "cloud computing")

	out, err = env.run(t, "show", "1", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Cloud Computing Today")
	assert.Contains(t, out, "### 1.1 Foundations of the cloud")
	assert.Contains(t, out, "Cloud platforms deliver computing resources")

	out, err = env.run(t, "render", "1", "--filename", "again")
	require.NoError(t, err)
	assert.Contains(t, out, "again.pdf")
	assert.FileExists(t, filepath.Join(env.outputDir, "again.pdf"))
	assert.Len(t, env.opened, 1, "render opens only with --open")

	out, err = env.run(t, "files")
	require.NoError(t, err)
	assert.Contains(t, out, "cloud_deck.pdf")
	assert.Contains(t, out, "again.pdf")

	_, err = env.run(t, "files", "delete", "again.pdf")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(env.outputDir, "again.pdf"))

	_, err = env.run(t, "files", "delete", "../config.yaml")
	assert.Error(t, err)
	assert.FileExists(t, env.configPath)
}

func TestGenerateWithoutSaveOrOpen(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())

	out := env.generate(t, "--no-save", "--no-open", "--filename", "custom")
	assert.NotContains(t, out, "Stored as presentation")
	assert.FileExists(t, filepath.Join(env.outputDir, "custom.pdf"))
	assert.Empty(t, env.opened)

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved presentations yet.")
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())

	_, err := env.run(t, "generate", "--plain", "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestGenerateRejectsBadLanguage(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())

	_, err := env.run(t, "generate", "--api-key", "k", "--plain", "--language", "klingon", "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestGenerateUsesFallbacksWhenModelFails(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, func(context.Context, llm.Request) (string, error) { return "not json at all", nil })

	out := env.generate(t, "--no-open")
	assert.Contains(t, out, "Stored as presentation #1")

	out, err := env.run(t, "show", "1", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "## 1. Section 1")
	assert.Contains(t, out, "### 2.2 Slide 2")
}

func TestCorrectCommand(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())
	env.generate(t, "--no-open")

	out, err := env.run(t, "correct", "1", "--api-key", "test-key", "--plain", "--no-open", "rename", "it")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Correction 'title' applied, 1 field(s) changed")
	assert.FileExists(t, filepath.Join(env.outputDir, "Cloud_Computing_Today.pdf"))

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Cloud Computing Today")

	// the same reply again changes nothing
	out, err = env.run(t, "correct", "1", "--api-key", "test-key", "--plain", "--no-open", "rename", "it")
	require.NoError(t, err)
	assert.Contains(t, out, "made no changes")

	_, err = env.run(t, "correct", "42", "--api-key", "test-key", "--plain", "rename")
	assert.ErrorContains(t, err, "presentation not found")

	_, err = env.run(t, "correct", "abc", "rename")
	assert.ErrorContains(t, err, "invalid presentation id")

	_, err = env.run(t, "correct", "1", "--plain", "rename")
	assert.ErrorContains(t, err, "API key not configured")
}

func TestDeleteAndClear(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())
	env.generate(t, "--no-open")
	env.generate(t, "--no-open")

	out, err := env.run(t, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted presentation #1")

	_, err = env.run(t, "delete", "1")
	assert.ErrorContains(t, err, "presentation not found")

	_, err = env.run(t, "clear")
	assert.ErrorContains(t, err, "--yes")

	out, err = env.run(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed all stored presentations")

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved presentations yet.")
}

func TestSettingsCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "settings", "set", "search_results_count", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "search_results_count = 7")

	out, err = env.run(t, "settings", "get", "search_results_count")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	_, err = env.run(t, "settings", "set", "search_results_count", "lots")
	assert.ErrorContains(t, err, "whole number")

	_, err = env.run(t, "settings", "get", "colour")
	assert.ErrorContains(t, err, "unknown setting")

	out, err = env.run(t, "settings", "set", "interface_language", "ru")
	require.NoError(t, err)
	assert.Contains(t, out, "interface_language = russian")

	out, err = env.run(t, "settings", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Параметр")
	assert.Contains(t, out, "web_search")

	_, err = env.run(t, "settings", "reset")
	require.NoError(t, err)
	out, err = env.run(t, "settings", "get", "interface_language")
	require.NoError(t, err)
	assert.Equal(t, "english\n", out)
}

func TestDeveloperModePrintsStats(t *testing.T) {
	env := newTestEnv(t)
	useLLM(t, universal())

	_, err := env.run(t, "settings", "set", "developer_mode", "true")
	require.NoError(t, err)

	out := env.generate(t, "--no-open")
	assert.Contains(t, out, "Metric")
	assert.Contains(t, out, "slidegen_slides_rendered_total")
	assert.Contains(t, out, "slidegen_store_operations_total{operation=save,status=success}")

	entries, err := os.ReadDir(filepath.Join(env.dir, "logs"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestVerifyKeyCommand(t *testing.T) {
	env := newTestEnv(t)

	useLLM(t, func(context.Context, llm.Request) (string, error) { return `{"success": true}`, nil })
	out, err := env.run(t, "verify-key", "--api-key", "k")
	require.NoError(t, err)
	assert.Contains(t, out, "API key is valid")

	useLLM(t, func(context.Context, llm.Request) (string, error) { return "", llm.ErrInvalidAPIKey })
	out, err = env.run(t, "verify-key", "--api-key", "k")
	require.Error(t, err)
	assert.Contains(t, out, "API key was rejected")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	env := newTestEnv(t)
	c, err := config.Load(env.configPath)
	require.NoError(t, err)
	c.LLM.Provider = "bogus"
	require.NoError(t, c.Save(env.configPath))

	_, err = env.run(t, "list")
	assert.ErrorContains(t, err, "invalid LLM provider")
}
