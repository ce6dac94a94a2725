package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"slidegen/internal/config"
	"slidegen/internal/llm"
	"slidegen/internal/metrics"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started once by signal.Notify and never stopped
		goleak.IgnoreAnyFunction("os/signal.loop"),
		// started by an init in the genai dependency tree
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

// testEnv is an isolated home: config, databases, logs and output live
// under one temp dir.
type testEnv struct {
	dir        string
	configPath string
	outputDir  string
	opened     []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{"IONET_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "SLIDEGEN_DB", "SLIDEGEN_OUTPUT_DIR", "SLIDEGEN_DEBUG"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	c := config.DefaultConfig()
	c.Store.Path = filepath.Join(dir, "presentations.db")
	c.Store.SettingsPath = filepath.Join(dir, "settings.db")
	c.Logging.Dir = filepath.Join(dir, "logs")
	c.Render.OutputDir = filepath.Join(dir, "output")
	c.LLM.RetryDelay = "1ms"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, c.Save(path))

	env := &testEnv{dir: dir, configPath: path, outputDir: c.Render.OutputDir}

	origOpen := openFile
	openFile = func(p string) error {
		env.opened = append(env.opened, p)
		return nil
	}
	t.Cleanup(func() { openFile = origOpen })
	return env
}

// useLLM replaces the LLM client for the duration of the test.
func useLLM(t *testing.T, fn llm.ClientFunc) {
	t.Helper()
	orig := newLLMClient
	newLLMClient = func(context.Context, *config.Config, *metrics.Recorder) (llm.Client, error) {
		return fn, nil
	}
	t.Cleanup(func() { newLLMClient = orig })
}

// run executes the root command with args after the env's --config flag.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default; cobra keeps values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
