package main

import (
	"fmt"
	"os"
	"time"

	"slidegen/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configPath string
	verbose    bool
	apiKey     string
	timeout    time.Duration
	outputDir  string
	dbPath     string

	// Loaded in PersistentPreRunE
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slidegen",
	Short: "slidegen - AI presentation generator",
	Long: `slidegen turns a topic into a complete slide deck.

An LLM writes the outline (summary, sections, slide titles and bodies),
optionally enriched with web search results, and the outline is rendered
to a PDF with varied layouts and decorations. Outlines are stored locally
and can be corrected with plain-language instructions and rendered again.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}
		if outputDir != "" {
			cfg.Render.OutputDir = outputDir
		}
		if dbPath != "" {
			cfg.Store.Path = dbPath
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger.Debug("Configuration loaded", zap.String("path", path), zap.String("provider", cfg.LLM.Provider))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.slidegen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "LLM API key (or set IONET_API_KEY / OPENAI_API_KEY / GEMINI_API_KEY)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory for rendered files")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Presentations database path")

	registerGenerateFlags()
	registerCorrectFlags()
	registerManageFlags()

	rootCmd.AddCommand(
		generateCmd,
		correctCmd,
		listCmd,
		showCmd,
		renderCmd,
		deleteCmd,
		clearCmd,
		filesCmd,
		settingsCmd,
		verifyKeyCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
