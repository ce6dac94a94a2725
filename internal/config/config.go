package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all slidegen configuration.
type Config struct {
	// LLM provider and transport
	LLM LLMConfig `yaml:"llm"`

	// Default outline shape
	Generation GenerationConfig `yaml:"generation"`

	// Web search enrichment
	Search SearchConfig `yaml:"search"`

	// Document output
	Render RenderConfig `yaml:"render"`

	// Persistence
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Circuit breaker around the LLM transport
	Breaker BreakerConfig `yaml:"breaker"`
}

// LLMConfig configures the LLM client.
type LLMConfig struct {
	Provider    string `yaml:"provider" validate:"required"` // ionet, openai, gemini
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model" validate:"required"`
	BaseURL     string `yaml:"base_url" validate:"omitempty,url"`
	Timeout     string `yaml:"timeout"`
	MaxTokens   int    `yaml:"max_tokens" validate:"gte=1"`
	MaxAttempts int    `yaml:"max_attempts" validate:"gte=1,lte=10"`
	RetryDelay  string `yaml:"retry_delay"`
}

// GenerationConfig holds outline defaults used when flags are not given.
type GenerationConfig struct {
	Sections int    `yaml:"sections" validate:"gte=1,lte=20"`
	Slides   int    `yaml:"slides" validate:"gte=1,lte=20"`
	Language string `yaml:"language" validate:"required"`
}

// SearchConfig configures web enrichment.
type SearchConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Region         string `yaml:"region"`
	Results        int    `yaml:"results" validate:"gte=1,lte=20"`
	Fetcher        string `yaml:"fetcher" validate:"oneof=http browser"`
	PageChars      int    `yaml:"page_chars" validate:"gte=100"`
	MaxChars       int    `yaml:"max_chars" validate:"gtefield=PageChars"`
	RequestDelay   string `yaml:"request_delay"`
	CacheTTL       string `yaml:"cache_ttl"`
	Headless       bool   `yaml:"headless"`
	BrowserBin     string `yaml:"browser_bin"`
	EndpointURL    string `yaml:"endpoint_url" validate:"omitempty,url"`
	RequestTimeout string `yaml:"request_timeout"`
}

// RenderConfig configures document output.
type RenderConfig struct {
	OutputDir    string `yaml:"output_dir" validate:"required"`
	FontPath     string `yaml:"font_path"`
	BoldFontPath string `yaml:"bold_font_path"`
	Seed         int64  `yaml:"seed"` // 0 = time-based
	AutoOpen     bool   `yaml:"auto_open"`
}

// StoreConfig configures the sqlite databases.
type StoreConfig struct {
	Path         string `yaml:"path" validate:"required"`
	SettingsPath string `yaml:"settings_path" validate:"required"`
}

// BreakerConfig configures the gobreaker circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32  `yaml:"max_requests"`
	Interval         string  `yaml:"interval"`
	Timeout          string  `yaml:"timeout"`
	MinRequests      uint32  `yaml:"min_requests" validate:"gte=1"`
	FailureThreshold float64 `yaml:"failure_threshold" validate:"gt=0,lte=1"`
}

// DefaultHome returns the directory holding slidegen state (~/.slidegen).
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".slidegen"
	}
	return filepath.Join(home, ".slidegen")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultHome(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home := DefaultHome()
	return &Config{
		LLM: LLMConfig{
			Provider:    "ionet",
			Model:       "meta-llama/Llama-3.3-70B-Instruct",
			BaseURL:     "https://api.intelligence.io.solutions/api/v1",
			Timeout:     "30s",
			MaxTokens:   800,
			MaxAttempts: 3,
			RetryDelay:  "1s",
		},

		Generation: GenerationConfig{
			Sections: 3,
			Slides:   4,
			Language: "english",
		},

		Search: SearchConfig{
			Enabled:        false,
			Region:         "wt-wt",
			Results:        5,
			Fetcher:        "http",
			PageChars:      800,
			MaxChars:       2500,
			RequestDelay:   "1s",
			CacheTTL:       "1h",
			Headless:       true,
			RequestTimeout: "15s",
		},

		Render: RenderConfig{
			OutputDir: "output",
			AutoOpen:  true,
		},

		Store: StoreConfig{
			Path:         filepath.Join(home, "presentations.db"),
			SettingsPath: filepath.Join(home, "settings.db"),
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			Dir:       filepath.Join(home, "logs"),
			DebugMode: false,
		},

		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         "60s",
			Timeout:          "30s",
			MinRequests:      5,
			FailureThreshold: 0.6,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// API keys, later entries win
	if key := os.Getenv("IONET_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "ionet"
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "openai"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
	}

	if path := os.Getenv("SLIDEGEN_DB"); path != "" {
		c.Store.Path = path
	}
	if dir := os.Getenv("SLIDEGEN_OUTPUT_DIR"); dir != "" {
		c.Render.OutputDir = dir
	}
	if v := os.Getenv("SLIDEGEN_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// GetLLMTimeout returns the per-request LLM timeout.
func (c *Config) GetLLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 30*time.Second)
}

// GetRetryDelay returns the base delay of the linear retry backoff.
func (c *Config) GetRetryDelay() time.Duration {
	return parseDuration(c.LLM.RetryDelay, time.Second)
}

// GetSearchDelay returns the pause between page fetches.
func (c *Config) GetSearchDelay() time.Duration {
	return parseDuration(c.Search.RequestDelay, time.Second)
}

// GetSearchCacheTTL returns how long lookups stay cached.
func (c *Config) GetSearchCacheTTL() time.Duration {
	return parseDuration(c.Search.CacheTTL, time.Hour)
}

// GetSearchTimeout returns the per-request search/fetch timeout.
func (c *Config) GetSearchTimeout() time.Duration {
	return parseDuration(c.Search.RequestTimeout, 15*time.Second)
}

// GetBreakerInterval returns the breaker counting interval.
func (c *Config) GetBreakerInterval() time.Duration {
	return parseDuration(c.Breaker.Interval, 60*time.Second)
}

// GetBreakerTimeout returns how long the breaker stays open.
func (c *Config) GetBreakerTimeout() time.Duration {
	return parseDuration(c.Breaker.Timeout, 30*time.Second)
}

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{"ionet", "openai", "gemini"}

var validate = validator.New()

// Validate checks field constraints and the provider name. It does not
// require an API key; see RequireAPIKey.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	validProvider := false
	for _, p := range ValidProviders {
		if c.LLM.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}

	return nil
}

// RequireAPIKey fails when no credentials are configured.
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key not configured (set IONET_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY, or pass --api-key)")
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gtefield":
		return fmt.Sprintf("%s must not be smaller than %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
