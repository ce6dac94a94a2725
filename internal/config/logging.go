package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string          `yaml:"format" validate:"omitempty,oneof=json text"`
	Dir        string          `yaml:"dir"`
	DebugMode  bool            `yaml:"debug_mode"` // master toggle, false = no category logs
	Categories map[string]bool `yaml:"categories"` // missing keys are enabled
}

// JSONFormat reports whether log files use the JSON encoder.
func (c *LoggingConfig) JSONFormat() bool {
	return c.Format == "json"
}
