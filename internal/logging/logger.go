// Package logging provides categorized file-based debug logging for slidegen.
// Logs are written to one file per category and day. Nothing is written
// unless developer mode is enabled.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem
type Category string

const (
	CategoryBoot       Category = "boot"       // startup, config resolution
	CategoryLLM        Category = "llm"        // LLM API calls
	CategoryOutline    Category = "outline"    // outline generation pipeline
	CategoryCorrection Category = "correction" // correction requests
	CategoryRender     Category = "render"     // document rendering
	CategoryLayout     Category = "layout"     // decoration placement
	CategorySearch     Category = "search"     // web search and scraping
	CategoryStore      Category = "store"      // presentation persistence
	CategorySettings   Category = "settings"   // settings persistence
	CategoryCLI        Category = "cli"        // command handling
)

// Options controls logging. It mirrors config.LoggingConfig to avoid an
// import cycle.
type Options struct {
	Dir        string
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

// Logger writes printf-style messages for one category.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	opts      Options
	optsMu    sync.RWMutex
)

// Initialize applies options. Call once at startup; calling again replaces
// the options and closes open log files.
func Initialize(o Options) error {
	CloseAll()

	if o.DebugMode {
		if o.Dir == "" {
			return fmt.Errorf("logs directory required in debug mode")
		}
		if err := os.MkdirAll(o.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	optsMu.Lock()
	opts = o
	optsMu.Unlock()

	if !o.DebugMode {
		return nil
	}

	boot := Get(CategoryBoot)
	boot.Info("=== slidegen logging initialized ===")
	boot.Info("Logs directory: %s", o.Dir)
	boot.Info("Log level: %s", levelName(o.Level))
	return nil
}

// IsDebugMode reports whether debug logging is enabled.
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled reports whether a category writes anything.
func IsCategoryEnabled(category Category) bool {
	optsMu.RLock()
	defer optsMu.RUnlock()

	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, ok := opts.Categories[string(category)]
	if !ok {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category. A disabled category
// yields a no-op logger.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	optsMu.RLock()
	o := opts
	optsMu.RUnlock()

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(o.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return &Logger{category: category}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if o.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(file), zap.NewAtomicLevelAt(parseLevel(o.Level)))

	l := &Logger{
		category: category,
		sugar:    zap.New(core).Named(string(category)).Sugar(),
		file:     file,
	}
	loggers[category] = l
	return l
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug", "":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func levelName(s string) string {
	return parseLevel(s).String()
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// With returns a logger that attaches key/value pairs to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	if l.sugar == nil {
		return l
	}
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// CloseAll flushes and closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.sugar != nil {
			_ = l.sugar.Sync()
		}
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debug(format, args...) }

// LLM logs to the llm category
func LLM(format string, args ...interface{}) { Get(CategoryLLM).Info(format, args...) }

// LLMDebug logs debug to the llm category
func LLMDebug(format string, args ...interface{}) { Get(CategoryLLM).Debug(format, args...) }

// LLMWarn logs warning to the llm category
func LLMWarn(format string, args ...interface{}) { Get(CategoryLLM).Warn(format, args...) }

// LLMError logs error to the llm category
func LLMError(format string, args ...interface{}) { Get(CategoryLLM).Error(format, args...) }

// Outline logs to the outline category
func Outline(format string, args ...interface{}) { Get(CategoryOutline).Info(format, args...) }

// OutlineDebug logs debug to the outline category
func OutlineDebug(format string, args ...interface{}) { Get(CategoryOutline).Debug(format, args...) }

// OutlineWarn logs warning to the outline category
func OutlineWarn(format string, args ...interface{}) { Get(CategoryOutline).Warn(format, args...) }

// Correction logs to the correction category
func Correction(format string, args ...interface{}) { Get(CategoryCorrection).Info(format, args...) }

// CorrectionDebug logs debug to the correction category
func CorrectionDebug(format string, args ...interface{}) {
	Get(CategoryCorrection).Debug(format, args...)
}

// Render logs to the render category
func Render(format string, args ...interface{}) { Get(CategoryRender).Info(format, args...) }

// RenderDebug logs debug to the render category
func RenderDebug(format string, args ...interface{}) { Get(CategoryRender).Debug(format, args...) }

// RenderWarn logs warning to the render category
func RenderWarn(format string, args ...interface{}) { Get(CategoryRender).Warn(format, args...) }

// LayoutDebug logs debug to the layout category
func LayoutDebug(format string, args ...interface{}) { Get(CategoryLayout).Debug(format, args...) }

// Search logs to the search category
func Search(format string, args ...interface{}) { Get(CategorySearch).Info(format, args...) }

// SearchDebug logs debug to the search category
func SearchDebug(format string, args ...interface{}) { Get(CategorySearch).Debug(format, args...) }

// SearchWarn logs warning to the search category
func SearchWarn(format string, args ...interface{}) { Get(CategorySearch).Warn(format, args...) }

// Store logs to the store category
func Store(format string, args ...interface{}) { Get(CategoryStore).Info(format, args...) }

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) { Get(CategoryStore).Debug(format, args...) }

// StoreError logs error to the store category
func StoreError(format string, args ...interface{}) { Get(CategoryStore).Error(format, args...) }

// SettingsDebug logs debug to the settings category
func SettingsDebug(format string, args ...interface{}) { Get(CategorySettings).Debug(format, args...) }

// CLI logs to the cli category
func CLI(format string, args ...interface{}) { Get(CategoryCLI).Info(format, args...) }

// =============================================================================
// TIMING
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
