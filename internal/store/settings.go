package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"slidegen/internal/logging"

	_ "modernc.org/sqlite"
)

// Setting keys.
const (
	KeyInterfaceLanguage = "interface_language"
	KeySlideSize         = "slide_size"
	KeyAIModel           = "ai_model"
	KeySearchEngine      = "search_engine"
	KeySearchResults     = "search_results_count"
	KeySearchRegion      = "search_region"
	KeyAutoOpen          = "auto_open_presentation"
	KeyDeveloperMode     = "developer_mode"
	KeyWebSearch         = "web_search"
)

// Defaults are written for every missing key when the settings database is
// opened, and restored by Reset.
var Defaults = map[string]any{
	KeyInterfaceLanguage: "english",
	KeySlideSize:         "16:9",
	KeyAIModel:           "meta-llama/Llama-3.3-70B-Instruct",
	KeySearchEngine:      "DuckDuckGo",
	KeySearchResults:     5,
	KeySearchRegion:      "wt-wt",
	KeyAutoOpen:          true,
	KeyDeveloperMode:     false,
	KeyWebSearch:         false,
}

// ErrUnknownSetting is returned for keys outside Defaults.
var ErrUnknownSetting = errors.New("unknown setting")

// Keys lists the known setting keys in order.
func Keys() []string {
	keys := make([]string, 0, len(Defaults))
	for k := range Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings is the key/value settings store.
type Settings struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSettings opens the settings database at path and fills in defaults.
func OpenSettings(path string) (*Settings, error) {
	db, err := open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}
	s := &Settings{db: db}
	if err := s.fillDefaults(context.Background(), false); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Settings) Close() error {
	return s.db.Close()
}

func (s *Settings) fillDefaults(ctx context.Context, overwrite bool) error {
	stmt := `INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`
	if overwrite {
		stmt = `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`
	}
	for _, key := range Keys() {
		raw, err := json.Marshal(Defaults[key])
		if err != nil {
			return fmt.Errorf("failed to encode default %s: %w", key, err)
		}
		if _, err := s.db.ExecContext(ctx, stmt, key, string(raw)); err != nil {
			return fmt.Errorf("failed to write default %s: %w", key, err)
		}
	}
	return nil
}

// decode reads a stored value. Values that are not JSON are plain strings.
func decode(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// Get returns the value of key, or false when it is not stored.
func (s *Settings) Get(ctx context.Context, key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return decode(raw), true, nil
}

// Set stores value under a known key.
func (s *Settings) Set(ctx context.Context, key string, value any) error {
	if _, ok := Defaults[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, string(raw)); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	logging.SettingsDebug("Set %s = %s", key, raw)
	return nil
}

// All returns every stored setting.
func (s *Settings) All(ctx context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]any)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out[key] = decode(raw)
	}
	return out, rows.Err()
}

// Reset restores all defaults and drops unknown keys.
func (s *Settings) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	logging.SettingsDebug("Settings reset to defaults")
	return s.fillDefaults(ctx, true)
}

// String returns key as a string, falling back to its default.
func (s *Settings) String(ctx context.Context, key string) string {
	if v, ok, err := s.Get(ctx, key); err == nil && ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	str, _ := Defaults[key].(string)
	return str
}

// Bool returns key as a bool, falling back to its default.
func (s *Settings) Bool(ctx context.Context, key string) bool {
	if v, ok, err := s.Get(ctx, key); err == nil && ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	b, _ := Defaults[key].(bool)
	return b
}

// Int returns key as an int, falling back to its default.
func (s *Settings) Int(ctx context.Context, key string) int {
	if v, ok, err := s.Get(ctx, key); err == nil && ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	n, _ := Defaults[key].(int)
	return n
}

// Coerce parses command-line text into the type of key's default.
func Coerce(key, text string) (any, error) {
	def, ok := Defaults[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	switch def.(type) {
	case bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, text)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%s expects a whole number, got %q", key, text)
		}
		return n, nil
	default:
		return text, nil
	}
}
