package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when a reply contains no decodable JSON object.
var ErrNoJSON = errors.New("no JSON object in response")

// ParseObject extracts a JSON object from a model reply. Line breaks are
// removed first; if the whole text is not an object, the span from the
// first '{' to the last '}' is tried.
func ParseObject(text string) (map[string]any, error) {
	cleaned := strings.NewReplacer("\r", "", "\n", "").Replace(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil && obj != nil {
		return obj, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, ErrNoJSON
	}
	obj = nil
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &obj); err != nil || obj == nil {
		return nil, ErrNoJSON
	}
	return obj, nil
}

// String returns obj[key] when it is a string.
func String(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Strings returns obj[key] when it is an array, keeping only string
// elements.
func Strings(obj map[string]any, key string) ([]string, bool) {
	v, ok := obj[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Bool returns obj[key] when it is a boolean.
func Bool(obj map[string]any, key string) (bool, bool) {
	v, ok := obj[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
