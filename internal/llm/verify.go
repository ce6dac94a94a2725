package llm

import (
	"context"
	"errors"
	"strings"
)

const verifyPrompt = `If you can read this message, reply in JSON format: {"success": true}`

// VerifyKey sends a short test prompt and reports whether the provider accepted
// the credentials and answered sensibly. Only transport failures other than
// a rejected key are returned as errors.
func VerifyKey(ctx context.Context, c Client) (bool, error) {
	reply, err := c.Complete(ctx, Request{Prompt: verifyPrompt, Temperature: 0.1})
	if err != nil {
		if errors.Is(err, ErrInvalidAPIKey) || errors.Is(err, ErrNoAPIKey) {
			return false, nil
		}
		return false, err
	}

	if obj, err := ParseObject(reply); err == nil {
		ok, _ := Bool(obj, "success")
		return ok, nil
	}
	lower := strings.ToLower(reply)
	return strings.Contains(lower, "success") && strings.Contains(lower, "true"), nil
}
