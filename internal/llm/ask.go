package llm

import (
	"context"
	"errors"
	"fmt"

	"slidegen/internal/retry"
)

// ErrRejected marks a reply that parsed but failed the caller's check.
var ErrRejected = errors.New("reply failed validation")

// Ask sends req under policy until extract accepts the JSON object in the
// reply. A rejected or missing key ends the retries at once.
func Ask[T any](ctx context.Context, c Client, policy retry.Policy, req Request, extract func(map[string]any) (T, bool)) (T, error) {
	return retry.Value(ctx, policy, func(ctx context.Context, _ int) (T, error) {
		var zero T
		text, err := c.Complete(ctx, req)
		if err != nil {
			if errors.Is(err, ErrInvalidAPIKey) || errors.Is(err, ErrNoAPIKey) {
				return zero, retry.Permanent(err)
			}
			return zero, err
		}
		obj, err := ParseObject(text)
		if err != nil {
			return zero, err
		}
		out, ok := extract(obj)
		if !ok {
			return zero, fmt.Errorf("%w: %.80q", ErrRejected, text)
		}
		return out, nil
	})
}
