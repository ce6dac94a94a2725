package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingPolicy(max int, slept *[]time.Duration) Policy {
	return Policy{
		MaxAttempts: max,
		Backoff:     Linear(time.Second),
		Sleep: func(ctx context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
}

func TestLinearBackoff(t *testing.T) {
	b := Linear(time.Second)
	assert.Equal(t, time.Duration(0), b(0))
	assert.Equal(t, time.Second, b(1))
	assert.Equal(t, 3*time.Second, b(3))
}

func TestExponentialBackoffCaps(t *testing.T) {
	b := Exponential(time.Second, 5*time.Second)
	assert.Equal(t, time.Second, b(1))
	assert.Equal(t, 4*time.Second, b(3))
	assert.Equal(t, 5*time.Second, b(4))
}

func TestValue_SucceedsAfterFailures(t *testing.T) {
	var slept []time.Duration
	calls := 0
	v, err := Value(context.Background(), recordingPolicy(3, &slept), func(ctx context.Context, attempt int) (string, error) {
		calls++
		if attempt < 3 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
}

func TestDo_Exhausted(t *testing.T) {
	var slept []time.Duration
	boom := errors.New("boom")
	var retried []int
	p := recordingPolicy(3, &slept)
	p.OnRetry = func(attempt int, err error) { retried = append(retried, attempt) }

	err := Do(context.Background(), p, func(ctx context.Context, attempt int) error { return boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_PermanentStopsEarly(t *testing.T) {
	var slept []time.Duration
	denied := errors.New("denied")
	calls := 0
	err := Do(context.Background(), recordingPolicy(5, &slept), func(ctx context.Context, attempt int) error {
		calls++
		return Permanent(denied)
	})
	assert.Equal(t, denied, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept)
	assert.Nil(t, Permanent(nil))
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Default(), func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSleepContextHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := sleepContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNoWait(t *testing.T) {
	p := Default().NoWait()
	calls := 0
	start := time.Now()
	_ = Do(context.Background(), p, func(ctx context.Context, attempt int) error {
		calls++
		return errors.New("x")
	})
	assert.Equal(t, 3, calls)
	assert.Less(t, time.Since(start), time.Second)
}
