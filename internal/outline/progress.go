package outline

import (
	"fmt"
	"time"

	"slidegen/internal/localization"
)

// Step is one progress report.
type Step struct {
	Description string
	Current     int
	Total       int
	Remaining   time.Duration
}

// Fraction is Current/Total clamped to [0, 1].
func (s Step) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	f := float64(s.Current) / float64(s.Total)
	if f > 1 {
		return 1
	}
	return f
}

// ProgressFunc receives progress reports. It is called on the builder's
// goroutine and must not block for long.
type ProgressFunc func(Step)

// TotalSteps is the number of steps a build reports for the given shape.
func TotalSteps(sections, slides int, webSearch bool) int {
	m := 1
	if webSearch {
		m = 2
	}
	return 2 + sections*(1+slides*m)
}

const (
	timingWindow     = 10
	initialStepGuess = 5 * time.Second
)

// tracker counts steps and estimates the time left from the average of the
// most recent step durations.
type tracker struct {
	now     func() time.Time
	report  ProgressFunc
	total   int
	current int
	last    time.Time
	window  []time.Duration
}

func newTracker(total int, now func() time.Time, report ProgressFunc) *tracker {
	return &tracker{now: now, report: report, total: total, last: now()}
}

// advance closes the running step and records its duration.
func (t *tracker) advance() {
	at := t.now()
	t.window = append(t.window, at.Sub(t.last))
	if len(t.window) > timingWindow {
		t.window = t.window[1:]
	}
	t.last = at
	if t.current < t.total {
		t.current++
	}
}

func (t *tracker) average() time.Duration {
	if len(t.window) == 0 {
		return initialStepGuess
	}
	var sum time.Duration
	for _, d := range t.window {
		sum += d
	}
	return sum / time.Duration(len(t.window))
}

func (t *tracker) remaining() time.Duration {
	left := t.total - t.current
	if left <= 0 {
		return 0
	}
	return time.Duration(left) * t.average()
}

func (t *tracker) emit(description string) {
	if t.report == nil {
		return
	}
	t.report(Step{
		Description: description,
		Current:     t.current,
		Total:       t.total,
		Remaining:   t.remaining(),
	})
}

// shorten cuts s to 30 runes, appending "..." when it was longer.
func shorten(s string) string {
	r := []rune(s)
	if len(r) <= 30 {
		return s
	}
	return string(r[:30]) + "..."
}

// FormatRemaining renders d in localized units, e.g. "2 min 5 s".
func FormatRemaining(cat *localization.Catalog, d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%d %s", secs, cat.T("seconds"))
	case secs < 3600:
		m, s := secs/60, secs%60
		if s == 0 {
			return fmt.Sprintf("%d %s", m, cat.T("minutes"))
		}
		return fmt.Sprintf("%d %s %d %s", m, cat.T("minutes"), s, cat.T("seconds"))
	default:
		h, m := secs/3600, (secs%3600)/60
		if m == 0 {
			return fmt.Sprintf("%d %s", h, cat.T("hours"))
		}
		return fmt.Sprintf("%d %s %d %s", h, cat.T("hours"), m, cat.T("minutes"))
	}
}
