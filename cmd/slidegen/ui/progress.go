package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is one progress report from a running pipeline. Total is zero
// when the amount of work is unknown.
type Update struct {
	Text    string
	Current int
	Total   int
	ETA     string
}

// Percent is Current/Total clamped to [0, 1].
func (u Update) Percent() float64 {
	if u.Total <= 0 {
		return 0
	}
	return min(float64(u.Current)/float64(u.Total), 1)
}

// Line renders u as a single log line, e.g. "[3/20] Generating slide (remaining ~1 min)".
func (u Update) Line() string {
	var sb strings.Builder
	if u.Total > 0 {
		fmt.Fprintf(&sb, "[%d/%d] ", u.Current, u.Total)
	}
	sb.WriteString(u.Text)
	if u.ETA != "" {
		fmt.Fprintf(&sb, " (%s)", u.ETA)
	}
	return sb.String()
}

// DoneMsg ends the progress view.
type DoneMsg struct{ Err error }

// ProgressModel is a spinner with an optional progress bar, driven by
// Update messages sent from the pipeline goroutine.
type ProgressModel struct {
	title   string
	showBar bool
	styles  Styles
	spinner spinner.Model
	bar     progress.Model
	last    Update
	done    bool
	aborted bool
}

// NewProgressModel creates the view. showBar is false for work without a
// known step count.
func NewProgressModel(title string, showBar bool, styles Styles) ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 50

	return ProgressModel{
		title:   title,
		showBar: showBar,
		styles:  styles,
		spinner: sp,
		bar:     bar,
	}
}

// Aborted reports whether the user interrupted the view.
func (m ProgressModel) Aborted() bool { return m.aborted }

// Last returns the most recent update.
func (m ProgressModel) Last() Update { return m.last }

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, 80))
	case Update:
		m.last = msg
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n")
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(m.styles.Body.Render(m.last.Text))
	sb.WriteString("\n")
	if m.showBar {
		sb.WriteString(m.bar.ViewAs(m.last.Percent()))
		if m.last.ETA != "" {
			sb.WriteString("  ")
			sb.WriteString(m.styles.Muted.Render(m.last.ETA))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
