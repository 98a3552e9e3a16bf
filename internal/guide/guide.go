// Package guide runs a live terminal guide that walks through a pour schedule.
//
// The model ticks once per second while running and highlights the checkpoint
// the kettle should have reached. It only reads the schedule; all brewing math
// stays in package brew.
package guide

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/pourover/internal/brew"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fde68a"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bae6fd"))

	targetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bbf7d0"))

	pastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	currentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fde68a"))

	upcomingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Italic(true)
)

const maxBarWidth = 60

type keyMap struct {
	Pause key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
	Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// tickMsg carries the tag of the tick chain that produced it so stale chains
// left over from a pause or restart are dropped.
type tickMsg struct {
	tag int
}

// Model is the bubbletea model for the brew guide.
type Model struct {
	plan     brew.Plan
	timing   brew.Timing
	steps    []brew.Step
	elapsed  int
	running  bool
	done     bool
	tag      int
	keys     keyMap
	help     help.Model
	progress progress.Model
}

// New creates a guide for the schedule. It starts running immediately.
func New(plan brew.Plan, timing brew.Timing, steps []brew.Step) Model {
	m := Model{
		plan:     plan,
		timing:   timing,
		steps:    steps,
		running:  true,
		keys:     defaultKeys,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
	m.progress.Width = maxBarWidth
	m.done = m.finished()
	if m.done {
		m.running = false
	}
	return m
}

// Run starts the guide and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	tag := m.tag
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{tag: tag}
	})
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	if !m.running {
		return nil
	}
	return m.tick()
}

// Update handles ticks, key presses and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.tag != m.tag || !m.running {
			return m, nil
		}
		m.elapsed++
		if m.finished() {
			m.done = true
			m.running = false
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.done {
				return m, nil
			}
			m.running = !m.running
			m.tag++
			if m.running {
				return m, m.tick()
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.elapsed = 0
			m.done = m.finished()
			m.running = !m.done
			m.tag++
			if m.running {
				return m, m.tick()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.progress.Width = min(maxBarWidth, max(10, msg.Width-4))
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) finished() bool {
	if len(m.steps) == 0 {
		return true
	}
	return m.elapsed >= m.steps[len(m.steps)-1].At
}

// Current returns the index of the checkpoint reached at the elapsed time.
func (m Model) Current() int {
	idx := 0
	for i, step := range m.steps {
		if step.At <= m.elapsed {
			idx = i
		}
	}
	return idx
}

// Elapsed returns the seconds elapsed since the start of the brew.
func (m Model) Elapsed() int {
	return m.elapsed
}

// Running reports whether the clock is advancing.
func (m Model) Running() bool {
	return m.running
}

// Done reports whether the last checkpoint has been reached.
func (m Model) Done() bool {
	return m.done
}

// View renders the guide.
func (m Model) View() string {
	if len(m.steps) == 0 {
		return "nothing to pour\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pourover"))
	b.WriteString("  ")
	b.WriteString(summaryStyle.Render(brew.Summarize(m.plan, m.timing.PourTime)))
	b.WriteString("\n\n")

	cur := m.Current()
	target := m.steps[cur].Water
	status := clockStyle.Render(brew.FormatTime(m.elapsed))
	if !m.running && !m.done {
		status += "  " + pausedStyle.Render("paused")
	}
	fmt.Fprintf(&b, "  elapsed  %s\n", status)
	fmt.Fprintf(&b, "  pour to  %s\n", targetStyle.Render(fmt.Sprintf("%dg", target)))
	if m.done {
		b.WriteString("  " + targetStyle.Render("done, let it drain") + "\n")
	} else if cur+1 < len(m.steps) {
		next := m.steps[cur+1]
		fmt.Fprintf(&b, "  next     %dg in %s\n", next.Water, brew.FormatTime(next.At-m.elapsed))
	}
	b.WriteString("\n  ")
	b.WriteString(m.progress.ViewAs(m.share(target)))
	b.WriteString("\n\n")

	for i, step := range m.steps {
		line := fmt.Sprintf("%8s %6dg", brew.FormatTime(step.At), step.Water)
		switch {
		case i == cur:
			b.WriteString(currentStyle.Render("> " + line))
		case i < cur:
			b.WriteString(pastStyle.Render("  " + line))
		default:
			b.WriteString(upcomingStyle.Render("  " + line))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) share(grams int) float64 {
	if m.plan.Water <= 0 {
		return 0
	}
	return min(1, float64(grams)/float64(m.plan.Water))
}
