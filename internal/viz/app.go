package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wobble/internal/scene"
)

const rateHistory = 40

// Animator is the part of the driver the view controls.
type Animator interface {
	Start(ctx context.Context) error
	Stop()
	Running() bool
	Reroll() error
	Reset() error
	Len() int
}

type TickMsg time.Time

// ReloadMsg swaps in a new scene, typically after the config file changed.
type ReloadMsg struct {
	Animator Animator
	Grid     *scene.Grid
	Width    int
	Height   int
	Theme    string
}

// ErrMsg is shown in the status line.
type ErrMsg struct{ Err error }

type Model struct {
	ctx    context.Context
	anim   Animator
	grid   *scene.Grid
	canvas *Canvas
	title  string
	fps    int
	theme  Theme
	styles styles

	paused     bool
	showHelp   bool
	frames     int
	lastWrites uint64
	lastFrame  time.Time
	rates      []float64
	err        error
}

// NewModel expects anim to be started by the caller; the view only pauses,
// resumes and stops it.
func NewModel(ctx context.Context, anim Animator, grid *scene.Grid, width, height, fps int, theme string) Model {
	if fps <= 0 {
		fps = 30
	}
	t := GetTheme(theme)
	return Model{
		ctx:    ctx,
		anim:   anim,
		grid:   grid,
		canvas: NewCanvas(width, height),
		title:  "wobble",
		fps:    fps,
		theme:  t,
		styles: newStyles(t),
		rates:  make([]float64, 0, rateHistory),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.sample(time.Time(msg))
		return m, m.tick()
	case ReloadMsg:
		m.reload(msg)
		return m, nil
	case ErrMsg:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.anim.Stop()
		return m, tea.Quit
	case " ":
		if m.paused {
			m.err = m.anim.Start(m.ctx)
			m.paused = m.err != nil
		} else {
			m.anim.Stop()
			m.paused = true
		}
	case "r":
		m.err = m.reroll()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) reroll() error {
	wasRunning := m.anim.Running()
	m.anim.Stop()
	if err := m.anim.Reroll(); err != nil {
		return err
	}
	if err := m.anim.Reset(); err != nil {
		return err
	}
	m.grid.Reset()
	if wasRunning {
		return m.anim.Start(m.ctx)
	}
	return nil
}

func (m *Model) reload(msg ReloadMsg) {
	m.anim.Stop()
	m.anim, m.grid = msg.Animator, msg.Grid
	if msg.Width > 0 && msg.Height > 0 {
		m.canvas = NewCanvas(msg.Width, msg.Height)
	}
	if msg.Theme != "" {
		m.theme = GetTheme(msg.Theme)
		m.styles = newStyles(m.theme)
	}
	m.lastWrites, m.rates = 0, m.rates[:0]
	m.err = nil
	if !m.paused {
		m.err = m.anim.Start(m.ctx)
	}
}

// sample records surface writes per second since the previous frame.
func (m *Model) sample(now time.Time) {
	m.frames++
	writes := m.grid.Writes()
	if !m.lastFrame.IsZero() {
		if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 && writes >= m.lastWrites {
			m.rates = append(m.rates, float64(writes-m.lastWrites)/dt)
			if len(m.rates) > rateHistory {
				m.rates = m.rates[1:]
			}
		}
	}
	m.lastWrites, m.lastFrame = writes, now
}

func (m Model) View() string {
	Draw(m.canvas, m.grid.Snapshot())

	status := m.styles.running.Render("RUNNING")
	if m.paused {
		status = m.styles.paused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "  " + status + "\n")
	s.WriteString(m.styles.canvas.Render(m.styles.sprite.Render(m.canvas.String())) + "\n")

	rate := 0.0
	if len(m.rates) > 0 {
		rate = m.rates[len(m.rates)-1]
	}
	s.WriteString(m.styles.label.Render("sprites") + m.styles.value.Render(fmt.Sprintf("%d", m.anim.Len())) + "\n")
	s.WriteString(m.styles.label.Render("writes/s") + m.styles.value.Render(fmt.Sprintf("%.0f", rate)) +
		"  " + Sparkline(m.rates, rateHistory) + "\n")
	s.WriteString(m.styles.label.Render("theme") + m.styles.value.Render(m.theme.Name) + "\n")
	if m.err != nil {
		s.WriteString(m.styles.paused.Render("error: "+m.err.Error()) + "\n")
	}
	s.WriteString(m.styles.help.Render("SP:Pause R:Reroll T:Theme ?:Help Q:Quit"))

	if m.showHelp {
		help := lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(m.theme.Border).
			Padding(0, 2).
			Render("Space  pause / resume\nR      re-roll behaviours\nT      cycle themes\n?      toggle help\nQ      quit")
		return help + "\n" + s.String()
	}
	return s.String()
}

// Paused reports whether the loops were stopped from the keyboard.
func (m Model) Paused() bool { return m.paused }

func (m Model) Theme() Theme { return m.theme }
