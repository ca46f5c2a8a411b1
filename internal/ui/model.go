// ABOUTME: Bubbletea model for the inspector TUI
// ABOUTME: Defines display state, key bindings and rendering
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Resonate-Protocol/resonate-scope/internal/app"
	"github.com/Resonate-Protocol/resonate-scope/internal/version"
)

const (
	// frameInterval is the redraw period
	frameInterval = 33 * time.Millisecond

	// alphaStep is the Wiener weight change per key press
	alphaStep = 1.0
)

// Actions is what the TUI can ask of the application
type Actions interface {
	TogglePlay()
	Rewind()
	StepForward()
	StepBackward()
	Stop()
	ToggleCine()
	SwitchSignal()
	AdjustSlider(i, delta int) error
	ResetSliders() error
	NextPreset() error
	MarkNoise() error
	ApplyWiener() error
	AdjustAlpha(delta float64) error
	ToggleAudiogram()
	AdjustVolume(delta int)
	ToggleMute()
	ExportSpectrograms() ([]string, error)
	ExportMagnitudes() (string, error)
	ExportDifference() (string, error)
	ExportOutput() (string, error)
	Status() app.Status
}

// Model represents the TUI state
type Model struct {
	actions Actions
	plots   [2]*Plot

	status   app.Status
	selected int
	message  string
	failed   bool

	width  int
	height int
}

// frameMsg carries a fresh status snapshot
type frameMsg struct {
	status app.Status
}

// resultMsg reports the outcome of an action
type resultMsg struct {
	note string
	err  error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.frame()
}

// frame schedules the next redraw. Status is read off the event loop.
func (m Model) frame() tea.Cmd {
	actions := m.actions
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{status: actions.Status()}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		m.status = msg.status
		if n := len(m.status.Sliders); n > 0 && m.selected >= n {
			m.selected = n - 1
		}
		return m, m.frame()
	case resultMsg:
		m.failed = msg.err != nil
		m.message = msg.note
		if msg.err != nil {
			m.message = msg.err.Error()
		}
	}

	return m, nil
}

// run executes fn off the event loop and reports its result
func run(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		note, err := fn()
		return resultMsg{note: note, err: err}
	}
}

// do executes a transport command off the event loop
func do(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.actions
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		return m, do(a.TogglePlay)
	case "r":
		return m, do(a.Rewind)
	case "right":
		return m, do(a.StepForward)
	case "left":
		return m, do(a.StepBackward)
	case ".":
		return m, do(a.Stop)
	case "c":
		return m, do(a.ToggleCine)
	case "tab":
		return m, do(a.SwitchSignal)
	case "+", "=", "up":
		i := m.selected
		return m, run(func() (string, error) { return "", a.AdjustSlider(i, 1) })
	case "-", "down":
		i := m.selected
		return m, run(func() (string, error) { return "", a.AdjustSlider(i, -1) })
	case "z":
		return m, run(func() (string, error) { return "sliders reset", a.ResetSliders() })
	case "m":
		return m, run(func() (string, error) { return "", a.NextPreset() })
	case "n":
		return m, run(func() (string, error) { return "noise region marked", a.MarkNoise() })
	case "w":
		return m, run(func() (string, error) { return "wiener filter applied", a.ApplyWiener() })
	case ">":
		return m, run(func() (string, error) { return "", a.AdjustAlpha(alphaStep) })
	case "<":
		return m, run(func() (string, error) { return "", a.AdjustAlpha(-alphaStep) })
	case "a":
		return m, do(a.ToggleAudiogram)
	case "]":
		return m, do(func() { a.AdjustVolume(app.VolumeStep) })
	case "[":
		return m, do(func() { a.AdjustVolume(-app.VolumeStep) })
	case "M":
		return m, do(a.ToggleMute)
	case "s":
		return m, run(func() (string, error) {
			paths, err := a.ExportSpectrograms()
			return "saved " + strings.Join(paths, ", "), err
		})
	case "e":
		return m, run(func() (string, error) {
			path, err := a.ExportMagnitudes()
			return "saved " + path, err
		})
	case "d":
		return m, run(func() (string, error) {
			path, err := a.ExportDifference()
			return "saved " + path, err
		})
	case "x":
		return m, run(func() (string, error) {
			path, err := a.ExportOutput()
			return "saved " + path, err
		})
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		i := int(key[0]-'0') - 1
		if i < 0 {
			i = 9
		}
		if i < len(m.status.Sliders) {
			m.selected = i
		}
	}
	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	waveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	activePaneStyle = paneStyle.
			BorderForeground(lipgloss.Color("205"))
)

// waveHeight is the number of text rows per waveform
const waveHeight = 7

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPane(app.Input))
	b.WriteString("\n")
	b.WriteString(m.renderPane(app.Output))
	b.WriteString("\n")
	b.WriteString(m.renderEqualizer())
	b.WriteString(m.renderMessage())
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderHeader renders the file and transport status
func (m Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("%s %s", version.Product, version.Version))
	if !m.status.Loaded {
		return title + "\n" + valueStyle.Render("No file loaded")
	}

	st := m.status.Transport
	volume := fmt.Sprintf("vol %d%%", m.status.Volume)
	if m.status.Muted {
		volume = "muted"
	}
	line := fmt.Sprintf("%s  %s %s / %s  %s  %s",
		m.status.File,
		st.Status,
		formatMs(st.PositionMs),
		formatMs(st.DurationMs),
		m.status.Mode,
		volume)
	return title + "\n" +
		headerStyle.Render("Playing: ") + valueStyle.Render(m.status.Active.String()) + "  " +
		valueStyle.Render(line)
}

// renderPane renders one waveform with its cursor
func (m Model) renderPane(sig app.Signal) string {
	width := max(10, m.width-4)
	lines, cursor := renderWave(m.plots[sig].Snapshot(), width, waveHeight)

	rows := make([]string, len(lines))
	for r, line := range lines {
		if cursor < 0 {
			rows[r] = waveStyle.Render(line)
			continue
		}
		runes := []rune(line)
		rows[r] = waveStyle.Render(string(runes[:cursor])) +
			cursorStyle.Render("┃") +
			waveStyle.Render(string(runes[cursor+1:]))
	}

	style := paneStyle
	if sig == m.status.Active {
		style = activePaneStyle
	}
	return headerStyle.Render(strings.ToUpper(sig.String())) + "\n" +
		style.Render(strings.Join(rows, "\n"))
}

// renderEqualizer renders the slider row
func (m Model) renderEqualizer() string {
	if len(m.status.Sliders) == 0 {
		return ""
	}

	scale := "magnitude"
	if m.status.Audiogram {
		scale = "audiogram"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Equalizer: "))
	b.WriteString(valueStyle.Render(m.status.Preset + "  " + scale))
	b.WriteString("\n")
	for i, v := range m.status.Sliders {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		label := ""
		if i < len(m.status.Bands) {
			label = m.status.Bands[i]
		}
		b.WriteString(fmt.Sprintf("%s%d [%s] %2d  %-40s %s\n",
			marker, (i+1)%10, renderBar(v, 10, 10), v, truncate(label, 40), m.formatLevel(i)))
	}
	b.WriteString(headerStyle.Render("Noise: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2fs - %.2fs  alpha %g",
		m.status.NoiseStart, m.status.NoiseEnd, m.status.Alpha)))
	b.WriteString("\n")
	return b.String()
}

// formatLevel renders the level of band i in the active scale
func (m Model) formatLevel(i int) string {
	if i >= len(m.status.Levels) {
		return ""
	}
	level := m.status.Levels[i]
	if !m.status.Audiogram {
		return fmt.Sprintf("%.1f", level)
	}
	if math.IsInf(level, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", level)
}

// renderMessage renders the last action result
func (m Model) renderMessage() string {
	if m.message == "" {
		return ""
	}
	if m.failed {
		return errorStyle.Render(m.message) + "\n"
	}
	return valueStyle.Render(m.message) + "\n"
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return lipgloss.NewStyle().Faint(true).Render(
		"space:Play/Pause  r:Rewind  ←/→:Step  .:Stop  c:Cine  tab:Signal  [/]:Volume  M:Mute\n" +
			"1-0:Slider  +/-:Adjust  z:Reset  m:Mode  a:Audiogram  n:Noise  w:Wiener  </>:Alpha\n" +
			"s/e/d/x:Export  q:Quit")
}

// Utility functions
func renderBar(value, max, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func formatMs(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d.%03d", int(d.Minutes()), int(d.Seconds())%60, ms%1000)
}
