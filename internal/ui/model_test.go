// ABOUTME: Tests for TUI model and rendering
// ABOUTME: Tests key bindings, status frames and waveform drawing
package ui

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Resonate-Protocol/resonate-scope/internal/app"
	"github.com/Resonate-Protocol/resonate-scope/internal/transport"
)

type fakeActions struct {
	mu     sync.Mutex
	calls  []string
	status app.Status
	err    error
}

func (f *fakeActions) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeActions) TogglePlay()   { f.record("toggle") }
func (f *fakeActions) Rewind()       { f.record("rewind") }
func (f *fakeActions) StepForward()  { f.record("forward") }
func (f *fakeActions) StepBackward() { f.record("backward") }
func (f *fakeActions) Stop()         { f.record("stop") }
func (f *fakeActions) ToggleCine()   { f.record("cine") }
func (f *fakeActions) SwitchSignal() { f.record("switch") }

func (f *fakeActions) AdjustSlider(i, delta int) error {
	if delta > 0 {
		return f.record("slider+" + string(rune('0'+i)))
	}
	return f.record("slider-" + string(rune('0'+i)))
}

func (f *fakeActions) ResetSliders() error { return f.record("reset") }
func (f *fakeActions) NextPreset() error   { return f.record("preset") }
func (f *fakeActions) MarkNoise() error    { return f.record("noise") }
func (f *fakeActions) ApplyWiener() error  { return f.record("wiener") }

func (f *fakeActions) ExportSpectrograms() ([]string, error) {
	return []string{"a.png", "b.png"}, f.record("spectrogram")
}

func (f *fakeActions) ExportMagnitudes() (string, error) {
	return "m.csv", f.record("csv")
}

func (f *fakeActions) AdjustAlpha(delta float64) error {
	if delta > 0 {
		return f.record("alpha+")
	}
	return f.record("alpha-")
}

func (f *fakeActions) ToggleAudiogram() { f.record("audiogram") }
func (f *fakeActions) ToggleMute()      { f.record("mute") }

func (f *fakeActions) AdjustVolume(delta int) {
	if delta > 0 {
		f.record("volume+")
		return
	}
	f.record("volume-")
}

func (f *fakeActions) ExportDifference() (string, error) {
	return "d.csv", f.record("difference")
}

func (f *fakeActions) ExportOutput() (string, error) {
	return "o.wav", f.record("wav")
}

func (f *fakeActions) Status() app.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeActions) history() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestModel() (Model, *fakeActions) {
	actions := &fakeActions{status: app.Status{
		Loaded:  true,
		File:    "tone",
		Preset:  "Musical Mode",
		Bands:   []string{"Drums (0.0, 400.0)", "Violin (400.0, 4000.0)", "OOOh (200.0, 800.0)"},
		Sliders: []int{5, 5, 5},
	}}
	m := NewModel(actions, NewPlot(), NewPlot())
	m.status = actions.status
	return m, actions
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(key)
	model := next.(Model)
	if cmd == nil {
		return model, nil
	}
	return model, cmd()
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTransportKeys(t *testing.T) {
	m, actions := newTestModel()

	keys := []tea.KeyMsg{
		{Type: tea.KeySpace, Runes: []rune{' '}},
		runeKey('r'),
		{Type: tea.KeyRight},
		{Type: tea.KeyLeft},
		runeKey('.'),
		runeKey('c'),
		{Type: tea.KeyTab},
	}
	for _, k := range keys {
		m, _ = press(t, m, k)
	}

	assert.Equal(t,
		[]string{"toggle", "rewind", "forward", "backward", "stop", "cine", "switch"},
		actions.history())
}

func TestFilterAndLevelKeys(t *testing.T) {
	m, actions := newTestModel()

	for _, r := range []rune{'>', '<', 'a', ']', '[', 'M', 'd'} {
		m, _ = press(t, m, runeKey(r))
	}

	assert.Equal(t,
		[]string{"alpha+", "alpha-", "audiogram", "volume+", "volume-", "mute", "difference"},
		actions.history())
}

func TestSliderSelectionAndAdjust(t *testing.T) {
	m, actions := newTestModel()

	m, _ = press(t, m, runeKey('2'))
	assert.Equal(t, 1, m.selected)

	m, _ = press(t, m, runeKey('9'))
	assert.Equal(t, 1, m.selected, "no ninth slider in this mode")

	m, msg := press(t, m, runeKey('+'))
	assert.Equal(t, resultMsg{}, msg)
	m, _ = press(t, m, runeKey('-'))

	assert.Equal(t, []string{"slider+1", "slider-1"}, actions.history())
}

func TestZeroSelectsTenthSlider(t *testing.T) {
	m, _ := newTestModel()
	m.status.Sliders = make([]int, 10)

	m, _ = press(t, m, runeKey('0'))
	assert.Equal(t, 9, m.selected)
}

func TestActionResultShown(t *testing.T) {
	m, _ := newTestModel()

	m, msg := press(t, m, runeKey('s'))
	require.IsType(t, resultMsg{}, msg)
	next, _ := m.Update(msg)
	m = next.(Model)

	assert.False(t, m.failed)
	assert.Equal(t, "saved a.png, b.png", m.message)
}

func TestActionErrorShown(t *testing.T) {
	m, actions := newTestModel()
	actions.err = errors.New("wiener: no noise")

	m, msg := press(t, m, runeKey('w'))
	next, _ := m.Update(msg)
	m = next.(Model)

	assert.True(t, m.failed)
	assert.Equal(t, "wiener: no noise", m.message)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFrameUpdatesStatus(t *testing.T) {
	m, _ := newTestModel()
	m.selected = 2

	next, cmd := m.Update(frameMsg{status: app.Status{Loaded: true, Sliders: []int{1}}})
	m = next.(Model)

	assert.NotNil(t, cmd)
	assert.Equal(t, []int{1}, m.status.Sliders)
	assert.Equal(t, 0, m.selected)
}

func TestViewBeforeSize(t *testing.T) {
	m, _ := newTestModel()
	assert.Equal(t, "Loading...", m.View())
}

func TestViewShowsStatus(t *testing.T) {
	m, _ := newTestModel()
	m.width, m.height = 80, 40
	m.status.Transport = transport.State{Status: transport.Playing, PositionMs: 1500, DurationMs: 62000}

	view := m.View()
	assert.Contains(t, view, "tone")
	assert.Contains(t, view, "playing")
	assert.Contains(t, view, "0:01.500")
	assert.Contains(t, view, "1:02.000")
	assert.Contains(t, view, "Musical Mode")
	assert.Contains(t, view, "Violin")
	assert.Contains(t, view, "INPUT")
	assert.Contains(t, view, "OUTPUT")
	assert.Contains(t, view, "vol 0%")
}

func TestViewShowsAudiogramLevels(t *testing.T) {
	m, _ := newTestModel()
	m.width, m.height = 120, 40
	m.status.Audiogram = true
	m.status.Levels = []float64{12.5, math.Inf(-1), -3}
	m.status.Alpha = 40
	m.status.Muted = true

	view := m.View()
	assert.Contains(t, view, "audiogram")
	assert.Contains(t, view, "12.5 dB")
	assert.Contains(t, view, "-inf dB")
	assert.Contains(t, view, "alpha 40")
	assert.Contains(t, view, "muted")

	m.status.Audiogram = false
	m.status.Levels = []float64{7}
	view = m.View()
	assert.Contains(t, view, "magnitude")
	assert.Contains(t, view, "7.0")
	assert.NotContains(t, view, " dB")
}

func TestRenderWaveEnvelope(t *testing.T) {
	s := PlotState{
		X:   []float64{0, 1, 2, 3},
		Y:   []int16{32767, 32767, -32768, -32768},
		Min: 0,
		Max: 4,
	}
	lines, cursor := renderWave(s, 4, 3)

	require.Len(t, lines, 3)
	assert.Equal(t, -1, cursor)
	assert.Equal(t, "██  ", lines[0])
	assert.Equal(t, "    ", lines[1])
	assert.Equal(t, "  ██", lines[2])
}

func TestRenderWaveCursor(t *testing.T) {
	s := PlotState{
		X:          []float64{0, 1, 2, 3, 4},
		Y:          []int16{0, 0, 0, 0, 0},
		Min:        0,
		Max:        4,
		Cursor:     2,
		ShowCursor: true,
	}
	lines, cursor := renderWave(s, 4, 3)

	assert.Equal(t, 2, cursor)
	assert.Equal(t, strings.Repeat("█", 4), lines[1])

	s.ShowCursor = false
	_, cursor = renderWave(s, 4, 3)
	assert.Equal(t, -1, cursor)
}

func TestRenderWaveEmpty(t *testing.T) {
	lines, cursor := renderWave(PlotState{}, 5, 2)
	assert.Equal(t, []string{"     ", "     "}, lines)
	assert.Equal(t, -1, cursor)
}

func TestPlotSnapshot(t *testing.T) {
	p := NewPlot()
	p.SetData([]float64{0, 1}, []int16{3, 4})
	p.SetXRange(0, 1)
	p.SetCursor(0.5)
	p.ShowCursor(true)

	s := p.Snapshot()
	assert.Equal(t, []int16{3, 4}, s.Y)
	assert.Equal(t, 1.0, s.Max)
	assert.Equal(t, 0.5, s.Cursor)
	assert.True(t, s.ShowCursor)
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", renderBar(5, 10, 10))
	assert.Equal(t, "░░░░░░░░░░", renderBar(0, 10, 10))
}
