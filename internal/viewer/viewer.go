// ABOUTME: Signal viewer binding a waveform to a plotting surface
// ABOUTME: Renders the full waveform with a cursor, or a sliding cine window
package viewer

import (
	"sync"

	"github.com/Resonate-Protocol/resonate-scope/internal/waveform"
	"go.uber.org/zap"
)

// Surface is the plotting widget a Viewer draws on
type Surface interface {
	SetData(x []float64, y []int16)
	SetXRange(min, max float64)
	SetCursor(seconds float64)
	ShowCursor(visible bool)
}

// Mode selects how the viewer follows playback
type Mode int

const (
	// Normal plots the whole buffer and moves a vertical cursor
	Normal Mode = iota
	// Cine plots only the trailing window and scrolls the x-range
	Cine
)

func (m Mode) String() string {
	if m == Cine {
		return "cine"
	}
	return "normal"
}

// Viewer is one signal pane. It implements transport.Cursor and may be
// driven from the transport poller goroutine.
type Viewer struct {
	mu      sync.Mutex
	surface Surface
	buf     *waveform.Buffer
	axis    waveform.TimeAxis
	mode    Mode
	window  float64
	logger  *zap.Logger
}

// New creates a viewer in Normal mode. window is the cine window in
// seconds (<= 0 selects waveform.DefaultWindow).
func New(surface Surface, window float64, logger *zap.Logger) *Viewer {
	if window <= 0 {
		window = waveform.DefaultWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{
		surface: surface,
		window:  window,
		logger:  logger,
	}
}

// Load replaces the displayed buffer
func (v *Viewer) Load(buf *waveform.Buffer, axis waveform.TimeAxis) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf = buf
	v.axis = axis
	v.renderLocked()

	v.logger.Debug("Waveform loaded",
		zap.Int("samples", buf.Len()),
		zap.Float64("duration", buf.Duration()),
		zap.Stringer("mode", v.mode))
}

// SetMode switches between Normal and Cine rendering
func (v *Viewer) SetMode(mode Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mode == mode {
		return
	}
	v.mode = mode
	v.renderLocked()
}

// Mode returns the current mode
func (v *Viewer) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Buffer returns the loaded buffer, nil if none
func (v *Viewer) Buffer() *waveform.Buffer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buf
}

// SetCursor follows the playback position
func (v *Viewer) SetCursor(seconds float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mode == Normal {
		v.surface.SetCursor(seconds)
		return
	}

	x, y := v.buf.Window(seconds, v.window)
	v.surface.SetData(x, y)
	v.surface.SetXRange(waveform.CineRange(seconds, v.window))
}

// Reset clears the pane and parks the cursor at 0
func (v *Viewer) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf = nil
	v.axis = nil
	v.surface.SetData(nil, nil)
	v.surface.SetCursor(0)
}

func (v *Viewer) renderLocked() {
	if v.mode == Cine {
		v.surface.ShowCursor(false)
		v.surface.SetData(nil, nil)
		v.surface.SetXRange(0, v.window)
		return
	}

	var y []int16
	if v.buf != nil {
		y = v.buf.Samples
	}
	v.surface.SetData(v.axis, y)
	lo, hi := v.axis.Bounds()
	v.surface.SetXRange(lo, hi)
	v.surface.ShowCursor(true)
}
