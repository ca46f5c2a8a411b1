// ABOUTME: Terminal waveform plot
// ABOUTME: A thread-safe plotting surface and its peak-envelope text renderer
package ui

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// Plot is a viewer surface. Viewers write to it from the transport
// poller; the model reads snapshots on each frame.
type Plot struct {
	mu         sync.Mutex
	x          []float64
	y          []int16
	min        float64
	max        float64
	cursor     float64
	showCursor bool
}

// PlotState is a point-in-time copy of a Plot
type PlotState struct {
	X          []float64
	Y          []int16
	Min        float64
	Max        float64
	Cursor     float64
	ShowCursor bool
}

// NewPlot creates an empty plot
func NewPlot() *Plot {
	return &Plot{}
}

// SetData replaces the plotted series
func (p *Plot) SetData(x []float64, y []int16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x = x
	p.y = y
}

// SetXRange sets the visible time range
func (p *Plot) SetXRange(min, max float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.min = min
	p.max = max
}

// SetCursor moves the cursor
func (p *Plot) SetCursor(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = seconds
}

// ShowCursor shows or hides the cursor
func (p *Plot) ShowCursor(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showCursor = visible
}

// Snapshot returns the current state
func (p *Plot) Snapshot() PlotState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PlotState{
		X:          p.x,
		Y:          p.y,
		Min:        p.min,
		Max:        p.max,
		Cursor:     p.cursor,
		ShowCursor: p.showCursor,
	}
}

// maxScan bounds the samples inspected per column
const maxScan = 256

// renderWave draws the peak envelope of s into height rows of width
// runes. It also returns the cursor column, or -1 when hidden.
func renderWave(s PlotState, width, height int) ([]string, int) {
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	span := s.Max - s.Min
	cursorCol := -1
	if width > 0 && height > 0 && span > 0 {
		n := min(len(s.X), len(s.Y))
		x := s.X[:n]
		for c := 0; c < width; c++ {
			t0 := s.Min + span*float64(c)/float64(width)
			t1 := s.Min + span*float64(c+1)/float64(width)
			i0 := sort.SearchFloat64s(x, t0)
			i1 := sort.SearchFloat64s(x, t1)
			if c == width-1 {
				i1 = sort.Search(n, func(i int) bool { return x[i] > s.Max })
			}
			if i0 >= i1 {
				continue
			}

			stride := max(1, (i1-i0)/maxScan)
			lo, hi := s.Y[i0], s.Y[i0]
			for i := i0; i < i1; i += stride {
				lo = min(lo, s.Y[i])
				hi = max(hi, s.Y[i])
			}
			for r := row(hi, height); r <= row(lo, height); r++ {
				grid[r][c] = '█'
			}
		}

		if s.ShowCursor && s.Cursor >= s.Min && s.Cursor <= s.Max {
			cursorCol = min(width-1, int((s.Cursor-s.Min)/span*float64(width)))
		}
	}

	lines := make([]string, height)
	for r, cells := range grid {
		lines[r] = string(cells)
	}
	return lines, cursorCol
}

// row maps a sample to a grid row, the top row holding the maximum
func row(v int16, height int) int {
	frac := (float64(v) - math.MinInt16) / (math.MaxInt16 - math.MinInt16)
	return int(math.Round((1 - frac) * float64(height-1)))
}
