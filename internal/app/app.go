// ABOUTME: Inspector application orchestration
// ABOUTME: Coordinates file loading, both signal transports, equalizer and Wiener output
package app

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Resonate-Protocol/resonate-scope/internal/config"
	"github.com/Resonate-Protocol/resonate-scope/internal/equalizer"
	"github.com/Resonate-Protocol/resonate-scope/internal/source"
	"github.com/Resonate-Protocol/resonate-scope/internal/transport"
	"github.com/Resonate-Protocol/resonate-scope/internal/viewer"
	"github.com/Resonate-Protocol/resonate-scope/internal/waveform"
	"github.com/Resonate-Protocol/resonate-scope/internal/wiener"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/encode"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/output"
)

// ErrNotInitialized is returned by operations that need a loaded file
var ErrNotInitialized = errors.New("no audio file loaded")

// Signal selects the input or the output waveform
type Signal int

const (
	Input Signal = iota
	Output
)

func (s Signal) String() string {
	if s == Output {
		return "output"
	}
	return "input"
}

// PlayerFactory opens a playback backend for one PCM buffer
type PlayerFactory func(format audio.Format, pcm []byte) (output.Player, error)

// Option configures an App
type Option func(*App)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPlayerFactory replaces the oto backend
func WithPlayerFactory(f PlayerFactory) Option {
	return func(a *App) {
		a.newPlayer = f
	}
}

// VolumeStep is how far AdjustVolume moves per key press
const VolumeStep = 10

// Status is a snapshot for display
type Status struct {
	File       string
	Loaded     bool
	Active     Signal
	Transport  transport.State
	Mode       viewer.Mode
	Preset     string
	Bands      []string
	Sliders    []int
	Audiogram  bool
	Levels     []float64 // per band, dB when Audiogram is set
	NoiseStart float64
	NoiseEnd   float64
	Alpha      float64
	Volume     int
	Muted      bool
}

// App owns the loaded file and everything derived from it. Its methods
// are safe for concurrent use.
type App struct {
	mu        sync.Mutex
	cfg       *config.Config
	logger    *zap.Logger
	newPlayer PlayerFactory

	signals [2]*channel
	active  Signal
	mode    viewer.Mode

	track     *source.Track
	samples   []float64
	preset    int
	eq        *equalizer.Equalizer
	audiogram bool
	filter    *wiener.Filter
	filtered  bool // output holds a Wiener result
	alpha     float64
	volume    int
	muted     bool
}

// New creates an App drawing the input and output signals on the
// given surfaces
func New(cfg *config.Config, input, out viewer.Surface, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		cfg:    cfg,
		logger: zap.NewNop(),
		alpha:  cfg.WienerAlpha,
		volume: output.MaxVolume,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.newPlayer == nil {
		logger := a.logger
		a.newPlayer = func(format audio.Format, pcm []byte) (output.Player, error) {
			return output.NewOto(format, pcm, logger)
		}
	}

	a.signals[Input] = &channel{viewer: viewer.New(input, cfg.CineWindow, a.logger.Named("input"))}
	a.signals[Output] = &channel{viewer: viewer.New(out, cfg.CineWindow, a.logger.Named("output"))}
	return a
}

// Open loads a file, replacing whatever was loaded. The output starts
// as the unmodified equalizer reconstruction.
func (a *App) Open(path string) error {
	track, err := source.Open(path)
	if err != nil {
		return err
	}
	buf, axis, err := waveform.Load(track.PCM, track.Format.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to load waveform: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.closeLocked()
	a.track = track
	a.samples = audio.ToFloat(buf.Samples)
	a.filter = wiener.New(a.samples, track.Format.SampleRate*waveform.Interleave)

	err = a.loadLocked(Input, buf, axis, track.PCM)
	if err == nil {
		err = a.rebuildEqualizerLocked()
	}
	if err != nil {
		a.closeLocked()
		return err
	}

	a.logger.Info("opened file",
		zap.String("path", path),
		zap.Int("sample_rate", track.Format.SampleRate),
		zap.Int("channels", track.Format.Channels),
		zap.Int("samples", buf.Len()),
		zap.Float64("duration", buf.Duration()))
	return nil
}

// analysisRate is the rate that labels FFT bins of the interleaved samples
func (a *App) analysisRate() int {
	return a.track.Format.SampleRate * a.track.Format.Channels
}

func (a *App) rebuildEqualizerLocked() error {
	if len(a.cfg.Presets) == 0 {
		return fmt.Errorf("no equalizer presets configured")
	}
	preset := a.cfg.Presets[a.preset%len(a.cfg.Presets)]
	a.eq = equalizer.New(equalizer.Analyze(a.samples, a.analysisRate()), preset)
	return a.setEqualizedLocked(a.eq.Output())
}

// setOutputLocked replaces the output signal, keeping its buffer
// aligned with the input's time axis
func (a *App) setOutputLocked(samples []float64) error {
	pcm := audio.ToInt16(samples)
	buf := &waveform.Buffer{Samples: pcm, SampleRate: a.track.Format.SampleRate}
	return a.loadLocked(Output, buf, buf.TimeAxis(), encode.PCM16(pcm))
}

func (a *App) setEqualizedLocked(samples []float64) error {
	a.filtered = false
	return a.setOutputLocked(samples)
}

func (a *App) loadLocked(sig Signal, buf *waveform.Buffer, axis waveform.TimeAxis, pcm []byte) error {
	ch := a.signals[sig]
	ch.close()

	player, err := a.newPlayer(a.track.Format, pcm)
	if err != nil {
		return fmt.Errorf("failed to open %s playback: %w", sig, err)
	}

	player.SetVolume(a.volume)
	player.SetMuted(a.muted)

	ch.buf = buf
	ch.player = player
	ch.viewer.Load(buf, axis)
	ch.transport = transport.New(clock{player}, ch.viewer, player.DurationMs(),
		transport.WithInterval(a.cfg.PollInterval),
		transport.WithStep(a.cfg.StepMs),
		transport.WithLogger(a.logger.With(zap.Stringer("signal", sig))),
	)
	return nil
}

// Play starts the selected signal
func (a *App) Play() {
	a.each(func(t *transport.Controller) { t.Play() }, a.activeSignal())
}

// Pause pauses both signals
func (a *App) Pause() {
	a.each(func(t *transport.Controller) { t.Pause() }, Input, Output)
}

// TogglePlay pauses when the selected signal is playing and plays it
// otherwise. A signal that played to its end starts over.
func (a *App) TogglePlay() {
	a.mu.Lock()
	ch := a.signals[a.active]
	ended := ch.ended()
	var playing bool
	if ch.transport != nil {
		playing = ch.transport.State().Status == transport.Playing
	}
	a.mu.Unlock()

	switch {
	case ended:
		a.Rewind()
	case playing:
		a.Pause()
	default:
		a.Play()
	}
}

// Rewind restarts the selected signal from zero
func (a *App) Rewind() {
	a.each(func(t *transport.Controller) { t.Rewind() }, a.activeSignal())
}

// StepForward steps the selected signal
func (a *App) StepForward() {
	a.each(func(t *transport.Controller) { t.StepForward() }, a.activeSignal())
}

// StepBackward steps both signals back
func (a *App) StepBackward() {
	a.each(func(t *transport.Controller) { t.StepBackward() }, Input, Output)
}

// Stop stops both signals and resets their cursors
func (a *App) Stop() {
	a.each(func(t *transport.Controller) { t.Stop() }, Input, Output)
}

// State returns the transport state of the selected signal
func (a *App) State() transport.State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.signals[a.active].state()
}

func (a *App) activeSignal() Signal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *App) each(fn func(*transport.Controller), sigs ...Signal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, sig := range sigs {
		if t := a.signals[sig].transport; t != nil {
			fn(t)
		}
	}
}

// SetActive selects which signal Play, Rewind and StepForward drive.
// The previously selected signal is paused.
func (a *App) SetActive(sig Signal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sig == a.active {
		return
	}
	if t := a.signals[a.active].transport; t != nil {
		t.Pause()
	}
	a.active = sig
	a.logger.Debug("active signal changed", zap.Stringer("signal", sig))
}

// SwitchSignal toggles between input and output
func (a *App) SwitchSignal() {
	if a.activeSignal() == Input {
		a.SetActive(Output)
	} else {
		a.SetActive(Input)
	}
}

// SetMode switches both viewers between the full waveform and cine mode
func (a *App) SetMode(mode viewer.Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mode = mode
	for _, ch := range a.signals {
		ch.viewer.SetMode(mode)
	}
}

// ToggleCine flips between normal and cine mode
func (a *App) ToggleCine() {
	a.mu.Lock()
	mode := viewer.Cine
	if a.mode == viewer.Cine {
		mode = viewer.Normal
	}
	a.mu.Unlock()
	a.SetMode(mode)
}

// NextPreset moves to the next equalizer mode, resetting the sliders
func (a *App) NextPreset() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.eq == nil {
		return ErrNotInitialized
	}
	a.preset = (a.preset + 1) % len(a.cfg.Presets)
	if err := a.rebuildEqualizerLocked(); err != nil {
		return err
	}
	a.logger.Info("equalizer mode changed", zap.String("mode", a.eq.Preset().Name))
	return nil
}

// SetSlider moves slider i and rebuilds the output
func (a *App) SetSlider(i, value int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.eq == nil {
		return ErrNotInitialized
	}
	out, err := a.eq.SetSlider(i, value)
	if err != nil {
		return err
	}
	return a.setEqualizedLocked(out)
}

// AdjustSlider nudges slider i by delta, stopping at the slider range
func (a *App) AdjustSlider(i, delta int) error {
	a.mu.Lock()
	if a.eq == nil {
		a.mu.Unlock()
		return ErrNotInitialized
	}
	value := a.eq.Slider(i) + delta
	a.mu.Unlock()

	if value < equalizer.SliderMin || value > equalizer.SliderMax {
		return nil
	}
	return a.SetSlider(i, value)
}

// ResetSliders restores every slider and the unmodified output
func (a *App) ResetSliders() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.eq == nil {
		return ErrNotInitialized
	}
	a.eq.Reset()
	return a.setEqualizedLocked(a.eq.Output())
}

// SetNoiseRegion sets the Wiener noise region in waveform seconds
func (a *App) SetNoiseRegion(start, end float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.filter == nil {
		return ErrNotInitialized
	}
	a.filter.SetRegion(start, end)
	return nil
}

// MarkNoise uses the cine window ending at the input cursor as the
// noise region
func (a *App) MarkNoise() error {
	a.mu.Lock()
	t := a.signals[Input].transport
	a.mu.Unlock()

	if t == nil {
		return ErrNotInitialized
	}
	pos := float64(t.State().PositionMs) / 1000
	start, _ := waveform.CineRange(pos, a.cfg.CineWindow)
	return a.SetNoiseRegion(start, pos)
}

// ApplyWiener filters the input against the noise region and makes the
// result the output signal
func (a *App) ApplyWiener() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.filter == nil {
		return ErrNotInitialized
	}
	return a.applyWienerLocked()
}

func (a *App) applyWienerLocked() error {
	res, err := a.filter.Apply(a.alpha)
	if err != nil {
		return err
	}
	start, end := a.filter.Region()
	a.logger.Info("wiener filter applied",
		zap.Float64("noise_start", start),
		zap.Float64("noise_end", end),
		zap.Float64("noise_power", res.NoisePower),
		zap.Float64("alpha", a.alpha))
	if err := a.setOutputLocked(res.Samples); err != nil {
		return err
	}
	a.filtered = true
	return nil
}

// AdjustAlpha moves the Wiener noise weight by delta within
// 0..wiener.MaxAlpha. While the output holds a Wiener result the input
// is filtered again with the new weight.
func (a *App) AdjustAlpha(delta float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.filter == nil {
		return ErrNotInitialized
	}
	a.alpha = max(0, min(wiener.MaxAlpha, a.alpha+delta))
	if !a.filtered {
		return nil
	}
	return a.applyWienerLocked()
}

// AdjustVolume moves the playback volume of both signals by delta
func (a *App) AdjustVolume(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.volume = max(output.MinVolume, min(output.MaxVolume, a.volume+delta))
	for _, ch := range a.signals {
		if ch.player != nil {
			ch.player.SetVolume(a.volume)
		}
	}
}

// ToggleMute silences or restores both signals
func (a *App) ToggleMute() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.muted = !a.muted
	for _, ch := range a.signals {
		if ch.player != nil {
			ch.player.SetMuted(a.muted)
		}
	}
}

// ToggleAudiogram switches the frequency view between linear magnitude
// and decibels
func (a *App) ToggleAudiogram() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.audiogram = !a.audiogram
}

// Status returns a display snapshot
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := Status{
		Active:    a.active,
		Mode:      a.mode,
		Audiogram: a.audiogram,
		Alpha:     a.alpha,
		Volume:    a.volume,
		Muted:     a.muted,
	}
	if a.track == nil {
		return st
	}

	st.Loaded = true
	st.File = a.track.Name
	st.Transport = a.signals[a.active].state()
	if a.eq != nil {
		st.Preset = a.eq.Preset().Name
		st.Sliders = a.eq.Sliders()
		for _, b := range a.eq.Bands() {
			st.Bands = append(st.Bands, b.String())
		}
		st.Levels = a.eq.Levels(a.audiogram)
	}
	if a.filter != nil {
		st.NoiseStart, st.NoiseEnd = a.filter.Region()
	}
	return st
}

// Close stops playback and releases both players
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeLocked()
}

func (a *App) closeLocked() {
	for _, ch := range a.signals {
		ch.close()
		ch.viewer.Reset()
	}
	a.track = nil
	a.samples = nil
	a.eq = nil
	a.filter = nil
	a.filtered = false
}

// channel is one plotted, playable signal
type channel struct {
	viewer    *viewer.Viewer
	buf       *waveform.Buffer
	player    output.Player
	transport *transport.Controller
}

func (c *channel) close() {
	if c.transport != nil {
		c.transport.Stop()
		c.transport.Close()
		c.transport = nil
	}
	if c.player != nil {
		_ = c.player.Close()
		c.player = nil
	}
	c.buf = nil
}

// ended reports a signal the controller still plays while its backend
// ran out of audio
func (c *channel) ended() bool {
	if c.transport == nil || c.player == nil {
		return false
	}
	return c.transport.State().Status == transport.Playing &&
		c.player.State() == output.StateStopped
}

// state is the controller state, shown as stopped once the backend
// reached the end
func (c *channel) state() transport.State {
	if c.transport == nil {
		return transport.State{}
	}
	st := c.transport.State()
	if c.ended() {
		st.Status = transport.Stopped
	}
	return st
}

// clock adapts an output.Player to transport.Clock
type clock struct {
	output.Player
}

func (c clock) State() transport.Status {
	switch c.Player.State() {
	case output.StatePlaying:
		return transport.Playing
	case output.StatePaused:
		return transport.Paused
	default:
		return transport.Stopped
	}
}
