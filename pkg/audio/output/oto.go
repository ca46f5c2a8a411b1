// ABOUTME: Oto-based playback clock
// ABOUTME: Plays a PCM buffer through oto and reports the audible position
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
)

// ErrUnsupportedFormat is returned for PCM that oto cannot play
var ErrUnsupportedFormat = errors.New("unsupported playback format")

// oto allows a single context per process
var (
	sharedMu     sync.Mutex
	sharedCtx    *oto.Context
	sharedFormat audio.Format
)

func otoContext(format audio.Format, logger *zap.Logger) (*oto.Context, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedCtx != nil {
		if sharedFormat.SampleRate != format.SampleRate || sharedFormat.Channels != format.Channels {
			logger.Sugar().Warnf("format change detected (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization, continuing with existing context",
				sharedFormat.SampleRate, sharedFormat.Channels, format.SampleRate, format.Channels)
		}
		return sharedCtx, nil
	}

	ctx, readyChan, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	sharedCtx = ctx
	sharedFormat = format
	logger.Info("audio output initialized",
		zap.Int("sample_rate", format.SampleRate),
		zap.Int("channels", format.Channels))
	return ctx, nil
}

// checkFormat rejects anything but 16-bit PCM with one or two channels
func checkFormat(format audio.Format) error {
	if format.BitDepth != 16 {
		return fmt.Errorf("%w: %d-bit (oto plays 16-bit only)", ErrUnsupportedFormat, format.BitDepth)
	}
	if format.Channels < 1 || format.Channels > 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, format.Channels)
	}
	if format.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, format.SampleRate)
	}
	return nil
}

// Oto plays one PCM buffer. It is safe for concurrent use.
type Oto struct {
	mu     sync.Mutex
	format audio.Format
	source *pcmSource
	player *oto.Player
	paused bool
	volume int
	muted  bool
	logger *zap.Logger
}

// NewOto creates a paused player for pcm
func NewOto(format audio.Format, pcm []byte, logger *zap.Logger) (*Oto, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	ctx, err := otoContext(format, logger)
	if err != nil {
		return nil, err
	}

	source := newPCMSource(pcm)
	return &Oto{
		format: format,
		source: source,
		player: ctx.NewPlayer(source),
		volume: MaxVolume,
		logger: logger,
	}, nil
}

// Play starts playback. A buffer that played to its end restarts from zero.
func (o *Oto) Play() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil || o.player.IsPlaying() {
		return
	}
	if restartFromZero(o.paused, o.source.Remaining()) {
		o.seekLocked(0)
	}
	o.player.Play()
	o.paused = false
}

// Pause suspends playback
func (o *Oto) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil || !o.player.IsPlaying() {
		return
	}
	o.player.Pause()
	o.paused = true
}

// Stop halts playback and rewinds
func (o *Oto) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return
	}
	o.player.Pause()
	o.seekLocked(0)
	o.paused = false
}

// SetPosition seeks to ms, clamped to the buffer
func (o *Oto) SetPosition(ms int64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return
	}
	offset := o.format.Bytes(time.Duration(ms) * time.Millisecond)
	if size := o.source.Size(); offset > size {
		offset = size
	}
	o.seekLocked(offset)
}

func (o *Oto) seekLocked(offset int64) {
	if _, err := o.player.Seek(offset, io.SeekStart); err != nil {
		o.logger.Warn("seek failed", zap.Int64("offset", offset), zap.Error(err))
	}
}

// Position returns the audible position in milliseconds
func (o *Oto) Position() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return 0
	}
	return o.format.Duration(audibleBytes(o.source.Offset(), o.player.BufferedSize())).Milliseconds()
}

// DurationMs returns the length of the buffer in milliseconds
func (o *Oto) DurationMs() int64 {
	return o.format.Duration(o.source.Size()).Milliseconds()
}

// State reports playing, paused, or stopped (including end of buffer)
func (o *Oto) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return StateStopped
	}
	return playerState(o.player.IsPlaying(), o.paused)
}

// SetVolume sets the volume, clamped to MinVolume..MaxVolume
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.volume = clampVolume(volume)
	o.applyVolumeLocked()
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.muted = muted
	o.applyVolumeLocked()
}

func (o *Oto) applyVolumeLocked() {
	if o.player != nil {
		o.player.SetVolume(volumeMultiplier(o.volume, o.muted))
	}
}

// Close releases the player. The shared oto context stays alive.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}
	o.player.Pause()
	err := o.player.Close()
	o.player = nil
	return err
}

// volumeMultiplier calculates volume multiplier
func volumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}

func clampVolume(volume int) int {
	return max(MinVolume, min(MaxVolume, volume))
}

// playerState maps oto's playing flag and our pause flag onto State.
// A player that is neither playing nor paused ran out or was stopped.
func playerState(playing, paused bool) State {
	switch {
	case playing:
		return StatePlaying
	case paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// audibleBytes is the part of the buffer that has left oto's queue
func audibleBytes(offset int64, buffered int) int64 {
	return max(0, offset-int64(buffered))
}

// restartFromZero reports whether Play has to rewind first: the buffer
// was consumed to its end and the player was not merely paused
func restartFromZero(paused bool, remaining int64) bool {
	return !paused && remaining == 0
}

// pcmSource is a seekable PCM reader whose offset can be read while
// oto's goroutine consumes it
type pcmSource struct {
	mu sync.Mutex
	r  *bytes.Reader
}

func newPCMSource(pcm []byte) *pcmSource {
	return &pcmSource{r: bytes.NewReader(pcm)}
}

func (s *pcmSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Read(p)
}

func (s *pcmSource) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Seek(offset, whence)
}

// Offset returns how many bytes have been handed to oto
func (s *pcmSource) Offset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Size() - int64(s.r.Len())
}

// Remaining returns the unread byte count
func (s *pcmSource) Remaining() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.r.Len())
}

func (s *pcmSource) Size() int64 {
	return s.r.Size()
}

var _ Player = (*Oto)(nil)
