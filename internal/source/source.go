// ABOUTME: Audio file sources for the scope
// ABOUTME: Opens WAV and CSV files as interleaved 16-bit PCM tracks
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/decode"
)

// CSVSampleRate is the rate assigned to sample series imported from CSV
const CSVSampleRate = 44100

// ErrUnsupportedFormat is returned for file types the scope cannot open
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track is a loaded file as raw PCM
type Track struct {
	Name   string
	Path   string
	Format audio.Format
	PCM    []byte
}

// Samples decodes the track's PCM bytes
func (t *Track) Samples() ([]int16, error) {
	decoder, err := decode.NewPCM(t.Format)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return decoder.Decode(t.PCM)
}

// Open loads a .wav or .csv file
func Open(path string) (*Track, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("audio file not found: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var (
		track *Track
		err   error
	)
	switch ext {
	case ".wav":
		track, err = OpenWAV(path)
	case ".csv":
		track, err = OpenCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .wav, .csv)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	track.Path = path
	track.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return track, nil
}
