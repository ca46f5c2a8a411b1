// ABOUTME: Output file naming
// ABOUTME: Generates collision-free export paths with a uuid suffix
package source

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UniquePath returns dir/stem-<id>ext. An empty dir means os.TempDir().
func UniquePath(dir, stem, ext string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	id := uuid.New().String()[:8]
	return filepath.Join(dir, stem+"-"+id+ext)
}

// TempWAV writes samples to a uniquely named WAV in the temp directory
// and returns its path
func TempWAV(samples []int16, sampleRate, channels int) (string, error) {
	path := UniquePath("", "scope-output", ".wav")
	if err := WriteWAV(path, samples, sampleRate, channels); err != nil {
		return "", err
	}
	return path, nil
}
