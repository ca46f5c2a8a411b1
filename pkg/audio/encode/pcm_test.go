// ABOUTME: Unit tests for PCM encoder
// ABOUTME: Tests 16-bit PCM encoding and round trips through the decoder
package encode

import (
	"encoding/binary"
	"testing"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPCM(t *testing.T) {
	tests := []struct {
		name        string
		format      audio.Format
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid 16-bit PCM",
			format: audio.PCM16(48000, 2),
		},
		{
			name: "invalid codec",
			format: audio.Format{
				Codec:      "opus",
				SampleRate: 48000,
				Channels:   2,
				BitDepth:   16,
			},
			wantErr:     true,
			errContains: "invalid codec",
		},
		{
			name: "unsupported bit depth",
			format: audio.Format{
				Codec:      "pcm",
				SampleRate: 48000,
				Channels:   2,
				BitDepth:   32,
			},
			wantErr:     true,
			errContains: "unsupported bit depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, encoder)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, encoder)
		})
	}
}

func TestPCMEncodeLittleEndian(t *testing.T) {
	encoder, err := NewPCM(audio.PCM16(44100, 1))
	require.NoError(t, err)

	out, err := encoder.Encode([]int16{256, -2})
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, uint16(256), binary.LittleEndian.Uint16(out[0:]))
	assert.Equal(t, int16(-2), int16(binary.LittleEndian.Uint16(out[2:])))
}

func TestPCMEncodeDecodeRoundTrip(t *testing.T) {
	format := audio.PCM16(44100, 2)
	samples := []int16{0, 1, -1, 12345, -32768, 32767}

	decoder, err := decode.NewPCM(format)
	require.NoError(t, err)

	decoded, err := decoder.Decode(PCM16(samples))
	require.NoError(t, err)
	assert.Equal(t, samples, decoded)
}
