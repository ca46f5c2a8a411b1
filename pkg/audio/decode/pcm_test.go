// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests 16-bit PCM decoding and rejection of partial samples
package decode

import (
	"errors"
	"testing"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	decoder, err := NewPCM(audio.PCM16(48000, 2))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestPCMDecode16Bit(t *testing.T) {
	decoder, err := NewPCM(audio.PCM16(48000, 2))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Little-endian pairs:
	// 0x00, 0x01 -> 0x0100 = 256
	// 0xff, 0xff -> -1
	// 0x00, 0x80 -> -32768
	input := []byte{0x00, 0x01, 0xff, 0xff, 0x00, 0x80}
	output, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	expected := []int16{256, -1, -32768}
	if len(output) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(output))
	}
	for i, want := range expected {
		if output[i] != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, output[i])
		}
	}
}

func TestPCMDecode_PartialSample(t *testing.T) {
	decoder, err := NewPCM(audio.PCM16(48000, 2))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	output, err := decoder.Decode([]byte{0x01, 0x02, 0x03})
	if !errors.Is(err, ErrPartialSample) {
		t.Fatalf("expected ErrPartialSample, got %v", err)
	}

	if output != nil {
		t.Errorf("expected no samples on error, got %v", output)
	}
}

func TestNewPCM_InvalidCodec(t *testing.T) {
	format := audio.PCM16(48000, 2)
	format.Codec = "opus"

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for invalid codec, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for invalid codec")
	}

	expectedError := "invalid codec for PCM decoder: opus"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestNewPCM_UnsupportedBitDepth(t *testing.T) {
	format := audio.PCM16(48000, 2)
	format.BitDepth = 24

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for unsupported bit depth, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for unsupported bit depth")
	}

	expectedError := "unsupported bit depth: 24 (supported: 16)"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestPCMDecode_EmptyInput(t *testing.T) {
	decoder, err := NewPCM(audio.PCM16(48000, 2))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	output, err := decoder.Decode([]byte{})
	if err != nil {
		t.Fatalf("decode failed with empty input: %v", err)
	}

	if len(output) != 0 {
		t.Errorf("expected 0 samples from empty input, got %d", len(output))
	}
}
