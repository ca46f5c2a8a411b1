// ABOUTME: PCM encoder package
// ABOUTME: Provides the Encoder interface and the little-endian 16-bit PCM implementation
// Package encode turns int16 samples back into raw PCM bytes, the form the
// playback clock and the waveform loader consume.
//
// Example:
//
//	encoder, err := encode.NewPCM(audio.PCM16(44100, 1))
//	data, err := encoder.Encode(samples)
package encode
