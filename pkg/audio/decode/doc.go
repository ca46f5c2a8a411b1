// ABOUTME: PCM decoder package
// ABOUTME: Provides the Decoder interface and the little-endian 16-bit PCM implementation
// Package decode turns raw PCM byte streams into int16 samples.
//
// Only linear 16-bit little-endian PCM is supported; compressed codecs are
// expected to have been decoded before the bytes reach this package.
//
// Example:
//
//	decoder, err := decode.NewPCM(audio.PCM16(44100, 2))
//	samples, err := decoder.Decode(data)
package decode
