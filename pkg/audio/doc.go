// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample conversion helpers for 16-bit PCM
// Package audio provides the PCM types shared by the scope packages.
//
// Everything in resonate-scope works on interleaved signed 16-bit
// little-endian PCM. This package defines:
//   - Format: sample rate, channel count and bit depth of a stream
//   - conversions between int16 samples and float64 analysis buffers
//
// Example:
//
//	format := audio.PCM16(44100, 2)
//	offset := format.Bytes(1500 * time.Millisecond)
package audio
