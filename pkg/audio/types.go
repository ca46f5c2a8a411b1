// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM formats and float/int16 sample conversions
package audio

import (
	"math"
	"time"
)

const (
	// 16-bit audio range constants
	MaxInt16 = math.MaxInt16
	MinInt16 = math.MinInt16

	// BytesPerSample is the width of one 16-bit PCM sample
	BytesPerSample = 2
)

// Format describes a raw PCM stream
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// PCM16 returns a 16-bit PCM format with the given rate and channel count
func PCM16(sampleRate, channels int) Format {
	return Format{
		Codec:      "pcm",
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   16,
	}
}

// BytesPerSecond returns the byte rate of the stream
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.Channels * f.BitDepth / 8
}

// Duration returns the playing time of n bytes
func (f Format) Duration(n int64) time.Duration {
	bps := int64(f.BytesPerSecond())
	if bps <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(bps)
}

// Bytes returns the byte offset of d, aligned to a whole frame
func (f Format) Bytes(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	n := int64(d) * int64(f.BytesPerSecond()) / int64(time.Second)
	frame := int64(f.Channels * f.BitDepth / 8)
	if frame > 0 {
		n -= n % frame
	}
	return n
}

// ClampInt16 rounds a float sample and clamps it into the int16 range
func ClampInt16(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v > MaxInt16 {
		return MaxInt16
	}
	if v < MinInt16 {
		return MinInt16
	}
	return int16(v)
}

// ToFloat widens int16 samples to float64 without rescaling
func ToFloat(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}

// ToInt16 narrows float64 samples to int16 with clipping
func ToInt16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = ClampInt16(s)
	}
	return out
}

// Normalize scales samples so the loudest one hits MaxInt16.
// A silent input stays silent.
func Normalize(samples []float64) []int16 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	out := make([]int16, len(samples))
	if peak == 0 {
		return out
	}
	scale := MaxInt16 / peak
	for i, s := range samples {
		out[i] = ClampInt16(s * scale)
	}
	return out
}
