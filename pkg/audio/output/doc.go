// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Player interface and its oto implementation
// Package output plays in-memory PCM buffers and reports where playback is.
//
// The oto backend keeps one process-wide context, so every player must
// share the first format that was opened.
//
// Example:
//
//	p, err := output.NewOto(audio.PCM16(44100, 2), pcm, logger)
//	p.Play()
//	ms := p.Position()
package output
