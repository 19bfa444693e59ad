// Package stt defines the interface for Speech-to-Text providers that turn a
// learner's recorded attempt into the spoken text being assessed.
package stt

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the provider recognized nothing in the audio.
var ErrNoSpeech = errors.New("no speech recognized")

// Transcript is the recognized text with the provider's confidence in [0, 1].
type Transcript struct {
	Text       string
	Confidence float64
}

// Score converts the confidence to a 0-100 score, rounded half up.
func (t Transcript) Score() int {
	c := t.Confidence
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return int(c*100 + 0.5)
}

// Transcriber defines the interface for STT providers (Google, mock, ...).
type Transcriber interface {
	// Transcribe recognizes a complete audio clip.
	Transcribe(ctx context.Context, audio []byte) (Transcript, error)

	// Name identifies the provider in logs and metrics.
	Name() string

	// Close releases provider resources.
	Close() error
}
