// Package mock provides a mock STT transcriber for running without cloud
// credentials. It cycles through canned learner attempts so that local dev
// traffic exercises both local and remote feedback tiers.
package mock

import (
	"context"
	"sync"

	"speech-feedback-service/internal/service/stt"
)

// DefaultTranscripts are the canned attempts returned in rotation.
var DefaultTranscripts = []stt.Transcript{
	{Text: "where is the boarding gate", Confidence: 0.95},
	{Text: "where is the boardinggate", Confidence: 0.62},
	{Text: "could I have the bill please", Confidence: 0.88},
	{Text: "I would like a window seat", Confidence: 0.91},
	{Text: "um how much is this one", Confidence: 0.47},
}

// Adapter implements stt.Transcriber with canned responses.
type Adapter struct {
	mu          sync.Mutex
	transcripts []stt.Transcript
	next        int
	err         error
	calls       int
}

// New creates a mock transcriber cycling through DefaultTranscripts.
func New() *Adapter {
	return NewWithTranscripts(DefaultTranscripts...)
}

// NewWithTranscripts creates a mock returning transcripts in order, then wrapping.
func NewWithTranscripts(transcripts ...stt.Transcript) *Adapter {
	return &Adapter{transcripts: transcripts}
}

// NewFailing creates a mock whose every call fails with err.
func NewFailing(err error) *Adapter {
	return &Adapter{err: err}
}

// Name implements stt.Transcriber.
func (a *Adapter) Name() string {
	return "mock"
}

// Transcribe returns the next canned transcript. Empty audio yields stt.ErrNoSpeech.
func (a *Adapter) Transcribe(ctx context.Context, audio []byte) (stt.Transcript, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.calls++
	if a.err != nil {
		return stt.Transcript{}, a.err
	}
	if err := ctx.Err(); err != nil {
		return stt.Transcript{}, err
	}
	if len(audio) == 0 || len(a.transcripts) == 0 {
		return stt.Transcript{}, stt.ErrNoSpeech
	}

	t := a.transcripts[a.next%len(a.transcripts)]
	a.next++
	return t, nil
}

// Calls returns how many times Transcribe was invoked.
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Close is a no-op.
func (a *Adapter) Close() error {
	return nil
}
