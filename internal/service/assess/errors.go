package assess

import "errors"

var (
	// ErrAudioUnavailable is returned when no transcriber is configured.
	ErrAudioUnavailable = errors.New("audio assessment unavailable")
	// ErrTranscription wraps speech-to-text failures.
	ErrTranscription = errors.New("transcription failed")
)
