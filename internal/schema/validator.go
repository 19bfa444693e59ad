// Package schema validates assessment requests before they reach the aligner.
package schema

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid request")

// FieldError reports which field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalid
}

// Limits bound request sizes.
type Limits struct {
	MaxTextChars  int
	MaxAudioBytes int64
}

// DefaultLimits returns sensible default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxTextChars:  1000,
		MaxAudioBytes: 5 * 1024 * 1024, // 5MB (~160 seconds at 16kHz 16-bit mono)
	}
}

type Validator struct {
	limits Limits
}

func New(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// ValidateText checks the texts and optional score of a text assessment.
// Empty texts are allowed; they produce degenerate but valid results.
func (v *Validator) ValidateText(reference, spoken string, score *int) error {
	if err := v.checkText("referenceText", reference); err != nil {
		return err
	}
	if err := v.checkText("spokenText", spoken); err != nil {
		return err
	}
	if score != nil && (*score < 0 || *score > 100) {
		return &FieldError{Field: "score", Reason: fmt.Sprintf("must be between 0 and 100, got %d", *score)}
	}
	return nil
}

// ValidateAudio checks the reference text and audio clip of an audio assessment.
func (v *Validator) ValidateAudio(reference string, audio []byte) error {
	if err := v.checkText("referenceText", reference); err != nil {
		return err
	}
	if len(audio) == 0 {
		return &FieldError{Field: "audio", Reason: "must not be empty"}
	}
	if v.limits.MaxAudioBytes > 0 && int64(len(audio)) > v.limits.MaxAudioBytes {
		return &FieldError{Field: "audio", Reason: fmt.Sprintf("exceeds %d bytes", v.limits.MaxAudioBytes)}
	}
	return nil
}

func (v *Validator) checkText(field, text string) error {
	if !utf8.ValidString(text) {
		return &FieldError{Field: field, Reason: "must be valid UTF-8"}
	}
	if v.limits.MaxTextChars > 0 && utf8.RuneCountInString(text) > v.limits.MaxTextChars {
		return &FieldError{Field: field, Reason: fmt.Sprintf("exceeds %d characters", v.limits.MaxTextChars)}
	}
	return nil
}
