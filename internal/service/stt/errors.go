package stt

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorType classifies a Transcribe error for metrics. Cloud providers
// surface gRPC status codes; anything else falls through to the context
// checks and then "unknown".
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoSpeech) {
		return "no_speech"
	}
	switch status.Code(err) {
	case codes.InvalidArgument:
		return "invalid_audio"
	case codes.DeadlineExceeded:
		return "timeout"
	case codes.Canceled:
		return "canceled"
	case codes.Unauthenticated, codes.PermissionDenied:
		return "auth"
	case codes.ResourceExhausted:
		return "quota"
	case codes.Unavailable:
		return "unavailable"
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unknown"
	}
}
