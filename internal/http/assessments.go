package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"speech-feedback-service/internal/observability/metrics"
	"speech-feedback-service/internal/schema"
	"speech-feedback-service/internal/service/assess"
)

// maxTextBody bounds text request bodies before JSON decoding.
const maxTextBody = 64 * 1024

// Assessor is implemented by assess.Service.
type Assessor interface {
	Assess(ctx context.Context, in assess.Input) (*assess.Report, error)
	AssessAudio(ctx context.Context, in assess.AudioInput) (*assess.Report, error)
}

type textRequest struct {
	ReferenceText string `json:"referenceText"`
	SpokenText    string `json:"spokenText"`
	Score         *int   `json:"score,omitempty"`
	LearnerID     string `json:"learnerId,omitempty"`
}

type audioRequest struct {
	ReferenceText string `json:"referenceText"`
	Audio         string `json:"audio"` // base64
	LearnerID     string `json:"learnerId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type assessmentHandler struct {
	svc           Assessor
	maxAudioBytes int64
}

func (h *assessmentHandler) assessText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, maxTextBody, &req) {
		return
	}

	report, err := h.svc.Assess(r.Context(), assess.Input{
		ReferenceText: req.ReferenceText,
		SpokenText:    req.SpokenText,
		Score:         req.Score,
		LearnerID:     req.LearnerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *assessmentHandler) assessAudio(w http.ResponseWriter, r *http.Request) {
	// base64 inflates by 4/3; leave room for the other fields.
	limit := h.maxAudioBytes*4/3 + maxTextBody
	var req audioRequest
	if !decode(w, r, limit, &req) {
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "audio must be base64 encoded", Field: "audio"})
		return
	}

	report, err := h.svc.AssessAudio(r.Context(), assess.AudioInput{
		ReferenceText: req.ReferenceText,
		Audio:         audio,
		LearnerID:     req.LearnerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func decode(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		case errors.Is(err, io.EOF):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body is empty"})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON: " + err.Error()})
		}
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var fe *schema.FieldError
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fe.Reason, Field: fe.Field})
	case errors.Is(err, assess.ErrAudioUnavailable):
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: err.Error()})
	case errors.Is(err, assess.ErrTranscription):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("Assessment failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.DefaultMetrics.RecordHTTPRequest(route, ww.Status())

		log.Debug().
			Str("requestId", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
