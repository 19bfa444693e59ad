// Package assess runs one learner assessment end to end: validation,
// word alignment, feedback selection, metrics and event publishing.
package assess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"speech-feedback-service/internal/assessment"
	"speech-feedback-service/internal/feedback"
	"speech-feedback-service/internal/models"
	"speech-feedback-service/internal/observability/logging"
	"speech-feedback-service/internal/observability/metrics"
	"speech-feedback-service/internal/schema"
	"speech-feedback-service/internal/service/stt"
)

// Input sources reported in metrics and events.
const (
	SourceText  = "text"
	SourceAudio = "audio"
)

// EventPublisher receives assessment events. events.Publisher implements it.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, key string, event any) error
	PublishDegraded(ctx context.Context, key string, event any) error
}

// FeedbackDecider picks feedback for a request. feedback.Orchestrator implements it.
type FeedbackDecider interface {
	Decide(ctx context.Context, req feedback.Request) feedback.Decision
}

// Input is a text assessment request. A nil Score means the lexical accuracy
// doubles as the score.
type Input struct {
	ReferenceText string
	SpokenText    string
	Score         *int
	LearnerID     string
}

// AudioInput is an assessment of a recorded attempt.
type AudioInput struct {
	ReferenceText string
	Audio         []byte
	LearnerID     string
}

// Report is everything the caller learns about one assessment.
type Report struct {
	AssessmentID string                      `json:"assessmentId"`
	SpokenText   string                      `json:"spokenText"`
	Score        int                         `json:"score"`
	Comparison   assessment.ComparisonResult `json:"comparison"`
	NearMisses   []assessment.NearMiss       `json:"nearMisses"`
	Feedback     feedback.Result             `json:"feedback"`
	Rule         string                      `json:"rule,omitempty"`
}

// Config holds the service tuning knobs.
type Config struct {
	NearMissThreshold float64
}

// Service assesses learner attempts. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	decider     FeedbackDecider
	publisher   EventPublisher
	validator   *schema.Validator
	transcriber stt.Transcriber
	metrics     *metrics.Metrics
	cfg         Config
	now         func() time.Time
	newID       func() string
}

// New creates an assessment service. transcriber may be nil when audio
// assessments are not offered.
func New(
	decider FeedbackDecider,
	publisher EventPublisher,
	validator *schema.Validator,
	transcriber stt.Transcriber,
	cfg Config,
) *Service {
	if cfg.NearMissThreshold <= 0 {
		cfg.NearMissThreshold = assessment.DefaultNearMissThreshold
	}
	return &Service{
		decider:     decider,
		publisher:   publisher,
		validator:   validator,
		transcriber: transcriber,
		metrics:     metrics.DefaultMetrics,
		cfg:         cfg,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Assess compares the spoken text with the reference and selects feedback.
// The only error is a validation failure; feedback is always produced otherwise.
func (s *Service) Assess(ctx context.Context, in Input) (*Report, error) {
	if err := s.validator.ValidateText(in.ReferenceText, in.SpokenText, in.Score); err != nil {
		s.recordRejected(err)
		return nil, err
	}
	return s.assess(ctx, in, SourceText), nil
}

// AssessAudio transcribes the clip and assesses the transcript, using the
// recognition confidence as the score. A clip with no recognized speech is
// assessed as empty spoken text with score 0.
func (s *Service) AssessAudio(ctx context.Context, in AudioInput) (*Report, error) {
	if s.transcriber == nil {
		return nil, ErrAudioUnavailable
	}
	if err := s.validator.ValidateAudio(in.ReferenceText, in.Audio); err != nil {
		s.recordRejected(err)
		return nil, err
	}

	start := s.now()
	transcript, err := s.transcriber.Transcribe(ctx, in.Audio)
	s.metrics.RecordSTT(s.transcriber.Name(), s.now().Sub(start).Seconds())
	if err != nil {
		s.metrics.RecordSTTError(s.transcriber.Name(), stt.ErrorType(err))
		if !errors.Is(err, stt.ErrNoSpeech) {
			return nil, fmt.Errorf("%w: %v", ErrTranscription, err)
		}
		// Silence is a degenerate attempt, assessed as nothing said.
		transcript = stt.Transcript{}
	}

	score := transcript.Score()
	return s.assess(ctx, Input{
		ReferenceText: in.ReferenceText,
		SpokenText:    transcript.Text,
		Score:         &score,
		LearnerID:     in.LearnerID,
	}, SourceAudio), nil
}

func (s *Service) assess(ctx context.Context, in Input, source string) *Report {
	id := s.newID()
	logger := logging.WithAssessment(id, in.LearnerID)

	comparison := assessment.Align(in.ReferenceText, in.SpokenText)
	score := comparison.Accuracy
	if in.Score != nil {
		score = *in.Score
	}
	nearMisses := assessment.NearMisses(comparison, s.cfg.NearMissThreshold)

	decision := s.decider.Decide(ctx, feedback.Request{
		Params:       feedback.ParamsFrom(comparison, score),
		OriginalText: in.ReferenceText,
		SpokenText:   in.SpokenText,
	})

	s.metrics.RecordAssessment(source, comparison.Accuracy, comparison.TotalWords)

	logger.Info().
		Str("source", source).
		Int("accuracy", comparison.Accuracy).
		Int("score", score).
		Int("totalWords", comparison.TotalWords).
		Int("missed", len(comparison.MissedWords)).
		Int("extra", len(comparison.ExtraWords)).
		Str("tier", decision.Tier).
		Str("rule", string(decision.Rule)).
		Bool("isAI", decision.IsAI).
		Bool("degraded", decision.Degraded()).
		Msg("Assessment completed")

	s.publish(ctx, id, in, source, score, comparison, nearMisses, decision)

	return &Report{
		AssessmentID: id,
		SpokenText:   in.SpokenText,
		Score:        score,
		Comparison:   comparison,
		NearMisses:   nonNil(nearMisses),
		Feedback:     decision.Result,
		Rule:         string(decision.Rule),
	}
}

// publish emits events; failures are logged and never reach the learner.
func (s *Service) publish(
	ctx context.Context,
	id string,
	in Input,
	source string,
	score int,
	comparison assessment.ComparisonResult,
	nearMisses []assessment.NearMiss,
	decision feedback.Decision,
) {
	if s.publisher == nil {
		return
	}
	ts := s.now().UnixMilli()

	completed := models.AssessmentCompleted{
		EventType:     models.EventAssessmentCompleted,
		AssessmentID:  id,
		LearnerID:     in.LearnerID,
		Timestamp:     ts,
		Source:        source,
		ReferenceText: in.ReferenceText,
		SpokenText:    in.SpokenText,
		Score:         score,
		Comparison:    comparison,
		NearMisses:    nearMisses,
		Feedback:      decision.Feedback,
		IsAI:          decision.IsAI,
		Tier:          decision.Tier,
		Rule:          string(decision.Rule),
	}
	if err := s.publisher.PublishCompleted(ctx, id, completed); err != nil {
		log.Error().Err(err).Str("assessmentId", id).Msg("Failed to publish completed event")
	}

	if !decision.Degraded() {
		return
	}
	degraded := models.FeedbackDegraded{
		EventType:    models.EventFeedbackDegraded,
		AssessmentID: id,
		LearnerID:    in.LearnerID,
		Timestamp:    ts,
		Reason:       feedback.FailureReason(decision.RemoteErr),
		Error:        decision.RemoteErr.Error(),
	}
	if err := s.publisher.PublishDegraded(ctx, id, degraded); err != nil {
		log.Error().Err(err).Str("assessmentId", id).Msg("Failed to publish degraded event")
	}
}

func (s *Service) recordRejected(err error) {
	var fe *schema.FieldError
	if errors.As(err, &fe) {
		s.metrics.RecordValidationRejected(fe.Field)
	}
}

func nonNil(misses []assessment.NearMiss) []assessment.NearMiss {
	if misses == nil {
		return []assessment.NearMiss{}
	}
	return misses
}
