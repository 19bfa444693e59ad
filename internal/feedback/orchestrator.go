package feedback

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"speech-feedback-service/internal/observability/logging"
	"speech-feedback-service/internal/observability/metrics"
)

// Tier names reported in decisions and metrics.
const (
	TierLocal  = "local"
	TierRemote = "remote"
	TierNone   = "none"
)

// Fetcher produces feedback remotely. RemoteClient implements it.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (string, error)
}

// Outcome is what a tier produced. For the remote tier Err carries the
// failure that was replaced by the fallback message.
type Outcome struct {
	Feedback string
	Rule     RuleID
	Err      error
}

// Provider is one step of the feedback chain. Returning false hands the
// request to the next tier.
type Provider func(ctx context.Context, req Request) (Outcome, bool)

type tier struct {
	name    string
	ai      bool
	provide Provider
}

// Decision is a Result together with how it was reached.
type Decision struct {
	Result
	Tier      string
	Rule      RuleID
	RemoteErr error
}

// Degraded reports whether the fallback message replaced remote feedback.
func (d Decision) Degraded() bool {
	return d.RemoteErr != nil
}

// Orchestrator answers locally when a rule applies and only then reaches
// for the remote generator. It never returns an error.
type Orchestrator struct {
	tiers    []tier
	fallback string
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewOrchestrator chains the local selector and the remote fetcher. An empty
// fallback uses DefaultFallbackMessage.
func NewOrchestrator(selector *Selector, remote Fetcher, fallback string) *Orchestrator {
	if fallback == "" {
		fallback = DefaultFallbackMessage
	}
	o := &Orchestrator{
		fallback: fallback,
		metrics:  metrics.DefaultMetrics,
		logger:   logging.WithComponent("feedback-orchestrator"),
	}
	o.tiers = []tier{
		{name: TierLocal, ai: false, provide: localProvider(selector)},
		{name: TierRemote, ai: true, provide: o.remoteProvider(remote)},
	}
	return o
}

// GetFeedback returns the feedback for req.
func (o *Orchestrator) GetFeedback(ctx context.Context, req Request) Result {
	return o.Decide(ctx, req).Result
}

// Decide walks the tiers in order and returns the first answer.
func (o *Orchestrator) Decide(ctx context.Context, req Request) Decision {
	for _, t := range o.tiers {
		out, ok := t.provide(ctx, req)
		if !ok {
			continue
		}
		o.metrics.RecordFeedbackDecision(t.name, string(out.Rule))
		return Decision{
			Result:    Result{Feedback: out.Feedback, IsAI: t.ai},
			Tier:      t.name,
			Rule:      out.Rule,
			RemoteErr: out.Err,
		}
	}

	o.metrics.RecordFeedbackDecision(TierNone, "")
	return Decision{
		Result: Result{Feedback: o.fallback},
		Tier:   TierNone,
	}
}

func localProvider(selector *Selector) Provider {
	return func(_ context.Context, req Request) (Outcome, bool) {
		if selector == nil {
			return Outcome{}, false
		}
		text, rule, ok := selector.Select(req.Params)
		if !ok {
			return Outcome{}, false
		}
		return Outcome{Feedback: text, Rule: rule}, true
	}
}

func (o *Orchestrator) remoteProvider(remote Fetcher) Provider {
	return func(ctx context.Context, req Request) (Outcome, bool) {
		if remote == nil {
			return Outcome{}, false
		}

		start := time.Now()
		text, err := remote.Fetch(ctx, req)
		reason := FailureReason(err)
		o.metrics.RecordRemoteFeedback(reason, time.Since(start).Seconds())

		if err != nil {
			o.logger.Warn().
				Err(err).
				Str("reason", reason).
				Int("score", req.Score).
				Int("missed", len(req.MissedWords)).
				Msg("Remote feedback failed, using fallback message")
			return Outcome{Feedback: o.fallback, Err: err}, true
		}
		return Outcome{Feedback: text}, true
	}
}
