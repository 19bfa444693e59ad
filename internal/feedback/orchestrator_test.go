package feedback

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"speech-feedback-service/internal/assessment"
)

// fakeFetcher records calls and returns a canned answer.
type fakeFetcher struct {
	calls int
	last  Request
	text  string
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	f.calls++
	f.last = req
	return f.text, f.err
}

func TestOrchestrator_LocalRuleSkipsRemote(t *testing.T) {
	remote := &fakeFetcher{text: "remote"}
	o := NewOrchestrator(DefaultSelector(), remote, "")

	result := o.GetFeedback(context.Background(), Request{Params: Params{Score: 95, MissedWords: []string{}}})

	if result.IsAI {
		t.Error("expected local feedback, got isAI=true")
	}
	if remote.calls != 0 {
		t.Errorf("expected no remote calls, got %d", remote.calls)
	}
	if result.Feedback != *SelectLocal(Params{Score: 95}) {
		t.Errorf("expected perfect template, got %q", result.Feedback)
	}
}

func TestOrchestrator_EscalatesToRemote(t *testing.T) {
	remote := &fakeFetcher{text: "AI says: focus on 'boarding'"}
	o := NewOrchestrator(DefaultSelector(), remote, "")

	req := Request{
		Params:       Params{Score: 40, MissedWords: []string{"a", "b", "c"}},
		OriginalText: "ref",
		SpokenText:   "spoken",
	}
	decision := o.Decide(context.Background(), req)

	if !decision.IsAI {
		t.Error("expected isAI=true for escalated request")
	}
	if remote.calls != 1 {
		t.Errorf("expected exactly one remote call, got %d", remote.calls)
	}
	if decision.Feedback != "AI says: focus on 'boarding'" {
		t.Errorf("expected remote feedback verbatim, got %q", decision.Feedback)
	}
	if decision.Tier != TierRemote || decision.Rule != "" {
		t.Errorf("unexpected provenance: tier=%s rule=%s", decision.Tier, decision.Rule)
	}
	if decision.Degraded() {
		t.Error("expected non-degraded decision")
	}
	if remote.last.OriginalText != "ref" || remote.last.SpokenText != "spoken" {
		t.Errorf("expected full context forwarded, got %+v", remote.last)
	}
}

func TestOrchestrator_RemoteFailureYieldsFallback(t *testing.T) {
	remote := &fakeFetcher{err: errors.New("network unreachable")}
	o := NewOrchestrator(DefaultSelector(), remote, "")

	decision := o.Decide(context.Background(), Request{Params: Params{Score: 10}})

	if decision.Feedback != DefaultFallbackMessage {
		t.Errorf("expected fallback message, got %q", decision.Feedback)
	}
	if !decision.IsAI {
		t.Error("expected isAI=true when the remote tier was reached")
	}
	if !decision.Degraded() {
		t.Error("expected degraded decision")
	}
	if decision.RemoteErr == nil || decision.RemoteErr.Error() != "network unreachable" {
		t.Errorf("expected failure reason to be preserved, got %v", decision.RemoteErr)
	}
}

func TestOrchestrator_CustomFallback(t *testing.T) {
	o := NewOrchestrator(DefaultSelector(), &fakeFetcher{err: ErrNotConfigured}, "keep going!")

	result := o.GetFeedback(context.Background(), Request{Params: Params{Score: 0}})
	if result.Feedback != "keep going!" {
		t.Errorf("expected custom fallback, got %q", result.Feedback)
	}
}

func TestOrchestrator_RemoteServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRemoteClient(RemoteConfig{URL: server.URL, Timeout: time.Second})
	o := NewOrchestrator(DefaultSelector(), client, "")

	result := o.GetFeedback(context.Background(), Request{Params: Params{Score: 30, MissedWords: []string{"x", "y", "z"}}})
	if result.Feedback != DefaultFallbackMessage || !result.IsAI {
		t.Errorf("expected fallback with isAI=true, got %+v", result)
	}
}

func TestOrchestrator_RemoteClientWithoutURL(t *testing.T) {
	o := NewOrchestrator(DefaultSelector(), NewRemoteClient(DefaultRemoteConfig()), "")

	for i := 0; i < 10; i++ {
		decision := o.Decide(context.Background(), Request{Params: Params{Score: 0}})
		if decision.Tier != TierRemote || !decision.IsAI {
			t.Fatalf("call %d: expected remote tier with isAI=true, got %+v", i, decision)
		}
		if decision.Feedback != DefaultFallbackMessage {
			t.Errorf("expected fallback message, got %q", decision.Feedback)
		}
		if !errors.Is(decision.RemoteErr, ErrNotConfigured) {
			t.Errorf("call %d: expected ErrNotConfigured, got %v", i, decision.RemoteErr)
		}
	}
}

func TestOrchestrator_NilFetcherExhaustsChain(t *testing.T) {
	o := NewOrchestrator(DefaultSelector(), nil, "")

	decision := o.Decide(context.Background(), Request{Params: Params{Score: 0}})
	if decision.Tier != TierNone || decision.IsAI {
		t.Errorf("expected chain exhaustion without AI, got %+v", decision)
	}
	if decision.Feedback != DefaultFallbackMessage {
		t.Errorf("expected fallback message, got %q", decision.Feedback)
	}
}

func TestOrchestrator_EndToEndWithAlignment(t *testing.T) {
	comparison := assessment.Align("Where is the boarding gate?", "where is the boardinggate")
	remote := &fakeFetcher{text: "generated"}
	o := NewOrchestrator(DefaultSelector(), remote, "")

	req := Request{
		Params:       ParamsFrom(comparison, comparison.Accuracy),
		OriginalText: "Where is the boarding gate?",
		SpokenText:   "where is the boardinggate",
	}
	decision := o.Decide(context.Background(), req)

	// score 60 with two missed words and one extra word matches no rule.
	if !decision.IsAI || remote.calls != 1 {
		t.Fatalf("expected escalation, got %+v (calls=%d)", decision, remote.calls)
	}
	if remote.last.Accuracy != 60 || len(remote.last.MissedWords) != 2 {
		t.Errorf("unexpected params forwarded: %+v", remote.last.Params)
	}
}
