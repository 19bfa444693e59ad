package events

import (
	"context"
	"testing"

	"speech-feedback-service/internal/models"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"empty brokers", &Config{Enabled: true, Brokers: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writerCompleted != nil || p.writerDegraded != nil {
				t.Error("expected nil writers when disabled")
			}
		})
	}
}

func TestNew_EnabledCreatesWriters(t *testing.T) {
	p := New(&Config{
		Enabled:        true,
		Brokers:        []string{"localhost:9092"},
		TopicCompleted: "test.completed",
		TopicDegraded:  "test.degraded",
	})
	defer p.Close()

	if !p.enabled {
		t.Fatal("expected publisher to be enabled")
	}
	if p.writerCompleted == nil || p.writerCompleted.Topic != "test.completed" {
		t.Error("expected completed writer on test.completed")
	}
	if p.writerDegraded == nil || p.writerDegraded.Topic != "test.degraded" {
		t.Error("expected degraded writer on test.degraded")
	}
}

func TestNew_ConfigValues(t *testing.T) {
	p := New(&Config{
		Enabled:        false,
		Brokers:        []string{"localhost:9092"},
		TopicCompleted: "test.completed",
		TopicDegraded:  "test.degraded",
		Principal:      "test-principal",
	})

	if p.principal != "test-principal" {
		t.Errorf("expected principal 'test-principal', got %s", p.principal)
	}
	if p.topicCompleted != "test.completed" {
		t.Errorf("expected completed topic 'test.completed', got %s", p.topicCompleted)
	}
	if p.topicDegraded != "test.degraded" {
		t.Errorf("expected degraded topic 'test.degraded', got %s", p.topicDegraded)
	}
}

func TestPublisher_Disabled_PublishesWithoutError(t *testing.T) {
	p := New(&Config{Enabled: false, TopicCompleted: "c", TopicDegraded: "d", Principal: "test-svc"})

	completed := models.AssessmentCompleted{
		EventType:    models.EventAssessmentCompleted,
		AssessmentID: "a-1",
		Feedback:     "good",
	}
	if err := p.PublishCompleted(context.Background(), "a-1", completed); err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}

	degraded := models.FeedbackDegraded{
		EventType:    models.EventFeedbackDegraded,
		AssessmentID: "a-1",
		Reason:       "status",
	}
	if err := p.PublishDegraded(context.Background(), "a-1", degraded); err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestPublisher_InvalidJSON(t *testing.T) {
	p := New(&Config{Enabled: false})

	// Create an unmarshalable value (channel)
	event := make(chan int)
	if err := p.PublishCompleted(context.Background(), "k", event); err == nil {
		t.Error("expected error for unmarshalable completed event")
	}
	if err := p.PublishDegraded(context.Background(), "k", event); err == nil {
		t.Error("expected error for unmarshalable degraded event")
	}
}

func TestPublisher_Close_NoWriters(t *testing.T) {
	p := New(&Config{Enabled: false})

	if err := p.Close(); err != nil {
		t.Errorf("expected no error closing disabled publisher, got %v", err)
	}
}
