// Package models defines the data structures for assessment events.
package models

import (
	"speech-feedback-service/internal/assessment"
)

// Event types carried in the eventType field and Kafka header.
const (
	EventAssessmentCompleted = "learning.assessment.completed"
	EventFeedbackDegraded    = "learning.feedback.degraded"
)

// AssessmentCompleted is emitted once per assessment.
type AssessmentCompleted struct {
	EventType     string                      `json:"eventType"`
	AssessmentID  string                      `json:"assessmentId"`
	LearnerID     string                      `json:"learnerId,omitempty"`
	Timestamp     int64                       `json:"timestamp"`
	Source        string                      `json:"source"` // text, audio
	ReferenceText string                      `json:"referenceText"`
	SpokenText    string                      `json:"spokenText"`
	Score         int                         `json:"score"`
	Comparison    assessment.ComparisonResult `json:"comparison"`
	NearMisses    []assessment.NearMiss       `json:"nearMisses,omitempty"`
	Feedback      string                      `json:"feedback"`
	IsAI          bool                        `json:"isAI"`
	Tier          string                      `json:"tier"`
	Rule          string                      `json:"rule,omitempty"`
}

// FeedbackDegraded is emitted when the fallback message replaced remote feedback.
type FeedbackDegraded struct {
	EventType    string `json:"eventType"`
	AssessmentID string `json:"assessmentId"`
	LearnerID    string `json:"learnerId,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	Reason       string `json:"reason"`
	Error        string `json:"error"`
}
