package stt

import "testing"

func TestTranscript_Score(t *testing.T) {
	tests := []struct {
		confidence float64
		expected   int
	}{
		{0, 0},
		{0.5, 50},
		{0.874, 87},
		{0.875, 88},
		{0.94, 94},
		{1, 100},
		{1.3, 100},
		{-0.2, 0},
	}

	for _, tt := range tests {
		got := Transcript{Confidence: tt.confidence}.Score()
		if got != tt.expected {
			t.Errorf("Score() for confidence %v = %d, want %d", tt.confidence, got, tt.expected)
		}
	}
}
