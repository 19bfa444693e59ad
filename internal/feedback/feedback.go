// Package feedback turns a word-level comparison into learner feedback.
//
// A fixed rule table answers the clear-cut cases locally. Anything the table
// does not cover is escalated to a remote feedback generator; when that call
// fails the learner still gets a generic encouragement.
package feedback

import "speech-feedback-service/internal/assessment"

// Params is the input to feedback selection.
//
// Score is a recognition/pronunciation confidence on a 0-100 scale and is
// distinct from the lexical Accuracy, although callers may pass the same value.
type Params struct {
	Score       int      `json:"score"`
	MissedWords []string `json:"missedWords"`
	ExtraWords  []string `json:"extraWords"`
	Accuracy    int      `json:"accuracy"`
}

// Request is Params plus the texts the remote generator needs for context.
type Request struct {
	Params
	OriginalText string `json:"originalText"`
	SpokenText   string `json:"spokenText"`
}

// Result is the feedback delivered to the learner. IsAI records whether the
// text came from the remote generator tier rather than a local rule.
type Result struct {
	Feedback string `json:"feedback"`
	IsAI     bool   `json:"isAI"`
}

// ParamsFrom derives selection input from a comparison and a caller score.
func ParamsFrom(result assessment.ComparisonResult, score int) Params {
	return Params{
		Score:       score,
		MissedWords: result.MissedWords,
		ExtraWords:  result.ExtraWords,
		Accuracy:    result.Accuracy,
	}
}
