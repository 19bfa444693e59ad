package assessment

import (
	"reflect"
	"testing"
)

func TestAlign_BoardingGate(t *testing.T) {
	result := Align("Where is the boarding gate?", "where is the boardinggate")

	if result.TotalWords != 5 {
		t.Errorf("expected 5 total words, got %d", result.TotalWords)
	}
	if result.MatchedCount != 3 {
		t.Errorf("expected 3 matches, got %d", result.MatchedCount)
	}
	if !reflect.DeepEqual(result.MatchedWords, []string{"where", "is", "the"}) {
		t.Errorf("unexpected matched words: %v", result.MatchedWords)
	}
	if !reflect.DeepEqual(result.MissedWords, []string{"boarding", "gate"}) {
		t.Errorf("unexpected missed words: %v", result.MissedWords)
	}
	if !reflect.DeepEqual(result.ExtraWords, []string{"boardinggate"}) {
		t.Errorf("unexpected extra words: %v", result.ExtraWords)
	}
	if result.Accuracy != 60 {
		t.Errorf("expected accuracy 60, got %d", result.Accuracy)
	}
}

func TestAlign_ExactMatch(t *testing.T) {
	result := Align("Hello, World!", "hello world")

	if result.Accuracy != 100 {
		t.Errorf("expected accuracy 100, got %d", result.Accuracy)
	}
	if len(result.MissedWords) != 0 {
		t.Errorf("expected no missed words, got %v", result.MissedWords)
	}
	if len(result.ExtraWords) != 0 {
		t.Errorf("expected no extra words, got %v", result.ExtraWords)
	}
}

func TestAlign_DuplicateReferenceWords(t *testing.T) {
	result := Align("go go home", "go home")

	if !reflect.DeepEqual(result.MatchedWords, []string{"go", "home"}) {
		t.Errorf("unexpected matched words: %v", result.MatchedWords)
	}
	if !reflect.DeepEqual(result.MissedWords, []string{"go"}) {
		t.Errorf("unexpected missed words: %v", result.MissedWords)
	}
	if len(result.ExtraWords) != 0 {
		t.Errorf("expected no extra words, got %v", result.ExtraWords)
	}
	if result.Accuracy != 67 {
		t.Errorf("expected accuracy 67, got %d", result.Accuracy)
	}
}

func TestAlign_EmptyReference(t *testing.T) {
	tests := []struct {
		name   string
		spoken string
		extra  []string
	}{
		{"empty spoken", "", []string{}},
		{"some spoken", "hello there", []string{"hello", "there"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Align("", tt.spoken)
			if result.Accuracy != 0 {
				t.Errorf("expected accuracy 0, got %d", result.Accuracy)
			}
			if result.TotalWords != 0 {
				t.Errorf("expected 0 total words, got %d", result.TotalWords)
			}
			if len(result.MatchedWords) != 0 || len(result.MissedWords) != 0 {
				t.Errorf("expected empty matched/missed, got %v / %v", result.MatchedWords, result.MissedWords)
			}
			if !reflect.DeepEqual(result.ExtraWords, tt.extra) {
				t.Errorf("expected extra %v, got %v", tt.extra, result.ExtraWords)
			}
		})
	}
}

func TestAlign_EmptySpoken(t *testing.T) {
	result := Align("good morning", "")

	if result.Accuracy != 0 {
		t.Errorf("expected accuracy 0, got %d", result.Accuracy)
	}
	if !reflect.DeepEqual(result.MissedWords, []string{"good", "morning"}) {
		t.Errorf("unexpected missed words: %v", result.MissedWords)
	}
}

func TestAlign_OrderIndependent(t *testing.T) {
	result := Align("the cat sat", "sat the cat")

	if result.Accuracy != 100 {
		t.Errorf("expected scrambled order to still score 100, got %d", result.Accuracy)
	}
}

func TestAlign_ExtraWordsKeepSpokenOrder(t *testing.T) {
	result := Align("i like tea", "um i really like green tea")

	if !reflect.DeepEqual(result.ExtraWords, []string{"um", "really", "green"}) {
		t.Errorf("unexpected extra words: %v", result.ExtraWords)
	}
}

func TestAlign_CountInvariant(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a b c", "a b c"},
		{"a a a", "a"},
		{"a", "a a a"},
		{"the quick brown fox", "quick the fox jumps"},
		{"Where is the boarding gate?", "where is the boardinggate"},
		{"one two three four", "five six"},
	}

	for _, p := range pairs {
		result := Align(p[0], p[1])
		if result.MatchedCount+len(result.MissedWords) != result.TotalWords {
			t.Errorf("invariant broken for %q/%q: matched=%d missed=%d total=%d",
				p[0], p[1], result.MatchedCount, len(result.MissedWords), result.TotalWords)
		}
		if result.MatchedCount != len(result.MatchedWords) {
			t.Errorf("matched count mismatch for %q/%q", p[0], p[1])
		}
		spoken := len(Tokens(p[1]))
		if result.MatchedCount+len(result.ExtraWords) != spoken {
			t.Errorf("spoken positions not conserved for %q/%q", p[0], p[1])
		}
	}
}

func TestAccuracy_Rounding(t *testing.T) {
	tests := []struct {
		matched, total, expected int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
		{3, 8, 38},
		{1, 200, 1},
	}

	for _, tt := range tests {
		got := accuracy(tt.matched, tt.total)
		if got != tt.expected {
			t.Errorf("accuracy(%d, %d) = %d, want %d", tt.matched, tt.total, got, tt.expected)
		}
	}
}
