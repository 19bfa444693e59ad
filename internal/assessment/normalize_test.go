package assessment

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase", "Hello World", "hello world"},
		{"punctuation", "Hello, World!", "hello world"},
		{"question and colon", "Where: is it?", "where is it"},
		{"semicolon", "yes; no", "yes no"},
		{"straight quotes", `"quoted" 'single'`, "quoted single"},
		{"curly quotes", "“curly” ‘single’", "curly single"},
		{"whitespace runs", "  a \t b\n\nc  ", "a b c"},
		{"only punctuation", "?!.,", ""},
		{"apostrophe joins", "I'm here", "im here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"  Where   is the BOARDING gate?  ",
		"“Don’t” stop; believing.",
		"a . b , c",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_CaseAndPunctuationInsensitive(t *testing.T) {
	if Normalize("Hello, World!") != Normalize("hello world") {
		t.Errorf("expected %q and %q to normalize equally", "Hello, World!", "hello world")
	}
}

func TestTokens(t *testing.T) {
	got := Tokens(" Where is the boarding gate? ")
	want := []string{"where", "is", "the", "boarding", "gate"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if tokens := Tokens("  ...  "); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}
