package assessment

// ComparisonResult is the word-level comparison of a reference sentence with
// what the learner said.
//
// MatchedCount + len(MissedWords) == TotalWords always holds.
type ComparisonResult struct {
	Accuracy     int      `json:"accuracy"`
	MatchedWords []string `json:"matchedWords"`
	MissedWords  []string `json:"missedWords"`
	ExtraWords   []string `json:"extraWords"`
	TotalWords   int      `json:"totalWords"`
	MatchedCount int      `json:"matchedCount"`
}

// Align matches each normalized reference word, in reference order, against
// the first unused spoken word with the same token. Reference words without a
// match are missed; spoken words never used are extra, in spoken order.
//
// Matching is greedy and ignores word order, so a scrambled sentence can
// still score 100. Duplicate reference words each need their own spoken
// occurrence.
func Align(reference, spoken string) ComparisonResult {
	referenceWords := Tokens(reference)
	spokenWords := Tokens(spoken)

	used := make([]bool, len(spokenWords))
	result := ComparisonResult{
		MatchedWords: []string{},
		MissedWords:  []string{},
		ExtraWords:   []string{},
		TotalWords:   len(referenceWords),
	}

	for _, word := range referenceWords {
		found := false
		for i, candidate := range spokenWords {
			if !used[i] && candidate == word {
				used[i] = true
				found = true
				break
			}
		}
		if found {
			result.MatchedWords = append(result.MatchedWords, word)
		} else {
			result.MissedWords = append(result.MissedWords, word)
		}
	}

	for i, word := range spokenWords {
		if !used[i] {
			result.ExtraWords = append(result.ExtraWords, word)
		}
	}

	result.MatchedCount = len(result.MatchedWords)
	result.Accuracy = accuracy(result.MatchedCount, result.TotalWords)
	return result
}

// accuracy returns matched/total as a 0-100 percentage rounded half up.
// Integer arithmetic keeps x.5 from drifting below the rounding boundary.
func accuracy(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return (matched*200 + total) / (2 * total)
}
