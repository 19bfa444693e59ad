package assessment

import "github.com/antzucaro/matchr"

// DefaultNearMissThreshold is the minimum Jaro-Winkler similarity for a
// missed word and an extra word to be reported as a near miss.
const DefaultNearMissThreshold = 0.85

// NearMiss pairs a missed reference word with the spoken word that most
// resembles it, e.g. "boarding" said as "boardinggate".
type NearMiss struct {
	Expected   string  `json:"expected"`
	Heard      string  `json:"heard"`
	Similarity float64 `json:"similarity"`
}

// NearMisses reports, for every missed word, the most similar extra word
// scoring at least threshold. Each extra word is attributed at most once.
// The result has no influence on accuracy.
func NearMisses(result ComparisonResult, threshold float64) []NearMiss {
	if len(result.MissedWords) == 0 || len(result.ExtraWords) == 0 {
		return nil
	}

	taken := make([]bool, len(result.ExtraWords))
	var misses []NearMiss
	for _, expected := range result.MissedWords {
		best, bestScore := -1, 0.0
		for i, heard := range result.ExtraWords {
			if taken[i] {
				continue
			}
			score := matchr.JaroWinkler(expected, heard, false)
			if score >= threshold && score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			continue
		}
		taken[best] = true
		misses = append(misses, NearMiss{
			Expected:   expected,
			Heard:      result.ExtraWords[best],
			Similarity: bestScore,
		})
	}
	return misses
}
