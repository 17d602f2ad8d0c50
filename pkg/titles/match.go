package titles

import (
	"github.com/hbollon/go-edlib"
)

// MinScore is the similarity threshold below which a candidate is rejected.
const MinScore = 0.70

// Match is the result of matching a query against a list of candidates.
type Match struct {
	Index int     // index into the candidate slice
	Title string  // the matched candidate title
	Score float64 // Jaro-Winkler similarity (0.0-1.0)
}

// BestMatch finds the candidate most similar to query.
// Uses Jaro-Winkler similarity, which favors shared prefixes - a good fit for
// media titles where sequels differ only in their suffix.
// Returns (match, false) when no candidate reaches MinScore.
func BestMatch(query string, candidates []string) (Match, bool) {
	cleaned := Clean(query)
	best := Match{Index: -1}

	for i, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(cleaned, Clean(candidate)))
		if score > best.Score {
			best = Match{Index: i, Title: candidate, Score: score}
		}
	}

	if best.Score < MinScore {
		return Match{Index: -1}, false
	}
	return best, true
}
