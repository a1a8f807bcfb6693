package extract

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// matchMode selects which similarity scores feed the fuzzy gate.
type matchMode int

const (
	// ratioPartial scores with Ratio and PartialRatio only.
	ratioPartial matchMode = iota
	// allScores additionally uses the token sort/set ratios and applies
	// the token-overlap check for multi-word candidates.
	allScores
)

// bestFuzzy returns the candidate with the highest similarity to text that
// clears the threshold, or "" when none does. Candidates and text are
// compared case-insensitively; ties keep the earlier candidate.
func (g *Gazetteer) bestFuzzy(candidates []string, text string, mode matchMode) string {
	textLower := strings.ToLower(text)
	best := ""
	bestScore := 0

	for _, cand := range candidates {
		candLower := strings.ToLower(cand)

		score := fuzzy.Ratio(candLower, textLower)
		if s := fuzzy.PartialRatio(candLower, textLower); s > score {
			score = s
		}
		if mode == allScores {
			if s := fuzzy.TokenSortRatio(candLower, textLower); s > score {
				score = s
			}
			if s := fuzzy.TokenSetRatio(candLower, textLower); s > score {
				score = s
			}
		}

		if score < g.FuzzyThreshold || score <= bestScore {
			continue
		}
		if mode == allScores {
			// High scores on short names are too easy; require real
			// token overlap before trusting them.
			if len(candLower) < 4 || !g.tokenOverlapOK(candLower, textLower) {
				continue
			}
		}
		bestScore = score
		best = cand
	}
	return best
}

func (g *Gazetteer) tokenOverlapOK(cand, text string) bool {
	candTokens := tokenSet(cand)
	if len(candTokens) == 0 {
		return false
	}
	textTokens := tokenSet(text)
	common := 0
	for tok := range candTokens {
		if textTokens[tok] {
			common++
		}
	}
	return float64(common)/float64(len(candTokens)) >= g.TokenOverlap
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// containsFold reports whether text contains candidate, ignoring case.
func containsFold(text, candidate string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(candidate))
}
