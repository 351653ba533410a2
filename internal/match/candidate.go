package match

import (
	"sort"
)

// Candidate is a scored source header for one target.
type Candidate struct {
	Source   string
	Score    float64
	Strategy Strategy
	// Index is the position of Source in the source list, used to keep the
	// first source on ties.
	Index int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by source position for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Index < c[j].Index
}

// Sorted returns a ranked copy of the list.
func (c CandidateList) Sorted() CandidateList {
	out := make(CandidateList, len(c))
	copy(out, c)
	sort.Sort(out)

	return out
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// AboveThreshold returns candidates scoring strictly above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score > threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Names returns the source names in list order.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Source
	}

	return names
}

// Scoring thresholds.
const (
	// MinScore is the score a synonym match must exceed to be accepted.
	MinScore = 0.3
	// DirectVariationScore is given to a source listed as a variant of the
	// target's base word, or the other way round.
	DirectVariationScore = 0.9
	// SuggestMinScore is the normalized Levenshtein similarity a name must
	// exceed to be suggested.
	SuggestMinScore = 0.5
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.05
)

// RankSuggestions scores every source against name by normalized
// Levenshtein similarity and returns them ranked.
func RankSuggestions(name string, sources []string) CandidateList {
	candidates := make(CandidateList, 0, len(sources))

	for i, source := range sources {
		candidates = append(candidates, Candidate{
			Source: source,
			Score:  NormalizedLevenshteinScore(name, source),
			Index:  i,
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to n sources that look like name, best first.
func Suggest(name string, sources []string, n int) []string {
	return RankSuggestions(name, sources).AboveThreshold(SuggestMinScore).Top(n).Names()
}
