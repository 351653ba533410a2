package match

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"csv2json/internal/diagnostic"
	"csv2json/internal/mapping"
)

// Strategy tells how a target was matched.
type Strategy int

const (
	StrategyUnmapped Strategy = iota
	StrategyExact
	StrategyCaseInsensitive
	StrategySpecialCase
	StrategySynonymDirect
	StrategySynonymScore
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyCaseInsensitive:
		return "case_insensitive"
	case StrategySpecialCase:
		return "special_case"
	case StrategySynonymDirect:
		return "synonym_direct"
	case StrategySynonymScore:
		return "synonym_score"
	default:
		return "unmapped"
	}
}

// Proposal is the outcome for one target.
type Proposal struct {
	Target   string
	Source   string
	Strategy Strategy
	Score    float64
	// Explanation says why the source was chosen, or why none was.
	Explanation string
	// Suggestions are look-alike sources for unmapped targets.
	Suggestions []string
	// Ambiguous is set when another source scored within
	// DefaultAmbiguityThreshold of the chosen one.
	Ambiguous bool
}

// Mapped reports whether a source was chosen.
func (p Proposal) Mapped() bool {
	return p.Strategy != StrategyUnmapped
}

// Result holds one proposal per target, in target order, and the mapping
// built from the mapped ones.
type Result struct {
	Proposals []Proposal
	Mapping   *mapping.FieldMapping
}

// Unmapped returns the targets without a source.
func (r Result) Unmapped() []string {
	var out []string

	for _, p := range r.Proposals {
		if !p.Mapped() {
			out = append(out, p.Target)
		}
	}

	return out
}

// Report sends an unmapped_target warning per unmapped target to sink.
func (r Result) Report(sink diagnostic.Sink) {
	sink = diagnostic.OrDiscard(sink)

	for _, p := range r.Proposals {
		if p.Mapped() {
			continue
		}

		sink.Report(diagnostic.Warning(diagnostic.CodeUnmappedTarget, p.Target, p.Explanation).
			WithSuggestions(p.Suggestions...))
	}
}

// AutoMap maps every target it can to one source header. The result is
// deterministic; several targets may map to the same source.
func AutoMap(targets, sources []string) *mapping.FieldMapping {
	return AutoMapDetailed(targets, sources).Mapping
}

// AutoMapDetailed is AutoMap with a per-target explanation.
func AutoMapDetailed(targets, sources []string) Result {
	res := Result{
		Proposals: make([]Proposal, 0, len(targets)),
		Mapping:   mapping.New(),
	}

	for _, target := range targets {
		p := propose(target, sources)
		if p.Mapped() {
			res.Mapping.Set(target, p.Source)
		}

		res.Proposals = append(res.Proposals, p)
	}

	return res
}

func propose(target string, sources []string) Proposal {
	if slices.Contains(sources, target) {
		return Proposal{Target: target, Source: target, Strategy: StrategyExact, Score: 1, Explanation: "exact match"}
	}

	lower := strings.ToLower(target)

	for _, source := range sources {
		if strings.ToLower(source) == lower {
			return Proposal{
				Target: target, Source: source, Strategy: StrategyCaseInsensitive, Score: 1,
				Explanation: "case-insensitive match",
			}
		}
	}

	if accepted, ok := specialCases[lower]; ok {
		for _, source := range sources {
			if slices.Contains(accepted, source) {
				return Proposal{
					Target: target, Source: source, Strategy: StrategySpecialCase, Score: 1,
					Explanation: fmt.Sprintf("'%s' is a known spelling of '%s'", source, lower),
				}
			}
		}
	}

	candidates := scoreSynonyms(target, sources)
	ranked := candidates.Sorted()

	if best := ranked.Best(); best != nil && best.Score > MinScore {
		return Proposal{
			Target:      target,
			Source:      best.Source,
			Strategy:    best.Strategy,
			Score:       best.Score,
			Explanation: explainSynonym(target, *best),
			Ambiguous:   ranked.IsAmbiguous(DefaultAmbiguityThreshold),
		}
	}

	p := Proposal{
		Target:      target,
		Strategy:    StrategyUnmapped,
		Suggestions: Suggest(target, sources, 3),
		Explanation: "no source header matches",
	}

	if best := ranked.Best(); best != nil {
		p.Score = best.Score
		p.Explanation = fmt.Sprintf("best candidate '%s' scored %.2f, not above %.2f", best.Source, best.Score, MinScore)
	}

	return p
}

// scoreSynonyms scores every source with a positive score, in source order.
func scoreSynonyms(target string, sources []string) CandidateList {
	targetBase := baseName(target)
	targetTokens := synonymTokens(targetBase)

	var candidates CandidateList

	for i, source := range sources {
		sourceBase := baseName(source)

		score := tokenScore(targetTokens, synonymTokens(sourceBase))
		strategy := StrategySynonymScore

		if isDirectVariation(target, targetBase, source, sourceBase) && DirectVariationScore > score {
			score, strategy = DirectVariationScore, StrategySynonymDirect
		}

		if score > 0 {
			candidates = append(candidates, Candidate{Source: source, Score: score, Strategy: strategy, Index: i})
		}
	}

	return candidates
}

// tokenScore is |T ∩ S| / max(|T|, |S|), boosted by half when more than
// one token is shared.
func tokenScore(t, s map[string]struct{}) float64 {
	common := 0

	for tok := range t {
		if _, ok := s[tok]; ok {
			common++
		}
	}

	if common == 0 {
		return 0
	}

	score := float64(common) / float64(max(len(t), len(s)))
	if common > 1 {
		score *= 1.5
	}

	return score
}

// isDirectVariation reports whether the whole source is listed as a
// variant of the target's base word, or the whole target as a variant of
// the source's base word.
func isDirectVariation(target, targetBase, source, sourceBase string) bool {
	if variants, ok := variantsOf[targetBase]; ok && slices.Contains(variants, strings.ToLower(source)) {
		return true
	}

	variants, ok := variantsOf[sourceBase]

	return ok && slices.Contains(variants, strings.ToLower(target))
}

func explainSynonym(target string, c Candidate) string {
	if c.Strategy == StrategySynonymDirect {
		return fmt.Sprintf("'%s' is a listed variation of '%s'", c.Source, baseName(target))
	}

	t := synonymTokens(baseName(target))
	s := synonymTokens(baseName(c.Source))

	var shared []string

	for tok := range t {
		if _, ok := s[tok]; ok {
			shared = append(shared, tok)
		}
	}

	sort.Strings(shared)

	return fmt.Sprintf("shared tokens %s (score %.2f)", strings.Join(shared, ", "), c.Score)
}
