package analyzer

import (
	"math"
)

// Options controls how a corpus is grouped and scored
type Options struct {
	Grouping  GroupingStrategy
	Selection SelectionPolicy
	Policy    ReferencePolicy
	Parallel  bool
}

// DefaultOptions groups consecutive ids, keeps the last machine translation
// by sort order and sums over references
func DefaultOptions() Options {
	return Options{
		Grouping:  GroupConsecutive,
		Selection: LastBySortKey,
		Policy:    SummedReferences{},
	}
}

// Result is the outcome of one corpus evaluation
type Result struct {
	Precisions     [MaxOrder]float64
	BrevityPenalty float64
	Lengths        Lengths
	Score          float64
	Records        int
	Groups         int
	SkippedLines   int
}

// Degenerate reports whether the corpus could not be scored meaningfully:
// an order had no n-grams to divide by or the machine translations were empty.
func (r *Result) Degenerate() bool {
	if r.Lengths.Translation == 0 {
		return true
	}
	for _, p := range r.Precisions {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return true
		}
	}
	return math.IsNaN(r.Score) || math.IsInf(r.Score, 0)
}

// Evaluate groups the corpus records and scores them
func Evaluate(corpus *Corpus, opts Options) (*Result, error) {
	groups := GroupTranslations(corpus.Records, opts.Grouping, opts.Selection)
	result, err := EvaluateGroups(groups, opts)
	if err != nil {
		return nil, err
	}
	result.Records = len(corpus.Records)
	result.SkippedLines = corpus.SkippedLines
	return result, nil
}

// EvaluateGroups scores already grouped translations
func EvaluateGroups(groups []GroupedTranslation, opts Options) (*Result, error) {
	policy := opts.Policy
	if policy == nil {
		policy = SummedReferences{}
	}

	precisions, err := Precisions(groups, policy, opts.Parallel)
	if err != nil {
		return nil, err
	}

	lengths := CorpusLengths(groups)
	bp := BrevityPenalty(lengths.Reference, lengths.Translation)

	return &Result{
		Precisions:     precisions,
		BrevityPenalty: bp,
		Lengths:        lengths,
		Score:          Score(precisions[:], bp),
		Groups:         len(groups),
	}, nil
}
