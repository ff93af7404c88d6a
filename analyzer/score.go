package analyzer

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// CorpusLengths sums the token count of every human reference and of each
// group's machine translation
func CorpusLengths(groups []GroupedTranslation) Lengths {
	var l Lengths
	for _, g := range groups {
		l.Translation += len(strings.Fields(g.MachineTranslation))
		for _, ref := range g.HumanReferences {
			l.Reference += len(strings.Fields(ref))
		}
	}
	return l
}

// BrevityPenalty is 1 when the translation is at least as long as the
// references and exp(1 - r/c) otherwise. A zero translation length is not
// special-cased: r/c is +Inf and the penalty collapses to 0.
func BrevityPenalty(referenceLength, translationLength int) float64 {
	if translationLength >= referenceLength {
		return 1.0
	}
	return math.Exp(1.0 - float64(referenceLength)/float64(translationLength))
}

// Score combines the precisions by geometric mean and scales by the brevity
// penalty. A zero precision gives 0; NaN precisions give NaN.
func Score(precisions []float64, brevityPenalty float64) float64 {
	return brevityPenalty * stat.GeometricMean(precisions, nil)
}
