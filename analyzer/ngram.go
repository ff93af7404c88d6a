package analyzer

import "strings"

// Ngrams returns every window of n whitespace-separated tokens of sentence,
// joined by a single space, from left to right. It returns nothing when the
// sentence has fewer than n tokens.
func Ngrams(sentence string, n int) []string {
	return ngramsOf(strings.Fields(sentence), n)
}

func ngramsOf(words []string, n int) []string {
	if n < 1 || n > len(words) {
		return nil
	}
	ngrams := make([]string, 0, len(words)-n+1)
	for i := 0; i <= len(words)-n; i++ {
		ngrams = append(ngrams, strings.Join(words[i:i+n], " "))
	}
	return ngrams
}

// CountNgrams returns how often each distinct n-gram occurs
func CountNgrams(ngrams []string) NgramCount {
	counts := make(NgramCount, len(ngrams))
	for _, ngram := range ngrams {
		counts[ngram]++
	}
	return counts
}
