package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNgrams(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		n        int
		want     []string
	}{
		{
			name:     "unigrams",
			sentence: "the cat sat",
			n:        1,
			want:     []string{"the", "cat", "sat"},
		},
		{
			name:     "bigrams",
			sentence: "the cat sat on the mat",
			n:        2,
			want:     []string{"the cat", "cat sat", "sat on", "on the", "the mat"},
		},
		{
			name:     "irregular_whitespace",
			sentence: "  the\tcat   sat \n",
			n:        2,
			want:     []string{"the cat", "cat sat"},
		},
		{
			name:     "order_equals_length",
			sentence: "a b c",
			n:        3,
			want:     []string{"a b c"},
		},
		{
			name:     "order_exceeds_length",
			sentence: "a b c",
			n:        4,
		},
		{
			name:     "empty",
			sentence: "",
			n:        1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ngrams(tt.sentence, tt.n)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNgramsCount(t *testing.T) {
	sentence := "one two three four five six seven"
	k := 7
	for n := 1; n <= k+2; n++ {
		want := k - n + 1
		if want < 0 {
			want = 0
		}
		assert.Len(t, Ngrams(sentence, n), want, "order %d", n)
	}
}

func TestCountNgrams(t *testing.T) {
	counts := CountNgrams(Ngrams("the cat and the dog and the bird", 1))
	assert.Equal(t, NgramCount{"the": 3, "cat": 1, "and": 2, "dog": 1, "bird": 1}, counts)

	reversed := CountNgrams([]string{"bird", "the", "and", "dog", "the", "and", "cat", "the"})
	assert.Equal(t, counts, reversed)

	assert.Empty(t, CountNgrams(nil))
}
