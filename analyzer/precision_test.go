package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catGroup() []GroupedTranslation {
	return []GroupedTranslation{{
		SourceID:           "s1",
		HumanReferences:    []string{"a cat sat", "the cat sat"},
		MachineTranslation: "the cat sat",
	}}
}

func TestPrecisionSummedReferences(t *testing.T) {
	groups := catGroup()
	policy := SummedReferences{}

	// every reference contributes its own clipped count and its own length
	assert.InDelta(t, 5.0/6.0, Precision(groups, 1, policy), 1e-12)
	assert.InDelta(t, 3.0/4.0, Precision(groups, 2, policy), 1e-12)
	assert.InDelta(t, 1.0/2.0, Precision(groups, 3, policy), 1e-12)
	assert.True(t, math.IsNaN(Precision(groups, 4, policy)))
}

func TestPrecisionCanonicalReferences(t *testing.T) {
	groups := catGroup()
	policy := CanonicalReferences{}

	for n := 1; n <= 3; n++ {
		assert.Equal(t, 1.0, Precision(groups, n, policy), "order %d", n)
	}
	assert.True(t, math.IsNaN(Precision(groups, 4, policy)))
}

func TestPrecisionClipping(t *testing.T) {
	groups := []GroupedTranslation{{
		SourceID:           "s1",
		HumanReferences:    []string{"the cat sat on the mat"},
		MachineTranslation: "the the the the",
	}}

	assert.InDelta(t, 2.0/6.0, Precision(groups, 1, SummedReferences{}), 1e-12)
	assert.InDelta(t, 2.0/4.0, Precision(groups, 1, CanonicalReferences{}), 1e-12)
}

func TestPrecisionAccumulatesAcrossGroups(t *testing.T) {
	groups := []GroupedTranslation{
		{SourceID: "s1", HumanReferences: []string{"a b c d"}, MachineTranslation: "a b c d"},
		{SourceID: "s2", HumanReferences: []string{"e f"}, MachineTranslation: "x y"},
	}
	assert.InDelta(t, 4.0/6.0, Precision(groups, 1, SummedReferences{}), 1e-12)
	assert.InDelta(t, 3.0/4.0, Precision(groups, 2, SummedReferences{}), 1e-12)
}

func TestPrecisionsParallelMatchesSequential(t *testing.T) {
	groups := []GroupedTranslation{
		{SourceID: "s1", HumanReferences: []string{"the cat sat on the mat", "a cat was sitting on the mat"}, MachineTranslation: "the cat sat on a mat"},
		{SourceID: "s2", HumanReferences: []string{"it is raining hard today"}, MachineTranslation: "it is raining a lot today"},
	}

	for _, policy := range []ReferencePolicy{SummedReferences{}, CanonicalReferences{}} {
		sequential, err := Precisions(groups, policy, false)
		require.NoError(t, err)
		parallel, err := Precisions(groups, policy, true)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, policy.Name())
		for n, p := range sequential {
			assert.Equal(t, Precision(groups, n+1, policy), p)
		}
	}
}

func TestParseReferencePolicy(t *testing.T) {
	p, err := ParseReferencePolicy("")
	require.NoError(t, err)
	assert.Equal(t, "summed", p.Name())

	p, err = ParseReferencePolicy("canonical")
	require.NoError(t, err)
	assert.Equal(t, "canonical", p.Name())

	_, err = ParseReferencePolicy("closest")
	assert.Error(t, err)
}
