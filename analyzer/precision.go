package analyzer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ReferencePolicy decides how one group's machine n-grams are clipped against
// several human references and what goes into the precision denominator.
type ReferencePolicy interface {
	Name() string
	// Accumulate returns the clipped match count and the denominator
	// contribution of one group for a single n-gram order.
	Accumulate(machine []string, references [][]string) (clipped, total int)
}

// SummedReferences clips the machine n-grams against every reference on its
// own and adds up both the clipped counts and the reference n-gram totals.
type SummedReferences struct{}

func (SummedReferences) Name() string { return "summed" }

func (SummedReferences) Accumulate(machine []string, references [][]string) (clipped, total int) {
	machineCounts := CountNgrams(machine)
	for _, ref := range references {
		refCounts := CountNgrams(ref)
		for ngram, count := range machineCounts {
			clipped += min(count, refCounts[ngram])
		}
		total += len(ref)
	}
	return clipped, total
}

// CanonicalReferences clips every machine n-gram against its highest count in
// any single reference and divides by the number of machine n-grams.
type CanonicalReferences struct{}

func (CanonicalReferences) Name() string { return "canonical" }

func (CanonicalReferences) Accumulate(machine []string, references [][]string) (clipped, total int) {
	maxRef := make(NgramCount)
	for _, ref := range references {
		for ngram, count := range CountNgrams(ref) {
			if count > maxRef[ngram] {
				maxRef[ngram] = count
			}
		}
	}
	for ngram, count := range CountNgrams(machine) {
		clipped += min(count, maxRef[ngram])
	}
	return clipped, len(machine)
}

// ParseReferencePolicy maps a configuration value to a ReferencePolicy
func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	switch s {
	case "", "summed":
		return SummedReferences{}, nil
	case "canonical":
		return CanonicalReferences{}, nil
	}
	return nil, fmt.Errorf("unknown reference policy %q", s)
}

// Precision computes the corpus-wide clipped precision for order n.
// An empty denominator yields NaN rather than zero.
func Precision(groups []GroupedTranslation, n int, policy ReferencePolicy) float64 {
	var clipped, total int
	for _, g := range groups {
		machine := Ngrams(g.MachineTranslation, n)
		refs := make([][]string, len(g.HumanReferences))
		for i, ref := range g.HumanReferences {
			refs[i] = Ngrams(ref, n)
		}
		c, t := policy.Accumulate(machine, refs)
		clipped += c
		total += t
	}
	return float64(clipped) / float64(total)
}

// Precisions computes orders 1 through MaxOrder. With parallel set every
// order runs on its own worker.
func Precisions(groups []GroupedTranslation, policy ReferencePolicy, parallel bool) ([MaxOrder]float64, error) {
	var out [MaxOrder]float64
	if !parallel {
		for n := 1; n <= MaxOrder; n++ {
			out[n-1] = Precision(groups, n, policy)
		}
		return out, nil
	}

	pool, err := createPrecisionPool(MaxOrder)
	if err != nil {
		return out, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for n := 1; n <= MaxOrder; n++ {
		wg.Add(1)
		param := &precisionParam{
			order:  n,
			groups: groups,
			policy: policy,
			out:    &out,
			wg:     &wg,
		}
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			wg.Wait()
			return out, fmt.Errorf("submit order %d: %w", n, err)
		}
	}
	wg.Wait()
	return out, nil
}

type precisionParam struct {
	order  int
	groups []GroupedTranslation
	policy ReferencePolicy
	out    *[MaxOrder]float64
	wg     *sync.WaitGroup
}

func createPrecisionPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*precisionParam)
		if !ok {
			panic("precision pool args type error")
		}
		defer param.wg.Done()
		param.out[param.order-1] = Precision(param.groups, param.order, param.policy)
	})
	if err != nil {
		return nil, fmt.Errorf("create precision pool: %w", err)
	}
	return pool, nil
}
