// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import "math"

// minSizeCost and maxSizeCost bound a single coded bit's cost: never free
// (a bit always costs something) and never absurdly expensive (a context
// that has only ever seen one outcome still needs a finite estimate so the
// parser can compare paths through it).
const (
	minSizeCost = BitCost(2)
	maxSizeCost = BitCost(12 * 64)
)

// SizeMeasuringCoder turns a CountingCoder snapshot into a fixed per-context,
// per-bit cost table. It never mutates state and never touches an output
// buffer, which makes it the only Coder flavor eligible to back a
// NumberCoder's precomputed size cache (see NumberCoder.SetNumberContexts).
type SizeMeasuringCoder struct {
	costs [numContexts][2]BitCost
}

// NewSizeMeasuringCoder builds a cost table from a trained CountingCoder.
func NewSizeMeasuringCoder(counts *CountingCoder) *SizeMeasuringCoder {
	s := &SizeMeasuringCoder{}
	for ctx := 0; ctx < numContexts; ctx++ {
		c0 := counts.counts[ctx][0]
		c1 := counts.counts[ctx][1]
		total := float64(c0) + float64(c1) + 2

		s.costs[ctx][0] = sizeForCount(c0, total)
		s.costs[ctx][1] = sizeForCount(c1, total)
	}

	return s
}

// sizeForCount computes round(log2(total/(count+1))*64), clamped to
// [minSizeCost, maxSizeCost]. The +1 Laplace-smooths contexts that have
// never observed this bit so the estimate stays finite.
func sizeForCount(count uint32, total float64) BitCost {
	bits := math.Log2(total/(float64(count)+1)) * float64(oneBit)
	cost := BitCost(math.Round(bits))

	switch {
	case cost < minSizeCost:
		return minSizeCost
	case cost > maxSizeCost:
		return maxSizeCost
	default:
		return cost
	}
}

// Cacheable reports true: SizeMeasuringCoder is a pure, side-effect-free
// cost oracle, which is exactly the capability NumberCoder's size cache
// requires.
func (s *SizeMeasuringCoder) Cacheable() bool { return true }

// Code returns the precomputed cost for (context, bit) without side effects.
// A negative context is a no-op, as with every other Coder implementation.
func (s *SizeMeasuringCoder) Code(context Context, bit int) BitCost {
	if context < 0 {
		return 0
	}

	return s.costs[context][bit]
}
