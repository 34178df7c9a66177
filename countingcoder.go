// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// CountingCoder tallies per-context {0,1} frequencies during a parse. It
// never touches an output buffer and always returns zero cost; its only
// purpose is to drive the next iteration's SizeMeasuringCoder.
type CountingCoder struct {
	counts [numContexts][2]uint32
}

// NewCountingCoder returns a CountingCoder with all counts at zero.
func NewCountingCoder() *CountingCoder {
	return &CountingCoder{}
}

// Cacheable reports false: a CountingCoder's "cost" is always zero and
// carries no information a number-code size cache could use.
func (c *CountingCoder) Cacheable() bool { return false }

// Code increments counts[context][bit] and returns zero cost. A negative
// context is a no-op, consistent with every other Coder implementation.
func (c *CountingCoder) Code(context Context, bit int) BitCost {
	if context < 0 {
		return 0
	}

	c.counts[context][bit]++
	return 0
}

// Merge returns a fresh CountingCoder whose every entry is an
// exponentially-weighted average of this coder's counts (history, weight
// 3/4) and other's counts (new observation, weight 1/4).
func (c *CountingCoder) Merge(other *CountingCoder) *CountingCoder {
	merged := &CountingCoder{}
	for ctx := 0; ctx < numContexts; ctx++ {
		for bit := 0; bit < 2; bit++ {
			merged.counts[ctx][bit] = (3*c.counts[ctx][bit] + other.counts[ctx][bit]) / 4
		}
	}

	return merged
}
