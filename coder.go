// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// Coder is the shared abstraction behind the three binary coder flavors used
// in this package: RangeCoder (the real, side-effecting arithmetic coder),
// CountingCoder (a frequency tally used for training) and SizeMeasuringCoder
// (a side-effect-free cost oracle built from trained counts). LZEncoder and
// NumberCoder are written once against this interface and specialize purely
// by which Coder they are bound to.
type Coder interface {
	// Code codes one bit under context and returns the BitCost spent doing so.
	// A negative context is always a no-op returning zero cost.
	Code(context Context, bit int) BitCost

	// Cacheable reports whether this coder is a pure, side-effect-free cost
	// oracle. Only such coders may back a NumberCoder's precomputed size
	// cache (see NumberCoder.SetNumberContexts); gating on this capability
	// flag rather than a type switch keeps the cache concern out of the
	// interface's callers.
	Cacheable() bool
}
