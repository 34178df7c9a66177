// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import "fmt"

// PackParams is the fixed parameter record consumed by Pack.
type PackParams struct {
	// ParityContext selects whether KIND/LIT contexts are split by bit 0 of the
	// output position (favors byte-aligned data) or not (favors unstructured data).
	ParityContext bool
	// Iterations is the number of parse/measure/retrain passes. Must be >= 1.
	Iterations int
	// LengthMargin: for each match the parser also tries lengths shorter by up
	// to this many bytes. Must be >= 0.
	LengthMargin int
	// SkipLength is the match length at or above which the skip heuristic triggers.
	// Must be >= 2.
	SkipLength int
	// MatchPatience bounds suffix-array cursor extension hops per side. Must be >= 0.
	MatchPatience int
	// MaxSameLength caps the per-length position heap inside the match finder.
	// Must be >= 1.
	MaxSameLength int
	// EdgeCapacity bounds the RefEdge arena; the parser evicts the worst live
	// edge once this many edges are live. Must be >= 1.
	EdgeCapacity int
	// Progress receives begin/update/end calls as the parser sweeps positions.
	// Defaults to NoProgress when nil.
	Progress Progress
}

// DefaultPackParams returns upstream Shrinkler's preset-3 defaults: the CLI's
// numeric preset digit p defaults to 3 and scales iterations/length_margin/
// same_length/effort/skip_length by p (Shrinkler.c's init_int_parameter calls
// in main2), references (EdgeCapacity here) is a fixed 100000 regardless of p,
// and parity_context defaults to true (it is !bytes.seen, and --bytes is not
// passed by default).
func DefaultPackParams() *PackParams {
	const p = 3
	return &PackParams{
		ParityContext: true,
		Iterations:    1 * p,
		LengthMargin:  1 * p,
		SkipLength:    1000 * p,
		MatchPatience: 100 * p,
		MaxSameLength: 10 * p,
		EdgeCapacity:  100000,
	}
}

// Validate checks that every field is within its documented range.
func (p *PackParams) Validate() error {
	switch {
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidParams, p.Iterations)
	case p.LengthMargin < 0:
		return fmt.Errorf("%w: length margin must be >= 0, got %d", ErrInvalidParams, p.LengthMargin)
	case p.SkipLength < 2:
		return fmt.Errorf("%w: skip length must be >= 2, got %d", ErrInvalidParams, p.SkipLength)
	case p.MatchPatience < 0:
		return fmt.Errorf("%w: match patience must be >= 0, got %d", ErrInvalidParams, p.MatchPatience)
	case p.MaxSameLength < 1:
		return fmt.Errorf("%w: max same length must be >= 1, got %d", ErrInvalidParams, p.MaxSameLength)
	case p.EdgeCapacity < 1:
		return fmt.Errorf("%w: edge capacity must be >= 1, got %d", ErrInvalidParams, p.EdgeCapacity)
	}

	return nil
}
