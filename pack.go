// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import "math"

// maxZeroPadding bounds the zeroPadding argument: the decompressor's in-place
// unpacking convention wants up to two trailing zero bytes decoded past the
// real end of the data. This package never unpacks in place, so it simply
// accepts the caller's explicit padding amount rather than computing one.
const maxZeroPadding = 2

// maxInputLength bounds the largest input Pack will accept: offsets are
// carried through the cuckoo hash as int32 keys, and the offset map reserves
// the negative key -0x80000000 as its unused-slot sentinel, so a position
// past math.MaxInt32 could not be addressed unambiguously.
const maxInputLength = math.MaxInt32

// Pack compresses data under params, running params.Iterations parse/train
// passes and returning the final RangeCoder bitstream alongside the best
// bit size found (for diagnostics). zeroPadding (0..2) controls the trailing
// padding symbols appended after the real content, per the decompressor's
// end-of-block convention (§6); most callers pass 0.
func Pack(data []byte, zeroPadding int, params *PackParams) (out []byte, size BitCost, err error) {
	if params == nil {
		params = DefaultPackParams()
	}
	if verr := params.Validate(); verr != nil {
		return nil, 0, verr
	}
	if len(data) == 0 {
		return nil, 0, ErrEmptyInput
	}
	if len(data) > maxInputLength {
		return nil, 0, ErrInputTooLarge
	}
	if zeroPadding < 0 || zeroPadding > maxZeroPadding {
		return nil, 0, ErrInvalidParams
	}

	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*invariantError); ok {
				out, size, err = nil, 0, ie
				return
			}
			panic(r)
		}
	}()

	progress := params.Progress
	if progress == nil {
		progress = NoProgress{}
	}

	finder := NewMatchFinder(data, params.MatchPatience, params.MaxSameLength)
	arena := newRefEdgeArena(params.EdgeCapacity)
	parser := NewLZParser(data, zeroPadding, finder, params.LengthMargin, params.SkipLength, arena)

	counts := NewCountingCoder()

	var bestResult LZParseResult
	var bestSize BitCost
	haveBest := false

	for i := 0; i < params.Iterations; i++ {
		measurer := NewSizeMeasuringCoder(counts)
		parseEncoder := NewLZEncoder(measurer, params.ParityContext)
		parseEncoder.Numbers().SetNumberContexts(numberContextOffset, numNumberContexts, len(data))

		finder.Reset()
		result := parser.Parse(parseEncoder, progress)

		measuringRange := NewRangeCoder()
		realSize := result.Encode(NewLZEncoder(measuringRange, params.ParityContext))
		measuringRange.Finish()

		if !haveBest || realSize < bestSize {
			bestResult = result
			bestSize = realSize
			haveBest = true
		}

		freshCounts := NewCountingCoder()
		result.Encode(NewLZEncoder(freshCounts, params.ParityContext))
		counts = counts.Merge(freshCounts)
	}

	final := NewRangeCoder()
	bestResult.Encode(NewLZEncoder(final, params.ParityContext))
	output := final.Finish()

	packed := make([]byte, len(output))
	copy(packed, output)

	return packed, bestSize, nil
}
