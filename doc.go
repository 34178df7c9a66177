// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

/*
Package shrinkler implements an offline, optimization-heavy LZ compressor in the
Shrinkler family: a binary range coder with adaptive per-context probabilities,
a suffix-array-backed match finder, and a shortest-path LZ parser that searches
for the globally cheapest literal/reference split rather than a greedy one.

The compressor trades CPU for ratio. It is meant for small payloads — demoscene
executables, embedded firmware — where spending seconds of CPU to save a handful
of bytes is worthwhile.

# Compress

	output, bitSize, err := shrinkler.Pack(data, 0, shrinkler.DefaultPackParams())

Pack runs several parse/measure/retrain passes (see PackParams.Iterations) and
returns the smallest bitstream found, already finished and ready to write out.
The zeroPadding argument (0, 1 or 2) controls trailing padding symbols per the
decompressor's end-of-block convention; most callers pass 0.

# Parameters

PackParams controls the parity-context split, the number of training
iterations, and the match finder's search bounds:

	params := shrinkler.DefaultPackParams()
	params.Iterations = 8
	params.ParityContext = true
	output, _, err := shrinkler.Pack(data, 0, params)

# Bitstream

Package shrinkler only produces the bitstream described by its design notes; it
does not parse command-line arguments, read or write files, or merge Amiga
hunks. Those concerns live in cmd/shrinkler. Decoding the bitstream back into
bytes is implemented, minimally, in the sibling package shrinklerdec — it
exists to verify round-trips in tests, not as a production decompressor.
*/
package shrinkler
