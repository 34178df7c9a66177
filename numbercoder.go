// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// NumberCoder layers a length-prefixed variable-length integer code over any
// Coder. Numbers encoded this way are always >= 2; offset 0 is reserved as
// end-of-stream and is encoded as the number 2 in the OFFSET group (see
// LZEncoder.Finish), and valid back-reference lengths start at 2.
type NumberCoder struct {
	coder Coder

	hasCache             bool
	numberContextOffset  int
	nNumberContexts      int
	cache                [][]BitCost
	cacheSizes           []int
}

// NewNumberCoder binds a NumberCoder to the given Coder.
func NewNumberCoder(coder Coder) *NumberCoder {
	return &NumberCoder{coder: coder}
}

// EncodeNumber encodes number (>= 2) under the context group starting at
// baseContext and returns the BitCost spent. The code is a unary length
// prefix (one "1" per bit-width step while 4<<i <= number, under context
// base+2i+2, terminated by a "0" under the same context at the stop index)
// followed by the number's bits from that stop index down to 0, each under
// context base+2i+1.
func (n *NumberCoder) EncodeNumber(baseContext Context, number int) BitCost {
	invariant(number >= 2, "EncodeNumber requires number >= 2")

	if n.hasCache {
		contextIndex := (int(baseContext) - n.numberContextOffset) >> 8
		if contextIndex >= 0 && contextIndex < n.nNumberContexts {
			cached := n.cache[contextIndex]
			if number < n.cacheSizes[contextIndex] {
				return cached[number]
			}
		}
	}

	var size BitCost

	i := 0
	for ; (4 << uint(i)) <= number; i++ {
		size += n.coder.Code(baseContext+Context(i*2+2), 1)
	}
	size += n.coder.Code(baseContext+Context(i*2+2), 0)

	for ; i >= 0; i-- {
		bit := (number >> uint(i)) & 1
		size += n.coder.Code(baseContext+Context(i*2+1), bit)
	}

	return size
}

// SetNumberContexts precomputes, for each of nNumberContexts context groups
// starting at numberContextOffset, a table of EncodeNumber's cost for every
// number from 2 up to maxNumber (or as far as the recurrence reaches). It is
// a no-op unless the bound coder is Cacheable — only a pure cost oracle may
// have its number costs precomputed, since encoding a number through a
// side-effecting coder would otherwise be skipped.
func (n *NumberCoder) SetNumberContexts(numberContextOffset, nNumberContexts, maxNumber int) {
	if !n.coder.Cacheable() {
		return
	}

	n.numberContextOffset = numberContextOffset
	n.nNumberContexts = nNumberContexts
	n.cache = make([][]BitCost, nNumberContexts)
	n.cacheSizes = make([]int, nNumberContexts)

	for contextIndex := 0; contextIndex < nNumberContexts; contextIndex++ {
		baseContext := Context(numberContextOffset + (contextIndex << 8))

		c := make([]BitCost, 4)
		c[2] = n.coder.Code(baseContext+2, 0) + n.coder.Code(baseContext+1, 0)
		c[3] = n.coder.Code(baseContext+2, 0) + n.coder.Code(baseContext+1, 1)

		cacheSize := 4
		prevBase := 2

		for dataBits := 2; dataBits < 30; dataBits++ {
			base := cacheSize
			baseSizedif := -n.coder.Code(baseContext+Context(dataBits*2-2), 0) +
				n.coder.Code(baseContext+Context(dataBits*2-2), 1) +
				n.coder.Code(baseContext+Context(dataBits*2), 0)

			newSize := base + (1 << uint(dataBits))
			if newSize > maxNumber {
				newSize = maxNumber
			}
			if newSize <= base {
				break
			}

			grown := make([]BitCost, newSize)
			copy(grown, c)
			c = grown

			completed := true
			for msb := 0; msb <= 1 && completed; msb++ {
				sizedif := baseSizedif + n.coder.Code(baseContext+Context(dataBits*2-1), msb)
				for tail := 0; tail < (1 << uint(dataBits-1)); tail++ {
					index := base + (msb << uint(dataBits-1)) + tail
					if index >= newSize {
						completed = false
						break
					}
					c[index] = c[prevBase+tail] + sizedif
				}
			}

			if !completed {
				break
			}

			prevBase = base
			cacheSize = newSize
		}

		n.cache[contextIndex] = c
		n.cacheSizes[contextIndex] = cacheSize
	}

	n.hasCache = true
}
