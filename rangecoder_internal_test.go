// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mirrorDecoder is a tiny hand-rolled inverse of RangeCoder.Code, local to
// this test file, used to verify the unit round-trip property in isolation
// from the shrinklerdec package (which mirrors the higher-level bitstream,
// not the bit-level coder alone).
type mirrorDecoder struct {
	contexts  [numContexts]uint16
	value     uint32
	rangeSize uint32
	bitPos    int
	data      []byte
}

func newMirrorDecoder(data []byte) *mirrorDecoder {
	d := &mirrorDecoder{data: data, rangeSize: 0x8000}
	for i := range d.contexts {
		d.contexts[i] = 0x8000
	}
	for i := 0; i < 15; i++ {
		d.value = (d.value << 1) | uint32(d.nextBit())
	}
	return d
}

func (d *mirrorDecoder) nextBit() int {
	byteIdx := d.bitPos / 8
	if byteIdx >= len(d.data) {
		d.bitPos++
		return 0
	}
	shift := uint(7 - d.bitPos%8)
	bit := int((d.data[byteIdx] >> shift) & 1)
	d.bitPos++
	return bit
}

func (d *mirrorDecoder) decode(context Context) int {
	prob := d.contexts[context]
	threshold := (d.rangeSize * uint32(prob)) >> 16

	var bit int
	if d.value < threshold {
		bit = 1
		d.rangeSize = threshold
		prob += (0xffff - prob) >> adjustShift
	} else {
		bit = 0
		d.value -= threshold
		d.rangeSize -= threshold
		prob -= prob >> adjustShift
	}
	d.contexts[context] = prob

	for d.rangeSize < 0x8000 {
		d.rangeSize <<= 1
		d.value = ((d.value << 1) | uint32(d.nextBit())) & 0xffff
	}

	return bit
}

func TestRangeCoder_UnitRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	const n = 2000
	contexts := make([]Context, n)
	bits := make([]int, n)
	for i := 0; i < n; i++ {
		contexts[i] = Context(rng.Intn(numContexts))
		bits[i] = rng.Intn(2)
	}

	rc := NewRangeCoder()
	for i := 0; i < n; i++ {
		rc.Code(contexts[i], bits[i])
	}
	out := rc.Finish()

	require.LessOrEqual(t, len(out), (rc.destBit-1)>>3+1)

	dec := newMirrorDecoder(out)
	for i := 0; i < n; i++ {
		got := dec.decode(contexts[i])
		assert.Equal(t, bits[i], got, "bit %d under context %d", i, contexts[i])
	}
}

func TestNumberCoder_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	numbers := make([]int, 0, 200)
	for i := 2; i < 40; i++ {
		numbers = append(numbers, i)
	}
	for i := 0; i < 100; i++ {
		numbers = append(numbers, 2+rng.Intn(1<<20))
	}

	const base = Context(1)

	rc := NewRangeCoder()
	nc := NewNumberCoder(rc)
	for _, n := range numbers {
		nc.EncodeNumber(base, n)
	}
	out := rc.Finish()

	dec := newMirrorDecoder(out)
	for _, want := range numbers {
		i := 0
		for dec.decode(base+Context(i*2+2)) == 1 {
			i++
		}
		got := 1
		for j := i; j >= 0; j-- {
			got = (got << 1) | dec.decode(base+Context(j*2+1))
		}
		assert.Equal(t, want, got)
	}
}

func TestSizeMeasuringCoder_TracksCountingCoder(t *testing.T) {
	counts := NewCountingCoder()
	for i := 0; i < 10; i++ {
		counts.Code(5, 0)
	}
	for i := 0; i < 90; i++ {
		counts.Code(5, 1)
	}

	sizes := NewSizeMeasuringCoder(counts)
	// The much more frequent outcome (bit 1, 90%) must cost strictly less
	// than the rare one (bit 0, 10%).
	assert.Less(t, sizes.Code(5, 1), sizes.Code(5, 0))
}

func TestCountingCoder_Merge(t *testing.T) {
	a := NewCountingCoder()
	a.Code(3, 1)
	a.Code(3, 1)
	a.Code(3, 1)
	a.Code(3, 1)

	b := NewCountingCoder()
	b.Code(3, 1)

	merged := a.Merge(b)
	assert.Equal(t, uint32(3), merged.counts[3][1])
}
