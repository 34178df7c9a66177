// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFinder_NonIncreasingLengthAndMinPosFloor(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcabcxyzabcabc"), 4)
	finder := NewMatchFinder(data, 1000, 10)

	for pos := 4; pos < len(data); pos++ {
		finder.Reset()
		finder.BeginMatching(pos)

		prevLength := len(data) + 1
		minPosFloor := 0
		for {
			matchPos, matchLength, ok := finder.NextMatch()
			if !ok {
				break
			}
			assert.LessOrEqual(t, matchLength, prevLength, "match lengths must be non-increasing at pos %d", pos)
			assert.Less(t, matchPos, pos)
			assert.GreaterOrEqual(t, matchPos, minPosFloor)
			prevLength = matchLength
			if matchPos > minPosFloor {
				minPosFloor = matchPos
			}
		}
	}
}

func TestMatchFinder_FindsExactRepeat(t *testing.T) {
	block := bytes.Repeat([]byte{0x11, 0x22, 0x33, 0x44}, 100)
	data := append(append([]byte{}, block...), block...)

	finder := NewMatchFinder(data, 1000, 10)
	finder.BeginMatching(len(block))

	bestLength := 0
	for {
		_, length, ok := finder.NextMatch()
		if !ok {
			break
		}
		if length > bestLength {
			bestLength = length
		}
	}

	assert.Equal(t, len(block), bestLength)
}
