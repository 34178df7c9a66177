// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import "container/heap"

// minMatchLength is the shortest back-reference length the parser considers.
const minMatchLength = 2

// intMinHeap is a plain min-heap of candidate positions, capped by the match
// finder at MaxSameLength entries per match length.
type intMinHeap []int

func (h intMinHeap) Len() int            { return len(h) }
func (h intMinHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// MatchFinder enumerates back-reference candidates for a query position,
// backed by a suffix array and LCP array over the input. Matches are
// returned in non-increasing length order; within a length, the cap in
// MaxSameLength is enforced by evicting the closest-to-start (smallest
// position) candidate first, so the survivors skew toward more recent
// occurrences once the per-length bucket overflows.
type MatchFinder struct {
	data          []byte
	length        int
	minLength     int
	matchPatience int
	maxSameLength int

	suffixArray []int
	inverseSA   []int
	lcp         []int

	currentPos    int
	minPos        int
	leftIndex     int
	leftLength    int
	rightIndex    int
	rightLength   int
	currentLength int

	buffer intMinHeap
}

// NewMatchFinder builds the suffix array, inverse array and LCP array for
// data once; this work is shared across every BeginMatching call.
func NewMatchFinder(data []byte, matchPatience, maxSameLength int) *MatchFinder {
	length := len(data)

	padded := make([]int, length+1)
	for i, b := range data {
		padded[i] = int(b) + 1
	}
	padded[length] = 0

	sa := make([]int, length+1)
	computeSuffixArray(padded, sa, 257)

	isa := make([]int, length+1)
	for i, pos := range sa {
		isa[pos] = i
	}

	h := lcpArray(data, sa, isa)

	return &MatchFinder{
		data:          data,
		length:        length,
		minLength:     minMatchLength,
		matchPatience: matchPatience,
		maxSameLength: maxSameLength,
		suffixArray:   sa,
		inverseSA:     isa,
		lcp:           h,
	}
}

// Reset clears the internal candidate heap. The suffix array and LCP array
// are immutable after construction and are never rebuilt.
func (m *MatchFinder) Reset() {
	m.buffer = m.buffer[:0]
}

// BeginMatching positions the match finder's cursors at pos, ready for
// repeated NextMatch calls.
func (m *MatchFinder) BeginMatching(pos int) {
	m.currentPos = pos
	m.minPos = 0

	m.leftIndex = m.inverseSA[pos]
	m.leftLength = m.length - pos
	m.extendLeft()

	m.rightIndex = m.inverseSA[pos]
	m.rightLength = m.length - pos
	m.extendRight()
}

func (m *MatchFinder) extendLeft() {
	iter := 0
	for m.leftLength >= m.minLength {
		m.leftIndex--
		if m.lcp[m.leftIndex] < m.leftLength {
			m.leftLength = m.lcp[m.leftIndex]
		}
		pos := m.suffixArray[m.leftIndex]
		if pos < m.currentPos && pos >= m.minPos {
			break
		}
		iter++
		if iter > m.matchPatience {
			m.leftLength = 0
			break
		}
	}
}

func (m *MatchFinder) extendRight() {
	iter := 0
	for {
		if m.lcp[m.rightIndex] < m.rightLength {
			m.rightLength = m.lcp[m.rightIndex]
		}
		if m.rightLength < m.minLength {
			break
		}
		m.rightIndex++
		pos := m.suffixArray[m.rightIndex]
		if pos < m.currentPos && pos >= m.minPos {
			break
		}
		iter++
		if iter > m.matchPatience {
			m.rightLength = 0
			break
		}
	}
}

func (m *MatchFinder) nextLength() int {
	if m.leftLength > m.rightLength {
		return m.leftLength
	}
	return m.rightLength
}

// NextMatch returns the next back-reference candidate at the position given
// to BeginMatching, in non-increasing match length order, or ok == false
// once no more candidates above minMatchLength remain.
func (m *MatchFinder) NextMatch() (matchPos, matchLength int, ok bool) {
	for len(m.buffer) == 0 {
		m.currentLength = m.nextLength()
		if m.currentLength < m.minLength {
			return 0, 0, false
		}

		newMinPos := m.minPos
		for {
			var pos int
			if m.leftLength > m.rightLength {
				pos = m.suffixArray[m.leftIndex]
				m.extendLeft()
			} else {
				pos = m.suffixArray[m.rightIndex]
				m.extendRight()
			}

			if pos > newMinPos {
				newMinPos = pos
			}

			if pos < m.minPos {
				// A cursor can come to rest on a candidate before minPos is
				// raised past it; such a candidate is not queued.
			} else if len(m.buffer) < m.maxSameLength {
				heap.Push(&m.buffer, pos)
			} else if pos > m.buffer[0] {
				heap.Pop(&m.buffer)
				heap.Push(&m.buffer, pos)
				m.minPos = m.buffer[0]
			}

			if m.nextLength() != m.currentLength {
				break
			}
		}

		m.minPos = newMinPos
	}
	invariant(len(m.buffer) > 0, "match finder must have queued at least one candidate")

	matchLength = m.currentLength
	matchPos = heap.Pop(&m.buffer).(int)
	invariant(matchPos < m.currentPos, "match finder candidates must precede the query position")

	return matchPos, matchLength, true
}
