// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// refEdgeHeap is a max-heap of live refEdges ordered by totalSize: the edge
// at the top is always the most expensive path currently under
// consideration, the one the parser evicts first when the arena is full.
// Each edge tracks its own index into data, so an edge can be removed from
// an arbitrary position (not just the top) in O(log n), which the parser
// needs when an edge is superseded by a cheaper one for the same offset.
type refEdgeHeap struct {
	data []*refEdge
}

func newRefEdgeHeap() *refEdgeHeap {
	return &refEdgeHeap{}
}

func (h *refEdgeHeap) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
	h.data[i].heapIndex = i
	h.data[j].heapIndex = j
}

// less reports whether the edge at i should sit above the edge at j in this
// max-heap, i.e. whether i's totalSize is the larger of the two.
func (h *refEdgeHeap) less(i, j int) bool {
	return h.data[i].totalSize > h.data[j].totalSize
}

func (h *refEdgeHeap) siftUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if h.less(parent, index) {
			break
		}
		h.swap(index, parent)
		index = parent
	}
}

func (h *refEdgeHeap) siftDown(index int) {
	for {
		left := 2*index + 1
		right := 2*index + 2
		largest := index

		if left < len(h.data) && h.less(left, largest) {
			largest = left
		}
		if right < len(h.data) && h.less(right, largest) {
			largest = right
		}
		if largest == index {
			break
		}
		h.swap(index, largest)
		index = largest
	}
}

// insert adds edge to the heap.
func (h *refEdgeHeap) insert(edge *refEdge) {
	edge.heapIndex = len(h.data)
	h.data = append(h.data, edge)
	h.siftUp(len(h.data) - 1)
}

// removeLargest removes and returns the most expensive live edge, or nil if
// the heap is empty.
func (h *refEdgeHeap) removeLargest() *refEdge {
	if len(h.data) == 0 {
		return nil
	}
	return h.remove(h.data[0])
}

// remove removes edge from the heap, wherever it currently sits.
func (h *refEdgeHeap) remove(edge *refEdge) *refEdge {
	if len(h.data) == 0 {
		return nil
	}

	index := edge.heapIndex
	if index >= len(h.data) || h.data[index] != edge {
		return nil
	}

	removed := h.data[index]
	last := len(h.data) - 1
	h.data[index] = h.data[last]
	h.data[index].heapIndex = index
	h.data = h.data[:last]

	if index < last {
		h.siftDown(index)
		h.siftUp(index)
	}

	removed.heapIndex = -1
	return removed
}

// contains reports whether edge is currently a member of this heap.
func (h *refEdgeHeap) contains(edge *refEdge) bool {
	if edge.heapIndex < 0 || edge.heapIndex >= len(h.data) {
		return false
	}
	return h.data[edge.heapIndex] == edge
}

func (h *refEdgeHeap) empty() bool {
	return len(h.data) == 0
}

func (h *refEdgeHeap) clear() {
	h.data = h.data[:0]
}
