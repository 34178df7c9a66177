// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// refEdge is one candidate way of reaching a position in the input: a back
// reference of offset/length landing at pos+length, chained to the edge (or
// nil, for the very first synthetic edge) it extends. totalSize is the
// accumulated BitCost of the whole path through source, in BitCost units.
// heapIndex is bookkeeping for refEdgeHeap's O(log n) arbitrary removal and
// has no meaning outside that heap.
type refEdge struct {
	pos       int
	offset    uint32
	length    int
	totalSize BitCost
	refcount  int
	source    *refEdge
	heapIndex int
}

// target is the position this edge leads to.
func (e *refEdge) target() int {
	return e.pos + e.length
}

// refEdgeArena is a pool allocator for refEdge values: destroyed edges are
// linked onto a free list through their own source field (an edge is never
// both live and on the free list, so the field can be repurposed) and reused
// by the next create call, avoiding per-edge garbage during a parse sweep.
type refEdgeArena struct {
	capacity     int
	count        int
	cleanedEdges int
	freeList     *refEdge
}

// newRefEdgeArena builds an arena that evicts once capacity live edges exist.
func newRefEdgeArena(capacity int) *refEdgeArena {
	return &refEdgeArena{capacity: capacity}
}

// reset prepares the arena for a new parse. count must already be zero: every
// edge created in the previous parse must have been released.
func (a *refEdgeArena) reset() {
	invariant(a.count == 0, "refEdgeArena.reset requires every edge to have been released")
	a.cleanedEdges = 0
}

// create returns a new edge, reusing a freed one from the free list when
// available. source's refcount is bumped since the new edge holds a
// reference to it.
func (a *refEdgeArena) create(pos int, offset uint32, length int, totalSize BitCost, source *refEdge) *refEdge {
	a.count++

	var e *refEdge
	if a.freeList == nil {
		e = &refEdge{}
	} else {
		e = a.freeList
		a.freeList = e.source
	}

	e.pos = pos
	e.offset = offset
	e.length = length
	e.totalSize = totalSize
	e.source = source
	e.refcount = 1
	e.heapIndex = 0

	if source != nil {
		source.refcount++
	}

	return e
}

// destroy returns edge to the free list. clean marks the destruction as
// having happened during eviction (clean_worst_edge), distinct from normal
// end-of-parse release, purely for accounting.
func (a *refEdgeArena) destroy(edge *refEdge, clean bool) {
	if edge == nil {
		return
	}

	edge.source = a.freeList
	a.freeList = edge
	a.count--

	if clean {
		a.cleanedEdges++
	}
}

// full reports whether the arena holds capacity live edges already.
func (a *refEdgeArena) full() bool {
	return a.count >= a.capacity
}
