// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// LZResultEdge is one chosen back-reference (or, implicitly, the literal
// bytes between consecutive edges and before the first one) in a completed
// parse.
type LZResultEdge struct {
	Pos    int
	Offset uint32
	Length int
}

// LZParseResult is a completed shortest-path parse of a data block: the
// chosen reference edges, in position order, with literals implied in the
// gaps.
type LZParseResult struct {
	Data        []byte
	ZeroPadding int
	Edges       []LZResultEdge
}

// LZParser searches for the cheapest way to express a data block as a
// sequence of literals and back references, under a given LZEncoder's cost
// model, using a dynamic-programming sweep over positions: at each position
// it assimilates edges that land there, tracks the best (cheapest) path seen
// so far for each distinct offset, and extends every offset's best path with
// every match the MatchFinder reports at that position. Candidate edges are
// kept alive in a bounded arena; once the arena is full the most expensive
// live edge is evicted to make room.
type LZParser struct {
	data         []byte
	zeroPadding  int
	finder       *MatchFinder
	lengthMargin int
	skipLength   int
	edges        *refEdgeArena

	encoder     *LZEncoder
	literalSize []BitCost

	edgesToPos    []*offsetMap
	best          *refEdge
	bestForOffset *offsetMap
	rootEdges     *refEdgeHeap
}

// NewLZParser builds a parser over data. zeroPadding (0, 1 or 2) controls
// trailing padding bytes appended after the parsed content, per the
// decompressor's end-of-block convention.
func NewLZParser(data []byte, zeroPadding int, finder *MatchFinder, lengthMargin, skipLength int, edges *refEdgeArena) *LZParser {
	n := len(data)

	edgesToPos := make([]*offsetMap, n+1)
	for i := range edgesToPos {
		edgesToPos[i] = newOffsetMap(1000)
	}

	return &LZParser{
		data:          data,
		zeroPadding:   zeroPadding,
		finder:        finder,
		lengthMargin:  lengthMargin,
		skipLength:    skipLength,
		edges:         edges,
		literalSize:   make([]BitCost, n+1),
		edgesToPos:    edgesToPos,
		bestForOffset: newOffsetMap(50000),
		rootEdges:     newRefEdgeHeap(),
	}
}

func (p *LZParser) isRoot(edge *refEdge) bool {
	return p.rootEdges.contains(edge)
}

func (p *LZParser) removeRoot(edge *refEdge) {
	p.rootEdges.remove(edge)
}

// releaseEdge drops one reference to edge, and cascades up its source chain
// destroying every edge whose refcount reaches zero along the way.
func (p *LZParser) releaseEdge(edge *refEdge, clean bool) {
	for edge != nil {
		source := edge.source
		edge.refcount--
		if edge.refcount != 0 {
			return
		}
		invariant(!p.isRoot(edge), "an edge with no remaining references cannot still be a root")
		p.edges.destroy(edge, clean)
		edge = source
	}
}

// cleanWorstEdge evicts the most expensive root edge to free arena capacity,
// unless it is the current best path or the edge being protected while a new
// one is under construction. Returns false once there is nothing left to
// evict.
func (p *LZParser) cleanWorstEdge(pos int, exclude *refEdge) bool {
	if p.rootEdges.empty() {
		return false
	}

	worst := p.rootEdges.removeLargest()
	if worst == p.best || worst == exclude {
		return true
	}

	var container *offsetMap
	if worst.target() > pos {
		container = p.edgesToPos[worst.target()]
	} else {
		container = p.bestForOffset
	}

	if container.count(int32(worst.offset)) > 0 {
		container.erase(int32(worst.offset))
		p.releaseEdge(worst, true)
	}

	return true
}

// putByOffset registers edge as the candidate for its offset in byOffset,
// keeping only the cheapest edge per offset and discarding the rest.
func (p *LZParser) putByOffset(byOffset *offsetMap, edge *refEdge) {
	invariant(!p.isRoot(edge), "a newly offered edge must not already be a root")

	key := int32(edge.offset)
	switch existing := byOffset.get(key); {
	case existing == nil:
		byOffset.insert(key, edge)
		p.rootEdges.insert(edge)
	case edge.totalSize < existing.totalSize:
		p.removeRoot(existing)
		p.releaseEdge(existing, false)
		byOffset.insert(key, edge)
		p.rootEdges.insert(edge)
	default:
		p.releaseEdge(edge, false)
	}
}

// newEdge evaluates extending source (or the empty path, if source is nil)
// with a reference of offset/length landing at pos, and registers it as a
// candidate for its target position.
func (p *LZParser) newEdge(source *refEdge, pos int, offset uint32, length int) {
	if source != nil && offset == source.offset && pos == source.target() {
		return
	}

	prevTarget := 0
	var sourceOffset uint32
	if source != nil {
		prevTarget = source.target()
		sourceOffset = source.offset
	}
	newTarget := pos + length

	stateBefore := ConstructState(pos, pos == prevTarget, sourceOffset)

	n := len(p.data)
	var sizeBefore BitCost
	if source != nil {
		sizeBefore = source.totalSize - (p.literalSize[n] - p.literalSize[pos])
	} else {
		sizeBefore = p.literalSize[pos]
	}

	edgeSize, _ := p.encoder.EncodeReference(offset, length, stateBefore)
	sizeAfter := p.literalSize[n] - p.literalSize[newTarget]

	for p.edges.full() {
		if !p.cleanWorstEdge(pos, source) {
			break
		}
	}

	edge := p.edges.create(pos, offset, length, sizeBefore+edgeSize+sizeAfter, source)
	p.putByOffset(p.edgesToPos[newTarget], edge)
}

// Parse runs the dynamic-programming sweep and returns the cheapest path
// found, reporting progress through prog (which may be nil).
func (p *LZParser) Parse(encoder *LZEncoder, prog Progress) LZParseResult {
	if prog == nil {
		prog = NoProgress{}
	}

	n := len(p.data)
	prog.Begin(n)

	p.encoder = encoder
	p.bestForOffset.clear()
	p.rootEdges.clear()
	p.edges.reset()

	var size BitCost
	state := InitialState()
	for i := 0; i < n; i++ {
		p.literalSize[i] = size
		var cost BitCost
		cost, state = encoder.EncodeLiteral(p.data[i], state)
		size += cost
	}
	p.literalSize[n] = size

	initialBest := p.edges.create(0, 0, 0, p.literalSize[n], nil)
	p.best = initialBest

	for pos := 1; pos <= n; pos++ {
		edgesHere := p.edgesToPos[pos]
		edgesHere.each(func(_ int32, edge *refEdge) {
			if edge.totalSize < p.best.totalSize ||
				(edge.totalSize == p.best.totalSize && edge.offset < p.best.offset) {
				p.best = edge
			}
			p.removeRoot(edge)
			p.putByOffset(p.bestForOffset, edge)
		})
		edgesHere.clear()

		p.finder.BeginMatching(pos)
		maxMatchLength := 0

		for {
			matchPos, matchLength, ok := p.finder.NextMatch()
			if !ok {
				break
			}

			offset := uint32(pos - matchPos)
			if matchLength > n-pos {
				matchLength = n - pos
			}

			minLength := matchLength - p.lengthMargin
			if minLength < minMatchLength {
				minLength = minMatchLength
			}

			for length := minLength; length <= matchLength; length++ {
				p.newEdge(p.best, pos, offset, length)
				if p.best.offset != offset && p.bestForOffset.count(int32(offset)) > 0 {
					p.newEdge(p.bestForOffset.get(int32(offset)), pos, offset, length)
				}
			}

			if matchLength > maxMatchLength {
				maxMatchLength = matchLength
			}
		}

		if maxMatchLength >= p.skipLength && !p.edgesToPos[pos+maxMatchLength].empty() {
			p.rootEdges.clear()

			p.bestForOffset.each(func(_ int32, edge *refEdge) {
				p.releaseEdge(edge, false)
			})
			p.bestForOffset.clear()

			target := pos + maxMatchLength
			for pos < target-1 {
				pos++
				edges := p.edgesToPos[pos]
				edges.each(func(_ int32, edge *refEdge) {
					p.releaseEdge(edge, false)
				})
				edges.clear()
			}
			p.best = initialBest
		}

		prog.Update(pos)
	}

	p.rootEdges.clear()
	p.bestForOffset.each(func(_ int32, edge *refEdge) {
		if edge != p.best {
			p.releaseEdge(edge, false)
		}
	})

	result := LZParseResult{Data: p.data, ZeroPadding: p.zeroPadding}

	edge := p.best
	for edge.length > 0 {
		result.Edges = append(result.Edges, LZResultEdge{Pos: edge.pos, Offset: edge.offset, Length: edge.length})
		edge = edge.source
	}

	p.releaseEdge(edge, false)
	p.releaseEdge(p.best, false)

	prog.End()

	return result
}

// Encode replays result through encoder (in forward position order, since
// result.Edges was built by walking the chosen path backwards) and returns
// the total BitCost spent, including the trailing zero padding and the
// end-of-stream marker.
func (result LZParseResult) Encode(encoder *LZEncoder) BitCost {
	var size BitCost
	pos := 0
	state := InitialState()

	for i := len(result.Edges) - 1; i >= 0; i-- {
		edge := result.Edges[i]
		for pos < edge.Pos {
			var cost BitCost
			cost, state = encoder.EncodeLiteral(result.Data[pos], state)
			size += cost
			pos++
		}

		var cost BitCost
		cost, state = encoder.EncodeReference(edge.Offset, edge.Length, state)
		size += cost
		pos += edge.Length
	}

	for pos < len(result.Data) {
		var cost BitCost
		cost, state = encoder.EncodeLiteral(result.Data[pos], state)
		size += cost
		pos++
	}

	if result.ZeroPadding > 0 {
		var cost BitCost
		cost, state = encoder.EncodeLiteral(0, state)
		size += cost

		switch {
		case result.ZeroPadding == 2:
			cost, state = encoder.EncodeLiteral(0, state)
			size += cost
		case result.ZeroPadding > 1:
			cost, state = encoder.EncodeReference(1, result.ZeroPadding-1, state)
			size += cost
		}
	}

	size += encoder.Finish(state)

	return size
}
