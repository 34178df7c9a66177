// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZParser_ArenaDisciplineAndEdgeTargets(t *testing.T) {
	data := bytes.Repeat([]byte("mississippi river runs through mississippi"), 20)

	finder := NewMatchFinder(data, 1000, 10)
	arena := newRefEdgeArena(0x1000)
	parser := NewLZParser(data, 0, finder, 2, 2048, arena)

	counts := NewCountingCoder()
	measurer := NewSizeMeasuringCoder(counts)
	encoder := NewLZEncoder(measurer, false)
	encoder.Numbers().SetNumberContexts(numberContextOffset, numNumberContexts, len(data))

	result := parser.Parse(encoder, nil)

	assert.Equal(t, 0, arena.count, "every edge allocated during a parse must be released by the time Parse returns")

	// Reconstruct the data from the edges to sanity-check the parse found a
	// valid (if not necessarily optimal, under an untrained cost model) path.
	pos := 0
	var rebuilt []byte
	for i := len(result.Edges) - 1; i >= 0; i-- {
		edge := result.Edges[i]
		for pos < edge.Pos {
			rebuilt = append(rebuilt, data[pos])
			pos++
		}
		require.LessOrEqual(t, int(edge.Offset), len(rebuilt))
		start := len(rebuilt) - int(edge.Offset)
		for k := 0; k < edge.Length; k++ {
			rebuilt = append(rebuilt, rebuilt[start+k])
		}
		pos += edge.Length
	}
	for pos < len(data) {
		rebuilt = append(rebuilt, data[pos])
		pos++
	}

	assert.True(t, bytes.Equal(rebuilt, data))
}

func TestLZParser_EdgesToPosTargetConsistency(t *testing.T) {
	data := []byte("abcabcabcabcabcabcabc")

	finder := NewMatchFinder(data, 1000, 10)
	arena := newRefEdgeArena(0x1000)
	parser := NewLZParser(data, 0, finder, 2, 2048, arena)

	counts := NewCountingCoder()
	measurer := NewSizeMeasuringCoder(counts)
	encoder := NewLZEncoder(measurer, false)

	// edgesToPos is rebuilt and drained position by position during Parse, so
	// by construction every edge ever placed in edgesToPos[t] satisfies
	// target(e) == t at the moment it is placed (putByOffset is only ever
	// called with p.edgesToPos[newTarget] as the container in newEdge). This
	// test exercises that invariant indirectly by checking the parse
	// completes and yields a consistent result on a pathological
	// highly-repetitive input.
	result := parser.Parse(encoder, nil)
	for _, e := range result.Edges {
		assert.GreaterOrEqual(t, e.Pos, 0)
		assert.LessOrEqual(t, e.Pos+e.Length, len(data))
	}
}
