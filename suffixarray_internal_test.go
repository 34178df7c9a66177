// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPadded(s string) ([]int, int) {
	padded := make([]int, len(s)+1)
	for i := 0; i < len(s); i++ {
		padded[i] = int(s[i]) + 1
	}
	return padded, 257
}

func lexLess(data []int, i, j int) bool {
	for {
		if data[i] != data[j] {
			return data[i] < data[j]
		}
		if i == len(data)-1 || j == len(data)-1 {
			return i > j
		}
		i++
		j++
	}
}

func TestComputeSuffixArray_IsSortedPermutation(t *testing.T) {
	cases := []string{
		"",
		"a",
		"banana",
		"mississippi",
		"abababababab",
		"the quick brown fox jumps over the lazy dog",
	}

	for _, s := range cases {
		padded, alphabet := buildPadded(s)
		sa := make([]int, len(padded))
		computeSuffixArray(padded, sa, alphabet)

		seen := make([]bool, len(sa))
		for _, pos := range sa {
			require.False(t, seen[pos], "suffix array must be a permutation, dup %d (%q)", pos, s)
			seen[pos] = true
		}

		for i := 0; i+1 < len(sa); i++ {
			assert.True(t, lexLess(padded, sa[i], sa[i+1]), "suffix array must be sorted (%q at %d,%d)", s, sa[i], sa[i+1])
		}
	}
}

func naiveLCP(data []int, i, j int) int {
	n := 0
	for i+n < len(data) && j+n < len(data) && data[i+n] == data[j+n] {
		n++
	}
	return n
}

func TestLcpArray_MatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	raw := make([]byte, 400)
	for i := range raw {
		raw[i] = byte('a' + rng.Intn(4))
	}

	padded := make([]int, len(raw)+1)
	for i, b := range raw {
		padded[i] = int(b) + 1
	}

	sa := make([]int, len(padded))
	computeSuffixArray(padded, sa, 257)

	isa := make([]int, len(padded))
	for i, pos := range sa {
		isa[pos] = i
	}

	h := lcpArray(raw, sa, isa)

	for i := 0; i+1 < len(sa); i++ {
		want := naiveLCP(padded, sa[i], sa[i+1])
		assert.Equal(t, want, h[i], "LCP mismatch at rank %d", i)
	}
}
