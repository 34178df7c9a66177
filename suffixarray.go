// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// uninitialized marks a not-yet-assigned suffix array slot during SA-IS
// construction; it can never collide with a real index (indices are >= 0).
const uninitialized = -1

// isLMS reports whether position i is a left-most-S-type suffix: an S-type
// suffix immediately preceded by an L-type one.
func isLMS(i int, stype []int) bool {
	return i > 0 && stype[i] == 1 && stype[i-1] == 0
}

// computeSuffixArray fills sa with the suffix array of data over an integer
// alphabet of the given size (symbols in [0, alphabetSize)). data's last
// element must be uniquely smallest (the sentinel). This is the SA-IS
// algorithm: classify suffixes as S/L type, sort LMS suffixes by induced
// sorting, recursively sort the reduced string of named LMS substrings when
// they are not already pairwise distinct, then induce the full order from
// the sorted LMS suffixes.
func computeSuffixArray(data []int, sa []int, alphabetSize int) {
	length := len(data)
	if length == 1 {
		sa[0] = 0
		return
	}

	stype := make([]int, length)
	buckets := make([]int, alphabetSize+1)

	stype[length-1] = 1
	buckets[data[length-1]] = 1
	isS := 1
	lmsCount := 0
	for i := length - 2; i >= 0; i-- {
		buckets[data[i]]++
		switch {
		case data[i] > data[i+1]:
			if isS == 1 {
				lmsCount++
			}
			isS = 0
		case data[i] < data[i+1]:
			isS = 1
		}
		stype[i] = isS
	}

	l := 0
	for b := 0; b <= alphabetSize; b++ {
		lNext := l + buckets[b]
		buckets[b] = l
		l = lNext
	}
	invariant(l == length, "suffix array bucket accumulation must cover the whole input")

	for i := 0; i < length; i++ {
		sa[i] = uninitialized
	}

	bucketIndex := make([]int, alphabetSize)
	for b := 0; b < alphabetSize; b++ {
		bucketIndex[b] = buckets[b+1]
	}
	for i := length - 1; i >= 1; i-- {
		if isLMS(i, stype) {
			bucketIndex[data[i]]--
			sa[bucketIndex[data[i]]] = i
		}
	}

	induceSort(data, sa, alphabetSize, stype, buckets, bucketIndex)

	j := 0
	for s := 0; s < length; s++ {
		index := sa[s]
		if isLMS(index, stype) {
			sa[j] = index
			j++
		}
	}
	invariant(j == lmsCount, "LMS compaction must recover exactly lmsCount suffixes")

	subData := sa[length/2:]
	subCapacity := length - length/2
	for i := 0; i < subCapacity; i++ {
		subData[i] = uninitialized
	}

	name := 0
	prevIndex := uninitialized
	for s := 0; s < lmsCount; s++ {
		index := sa[s]
		if prevIndex != uninitialized && !substringsEqual(data, prevIndex, index, stype) {
			name++
		}
		subData[index/2] = name
		prevIndex = index
	}
	newAlphabetSize := name + 1

	if newAlphabetSize != lmsCount {
		j = 0
		for i := 0; i < subCapacity; i++ {
			if subData[i] != uninitialized {
				subData[j] = subData[i]
				j++
			}
		}

		computeSuffixArray(subData[:lmsCount], sa[:lmsCount], newAlphabetSize)

		j = 0
		for i := 1; i < length; i++ {
			if isLMS(i, stype) {
				subData[j] = i
				j++
			}
		}
		for s := 0; s < lmsCount; s++ {
			sa[s] = subData[sa[s]]
		}
	}

	j = length
	s := lmsCount - 1
	for b := alphabetSize - 1; b >= 0; b-- {
		for s >= 0 && data[sa[s]] == b {
			j--
			sa[j] = sa[s]
			s--
		}
		for j > buckets[b] {
			j--
			sa[j] = uninitialized
		}
	}

	induceSort(data, sa, alphabetSize, stype, buckets, bucketIndex)
}

// induceSort fills in L-type suffixes left to right, then S-type suffixes
// right to left, from the already-placed LMS suffixes.
func induceSort(data, sa []int, alphabetSize int, stype, buckets, bucketIndex []int) {
	length := len(sa)

	for b := 0; b < alphabetSize; b++ {
		bucketIndex[b] = buckets[b]
	}
	for s := 0; s < length; s++ {
		index := sa[s]
		if index > 0 && stype[index-1] == 0 {
			sa[bucketIndex[data[index-1]]] = index - 1
			bucketIndex[data[index-1]]++
		}
	}

	for b := 0; b < alphabetSize; b++ {
		bucketIndex[b] = buckets[b+1]
	}
	for s := length - 1; s >= 0; s-- {
		index := sa[s]
		invariant(index != uninitialized, "induce sort must not encounter an unplaced suffix")
		if index > 0 && stype[index-1] == 1 {
			bucketIndex[data[index-1]]--
			sa[bucketIndex[data[index-1]]] = index - 1
		}
	}
}

// substringsEqual reports whether the LMS substrings starting at i1 and i2
// are identical, up to and including their terminating LMS position.
func substringsEqual(data []int, i1, i2 int, stype []int) bool {
	for {
		if data[i1] != data[i2] {
			return false
		}
		i1++
		i2++
		if isLMS(i1, stype) && isLMS(i2, stype) {
			return true
		}
	}
}

// lcpArray computes the Kasai LCP array H for data given its suffix array sa
// and inverse array isa: H[isa[i]] is the longest common prefix of
// data[sa[isa[i]]:] and data[sa[isa[i]+1]:]. H[0] and H[len(data)] are 0 by
// convention (there is no predecessor/successor suffix to compare against).
func lcpArray(data []byte, sa, isa []int) []int {
	length := len(data)
	h := make([]int, length+1)

	hLen := 0
	for i := 0; i < length; i++ {
		r := isa[i]
		if r < length {
			j := sa[r+1]
			m := length - max(i, j)
			for hLen < m && data[i+hLen] == data[j+hLen] {
				hLen++
			}
			h[r] = hLen
			if hLen > 0 {
				hLen--
			}
		}
	}

	return h
}
