// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

const (
	hash1Mul = 0xF230D3A1
	hash2Mul = 0x8084027F

	unusedKey      = int32(-0x80000000) // 0x80000000 as a signed 32-bit value
	initialSizeLog = 2
)

type cuckooEntry struct {
	key   int32
	value *refEdge
}

// offsetMap maps a uint32-ish offset key to the refEdge currently considered
// best for that offset, backed by two-way cuckoo hashing exactly as the
// original parser's by-offset tables: two candidate slots per key chosen by
// independent multiplicative hashes, with eviction chains on collision and a
// doubling rehash when a chain runs too long.
type offsetMap struct {
	data      []cuckooEntry
	size      int
	hashShift uint
}

func getArraySize(hashShift uint) int {
	return 1 << (32 - hashShift)
}

func calculateHashes(key int32, hashShift uint) (h1, h2 uint32) {
	f := uint32(key)*2 + 1
	h1 = (f * hash1Mul) >> hashShift
	h2 = (f * hash2Mul) >> hashShift
	return
}

// newOffsetMap builds a map sized for roughly capacity entries before its
// first rehash.
func newOffsetMap(capacity int) *offsetMap {
	sizeLog := initialSizeLog
	for (1 << sizeLog) < capacity*2 {
		sizeLog++
	}

	m := &offsetMap{hashShift: uint(32 - sizeLog)}
	m.initArray()
	return m
}

func (m *offsetMap) initArray() {
	size := getArraySize(m.hashShift)
	m.data = make([]cuckooEntry, size)
	for i := range m.data {
		m.data[i].key = unusedKey
	}
}

func (m *offsetMap) rehash() {
	old := m.data
	m.hashShift--
	m.size = 0
	m.initArray()

	for _, e := range old {
		if e.key != unusedKey {
			m.insert(e.key, e.value)
		}
	}
}

func (m *offsetMap) cuckooInsert(slot uint32, key int32, value *refEdge, maxKicks int) {
	for m.data[slot].key != unusedKey {
		if maxKicks--; maxKicks < 0 {
			m.rehash()
			m.insert(key, value)
			return
		}

		key, m.data[slot].key = m.data[slot].key, key
		value, m.data[slot].value = m.data[slot].value, value

		h1, h2 := calculateHashes(key, m.hashShift)
		slot ^= h1 ^ h2
	}

	m.data[slot].key = key
	m.data[slot].value = value
	m.size++
}

// insert sets the edge stored for key, replacing any previous one.
func (m *offsetMap) insert(key int32, value *refEdge) {
	h1, h2 := calculateHashes(key, m.hashShift)

	if m.data[h1].key == key {
		m.data[h1].value = value
		return
	}
	if m.data[h2].key == key {
		m.data[h2].value = value
		return
	}
	if m.data[h1].key == unusedKey {
		m.data[h1] = cuckooEntry{key, value}
		m.size++
		return
	}
	if m.data[h2].key == unusedKey {
		m.data[h2] = cuckooEntry{key, value}
		m.size++
		return
	}

	m.cuckooInsert(h1, key, value, m.size)
}

// get returns the edge stored for key, or nil if key is not present.
func (m *offsetMap) get(key int32) *refEdge {
	if m.size == 0 {
		return nil
	}

	h1, h2 := calculateHashes(key, m.hashShift)
	if m.data[h1].key == key {
		return m.data[h1].value
	}
	if m.data[h2].key == key {
		return m.data[h2].value
	}
	return nil
}

// erase removes key, if present.
func (m *offsetMap) erase(key int32) {
	h1, h2 := calculateHashes(key, m.hashShift)

	if m.data[h1].key == key {
		m.data[h1] = cuckooEntry{key: unusedKey}
		m.size--
		return
	}
	if m.data[h2].key == key {
		m.data[h2] = cuckooEntry{key: unusedKey}
		m.size--
		return
	}
}

// count reports 1 if key is present, 0 otherwise (mirrors the original API,
// which never stores more than one value per key).
func (m *offsetMap) count(key int32) int {
	if m.get(key) != nil {
		return 1
	}
	return 0
}

func (m *offsetMap) empty() bool {
	return m.size == 0
}

func (m *offsetMap) clear() {
	for i := range m.data {
		m.data[i] = cuckooEntry{key: unusedKey}
	}
	m.size = 0
}

// each calls fn for every (key, value) pair currently stored, in table order.
// fn must not mutate m.
func (m *offsetMap) each(fn func(key int32, value *refEdge)) {
	for _, e := range m.data {
		if e.key != unusedKey {
			fn(e.key, e.value)
		}
	}
}
