// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

// LZEncoder encodes literal/reference/finish symbols through a bound Coder,
// threading LZState from call to call. ParityMask selects whether KIND/LIT
// contexts are split by bit 0 of the output position.
type LZEncoder struct {
	coder      Coder
	parityMask int
	numbers    *NumberCoder
}

// NewLZEncoder binds an LZEncoder to coder. parityContext enables the
// byte-parity context split described in PackParams.ParityContext. The
// OFFSET and LENGTH number groups share one NumberCoder (and therefore one
// size cache), matching the underlying Coder owning a single cache table
// addressed by (base_context-offset)>>8 regardless of which group is in use.
func NewLZEncoder(coder Coder, parityContext bool) *LZEncoder {
	return &LZEncoder{coder: coder, parityMask: parityMask(parityContext), numbers: NewNumberCoder(coder)}
}

// Numbers exposes the encoder's shared NumberCoder so the Pack driver can
// install a precomputed size cache on it once per iteration (see
// NumberCoder.SetNumberContexts) when the bound Coder is Cacheable.
func (e *LZEncoder) Numbers() *NumberCoder {
	return e.numbers
}

// InitialState is the LZState before any symbol has been encoded.
func InitialState() LZState {
	return LZState{}
}

// ConstructState rebuilds the LZState that would hold immediately before
// position pos, given whether the preceding symbol was a reference and what
// its offset was. Used by the parser to evaluate a candidate edge's cost
// without replaying every symbol before it.
func ConstructState(pos int, prevWasRef bool, lastOffset uint32) LZState {
	return LZState{
		AfterFirst: pos > 0,
		PrevWasRef: prevWasRef,
		Parity:     uint32(pos),
		LastOffset: lastOffset,
	}
}

// EncodeLiteral encodes value as a literal byte and returns the cost and the
// resulting state.
func (e *LZEncoder) EncodeLiteral(value byte, before LZState) (BitCost, LZState) {
	parityOffset := before.parityOffset(e.parityMask)

	var size BitCost
	if before.AfterFirst {
		size += e.coder.Code(1+contextKind+parityOffset, kindLit)
	}

	context := 1
	for i := 7; i >= 0; i-- {
		bit := int((value >> uint(i)) & 1)
		actualContext := 1 + (parityOffset | Context(context))
		size += e.coder.Code(actualContext, bit)
		context = (context << 1) | bit
	}

	after := LZState{
		AfterFirst: true,
		PrevWasRef: false,
		Parity:     before.Parity + 1,
		LastOffset: before.LastOffset,
	}

	return size, after
}

// EncodeReference encodes a back-reference of the given offset (>= 1) and
// length (>= 2) and returns the cost and the resulting state. before must
// have AfterFirst set: a reference cannot be the first symbol.
func (e *LZEncoder) EncodeReference(offset uint32, length int, before LZState) (BitCost, LZState) {
	invariant(offset >= 1, "reference offset must be >= 1")
	invariant(length >= 2, "reference length must be >= 2")
	invariant(before.AfterFirst, "a reference cannot be the first symbol")

	parityOffset := before.parityOffset(e.parityMask)
	size := e.coder.Code(1+contextKind+parityOffset, kindRef)

	repeated := offset == before.LastOffset
	if !before.PrevWasRef {
		bit := 0
		if repeated {
			bit = 1
		}
		size += e.coder.Code(1+contextRepeated, bit)
	} else {
		invariant(!repeated, "two consecutive references cannot share an offset")
	}

	if !repeated {
		size += e.numbers.EncodeNumber(1+(contextGroupOffset<<8), int(offset)+2)
	}

	size += e.numbers.EncodeNumber(1+(contextGroupLength<<8), length)

	after := LZState{
		AfterFirst: true,
		PrevWasRef: true,
		Parity:     before.Parity + uint32(length),
		LastOffset: offset,
	}

	return size, after
}

// Finish encodes the end-of-stream marker: a reference whose OFFSET number
// is 2 (i.e. offset 0), which the decompressor contract (§6) recognizes as
// the terminating symbol.
func (e *LZEncoder) Finish(before LZState) BitCost {
	parityOffset := before.parityOffset(e.parityMask)
	size := e.coder.Code(1+contextKind+parityOffset, kindRef)

	if !before.PrevWasRef {
		size += e.coder.Code(1+contextRepeated, 0)
	}

	size += e.numbers.EncodeNumber(1+(contextGroupOffset<<8), 2)

	return size
}
