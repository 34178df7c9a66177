// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler_test

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askeksa/shrinkler-go"
	"github.com/askeksa/shrinkler-go/shrinklerdec"
)

func fastParams() *shrinkler.PackParams {
	p := shrinkler.DefaultPackParams()
	p.Iterations = 2
	return p
}

func roundTrip(t *testing.T, data []byte, params *shrinkler.PackParams) []byte {
	t.Helper()

	out, _, err := shrinkler.Pack(data, 0, params)
	require.NoError(t, err)

	decoded, err := shrinklerdec.Decode(out, params.ParityContext, len(data))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(decoded, data), "round-trip mismatch: got %d bytes, want %d", len(decoded), len(data))

	return out
}

func TestPack_EndToEndScenarios(t *testing.T) {
	t.Run("single byte", func(t *testing.T) {
		roundTrip(t, []byte("A"), fastParams())
	})

	t.Run("run of identical bytes", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x55}, 1024)
		out := roundTrip(t, data, fastParams())
		assert.LessOrEqual(t, len(out), 40, "a long repeated run should compress to a handful of bytes")
	})

	t.Run("alphabet, no useful references", func(t *testing.T) {
		roundTrip(t, []byte("abcdefghijklmnopqrstuvwxyz"), fastParams())
	})

	t.Run("random data stays near incompressible", func(t *testing.T) {
		data := make([]byte, 16*1024)
		_, err := rand.Read(data)
		require.NoError(t, err)

		out := roundTrip(t, data, fastParams())
		assert.LessOrEqual(t, len(out), len(data)+len(data)/100+64)
	})

	t.Run("duplicated block collapses to one long reference", func(t *testing.T) {
		block := make([]byte, 4096)
		for i := range block {
			block[i] = byte(i * 37)
		}
		data := append(append([]byte{}, block...), block...)

		out := roundTrip(t, data, fastParams())
		assert.Less(t, len(out), len(data)/4)
	})
}

func TestPack_RejectsEmptyInput(t *testing.T) {
	_, _, err := shrinkler.Pack(nil, 0, fastParams())
	assert.ErrorIs(t, err, shrinkler.ErrEmptyInput)
}

func TestPack_RejectsInvalidParams(t *testing.T) {
	p := fastParams()
	p.Iterations = 0
	_, _, err := shrinkler.Pack([]byte("x"), 0, p)
	assert.ErrorIs(t, err, shrinkler.ErrInvalidParams)
}

func TestPack_RejectsBadZeroPadding(t *testing.T) {
	_, _, err := shrinkler.Pack([]byte("x"), 3, fastParams())
	assert.ErrorIs(t, err, shrinkler.ErrInvalidParams)
}

func TestPack_IsDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 50)

	out1, size1, err := shrinkler.Pack(data, 0, fastParams())
	require.NoError(t, err)
	out2, size2, err := shrinkler.Pack(data, 0, fastParams())
	require.NoError(t, err)

	assert.Equal(t, size1, size2)
	assert.True(t, bytes.Equal(out1, out2), "identical params and input must produce byte-identical output")
}

func TestPack_ParityContextRoundTrips(t *testing.T) {
	p := fastParams()
	p.ParityContext = true

	data := bytes.Repeat([]byte{1, 2, 3, 4}, 500)
	roundTrip(t, data, p)
}

func TestPack_MultipleIterationsConverge(t *testing.T) {
	// Exercise several training iterations against a moderately compressible
	// input, asserting only that the pipeline still round-trips; the
	// monotone-best-size property itself is covered at the package level by
	// the Pack driver picking the minimum real_size seen across iterations.
	p := fastParams()
	p.Iterations = 6

	data := []byte(fmt.Sprintf("%s%s%s", bytes.Repeat([]byte("ab"), 300), "divider", bytes.Repeat([]byte("cd"), 300)))
	roundTrip(t, data, p)
}

func TestWriteHeader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, shrinkler.WriteHeader(&buf, 123, 456, 16, true))

	data := buf.Bytes()
	require.Len(t, data, 24)
	assert.Equal(t, "Shri", string(data[0:4]))
}
