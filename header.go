// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import (
	"encoding/binary"
	"io"
)

// headerMagic identifies a framed data-mode file.
var headerMagic = [4]byte{'S', 'h', 'r', 'i'}

const (
	headerMajorVersion = 1
	headerMinorVersion = 0

	// headerSize is the total byte length of the header this package writes:
	// magic(4) + major(1) + minor(1) + header_size(2) + compressed_size(4) +
	// uncompressed_size(4) + safety_margin(4) + flags(4).
	headerSize = 4 + 1 + 1 + 2 + 4 + 4 + 4 + 4

	flagParityContext = 1 << 0
)

// WriteHeader writes the optional framed-file header preceding a data-mode
// bitstream: a magic, a version pair, the header's own size, the compressed
// and uncompressed sizes, a decompressor safety margin (the number of extra
// bytes the decompressor may overwrite past the end of its output buffer
// while unpacking in place) and a flags word carrying parity_context.
func WriteHeader(w io.Writer, compressedSize, uncompressedSize, safetyMargin uint32, parityContext bool) error {
	var buf [headerSize]byte

	copy(buf[0:4], headerMagic[:])
	buf[4] = headerMajorVersion
	buf[5] = headerMinorVersion
	binary.BigEndian.PutUint16(buf[6:8], headerSize)
	binary.BigEndian.PutUint32(buf[8:12], compressedSize)
	binary.BigEndian.PutUint32(buf[12:16], uncompressedSize)
	binary.BigEndian.PutUint32(buf[16:20], safetyMargin)

	var flags uint32
	if parityContext {
		flags |= flagParityContext
	}
	binary.BigEndian.PutUint32(buf[20:24], flags)

	_, err := w.Write(buf[:])
	return err
}
