// Package gt handles the GT20 compressed envelope used by Rollcage assets.
//
// A GT20 stream is a 16-byte header followed by an LZ77-style payload whose
// literal/match decisions come from 32-bit little-endian control words
// interleaved with the data bytes.
package gt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic is the signature at the start of every GT20 stream.
const Magic = "GT20"

// HeaderSize is the size of the envelope preceding the bitstream.
const HeaderSize = 16

// Header is the GT20 envelope (16 bytes).
//
// Overlap and Skip describe in-place decompression on the console and are
// not needed when decompressing into a separate buffer.
type Header struct {
	Signature        [4]byte // "GT20"
	UncompressedSize uint32
	Overlap          uint32 // Overlap for in-situ decompression
	Skip             uint32 // Bytes to skip to reach the GT data
}

// HasMagic reports whether data starts with the GT20 signature.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// ReadHeader reads the GT20 envelope from the start of data.
func ReadHeader(data []byte) (*Header, error) {
	if !HasMagic(data) {
		return nil, ErrBadSignature
	}
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrCorruptStream, HeaderSize, len(data))
	}

	hdr := &Header{
		UncompressedSize: binary.LittleEndian.Uint32(data[4:8]),
		Overlap:          binary.LittleEndian.Uint32(data[8:12]),
		Skip:             binary.LittleEndian.Uint32(data[12:16]),
	}
	copy(hdr.Signature[:], data[:4])
	return hdr, nil
}

// WriteHeader encodes hdr into the first HeaderSize bytes of buf.
func WriteHeader(buf []byte, hdr *Header) {
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], hdr.UncompressedSize)
	binary.LittleEndian.PutUint32(buf[8:12], hdr.Overlap)
	binary.LittleEndian.PutUint32(buf[12:16], hdr.Skip)
}
