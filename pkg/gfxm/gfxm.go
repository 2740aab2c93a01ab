// Package gfxm reads the header of Rollcage GFXM model files.
// The model body is not decoded.
package gfxm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic is the model signature.
const Magic = "GFXM"

// HeaderSize is the size of the model header.
const HeaderSize = 28

var (
	ErrBadSignature = errors.New("invalid GFXM signature")
	ErrTruncated    = errors.New("GFXM header truncated")
)

// Header is the GFXM header (28 bytes).
type Header struct {
	Signature          [4]byte
	Unknown1           uint32
	Unknown2           uint32
	NumCoordinates     uint32
	NumSegments        uint32
	SegmentTableOffset uint32
	ModelTableOffset   uint32
}

// ReadHeader reads a model header from the start of data.
func ReadHeader(data []byte) (*Header, error) {
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return nil, ErrBadSignature
	}
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: have %d bytes", ErrTruncated, len(data))
	}

	hdr := &Header{}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("failed to read GFXM header: %w", err)
	}
	return hdr, nil
}
