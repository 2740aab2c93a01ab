// Package btp decodes Rollcage BTP texture containers.
//
// A container holds a table of texture pages, a table of 256-colour
// palettes and the 8-bit pixel planes the pages index into. All offsets in
// the header are relative to the start of the container.
package btp

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic is the container signature. Note the trailing space.
const Magic = "BTP "

// Table entry sizes
const (
	HeaderSize      = 64
	PageInfoSize    = 12
	ColourSize      = 4
	PaletteColours  = 256
	PaletteDataSize = PaletteColours * ColourSize // 1024 bytes
)

// Header is the BTP container header.
// Layout (64 bytes, little-endian):
//
//	0x00: "BTP "
//	0x04: 4 x unknown u32
//	0x14: sub-object count
//	0x18: unknown
//	0x1C: skybox data offset
//	0x20: unknown
//	0x24: texture pixel data offset
//	0x28: sub-object data offset
//	0x2C: 2 x unknown u32
//	0x34: texture count (u16), palette count (u16)
//	0x38: texture page table offset
//	0x3C: palette table offset
type Header struct {
	Signature              [4]byte
	Unknown1               uint32
	Unknown2               uint32
	Unknown3               uint32
	Unknown4               uint32
	NumCObjects            uint32
	Unknown5               uint32
	SkyboxDataOffset       uint32
	Unknown6               uint32
	TextureDataOffset      uint32
	CObjectsDataOffset     uint32
	Unknown7               uint32
	Unknown8               uint32
	NumTextures            uint16
	NumPalettes            uint16
	TexturePageTableOffset uint32
	PaletteDataOffset      uint32
}

// HasMagic reports whether data starts with the BTP signature.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// ReadHeader reads a container header from the start of data.
func ReadHeader(data []byte) (*Header, error) {
	if !HasMagic(data) {
		return nil, ErrBadSignature
	}
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(data))
	}

	hdr := &Header{}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("failed to read BTP header: %w", err)
	}
	return hdr, nil
}

// PageInfo describes one texture page (12 bytes).
// Offset is relative to the header's TextureDataOffset.
type PageInfo struct {
	Width   uint16
	Height  uint16
	Palette uint32 // index into the palette table
	Offset  uint32
}

// PixelCount returns Width*Height.
func (p PageInfo) PixelCount() int {
	return int(p.Width) * int(p.Height)
}

// ReadPageInfos reads the texture page table. A table cut short by the end
// of data yields only the complete entries.
func ReadPageInfos(data []byte, hdr *Header) []PageInfo {
	infos := make([]PageInfo, 0, hdr.NumTextures)
	pos := uint64(hdr.TexturePageTableOffset)
	for i := 0; i < int(hdr.NumTextures); i++ {
		if pos+PageInfoSize > uint64(len(data)) {
			break
		}
		entry := data[pos:]
		infos = append(infos, PageInfo{
			Width:   binary.LittleEndian.Uint16(entry[0:2]),
			Height:  binary.LittleEndian.Uint16(entry[2:4]),
			Palette: binary.LittleEndian.Uint32(entry[4:8]),
			Offset:  binary.LittleEndian.Uint32(entry[8:12]),
		})
		pos += PageInfoSize
	}
	return infos
}
