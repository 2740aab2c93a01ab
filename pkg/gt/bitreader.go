package gt

import (
	"encoding/binary"
	"fmt"
)

// bitReader walks a GT20 payload. Control bits are taken least significant
// first from 32-bit words; a new word is read from the input the moment the
// previous one runs out, so words sit in the byte stream right before the
// data of the first decision they encode.
type bitReader struct {
	src   []byte
	pos   int
	bits  uint32
	count int // live bits left in bits
}

func newBitReader(src []byte, pos int) *bitReader {
	return &bitReader{src: src, pos: pos}
}

// nextBit returns the next control bit.
func (br *bitReader) nextBit() (uint32, error) {
	if br.count == 0 {
		word, err := br.readU32()
		if err != nil {
			return 0, err
		}
		br.bits = word
		br.count = 32
	}
	bit := br.bits & 1
	br.bits >>= 1
	br.count--
	return bit, nil
}

func (br *bitReader) readU8() (byte, error) {
	if br.pos >= len(br.src) {
		return 0, br.overrun(1)
	}
	b := br.src[br.pos]
	br.pos++
	return b, nil
}

func (br *bitReader) readU16() (uint16, error) {
	if br.pos+2 > len(br.src) {
		return 0, br.overrun(2)
	}
	v := binary.LittleEndian.Uint16(br.src[br.pos:])
	br.pos += 2
	return v, nil
}

func (br *bitReader) readU32() (uint32, error) {
	if br.pos+4 > len(br.src) {
		return 0, br.overrun(4)
	}
	v := binary.LittleEndian.Uint32(br.src[br.pos:])
	br.pos += 4
	return v, nil
}

func (br *bitReader) overrun(n int) error {
	return fmt.Errorf("%w: read of %d bytes at input offset %d past end (%d)",
		ErrCorruptStream, n, br.pos, len(br.src))
}
