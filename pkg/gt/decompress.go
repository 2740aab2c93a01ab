package gt

import "fmt"

const (
	// offsetMask sign-extends the 13-bit window field of a long match.
	offsetMask uint32 = 0xFFFFE000
	// farAdjust is subtracted from the source index when the extended
	// length byte has its top bit set.
	farAdjust uint32 = 0x2000
)

// Decompress restores a GT20 stream into a buffer of exactly size bytes.
//
// The stream ends at the terminator code; any output the terminator leaves
// unwritten stays zero. Running out of input or writing past size before
// the terminator is ErrCorruptStream.
func Decompress(src []byte, size uint32) ([]byte, error) {
	if !HasMagic(src) {
		return nil, ErrBadSignature
	}

	d := &decoder{
		br:  newBitReader(src, HeaderSize),
		out: make([]byte, size),
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.out, nil
}

// DecompressData decompresses src using the size declared in its header.
func DecompressData(src []byte) ([]byte, error) {
	hdr, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}
	return Decompress(src, hdr.UncompressedSize)
}

type decoder struct {
	br  *bitReader
	out []byte
	cur uint32 // output cursor
}

func (d *decoder) run() error {
	for {
		bit, err := d.br.nextBit()
		if err != nil {
			return err
		}

		if bit == 0 {
			// Literal byte
			b, err := d.br.readU8()
			if err != nil {
				return err
			}
			if err := d.put(b); err != nil {
				return err
			}
			continue
		}

		bit, err = d.br.nextBit()
		if err != nil {
			return err
		}

		if bit != 0 {
			done, err := d.longMatch()
			if err != nil || done {
				return err
			}
		} else if err := d.shortMatch(); err != nil {
			return err
		}
	}
}

// longMatch handles a 16-bit match code. It reports done when the code is
// the stream terminator.
func (d *decoder) longMatch() (done bool, err error) {
	code, err := d.br.readU16()
	if err != nil {
		return false, err
	}

	from := d.cur + (uint32(code>>3) | offsetMask)
	length := uint32(code & 7)
	if length != 0 {
		length += 2
	} else {
		ext, err := d.br.readU8()
		if err != nil {
			return false, err
		}
		if ext&0x80 != 0 {
			from -= farAdjust
		}

		switch length = uint32(ext & 0x7F); length {
		case 1:
			return true, nil
		case 0:
			n, err := d.br.readU16()
			if err != nil {
				return false, err
			}
			length = uint32(n)
		default:
			length += 2
		}
	}

	_, err = d.copy(from, length)
	return false, err
}

// shortMatch copies 2, 3, 4 or 5 bytes from within the last 256 bytes of
// output. Two control bits after the offset byte extend the run.
func (d *decoder) shortMatch() error {
	b, err := d.br.readU8()
	if err != nil {
		return err
	}
	from := d.cur + uint32(b) - 256

	if from, err = d.copy(from, 2); err != nil {
		return err
	}

	bit, err := d.br.nextBit()
	if err != nil {
		return err
	}
	if bit != 0 {
		if from, err = d.copy(from, 2); err != nil {
			return err
		}
	}

	bit, err = d.br.nextBit()
	if err != nil {
		return err
	}
	if bit != 0 {
		if _, err = d.copy(from, 1); err != nil {
			return err
		}
	}
	return nil
}

// copy moves n bytes forward from out[from:] to the cursor one at a time so
// overlapping runs repeat. It returns the advanced source index.
func (d *decoder) copy(from, n uint32) (uint32, error) {
	for ; n > 0; n-- {
		if uint64(from) >= uint64(len(d.out)) {
			return from, fmt.Errorf("%w: match source %#x outside output of %d bytes",
				ErrCorruptStream, from, len(d.out))
		}
		if err := d.put(d.out[from]); err != nil {
			return from, err
		}
		from++
	}
	return from, nil
}

func (d *decoder) put(b byte) error {
	if uint64(d.cur) >= uint64(len(d.out)) {
		return fmt.Errorf("%w: write at %d past declared size %d", ErrCorruptStream, d.cur, len(d.out))
	}
	d.out[d.cur] = b
	d.cur++
	return nil
}
