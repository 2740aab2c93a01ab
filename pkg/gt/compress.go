package gt

import "encoding/binary"

const (
	nearWindow = 0x2000 // reach of a long match without the far flag
	farWindow  = 0x4000 // reach with the far flag set
	shortReach = 256    // reach of a short match
	maxMatch   = 0xFFFF // longest length the 16-bit form can carry
	hashBits   = 15
	maxChain   = 64
)

// Compress encodes src as a GT20 stream that Decompress restores exactly.
//
// The encoder is greedy: at each position it takes the longest match found
// on a hash chain of 3-byte prefixes, falling back to 2-byte short matches
// and then literals.
func Compress(src []byte) []byte {
	w := &bitWriter{buf: make([]byte, HeaderSize, HeaderSize+len(src)+len(src)/8+8)}
	WriteHeader(w.buf, &Header{UncompressedSize: uint32(len(src))})

	m := newMatcher(src)
	for i := 0; i < len(src); {
		dist, length := m.find(i)
		switch {
		case length >= 2 && length <= 5 && dist <= shortReach:
			w.shortMatch(dist, length)
		case length >= 3:
			w.longMatch(dist, length)
		default:
			w.literal(src[i])
			length = 1
		}
		for j := 0; j < length; j++ {
			m.insert(i + j)
		}
		i += length
	}

	w.terminate()
	return w.buf
}

// bitWriter mirrors bitReader: a control word slot is reserved in the
// output the moment its first bit is emitted.
type bitWriter struct {
	buf   []byte
	slot  int
	word  uint32
	count int
}

func (w *bitWriter) putBit(bit uint32) {
	if w.count == 0 {
		w.slot = len(w.buf)
		w.buf = append(w.buf, 0, 0, 0, 0)
		w.word = 0
	}
	w.word |= bit << w.count
	binary.LittleEndian.PutUint32(w.buf[w.slot:], w.word)
	if w.count++; w.count == 32 {
		w.count = 0
	}
}

func (w *bitWriter) putU16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *bitWriter) literal(b byte) {
	w.putBit(0)
	w.buf = append(w.buf, b)
}

func (w *bitWriter) shortMatch(dist, length int) {
	w.putBit(1)
	w.putBit(0)
	w.buf = append(w.buf, byte(shortReach-dist))
	w.putBit(boolBit(length >= 4))
	w.putBit(boolBit(length == 3 || length == 5))
}

func (w *bitWriter) longMatch(dist, length int) {
	far := dist > nearWindow
	field := nearWindow - dist
	if far {
		field = farWindow - dist
	}

	w.putBit(1)
	w.putBit(1)
	if !far && length <= 9 {
		w.putU16(uint16(field<<3 | (length - 2)))
		return
	}

	w.putU16(uint16(field << 3))
	var flag byte
	if far {
		flag = 0x80
	}
	// Codes 0 and 1 are reserved for the 16-bit length and the terminator.
	if n := length - 2; n >= 2 && n <= 0x7F {
		w.buf = append(w.buf, flag|byte(n))
	} else {
		w.buf = append(w.buf, flag)
		w.putU16(uint16(length))
	}
}

func (w *bitWriter) terminate() {
	w.putBit(1)
	w.putBit(1)
	w.putU16(0)
	w.buf = append(w.buf, 1)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

type matcher struct {
	src  []byte
	head []int32
	prev []int32
}

func newMatcher(src []byte) *matcher {
	head := make([]int32, 1<<hashBits)
	for i := range head {
		head[i] = -1
	}
	return &matcher{src: src, head: head, prev: make([]int32, len(src))}
}

func (m *matcher) hash(i int) uint32 {
	v := uint32(m.src[i])<<16 | uint32(m.src[i+1])<<8 | uint32(m.src[i+2])
	return (v * 2654435761) >> (32 - hashBits)
}

func (m *matcher) insert(i int) {
	if i+2 >= len(m.src) {
		return
	}
	h := m.hash(i)
	m.prev[i] = m.head[h]
	m.head[h] = int32(i)
}

// find returns the best encodable match at i, or a zero length.
func (m *matcher) find(i int) (dist, length int) {
	limit := min(len(m.src)-i, maxMatch)

	if limit >= 3 {
		chain := maxChain
		for p := m.head[m.hash(i)]; p >= 0 && chain > 0; p = m.prev[p] {
			d := i - int(p)
			if d > farWindow {
				break
			}
			n := 0
			for n < limit && m.src[int(p)+n] == m.src[i+n] {
				n++
			}
			if n > length {
				dist, length = d, n
				if n == limit {
					break
				}
			}
			chain--
		}
		if length >= 3 {
			return dist, length
		}
	}

	if limit >= 2 {
		for d := 1; d <= shortReach && d <= i; d++ {
			if m.src[i-d] == m.src[i] && m.src[i-d+1] == m.src[i+1] {
				return d, 2
			}
		}
	}
	return 0, 0
}
