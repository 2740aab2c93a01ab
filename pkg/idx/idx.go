// Package idx reads Rollcage IDX archive index files.
//
// An index file is a flat table of 16-byte little-endian records with no
// header and no count. Record N describes asset N in the companion IMG file.
package idx

import (
	"encoding/binary"
	"fmt"
)

// RecordSize is the on-disk size of one index record.
const RecordSize = 16

// ArchiveRecord locates one asset inside the data blob.
//
// Layout (16 bytes):
//
//	0x00: file offset
//	0x04: compressed length
//	0x08: decompressed length
//	0x0C: reserved
type ArchiveRecord struct {
	FileOffset         uint32
	CompressedLength   uint32
	DecompressedLength uint32
	Reserved           uint32
}

// End returns the offset one past the last byte of the record's data.
func (r ArchiveRecord) End() uint64 {
	return uint64(r.FileOffset) + uint64(r.CompressedLength)
}

// ParseRecords decodes every complete record in data, in file order.
// Trailing bytes that do not form a full record are ignored.
func ParseRecords(data []byte) []ArchiveRecord {
	count := len(data) / RecordSize
	records := make([]ArchiveRecord, count)
	for i := range records {
		pos := i * RecordSize
		records[i] = ArchiveRecord{
			FileOffset:         binary.LittleEndian.Uint32(data[pos:]),
			CompressedLength:   binary.LittleEndian.Uint32(data[pos+4:]),
			DecompressedLength: binary.LittleEndian.Uint32(data[pos+8:]),
			Reserved:           binary.LittleEndian.Uint32(data[pos+12:]),
		}
	}
	return records
}

// ParseRecordsStrict behaves like ParseRecords but also reports a trailing
// partial record as ErrMalformedIndex. The records are returned either way.
func ParseRecordsStrict(data []byte) ([]ArchiveRecord, error) {
	records := ParseRecords(data)
	if rem := len(data) % RecordSize; rem != 0 {
		return records, fmt.Errorf("%w: %d trailing bytes", ErrMalformedIndex, rem)
	}
	return records, nil
}
