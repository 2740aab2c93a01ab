package idx

import (
	"encoding/binary"
	"errors"
	"testing"
)

func putRecord(buf []byte, r ArchiveRecord) {
	binary.LittleEndian.PutUint32(buf[0:], r.FileOffset)
	binary.LittleEndian.PutUint32(buf[4:], r.CompressedLength)
	binary.LittleEndian.PutUint32(buf[8:], r.DecompressedLength)
	binary.LittleEndian.PutUint32(buf[12:], r.Reserved)
}

func TestParseRecordsTwo(t *testing.T) {
	want := []ArchiveRecord{
		{FileOffset: 0x10, CompressedLength: 0x20, DecompressedLength: 0x30, Reserved: 0},
		{FileOffset: 0x01020304, CompressedLength: 5, DecompressedLength: 0xFFFFFFFF, Reserved: 7},
	}
	data := make([]byte, 32)
	putRecord(data[0:], want[0])
	putRecord(data[16:], want[1])

	got := ParseRecords(data)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseRecordsLittleEndian(t *testing.T) {
	data := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x00, 0x00, 0x00,
		0x00, 0x01, 0x00, 0x00,
		0xAA, 0xBB, 0xCC, 0xDD,
	}
	got := ParseRecords(data)
	want := ArchiveRecord{
		FileOffset:         0x04030201,
		CompressedLength:   5,
		DecompressedLength: 0x100,
		Reserved:           0xDDCCBBAA,
	}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("ParseRecords = %+v, want [%+v]", got, want)
	}
}

func TestParseRecordsTruncation(t *testing.T) {
	for n := 0; n < 4; n++ {
		for r := 0; r < RecordSize; r++ {
			data := make([]byte, RecordSize*n+r)
			if got := len(ParseRecords(data)); got != n {
				t.Errorf("len(ParseRecords(%d bytes)) = %d, want %d", len(data), got, n)
			}
		}
	}
}

func TestParseRecordsStrict(t *testing.T) {
	records, err := ParseRecordsStrict(make([]byte, 48))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}

	records, err = ParseRecordsStrict(make([]byte, 35))
	if !errors.Is(err, ErrMalformedIndex) {
		t.Errorf("err = %v, want ErrMalformedIndex", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 alongside the warning", len(records))
	}
}

func TestRecordEnd(t *testing.T) {
	r := ArchiveRecord{FileOffset: 0xFFFFFFF0, CompressedLength: 0x20}
	if got, want := r.End(), uint64(0x100000010); got != want {
		t.Errorf("End() = %#x, want %#x", got, want)
	}
}
