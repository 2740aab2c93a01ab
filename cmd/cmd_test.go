package cmd

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/rctools/pkg/archive"
	"github.com/rctools/pkg/btp"
	"github.com/rctools/pkg/format"
	"github.com/rctools/pkg/gt"
)

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"output1.gt20", "btp", "output1.btp"},
		{"dir/output1", "bin", "dir/output1.bin"},
		{"textures.btp", "gt20", "textures.gt20"},
		{"textures.GT20", "gt20", "textures.GT20.gt20"},
	}

	for _, tt := range tests {
		if got := replaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("replaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats([]string{"btp", "BMP", "unknown"})
	if err != nil {
		t.Fatalf("parseFormats: %v", err)
	}
	want := []format.Format{format.TextureContainer, format.Bitmap, format.Unknown}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parseFormats([]string{"tga"}); err == nil {
		t.Error("expected error for unknown format name")
	}
}

// singlePageContainer builds a BTP container with one 1x2 page.
func singlePageContainer() []byte {
	const (
		pageTable   = btp.HeaderSize
		paletteData = pageTable + btp.PageInfoSize
		textureData = paletteData + btp.PaletteDataSize
	)
	buf := make([]byte, textureData+2)
	copy(buf, btp.Magic)
	binary.LittleEndian.PutUint32(buf[0x24:], textureData)
	binary.LittleEndian.PutUint16(buf[0x34:], 1)
	binary.LittleEndian.PutUint16(buf[0x36:], 1)
	binary.LittleEndian.PutUint32(buf[0x38:], pageTable)
	binary.LittleEndian.PutUint32(buf[0x3C:], paletteData)
	binary.LittleEndian.PutUint16(buf[pageTable:], 1)
	binary.LittleEndian.PutUint16(buf[pageTable+2:], 2)
	for i := 0; i < btp.PaletteColours; i++ {
		buf[paletteData+i*4+3] = 0xFF
	}
	return buf
}

func TestConvertBtpFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.btp")
	packed := filepath.Join(dir, "packed.gt20")
	if err := os.WriteFile(plain, singlePageContainer(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(packed, gt.Compress(singlePageContainer()), 0644); err != nil {
		t.Fatal(err)
	}

	for _, input := range []string{plain, packed} {
		out := filepath.Join(dir, filepath.Base(input)+"_out")
		n, err := convertBtpFile(input, out, archive.ImagePNG)
		if err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if n != 1 {
			t.Errorf("%s: converted %d textures, want 1", input, n)
		}
		if _, err := os.Stat(filepath.Join(out, "image_0.png")); err != nil {
			t.Errorf("%s: %v", input, err)
		}
	}
}

func TestConvertBtpFileRejectsOtherFormats(t *testing.T) {
	input := filepath.Join(t.TempDir(), "model.btp")
	if err := os.WriteFile(input, []byte("GFXM not a texture"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := convertBtpFile(input, t.TempDir(), archive.ImageBMP); err == nil {
		t.Error("expected error for non-BTP input")
	}
}
