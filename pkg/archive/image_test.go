package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/rctools/pkg/btp"
)

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"bmp", ImageBMP, false},
		{"PNG", ImagePNG, false},
		{".png", ImagePNG, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImageFormat(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrImageFormat) {
					t.Errorf("err = %v, want ErrImageFormat", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseImageFormat(%q) = %q, %v; want %q", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestWriteTextures(t *testing.T) {
	var pal btp.Palette
	pal.Count = 2
	pal.Colours[0] = btp.Colour{Red: 0xFF, Alpha: 0xFF}
	pal.Colours[1] = btp.Colour{Green: 0xFF, Alpha: 0xFF}

	tex, err := btp.NewTexture(btp.PageInfo{Width: 3, Height: 1}, pal, []byte{0, 1, 0})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	tex.Page = 7

	dir := filepath.Join(t.TempDir(), "textures")
	if err := WriteTextures(dir, []*btp.Texture{tex}, ImageBMP, 1); err != nil {
		t.Fatalf("WriteTextures: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "image_7.bmp"))
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 1 {
		t.Fatalf("bounds = %v, want 3x1", b)
	}
	if _, g, _, _ := img.At(1, 0).RGBA(); g>>8 != 0xFF {
		t.Errorf("pixel (1,0) green = %d, want 255", g>>8)
	}
	if r, _, _, _ := img.At(2, 0).RGBA(); r>>8 != 0xFF {
		t.Errorf("pixel (2,0) red = %d, want 255", r>>8)
	}
}

func TestRenderTextureScale(t *testing.T) {
	var pal btp.Palette
	pal.Count = 1
	pal.Colours[0] = btp.Colour{Blue: 0x80, Alpha: 0xFF}

	tex, err := btp.NewTexture(btp.PageInfo{Width: 2, Height: 3}, pal, make([]byte, 6))
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	for _, scale := range []int{0, 1, 3} {
		want := max(scale, 1)
		if b := RenderTexture(tex, scale).Bounds(); b.Dx() != 2*want || b.Dy() != 3*want {
			t.Errorf("scale %d: bounds = %v", scale, b)
		}
	}
}
