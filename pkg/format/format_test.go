package format

import "testing"

func TestIdentify(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"btp", []byte("BTP \x00\x00\x00\x00"), TextureContainer},
		{"bitmap", []byte("BM\x36\x00"), Bitmap},
		{"gfxm", []byte("GFXM\x01"), GraphicsModel},
		{"gt20", []byte("GT20\x10\x00\x00\x00"), CompressedStream},
		{"exact magic only", []byte("GT20"), CompressedStream},
		{"unknown", []byte("MODL\x00\x00"), Unknown},
		{"empty", nil, Unknown},
		{"shorter than any magic", []byte("B"), Unknown},
		{"btp prefix without space", []byte("BTPX"), Unknown},
		{"truncated gt magic", []byte("GT2"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identify(tt.data); got != tt.want {
				t.Errorf("Identify(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestIdentifyPriority(t *testing.T) {
	// "BM" is checked before "GFXM" and "GT20"; a buffer starting with
	// "BM" is a bitmap no matter what follows it.
	data := []byte("BMGT20GFXM")
	if got := Identify(data); got != Bitmap {
		t.Errorf("Identify(%q) = %v, want %v", data, got, Bitmap)
	}
}

func TestExtension(t *testing.T) {
	tests := map[Format]string{
		TextureContainer: "btp",
		Bitmap:           "bmp",
		GraphicsModel:    "gfxm",
		CompressedStream: "gt20",
		Unknown:          "",
	}
	for f, want := range tests {
		if got := f.Extension(); got != want {
			t.Errorf("%v.Extension() = %q, want %q", f, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"btp", TextureContainer, true},
		{"BTP", TextureContainer, true},
		{"bmp", Bitmap, true},
		{"gfxm", GraphicsModel, true},
		{"gt20", CompressedStream, true},
		{"unknown", Unknown, true},
		{"png", Unknown, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
