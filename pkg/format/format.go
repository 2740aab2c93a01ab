// Package format identifies Rollcage asset payloads by their magic bytes.
package format

import (
	"bytes"
	"strings"

	"github.com/rctools/pkg/btp"
	"github.com/rctools/pkg/gfxm"
	"github.com/rctools/pkg/gt"
)

// Format is the classification of an asset payload.
type Format int

const (
	Unknown          Format = iota
	TextureContainer        // BTP texture container
	Bitmap                  // Windows BMP
	GraphicsModel           // GFXM model
	CompressedStream        // GT20 compressed envelope
)

// BitmapMagic is the leading "BM" of a Windows bitmap.
const BitmapMagic = "BM"

// signatures lists magics in priority order. The first match wins.
var signatures = []struct {
	magic  []byte
	format Format
}{
	{[]byte(btp.Magic), TextureContainer},
	{[]byte(BitmapMagic), Bitmap},
	{[]byte(gfxm.Magic), GraphicsModel},
	{[]byte(gt.Magic), CompressedStream},
}

// Identify classifies data by its leading bytes.
// Returns Unknown when no signature matches.
func Identify(data []byte) Format {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.format
		}
	}
	return Unknown
}

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case TextureContainer:
		return "BTP"
	case Bitmap:
		return "BMP"
	case GraphicsModel:
		return "GFXM"
	case CompressedStream:
		return "GT20"
	default:
		return "unknown"
	}
}

// Extension returns the file extension used when writing the payload out.
// Unknown payloads have no extension.
func (f Format) Extension() string {
	switch f {
	case TextureContainer:
		return "btp"
	case Bitmap:
		return "bmp"
	case GraphicsModel:
		return "gfxm"
	case CompressedStream:
		return "gt20"
	default:
		return ""
	}
}

// Parse maps a format name (as accepted on the command line) to a Format.
// Matching is case-insensitive on either the display name or the extension.
func Parse(name string) (Format, bool) {
	for _, f := range []Format{TextureContainer, Bitmap, GraphicsModel, CompressedStream, Unknown} {
		if strings.EqualFold(name, f.String()) || (f.Extension() != "" && strings.EqualFold(name, f.Extension())) {
			return f, true
		}
	}
	return Unknown, false
}
